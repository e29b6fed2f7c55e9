// Package persistence reads and writes the application document as a single
// serialized value in a durable byte store.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/common"
)

var (
	// ErrDecode means the stored document could not be parsed.
	ErrDecode = errors.New("stored document is unreadable")
	// ErrWrite means the store rejected a write.
	ErrWrite = errors.New("document could not be written")
)

// Store is the byte-level backend. Get must return common.ErrorNotFound for
// an absent key. repositories/state implementations satisfy it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Adapter persists one Document under one key.
type Adapter struct {
	store Store
	key   string
}

func NewAdapter(store Store, key string) *Adapter {
	if key == "" {
		key = common.DefaultStateKey
	}
	return &Adapter{store: store, key: key}
}

func (a *Adapter) Key() string { return a.key }

// Load returns the stored document merged over the defaults. A missing entry
// yields the defaults and no error. An unreadable entry yields the defaults
// and an error wrapping ErrDecode.
func (a *Adapter) Load(ctx context.Context) (*models.Document, error) {
	data, err := a.store.Get(ctx, a.key)
	if errors.Is(err, common.ErrorNotFound) || (err == nil && len(data) == 0) {
		return models.NewDocument(), nil
	}
	if err != nil {
		return models.NewDocument(), fmt.Errorf("%w: %w", ErrDecode, err)
	}

	doc, err := models.DecodeDocument(data)
	if err != nil {
		return doc, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return doc, nil
}

// Save serializes the whole document and replaces the stored copy in a single
// store write.
func (a *Adapter) Save(ctx context.Context, doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := a.store.Set(ctx, a.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Clear removes the stored copy; the next Load returns defaults.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.store.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

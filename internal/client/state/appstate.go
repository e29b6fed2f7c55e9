// Package state owns the in-memory Document and its load/save/reset
// lifecycle.
package state

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/persistence"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// Persister is the storage side of AppState; *persistence.Adapter
// implements it.
type Persister interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
	Clear(ctx context.Context) error
}

// Notifier shows a short message to the user.
type Notifier interface {
	Show(msg string)
}

// Hook observes the document around a lifecycle event.
type Hook func(ctx context.Context, doc *models.Document)

const (
	msgLoadFailed  = "Saved data was unreadable; starting fresh"
	msgSaveFailed  = "Could not save data"
	msgResetFailed = "Could not clear saved data"
)

// AppState is the single owner of the Document. Other components read it
// through Document and write by mutating it and calling Save within the same
// event handler.
type AppState struct {
	persister Persister
	notifier  Notifier
	logger    logging.Logger
	doc       *models.Document

	beforeSave []Hook
	afterSave  []Hook
	onReset    []Hook
}

func New(p Persister, n Notifier, logger logging.Logger) *AppState {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AppState{
		persister: p,
		notifier:  n,
		logger:    logger.With("component", "state"),
		doc:       models.NewDocument(),
	}
}

// Document returns the live document. Callers must not keep it across
// handler boundaries; Reset swaps it for a new value.
func (s *AppState) Document() *models.Document {
	return s.doc
}

func (s *AppState) OnBeforeSave(h Hook) { s.beforeSave = append(s.beforeSave, h) }
func (s *AppState) OnAfterSave(h Hook)  { s.afterSave = append(s.afterSave, h) }
func (s *AppState) OnReset(h Hook)      { s.onReset = append(s.onReset, h) }

// Load replaces the document with the persisted one merged over defaults.
// An unreadable payload leaves the defaults in place, notifies the user and
// returns the error for the caller to log; the state is usable either way.
func (s *AppState) Load(ctx context.Context) error {
	doc, err := s.persister.Load(ctx)
	if doc == nil {
		doc = models.NewDocument()
	}
	doc.Normalize()
	s.doc = doc

	if err != nil {
		s.logger.Error(ctx, "load error", "error", err)
		s.notify(msgLoadFailed)
		return err
	}
	return nil
}

// Save persists the whole document. On failure the in-memory document stays
// authoritative for the session and the user is notified.
func (s *AppState) Save(ctx context.Context) error {
	for _, h := range s.beforeSave {
		h(ctx, s.doc)
	}
	s.doc.Normalize()

	if err := s.persister.Save(ctx, s.doc); err != nil {
		s.logger.Error(ctx, "save error", "error", err)
		s.notify(msgSaveFailed)
		return err
	}

	for _, h := range s.afterSave {
		h(ctx, s.doc)
	}
	return nil
}

// Reset clears the store and starts over from defaults. The in-memory reset
// happens even when clearing the store fails.
func (s *AppState) Reset(ctx context.Context) error {
	err := s.persister.Clear(ctx)
	s.doc = models.NewDocument()

	for _, h := range s.onReset {
		h(ctx, s.doc)
	}

	if err != nil {
		s.logger.Error(ctx, "reset error", "error", err)
		s.notify(msgResetFailed)
		return err
	}
	return nil
}

func (s *AppState) notify(msg string) {
	if s.notifier != nil {
		s.notifier.Show(msg)
	}
}

// IsDecodeError reports whether err came from an unreadable stored document.
func IsDecodeError(err error) bool {
	return errors.Is(err, persistence.ErrDecode)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/kinds"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/google/uuid"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Show(msg string)
}

type Op string

const (
	OpAdded       Op = "added"
	OpUpdated     Op = "updated"
	OpRemoved     Op = "removed"
	OpRemovedMany Op = "removed_many"
	OpToggled     Op = "toggled"
	OpMarkedAll   Op = "marked_all"
	OpPatched     Op = "patched"
)

// Change describes a mutation of one collection.
type Change struct {
	Key models.CollectionKey
	Op  Op
	IDs []string
}

type Observer func(ctx context.Context, ch Change)

type collectionOptions struct {
	newID func() string
	now   func() time.Time
}

type CollectionOption func(*collectionOptions)

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(f func() string) CollectionOption {
	return func(o *collectionOptions) { o.newID = f }
}

// WithClock replaces time.Now for createdAt stamps.
func WithClock(now func() time.Time) CollectionOption {
	return func(o *collectionOptions) { o.now = now }
}

// Collection is the CRUD engine for one named collection of the document.
// It accepts any well-formed payload; domain validation belongs to the
// kind's form parsing, done by the caller before Add or Update.
type Collection[T models.Entity] struct {
	state     *state.AppState
	kind      kinds.Kind[T]
	notifier  Notifier
	opts      collectionOptions
	observers []Observer
}

func NewCollection[T models.Entity](st *state.AppState, kind kinds.Kind[T], n Notifier, opts ...CollectionOption) *Collection[T] {
	o := collectionOptions{newID: uuid.NewString, now: time.Now}
	for _, f := range opts {
		f(&o)
	}
	return &Collection[T]{state: st, kind: kind, notifier: n, opts: o}
}

func (c *Collection[T]) Kind() kinds.Kind[T]       { return c.kind }
func (c *Collection[T]) Key() models.CollectionKey { return c.kind.Key() }

// OnChange registers an observer called after every mutation, whether or not
// persisting succeeded.
func (c *Collection[T]) OnChange(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Collection[T]) slot() *[]T {
	return c.kind.Slot(c.state.Document())
}

// Items returns a copy of the collection, most recent first.
func (c *Collection[T]) Items() []T {
	items := *c.slot()
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func (c *Collection[T]) Len() int { return len(*c.slot()) }

func (c *Collection[T]) Get(id string) (T, bool) {
	for _, it := range *c.slot() {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Views() []models.View {
	items := *c.slot()
	out := make([]models.View, len(items))
	for i, it := range items {
		out[i] = c.kind.View(it)
	}
	return out
}

// Stats counts entities and completed entities.
func (c *Collection[T]) Stats() (total, completed int) {
	for _, v := range c.Views() {
		total++
		if v.Completed {
			completed++
		}
	}
	return total, completed
}

// Add builds a new entity, inserts it at the front, persists and notifies.
func (c *Collection[T]) Add(ctx context.Context, payload models.Fields) (T, error) {
	base := models.Base{
		ID:        c.opts.newID(),
		CreatedAt: models.NewTimestamp(c.opts.now()),
	}
	item, err := c.kind.New(base, payload)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("build %s: %w", c.kind.Label(), err)
	}

	s := c.slot()
	*s = append([]T{item}, *s...)

	err = c.commit(ctx, Change{Key: c.Key(), Op: OpAdded, IDs: []string{item.EntityID()}},
		c.kind.Label()+" added")
	return item, err
}

// Update merges changes into the entity with id. A missing id is a silent
// no-op reported by the false return. An existing id is always persisted,
// even when changes is empty.
func (c *Collection[T]) Update(ctx context.Context, id string, changes models.Fields) (bool, error) {
	return c.update(ctx, id, changes, OpUpdated, c.kind.Label()+" updated")
}

// Patch is Update without the user notification, for background
// reconciliation.
func (c *Collection[T]) Patch(ctx context.Context, id string, changes models.Fields) (bool, error) {
	return c.update(ctx, id, changes, OpPatched, "")
}

func (c *Collection[T]) update(ctx context.Context, id string, changes models.Fields, op Op, msg string) (bool, error) {
	s := c.slot()
	for i, it := range *s {
		if it.EntityID() != id {
			continue
		}
		merged, err := models.Merge(it, changes)
		if err != nil {
			return false, fmt.Errorf("update %s: %w", c.kind.Label(), err)
		}
		(*s)[i] = merged
		return true, c.commit(ctx, Change{Key: c.Key(), Op: op, IDs: []string{id}}, msg)
	}
	return false, nil
}

// Remove deletes the entity with id. A missing id changes nothing, writes
// nothing and shows nothing.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	n := c.filter(map[string]struct{}{id: {}})
	if n == 0 {
		return nil
	}
	return c.commit(ctx, Change{Key: c.Key(), Op: OpRemoved, IDs: []string{id}},
		c.kind.Label()+" removed")
}

// RemoveMany deletes every entity whose id is in ids with a single write and
// returns how many were removed. The write and the count notification happen
// even when no id matched.
func (c *Collection[T]) RemoveMany(ctx context.Context, ids []string) (int, error) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	var removed []string
	for _, it := range *c.slot() {
		if _, ok := set[it.EntityID()]; ok {
			removed = append(removed, it.EntityID())
		}
	}
	c.filter(set)

	err := c.commit(ctx, Change{Key: c.Key(), Op: OpRemovedMany, IDs: removed},
		fmt.Sprintf("%d %s removed", len(removed), c.countLabel(len(removed))))
	return len(removed), err
}

// ToggleComplete sets completed to value. It persists and re-renders without
// a notification.
func (c *Collection[T]) ToggleComplete(ctx context.Context, id string, value bool) error {
	s := c.slot()
	for i, it := range *s {
		if it.EntityID() != id {
			continue
		}
		merged, err := models.Merge(it, models.Fields{"completed": value})
		if err != nil {
			return fmt.Errorf("toggle %s: %w", c.kind.Label(), err)
		}
		(*s)[i] = merged
		return c.commit(ctx, Change{Key: c.Key(), Op: OpToggled, IDs: []string{id}}, "")
	}
	return nil
}

// MarkAllComplete sets completed on every entity.
func (c *Collection[T]) MarkAllComplete(ctx context.Context) error {
	return c.markComplete(ctx, nil, OpMarkedAll, "All "+c.kind.Plural()+" completed")
}

// MarkComplete sets completed on the listed entities with a single write.
func (c *Collection[T]) MarkComplete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	n := 0
	for _, it := range *c.slot() {
		if _, ok := set[it.EntityID()]; ok {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	err := c.markComplete(ctx, set, OpToggled,
		fmt.Sprintf("%d %s completed", n, c.countLabel(n)))
	return n, err
}

func (c *Collection[T]) markComplete(ctx context.Context, only map[string]struct{}, op Op, msg string) error {
	s := c.slot()
	var ids []string
	for i, it := range *s {
		if only != nil {
			if _, ok := only[it.EntityID()]; !ok {
				continue
			}
		}
		merged, err := models.Merge(it, models.Fields{"completed": true})
		if err != nil {
			return fmt.Errorf("complete %s: %w", c.kind.Label(), err)
		}
		(*s)[i] = merged
		ids = append(ids, it.EntityID())
	}
	return c.commit(ctx, Change{Key: c.Key(), Op: op, IDs: ids}, msg)
}

func (c *Collection[T]) filter(set map[string]struct{}) int {
	s := c.slot()
	kept := (*s)[:0:0]
	removed := 0
	for _, it := range *s {
		if _, ok := set[it.EntityID()]; ok {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	if kept == nil {
		kept = []T{}
	}
	*s = kept
	return removed
}

func (c *Collection[T]) countLabel(n int) string {
	if n == 1 {
		return lowerFirst(c.kind.Label())
	}
	return c.kind.Plural()
}

// commit persists the document, notifies on success and re-renders.
func (c *Collection[T]) commit(ctx context.Context, ch Change, msg string) error {
	err := c.state.Save(ctx)
	if err == nil && msg != "" && c.notifier != nil {
		c.notifier.Show(msg)
	}
	for _, o := range c.observers {
		o(ctx, ch)
	}
	return err
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

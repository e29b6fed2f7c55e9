package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

// Selection tracks entity ids picked for bulk actions, across collections.
type Selection struct {
	ids map[models.CollectionKey]map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[models.CollectionKey]map[string]struct{})}
}

// Toggle flips id in key's selection and reports whether it is now selected.
func (s *Selection) Toggle(key models.CollectionKey, id string) bool {
	set, ok := s.ids[key]
	if !ok {
		set = make(map[string]struct{})
		s.ids[key] = set
	}
	if _, on := set[id]; on {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}

func (s *Selection) Has(key models.CollectionKey, id string) bool {
	_, ok := s.ids[key][id]
	return ok
}

// IDs returns the sorted selection of key.
func (s *Selection) IDs(key models.CollectionKey) []string {
	out := make([]string, 0, len(s.ids[key]))
	for id := range s.ids[key] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Selection) Count() int {
	n := 0
	for _, set := range s.ids {
		n += len(set)
	}
	return n
}

func (s *Selection) Clear() {
	s.ids = make(map[models.CollectionKey]map[string]struct{})
}

// Bulk is the bulk-action surface of a collection.
type Bulk interface {
	Key() models.CollectionKey
	RemoveMany(ctx context.Context, ids []string) (int, error)
	MarkComplete(ctx context.Context, ids []string) (int, error)
}

// QuickActions applies the current selection across collections.
type QuickActions struct {
	sel         *Selection
	collections []Bulk
	notifier    Notifier
}

func NewQuickActions(sel *Selection, n Notifier, collections ...Bulk) *QuickActions {
	return &QuickActions{sel: sel, collections: collections, notifier: n}
}

func (q *QuickActions) Selection() *Selection { return q.sel }

// DeleteSelected removes every selected entity and clears the selection.
func (q *QuickActions) DeleteSelected(ctx context.Context) (int, error) {
	return q.apply(ctx, "removed", func(b Bulk, ids []string) (int, error) {
		return b.RemoveMany(ctx, ids)
	})
}

// MarkSelected completes every selected entity and clears the selection.
func (q *QuickActions) MarkSelected(ctx context.Context) (int, error) {
	return q.apply(ctx, "completed", func(b Bulk, ids []string) (int, error) {
		return b.MarkComplete(ctx, ids)
	})
}

func (q *QuickActions) apply(ctx context.Context, verb string, fn func(Bulk, []string) (int, error)) (int, error) {
	if q.sel.Count() == 0 {
		q.show("Nothing selected")
		return 0, nil
	}
	total := 0
	for _, b := range q.collections {
		ids := q.sel.IDs(b.Key())
		if len(ids) == 0 {
			continue
		}
		n, err := fn(b, ids)
		total += n
		if err != nil {
			return total, err
		}
	}
	q.sel.Clear()
	q.show(fmt.Sprintf("%d item(s) %s", total, verb))
	return total, nil
}

func (q *QuickActions) show(msg string) {
	if q.notifier != nil {
		q.notifier.Show(msg)
	}
}

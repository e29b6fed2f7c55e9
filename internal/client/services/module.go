package services

import (
	"context"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/kinds"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

// Module is the type-erased list surface a UI drives for one collection:
// views to render plus form-based create and edit.
type Module interface {
	Key() models.CollectionKey
	Label() string
	Plural() string
	// Completable is false for collections without a completed flag.
	Completable() bool
	Views() []models.View
	Stats() (total, completed int)

	CreateForm() *forms.Form
	Create(ctx context.Context, v forms.Values) error
	EditForm(id string) (*forms.Form, bool)
	Edit(ctx context.Context, id string, v forms.Values) error

	Toggle(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	RemoveMany(ctx context.Context, ids []string) (int, error)
	MarkComplete(ctx context.Context, ids []string) (int, error)
	MarkAll(ctx context.Context) error
	OnChange(o Observer)
}

type module[T models.Entity] struct {
	*Collection[T]
	forms       kinds.Forms[T]
	completable bool
}

// NewModule pairs a collection with the forms of its kind.
func NewModule[T models.Entity](c *Collection[T], f kinds.Forms[T], completable bool) Module {
	return &module[T]{Collection: c, forms: f, completable: completable}
}

func (m *module[T]) Label() string     { return m.kind.Label() }
func (m *module[T]) Plural() string    { return m.kind.Plural() }
func (m *module[T]) Completable() bool { return m.completable }

func (m *module[T]) CreateForm() *forms.Form { return m.forms.BuildCreateForm() }

// Create parses v and adds the entity. Validation errors are shown to the
// user and leave the collection untouched.
func (m *module[T]) Create(ctx context.Context, v forms.Values) error {
	payload, err := m.forms.ParseCreateForm(v)
	if err != nil {
		m.show(err.Error())
		return err
	}
	_, err = m.Add(ctx, payload)
	return err
}

func (m *module[T]) EditForm(id string) (*forms.Form, bool) {
	item, ok := m.Get(id)
	if !ok {
		return nil, false
	}
	return m.forms.BuildEditForm(item), true
}

func (m *module[T]) Edit(ctx context.Context, id string, v forms.Values) error {
	changes, err := m.forms.ParseEditForm(v)
	if err != nil {
		m.show(err.Error())
		return err
	}
	_, err = m.Update(ctx, id, changes)
	return err
}

// Toggle flips the completed flag of id.
func (m *module[T]) Toggle(ctx context.Context, id string) error {
	if !m.completable {
		return nil
	}
	item, ok := m.Get(id)
	if !ok {
		return nil
	}
	return m.ToggleComplete(ctx, id, !m.kind.View(item).Completed)
}

func (m *module[T]) MarkComplete(ctx context.Context, ids []string) (int, error) {
	if !m.completable {
		return 0, nil
	}
	return m.Collection.MarkComplete(ctx, ids)
}

func (m *module[T]) MarkAll(ctx context.Context) error {
	if !m.completable {
		return nil
	}
	return m.MarkAllComplete(ctx)
}

func (m *module[T]) show(msg string) {
	if m.notifier != nil {
		m.notifier.Show(msg)
	}
}

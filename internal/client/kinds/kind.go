// Package kinds defines, per entity type, how a collection is addressed in
// the document, how entities are built and displayed, and the forms used to
// create and edit them.
package kinds

import (
	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

// Kind is the strategy a generic collection is parameterised with.
type Kind[T models.Entity] interface {
	Key() models.CollectionKey
	// Label is the singular display name, e.g. "Habit".
	Label() string
	Plural() string
	Slot(doc *models.Document) *[]T
	// New builds an entity from base and a raw payload, filling defaults.
	New(base models.Base, payload models.Fields) (T, error)
	View(item T) models.View
}

// Forms builds and parses the create and edit dialogs of one entity kind.
// Parse methods return a *common.ValidationError for missing or malformed
// input.
type Forms[T models.Entity] interface {
	BuildCreateForm() *forms.Form
	ParseCreateForm(v forms.Values) (models.Fields, error)
	BuildEditForm(item T) *forms.Form
	ParseEditForm(v forms.Values) (models.Fields, error)
}

// Editable is a Kind that also provides its forms.
type Editable[T models.Entity] interface {
	Kind[T]
	Forms[T]
}

// build decodes payload into T and returns it for the caller to stamp with
// the base fields.
func build[T any](payload models.Fields) (T, error) {
	clean := make(models.Fields, len(payload))
	for k, v := range payload {
		switch k {
		case "id", "createdAt", "completed":
			continue
		}
		clean[k] = v
	}
	return models.Decode[T](clean)
}

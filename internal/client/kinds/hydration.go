package kinds

import (
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

// Hydration is the kind of the water log. Entries have no completion state,
// so completion operations leave them unchanged.
type Hydration struct{}

func (Hydration) Key() models.CollectionKey { return models.KeyHydrationLog }
func (Hydration) Label() string             { return "Water entry" }
func (Hydration) Plural() string            { return "water entries" }

func (Hydration) Slot(doc *models.Document) *[]models.HydrationEntry { return &doc.HydrationLog }

func (Hydration) New(base models.Base, payload models.Fields) (models.HydrationEntry, error) {
	e, err := build[models.HydrationEntry](payload)
	if err != nil {
		return e, err
	}
	e.ID = base.ID
	e.CreatedAt = base.CreatedAt
	return e, nil
}

func (Hydration) View(e models.HydrationEntry) models.View {
	return models.View{
		ID:       e.ID,
		Title:    fmt.Sprintf("%d ml", e.Amount),
		Subtitle: e.CreatedAt.Local().Format("Jan 2 15:04"),
	}
}

func (Hydration) BuildCreateForm() *forms.Form {
	return &forms.Form{
		Title:       "Log water",
		SubmitLabel: "Add",
		CancelLabel: "Cancel",
		Fields: []forms.Field{
			{ID: "amount", Label: "Amount (ml)", Type: forms.Number, Value: "250", Required: true},
		},
	}
}

func (Hydration) BuildEditForm(e models.HydrationEntry) *forms.Form {
	return &forms.Form{
		Title:       "Edit water entry",
		SubmitLabel: "Save",
		CancelLabel: "Cancel",
		Fields: []forms.Field{
			{ID: "amount", Label: "Amount (ml)", Type: forms.Number, Value: fmt.Sprint(e.Amount), Required: true},
		},
	}
}

func (k Hydration) ParseCreateForm(v forms.Values) (models.Fields, error) { return k.parse(v) }
func (k Hydration) ParseEditForm(v forms.Values) (models.Fields, error)   { return k.parse(v) }

func (Hydration) parse(v forms.Values) (models.Fields, error) {
	amount, err := v.RequireInt("amount", "Amount", 1)
	if err != nil {
		return nil, err
	}
	return models.Fields{"amount": amount}, nil
}

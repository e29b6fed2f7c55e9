package kinds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

type Meals struct{}

func (Meals) Key() models.CollectionKey { return models.KeyMeals }
func (Meals) Label() string             { return "Meal" }
func (Meals) Plural() string            { return "meals" }

func (Meals) Slot(doc *models.Document) *[]models.Meal { return &doc.Meals }

func (Meals) New(base models.Base, payload models.Fields) (models.Meal, error) {
	m, err := build[models.Meal](payload)
	if err != nil {
		return m, err
	}
	base.RemoteID = m.RemoteID
	m.Base = base
	m.Name = strings.TrimSpace(m.Name)
	if m.Calories < 0 {
		m.Calories = 0
	}
	return m, nil
}

func (Meals) View(m models.Meal) models.View {
	sub := fmt.Sprintf("%d kcal", m.Calories)
	if m.Time != "" {
		sub = m.Time + " · " + sub
	}
	return models.View{ID: m.ID, Title: m.Name, Subtitle: sub, Completed: m.Completed}
}

func (k Meals) BuildCreateForm() *forms.Form { return k.form("New meal", "Add", models.Meal{}) }

func (k Meals) BuildEditForm(m models.Meal) *forms.Form { return k.form("Edit meal", "Save", m) }

func (Meals) form(title, submit string, m models.Meal) *forms.Form {
	cal := ""
	if m.Calories > 0 {
		cal = strconv.Itoa(m.Calories)
	}
	return &forms.Form{
		Title:       title,
		SubmitLabel: submit,
		CancelLabel: "Cancel",
		Fields: []forms.Field{
			{ID: "name", Label: "Name", Type: forms.Text, Value: m.Name, Placeholder: "Oatmeal with fruit", Required: true},
			{ID: "calories", Label: "Calories", Type: forms.Number, Value: cal, Placeholder: "350"},
			{ID: "time", Label: "Time", Type: forms.Time, Value: m.Time, Placeholder: "08:00"},
		},
	}
}

func (k Meals) ParseCreateForm(v forms.Values) (models.Fields, error) { return k.parse(v) }
func (k Meals) ParseEditForm(v forms.Values) (models.Fields, error)   { return k.parse(v) }

func (Meals) parse(v forms.Values) (models.Fields, error) {
	name, err := v.RequireText("name", "Name")
	if err != nil {
		return nil, err
	}
	cal, err := v.Int("calories", "Calories", 0)
	if err != nil {
		return nil, err
	}
	at, err := v.TimeOfDay("time", "Time")
	if err != nil {
		return nil, err
	}
	return models.Fields{"name": name, "calories": cal, "time": at}, nil
}

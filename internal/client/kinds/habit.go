package kinds

import (
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

var frequencies = []string{"daily", "weekdays", "weekly"}

type Habits struct{}

func (Habits) Key() models.CollectionKey { return models.KeyHabits }
func (Habits) Label() string             { return "Habit" }
func (Habits) Plural() string            { return "habits" }

func (Habits) Slot(doc *models.Document) *[]models.Habit { return &doc.Habits }

func (Habits) New(base models.Base, payload models.Fields) (models.Habit, error) {
	h, err := build[models.Habit](payload)
	if err != nil {
		return h, err
	}
	base.RemoteID = h.RemoteID
	h.Base = base
	h.Name = strings.TrimSpace(h.Name)
	h.Note = strings.TrimSpace(h.Note)
	if h.Frequency == "" {
		h.Frequency = "daily"
	}
	return h, nil
}

func (Habits) View(h models.Habit) models.View {
	sub := h.Note
	if h.Time != "" {
		sub = strings.TrimSpace(h.Time + " " + sub)
	}
	return models.View{ID: h.ID, Title: h.Name, Subtitle: sub, Completed: h.Completed}
}

func (k Habits) BuildCreateForm() *forms.Form {
	return k.form("New habit", "Add", models.Habit{Frequency: "daily"})
}

func (k Habits) BuildEditForm(h models.Habit) *forms.Form {
	return k.form("Edit habit", "Save", h)
}

func (Habits) form(title, submit string, h models.Habit) *forms.Form {
	return &forms.Form{
		Title:       title,
		SubmitLabel: submit,
		CancelLabel: "Cancel",
		Fields: []forms.Field{
			{ID: "name", Label: "Name", Type: forms.Text, Value: h.Name, Placeholder: "Meditate", Required: true},
			{ID: "note", Label: "Note", Type: forms.Text, Value: h.Note, Placeholder: "10 minutes after waking up"},
			{ID: "frequency", Label: "Frequency", Type: forms.Select, Value: h.Frequency, Options: frequencies},
			{ID: "time", Label: "Time", Type: forms.Time, Value: h.Time, Placeholder: "07:00"},
		},
	}
}

func (k Habits) ParseCreateForm(v forms.Values) (models.Fields, error) { return k.parse(v) }
func (k Habits) ParseEditForm(v forms.Values) (models.Fields, error)   { return k.parse(v) }

func (Habits) parse(v forms.Values) (models.Fields, error) {
	name, err := v.RequireText("name", "Name")
	if err != nil {
		return nil, err
	}
	at, err := v.TimeOfDay("time", "Time")
	if err != nil {
		return nil, err
	}
	freq := v.Text("frequency")
	if freq == "" {
		freq = "daily"
	}
	return models.Fields{"name": name, "note": v.Text("note"), "frequency": freq, "time": at}, nil
}

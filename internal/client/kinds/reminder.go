package kinds

import (
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/common"
)

type Reminders struct{}

func (Reminders) Key() models.CollectionKey { return models.KeyReminders }
func (Reminders) Label() string             { return "Reminder" }
func (Reminders) Plural() string            { return "reminders" }

func (Reminders) Slot(doc *models.Document) *[]models.Reminder { return &doc.Reminders }

func (Reminders) New(base models.Base, payload models.Fields) (models.Reminder, error) {
	r, err := build[models.Reminder](payload)
	if err != nil {
		return r, err
	}
	base.RemoteID = r.RemoteID
	r.Base = base
	r.Message = strings.TrimSpace(r.Message)
	if k, ok := models.ParseReminderKind(string(r.Kind)); ok {
		r.Kind = k
	} else {
		r.Kind = models.ReminderCustom
	}
	return r, nil
}

func (Reminders) View(r models.Reminder) models.View {
	sub := string(r.Kind)
	if r.Time != "" {
		sub = r.Time + " · " + sub
	}
	return models.View{ID: r.ID, Title: r.Message, Subtitle: sub, Completed: r.Completed}
}

func (k Reminders) BuildCreateForm() *forms.Form {
	return k.form("New reminder", "Add", models.Reminder{Kind: models.ReminderCustom})
}

func (k Reminders) BuildEditForm(r models.Reminder) *forms.Form {
	return k.form("Edit reminder", "Save", r)
}

func (Reminders) form(title, submit string, r models.Reminder) *forms.Form {
	opts := make([]string, len(models.ReminderKinds))
	for i, k := range models.ReminderKinds {
		opts[i] = string(k)
	}
	return &forms.Form{
		Title:       title,
		SubmitLabel: submit,
		CancelLabel: "Cancel",
		Fields: []forms.Field{
			{ID: "message", Label: "Message", Type: forms.Text, Value: r.Message, Placeholder: "Drink a glass of water", Required: true},
			{ID: "kind", Label: "Kind", Type: forms.Select, Value: string(r.Kind), Options: opts},
			{ID: "time", Label: "Time", Type: forms.Time, Value: r.Time, Placeholder: "15:00", Required: true},
		},
	}
}

func (k Reminders) ParseCreateForm(v forms.Values) (models.Fields, error) { return k.parse(v) }
func (k Reminders) ParseEditForm(v forms.Values) (models.Fields, error)   { return k.parse(v) }

func (Reminders) parse(v forms.Values) (models.Fields, error) {
	msg, err := v.RequireText("message", "Message")
	if err != nil {
		return nil, err
	}
	if v.Text("time") == "" {
		return nil, common.NewValidationError("Time", "is required")
	}
	at, err := v.TimeOfDay("time", "Time")
	if err != nil {
		return nil, err
	}
	kind := models.ReminderCustom
	if s := v.Text("kind"); s != "" {
		k, ok := models.ParseReminderKind(s)
		if !ok {
			return nil, common.NewValidationError("Kind", "is not a known reminder kind")
		}
		kind = k
	}
	return models.Fields{"message": msg, "kind": string(kind), "time": at}, nil
}

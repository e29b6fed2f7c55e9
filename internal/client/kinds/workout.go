package kinds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

type Workouts struct{}

func (Workouts) Key() models.CollectionKey { return models.KeyWorkouts }
func (Workouts) Label() string             { return "Workout" }
func (Workouts) Plural() string            { return "workouts" }

func (Workouts) Slot(doc *models.Document) *[]models.Workout { return &doc.Workouts }

func (Workouts) New(base models.Base, payload models.Fields) (models.Workout, error) {
	w, err := build[models.Workout](payload)
	if err != nil {
		return w, err
	}
	base.RemoteID = w.RemoteID
	w.Base = base
	w.Name = strings.TrimSpace(w.Name)
	if w.Duration < 0 {
		w.Duration = 0
	}
	return w, nil
}

func (Workouts) View(w models.Workout) models.View {
	sub := fmt.Sprintf("%d min", w.Duration)
	if w.Group != "" {
		sub += " · " + w.Group
	}
	return models.View{ID: w.ID, Title: w.Name, Subtitle: sub, Completed: w.Completed}
}

func (k Workouts) BuildCreateForm() *forms.Form {
	return k.form("New workout", "Add", models.Workout{})
}

func (k Workouts) BuildEditForm(w models.Workout) *forms.Form {
	return k.form("Edit workout", "Save", w)
}

func (Workouts) form(title, submit string, w models.Workout) *forms.Form {
	dur := ""
	if w.Duration > 0 {
		dur = strconv.Itoa(w.Duration)
	}
	return &forms.Form{
		Title:       title,
		SubmitLabel: submit,
		CancelLabel: "Cancel",
		Fields: []forms.Field{
			{ID: "name", Label: "Name", Type: forms.Text, Value: w.Name, Placeholder: "Morning run", Required: true},
			{ID: "duration", Label: "Duration (min)", Type: forms.Number, Value: dur, Placeholder: "30"},
			{ID: "group", Label: "Muscle group", Type: forms.Text, Value: w.Group, Placeholder: "legs"},
		},
	}
}

func (k Workouts) ParseCreateForm(v forms.Values) (models.Fields, error) { return k.parse(v) }
func (k Workouts) ParseEditForm(v forms.Values) (models.Fields, error)   { return k.parse(v) }

func (Workouts) parse(v forms.Values) (models.Fields, error) {
	name, err := v.RequireText("name", "Name")
	if err != nil {
		return nil, err
	}
	dur, err := v.Int("duration", "Duration", 0)
	if err != nil {
		return nil, err
	}
	return models.Fields{"name": name, "duration": dur, "group": v.Text("group")}, nil
}

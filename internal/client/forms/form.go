// Package forms describes create/edit/confirm dialogs independently of the
// surface that renders them. A *Form is valid modal content.
package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/common"
)

type FieldType string

const (
	Text     FieldType = "text"
	Number   FieldType = "number"
	Time     FieldType = "time"
	Select   FieldType = "select"
	Password FieldType = "password"
	Email    FieldType = "email"
)

const (
	SubmitID = "submit"
	CancelID = "cancel"
)

type Field struct {
	ID          string
	Label       string
	Type        FieldType
	Value       string
	Placeholder string
	Options     []string
	Required    bool
	Disabled    bool
}

type Form struct {
	Title       string
	Body        string
	Fields      []Field
	SubmitLabel string
	CancelLabel string
	// Danger marks destructive confirmations.
	Danger bool
}

// NewConfirm builds a body-only dialog with a submit and a cancel button.
func NewConfirm(title, body, submitLabel string) *Form {
	return &Form{Title: title, Body: body, SubmitLabel: submitLabel, CancelLabel: "Cancel", Danger: true}
}

func (f *Form) Empty() bool {
	return f == nil || (len(f.Fields) == 0 && strings.TrimSpace(f.Body) == "")
}

// Focusables lists enabled field ids followed by the buttons, in tab order.
func (f *Form) Focusables() []string {
	if f == nil {
		return nil
	}
	ids := make([]string, 0, len(f.Fields)+2)
	for _, fl := range f.Fields {
		if !fl.Disabled {
			ids = append(ids, fl.ID)
		}
	}
	return append(ids, SubmitID, CancelID)
}

func (f *Form) Field(id string) (*Field, bool) {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return &f.Fields[i], true
		}
	}
	return nil, false
}

// Set updates a field value; unknown ids are ignored.
func (f *Form) Set(id, value string) {
	if fl, ok := f.Field(id); ok {
		fl.Value = value
	}
}

func (f *Form) Values() Values {
	v := make(Values, len(f.Fields))
	for _, fl := range f.Fields {
		v[fl.ID] = fl.Value
	}
	return v
}

func (f *Form) Label(id string) string {
	if fl, ok := f.Field(id); ok {
		return fl.Label
	}
	return id
}

// Values holds raw user input keyed by field id.
type Values map[string]string

func (v Values) Text(id string) string {
	return strings.TrimSpace(v[id])
}

// RequireText returns the trimmed value or a ValidationError when empty.
func (v Values) RequireText(id, label string) (string, error) {
	s := v.Text(id)
	if s == "" {
		return "", common.NewValidationError(label, "is required")
	}
	return s, nil
}

// Int parses an optional non-negative integer; empty input yields def.
func (v Values) Int(id, label string, def int) (int, error) {
	s := v.Text(id)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, common.NewValidationError(label, "must be a whole number")
	}
	return n, nil
}

// RequireInt parses a required integer of at least min.
func (v Values) RequireInt(id, label string, min int) (int, error) {
	if v.Text(id) == "" {
		return 0, common.NewValidationError(label, "is required")
	}
	n, err := v.Int(id, label, 0)
	if err != nil {
		return 0, err
	}
	if n < min {
		return 0, common.NewValidationError(label, fmt.Sprintf("must be at least %d", min))
	}
	return n, nil
}

var clock = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// TimeOfDay validates an optional HH:MM value.
func (v Values) TimeOfDay(id, label string) (string, error) {
	s := v.Text(id)
	if s == "" {
		return "", nil
	}
	if !clock.MatchString(s) {
		return "", common.NewValidationError(label, "must look like HH:MM")
	}
	return s, nil
}

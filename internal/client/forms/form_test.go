package forms

import (
	"testing"

	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_FocusablesSkipDisabled(t *testing.T) {
	f := &Form{Fields: []Field{
		{ID: "name"},
		{ID: "email", Disabled: true},
		{ID: "phone"},
	}}

	assert.Equal(t, []string{"name", "phone", SubmitID, CancelID}, f.Focusables())
}

func TestForm_Empty(t *testing.T) {
	var nilForm *Form
	assert.True(t, nilForm.Empty())
	assert.True(t, (&Form{Title: "x", Body: "  "}).Empty())
	assert.False(t, NewConfirm("Delete", "Remove 3 items?", "Delete").Empty())
	assert.False(t, (&Form{Fields: []Field{{ID: "a"}}}).Empty())
}

func TestForm_SetAndValues(t *testing.T) {
	f := &Form{Fields: []Field{{ID: "name", Label: "Name"}, {ID: "note"}}}
	f.Set("name", " Run ")
	f.Set("missing", "ignored")

	v := f.Values()
	assert.Equal(t, "Run", v.Text("name"))
	assert.Equal(t, "", v.Text("note"))
	assert.Equal(t, "Name", f.Label("name"))
	assert.Equal(t, "note", f.Label("note"))
}

func TestValues_Parsing(t *testing.T) {
	v := Values{"name": "  ", "cal": "420", "neg": "-3", "bad": "abc", "time": "07:30", "late": "25:00"}

	_, err := v.RequireText("name", "Name")
	assert.ErrorIs(t, err, common.ErrValidation)

	n, err := v.Int("cal", "Calories", 0)
	require.NoError(t, err)
	assert.Equal(t, 420, n)

	n, err = v.Int("empty", "Calories", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = v.Int("neg", "Calories", 0)
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = v.Int("bad", "Calories", 0)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = v.RequireInt("cal", "Amount", 500)
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = v.RequireInt("empty", "Amount", 1)
	assert.ErrorIs(t, err, common.ErrValidation)

	s, err := v.TimeOfDay("time", "Time")
	require.NoError(t, err)
	assert.Equal(t, "07:30", s)
	_, err = v.TimeOfDay("late", "Time")
	assert.ErrorIs(t, err, common.ErrValidation)
}

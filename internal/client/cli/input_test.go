package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

// stubPasswords feeds answers to readPassword in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more passwords")
		}
		pw := answers[0]
		answers = answers[1:]
		return []byte(pw), nil
	}
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	stubPasswords(t, "s3cret")
	var out bytes.Buffer

	pw, err := GetPassword("Password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubPasswords(t)
	var out bytes.Buffer
	_, err := GetPassword("Password", &out)
	require.Error(t, err)
}

func TestGetField(t *testing.T) {
	tests := []struct {
		name  string
		field forms.Field
		input string
		want  string
	}{
		{"typed value", forms.Field{Label: "Name"}, "Run\n", "Run"},
		{"enter keeps current", forms.Field{Label: "Name", Value: "Walk"}, "\n", "Walk"},
		{"dash clears", forms.Field{Label: "Note", Value: "old"}, "-\n", ""},
		{"placeholder is not a value", forms.Field{Label: "Time", Placeholder: "07:00"}, "\n", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetField(rdr(tc.input), tc.field, &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetField_PromptShowsOptionsAndRequired(t *testing.T) {
	var out bytes.Buffer
	f := forms.Field{Label: "Frequency", Options: []string{"daily", "weekly"}, Value: "daily", Required: true}
	_, err := GetField(rdr("\n"), f, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Frequency * (daily/weekly) [daily]")
}

func TestFillForm(t *testing.T) {
	stubPasswords(t, "pw")
	form := &forms.Form{
		Title: "New thing",
		Fields: []forms.Field{
			{ID: "name", Label: "Name"},
			{ID: "fixed", Label: "Fixed", Value: "keep", Disabled: true},
			{ID: "secret", Label: "Secret", Type: forms.Password},
			{ID: "note", Label: "Note"},
		},
	}
	var out bytes.Buffer

	require.NoError(t, FillForm(rdr("Alpha\nbeta\n"), form, &out))

	assert.Equal(t, forms.Values{"name": "Alpha", "fixed": "keep", "secret": "pw", "note": "beta"}, form.Values())
	assert.True(t, strings.HasPrefix(out.String(), "New thing\n"))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		got, err := Confirm(rdr(tc.input), "Proceed?", &out)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_Defaults(t *testing.T) {
	d := NewDocument()

	assert.NotNil(t, d.Habits)
	assert.NotNil(t, d.Meals)
	assert.NotNil(t, d.Workouts)
	assert.NotNil(t, d.Reminders)
	assert.NotNil(t, d.HydrationLog)
	assert.NotNil(t, d.Sessions)
	assert.Equal(t, 0, d.Water)
	assert.Equal(t, DefaultWaterGoal, d.WaterGoal)
	assert.Equal(t, Profile{}, d.Profile)
}

func TestDecodeDocument_ShallowMergeOverDefaults(t *testing.T) {
	payload := `{
		"habits": [{"id":"h1","createdAt":1700000000000,"completed":true,"name":"Meditar"}],
		"profile": {"name":"Ana"}
	}`

	d, err := DecodeDocument([]byte(payload))
	require.NoError(t, err)

	require.Len(t, d.Habits, 1)
	assert.Equal(t, "Meditar", d.Habits[0].Name)
	assert.True(t, d.Habits[0].Completed)
	assert.Equal(t, int64(1700000000000), d.Habits[0].CreatedAt.UnixMilli())

	// missing keys keep their defaults
	assert.Equal(t, DefaultWaterGoal, d.WaterGoal)
	assert.NotNil(t, d.Meals)

	// present keys replace the default as a whole, no deep merge
	assert.Equal(t, Profile{Name: "Ana"}, d.Profile)
}

func TestDecodeDocument_NullCollectionsBecomeEmpty(t *testing.T) {
	d, err := DecodeDocument([]byte(`{"habits":null,"sessions":null}`))
	require.NoError(t, err)
	assert.Equal(t, []Habit{}, d.Habits)
	assert.Equal(t, []Session{}, d.Sessions)
}

func TestDecodeDocument_WaterIsDerivedFromLog(t *testing.T) {
	// older payloads capped water at the goal; the log is authoritative
	d, err := DecodeDocument([]byte(`{
		"water": 2000, "waterGoal": 2000,
		"hydrationLog": [{"id":"a","amount":1500},{"id":"b","amount":1000}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 2500, d.Water)
}

func TestDecodeDocument_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{"habits": [`},
		{"wrong top-level type", `[1,2,3]`},
		{"wrong field type", `{"habits": "nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DecodeDocument([]byte(tt.payload))
			require.Error(t, err)
			require.NotNil(t, d)
			assert.Equal(t, DefaultWaterGoal, d.WaterGoal)
			assert.Empty(t, d.Habits)
		})
	}
}

func TestDocument_UnknownKeysSurviveRoundTrip(t *testing.T) {
	d, err := DecodeDocument([]byte(`{"agenda":[{"title":"Dentist"}],"waterGoal":2500}`))
	require.NoError(t, err)

	raw, ok := d.Extra("agenda")
	require.True(t, ok)
	assert.JSONEq(t, `[{"title":"Dentist"}]`, string(raw))

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &top))
	assert.Contains(t, top, "agenda")
	assert.JSONEq(t, `2500`, string(top["waterGoal"]))
}

func TestDocument_RoundTrip(t *testing.T) {
	created := NewTimestamp(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	d := NewDocument()
	d.Habits = append(d.Habits, Habit{Base: Base{ID: "h1", CreatedAt: created}, Name: "Run", Note: "5k"})
	d.Meals = append(d.Meals, Meal{Base: Base{ID: "m1", CreatedAt: created}, Name: "Oats", Calories: 350, Time: "08:00"})
	d.HydrationLog = append(d.HydrationLog, HydrationEntry{ID: "w1", CreatedAt: created, Amount: 250})
	d.Profile = Profile{Name: "Ana", Email: "ana@example.com", TwoFA: true}
	d.Normalize()

	b, err := json.Marshal(d)
	require.NoError(t, err)

	got, err := DecodeDocument(b)
	require.NoError(t, err)

	if diff := cmp.Diff(d, got, cmp.AllowUnexported(Document{}), cmp.Comparer(func(a, b Timestamp) bool {
		return a.Equal(b.Time)
	})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_Clone_IsIndependent(t *testing.T) {
	d := NewDocument()
	d.Habits = append(d.Habits, Habit{Base: Base{ID: "h1"}, Name: "Run"})

	c := d.Clone()
	c.Habits[0].Name = "Swim"

	assert.Equal(t, "Run", d.Habits[0].Name)
}

func TestTimestamp_DecodeForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"millis", `1700000000000`, 1700000000000},
		{"rfc3339", `"2023-11-14T22:13:20Z"`, 1700000000000},
		{"zero", `0`, 0},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			if tt.want == 0 {
				assert.True(t, ts.IsZero())
				return
			}
			assert.Equal(t, tt.want, ts.UnixMilli())
		})
	}
}

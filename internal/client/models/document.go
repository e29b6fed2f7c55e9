package models

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultWaterGoal = 2000
	MinWaterGoal     = 500
)

// CollectionKey names a collection inside the Document.
type CollectionKey string

const (
	KeyHabits       CollectionKey = "habits"
	KeyMeals        CollectionKey = "meals"
	KeyWorkouts     CollectionKey = "workouts"
	KeyReminders    CollectionKey = "reminders"
	KeyHydrationLog CollectionKey = "hydrationLog"
)

// Document is the root aggregate persisted as one unit.
type Document struct {
	Habits       []Habit          `json:"habits"`
	Meals        []Meal           `json:"meals"`
	Workouts     []Workout        `json:"workouts"`
	Reminders    []Reminder       `json:"reminders"`
	HydrationLog []HydrationEntry `json:"hydrationLog"`
	Water        int              `json:"water"`
	WaterGoal    int              `json:"waterGoal"`
	Profile      Profile          `json:"profile"`
	Sessions     []Session        `json:"sessions"`

	// top-level keys unknown to this build, written back untouched
	extra map[string]json.RawMessage
}

// NewDocument returns a Document holding the default values.
func NewDocument() *Document {
	return &Document{
		Habits:       []Habit{},
		Meals:        []Meal{},
		Workouts:     []Workout{},
		Reminders:    []Reminder{},
		HydrationLog: []HydrationEntry{},
		WaterGoal:    DefaultWaterGoal,
		Sessions:     []Session{},
	}
}

// Normalize restores the document invariants: collections are never nil,
// the goal is positive and Water equals the sum of the hydration log.
func (d *Document) Normalize() {
	if d.Habits == nil {
		d.Habits = []Habit{}
	}
	if d.Meals == nil {
		d.Meals = []Meal{}
	}
	if d.Workouts == nil {
		d.Workouts = []Workout{}
	}
	if d.Reminders == nil {
		d.Reminders = []Reminder{}
	}
	if d.HydrationLog == nil {
		d.HydrationLog = []HydrationEntry{}
	}
	if d.Sessions == nil {
		d.Sessions = []Session{}
	}
	if d.WaterGoal <= 0 {
		d.WaterGoal = DefaultWaterGoal
	}
	d.Water = d.HydrationTotal()
}

// HydrationTotal sums the logged amounts. The total is not capped at the goal.
func (d *Document) HydrationTotal() int {
	total := 0
	for _, e := range d.HydrationLog {
		total += e.Amount
	}
	return total
}

// Extra returns the raw value of an unknown top-level key.
func (d *Document) Extra(key string) (json.RawMessage, bool) {
	v, ok := d.extra[key]
	return v, ok
}

// Clone returns a deep copy via the JSON encoding.
func (d *Document) Clone() *Document {
	b, err := json.Marshal(d)
	if err != nil {
		return NewDocument()
	}
	c, err := DecodeDocument(b)
	if err != nil {
		return NewDocument()
	}
	return c
}

type documentAlias Document

func (d Document) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(documentAlias(d))
	if err != nil || len(d.extra) == 0 {
		return b, err
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return nil, err
	}
	for k, v := range d.extra {
		if _, known := top[k]; !known {
			top[k] = v
		}
	}
	return json.Marshal(top)
}

// UnmarshalJSON applies the same top-level merge as DecodeDocument.
func (d *Document) UnmarshalJSON(b []byte) error {
	doc, err := DecodeDocument(b)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// DecodeDocument merges a persisted payload over the defaults, key by key at
// the top level only. A key present in the payload replaces the default value
// as a whole; a missing key keeps it. On error the defaults are returned along
// with the error.
func DecodeDocument(data []byte) (*Document, error) {
	doc := NewDocument()

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return NewDocument(), fmt.Errorf("decode document: %w", err)
	}

	fields := map[string]func(json.RawMessage) error{
		"habits":       replace(&doc.Habits),
		"meals":        replace(&doc.Meals),
		"workouts":     replace(&doc.Workouts),
		"reminders":    replace(&doc.Reminders),
		"hydrationLog": replace(&doc.HydrationLog),
		"water":        replace(&doc.Water),
		"waterGoal":    replace(&doc.WaterGoal),
		"profile":      replace(&doc.Profile),
		"sessions":     replace(&doc.Sessions),
	}

	for key, raw := range top {
		dec, ok := fields[key]
		if !ok {
			if doc.extra == nil {
				doc.extra = make(map[string]json.RawMessage)
			}
			doc.extra[key] = raw
			continue
		}
		if err := dec(raw); err != nil {
			return NewDocument(), fmt.Errorf("decode document field %q: %w", key, err)
		}
	}

	doc.Normalize()
	return doc, nil
}

func replace[T any](dst *T) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

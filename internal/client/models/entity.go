package models

import "strings"

// Entity is anything stored in a document collection.
type Entity interface {
	EntityID() string
}

// Base holds the fields shared by every collection entity. ID and CreatedAt
// are assigned once at creation and never change.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"createdAt"`
	Completed bool      `json:"completed"`
	// RemoteID links the entity to its copy on the remote API, if any.
	RemoteID string `json:"remoteId,omitempty"`
}

func (b Base) EntityID() string { return b.ID }

type Habit struct {
	Base
	Name      string `json:"name"`
	Note      string `json:"note,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Time      string `json:"time,omitempty"`
}

type Meal struct {
	Base
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Time     string `json:"time,omitempty"`
}

type Workout struct {
	Base
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Group    string `json:"group,omitempty"`
}

type ReminderKind string

const (
	ReminderMeal      ReminderKind = "meal"
	ReminderHydration ReminderKind = "hydration"
	ReminderWorkout   ReminderKind = "workout"
	ReminderHabit     ReminderKind = "habit"
	ReminderCustom    ReminderKind = "custom"
)

// ReminderKinds lists the accepted reminder kinds in display order.
var ReminderKinds = []ReminderKind{ReminderMeal, ReminderHydration, ReminderWorkout, ReminderHabit, ReminderCustom}

// ParseReminderKind matches s case-insensitively against ReminderKinds.
func ParseReminderKind(s string) (ReminderKind, bool) {
	for _, k := range ReminderKinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, true
		}
	}
	return "", false
}

type Reminder struct {
	Base
	Kind    ReminderKind `json:"kind"`
	Message string       `json:"message"`
	Time    string       `json:"time,omitempty"`
}

// HydrationEntry is one logged drink. It has no completion state.
type HydrationEntry struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"createdAt"`
	Amount    int       `json:"amount"`
	RemoteID  string    `json:"remoteId,omitempty"`
}

func (h HydrationEntry) EntityID() string { return h.ID }

type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Avatar       string `json:"avatar"`
	TwoFA        bool   `json:"twofa"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Session is an opaque login record kept only so it can be revoked.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"createdAt"`
	Device    string    `json:"device,omitempty"`
}

// View is the display projection of an entity used by list renderers.
type View struct {
	ID        string
	Title     string
	Subtitle  string
	Completed bool
}

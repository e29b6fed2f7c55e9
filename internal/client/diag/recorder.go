// Package diag keeps a short in-memory trail of UI and state events for the
// diagnostics view, and mirrors each event to the logger at debug level.
package diag

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/modal"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

const DefaultCapacity = 100

const (
	EventSave       = "save"
	EventReset      = "reset"
	EventModalOpen  = "modal_open"
	EventModalClose = "modal_close"
	EventNavigate   = "navigate"
)

type Event struct {
	At     time.Time
	Kind   string
	Detail string
}

// Recorder is a fixed-size ring of events. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
	saves  int
	last   time.Time

	now    func() time.Time
	logger logging.Logger
}

func NewRecorder(logger logging.Logger, capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Recorder{
		events: make([]Event, capacity),
		now:    time.Now,
		logger: logger.With("component", "diag"),
	}
}

func (r *Recorder) Record(ctx context.Context, kind, detail string) {
	r.mu.Lock()
	e := Event{At: r.now(), Kind: kind, Detail: detail}
	r.events[r.next] = e
	r.next = (r.next + 1) % len(r.events)
	if r.next == 0 {
		r.full = true
	}
	if kind == EventSave {
		r.saves++
		r.last = e.At
	}
	r.mu.Unlock()

	r.logger.Debug(ctx, "event", "kind", kind, "detail", detail)
}

// Events returns the retained events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		out := make([]Event, r.next)
		copy(out, r.events[:r.next])
		return out
	}
	out := make([]Event, 0, len(r.events))
	out = append(out, r.events[r.next:]...)
	return append(out, r.events[:r.next]...)
}

// Attach subscribes the recorder to the lifecycle hooks of the state, the
// modal controller and the router. Nil arguments are skipped.
func (r *Recorder) Attach(st *state.AppState, m *modal.Controller, rt *router.Router) {
	if st != nil {
		st.OnAfterSave(func(ctx context.Context, doc *models.Document) {
			r.Record(ctx, EventSave, fmt.Sprintf("%d entities", entityCount(doc)))
		})
		st.OnReset(func(ctx context.Context, _ *models.Document) {
			r.Record(ctx, EventReset, "")
		})
	}
	if m != nil {
		m.OnOpen(func(c modal.Content) { r.Record(context.Background(), EventModalOpen, title(c)) })
		m.OnClose(func(c modal.Content) { r.Record(context.Background(), EventModalClose, title(c)) })
	}
	if rt != nil {
		rt.OnNavigate(func(ctx context.Context, s router.Section) {
			r.Record(ctx, EventNavigate, s.Name)
		})
	}
}

// Report is a point-in-time health snapshot.
type Report struct {
	Entities  map[models.CollectionKey]int
	Water     int
	WaterGoal int
	Saves     int
	LastSave  time.Time
	Events    int
}

func (r *Recorder) Report(doc *models.Document) Report {
	r.mu.Lock()
	saves, last := r.saves, r.last
	r.mu.Unlock()

	return Report{
		Entities: map[models.CollectionKey]int{
			models.KeyHabits:       len(doc.Habits),
			models.KeyMeals:        len(doc.Meals),
			models.KeyWorkouts:     len(doc.Workouts),
			models.KeyReminders:    len(doc.Reminders),
			models.KeyHydrationLog: len(doc.HydrationLog),
		},
		Water:     doc.HydrationTotal(),
		WaterGoal: doc.WaterGoal,
		Saves:     saves,
		LastSave:  last,
		Events:    len(r.Events()),
	}
}

func entityCount(doc *models.Document) int {
	return len(doc.Habits) + len(doc.Meals) + len(doc.Workouts) + len(doc.Reminders) + len(doc.HydrationLog)
}

func title(c modal.Content) string {
	if f, ok := c.(*forms.Form); ok {
		return f.Title
	}
	return ""
}

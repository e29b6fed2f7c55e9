// Package home derives the landing view summary from the document. It has no
// state of its own; callers recompute after every change.
package home

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/services"
)

const (
	TipHydration = "Drink more water today to keep your energy up!"
	TipHabits    = "Try creating a few more habits for a balanced day!"
	TipWorkout   = "Do a light workout to get your body moving!"
	TipPositive  = "Excellent progress! Keep up the consistency!"
)

// Collection summarises one collection.
type Collection struct {
	Total     int
	Completed int
	// Next is the most imminent entity, or nil for an empty collection.
	Next *models.View
	// NextTime is the HH:MM of Next when it has one.
	NextTime string
}

// Ratio is Completed/Total, zero for an empty collection.
func (c Collection) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total)
}

type Bar struct {
	Label string
	Value int
}

type Summary struct {
	Habits    Collection
	Meals     Collection
	Workouts  Collection
	Reminders Collection

	Water        int
	WaterGoal    int
	WaterPercent int
	LastDrink    *models.HydrationEntry

	Calories       int
	WorkoutMinutes int

	Bars []Bar
	Tip  string
}

type timed struct {
	view models.View
	at   string
}

// Summarize computes the summary of doc as seen at now.
func Summarize(doc *models.Document, now time.Time) Summary {
	s := Summary{
		Water:     doc.HydrationTotal(),
		WaterGoal: doc.WaterGoal,
	}
	if s.WaterGoal <= 0 {
		s.WaterGoal = models.DefaultWaterGoal
	}
	s.WaterPercent = services.HydrationPercent(s.Water, s.WaterGoal)
	if len(doc.HydrationLog) > 0 {
		last := doc.HydrationLog[0]
		s.LastDrink = &last
	}

	clock := now.Format("15:04")

	habits := make([]timed, len(doc.Habits))
	for i, h := range doc.Habits {
		habits[i] = timed{models.View{ID: h.ID, Title: h.Name, Completed: h.Completed}, h.Time}
	}
	s.Habits = summarize(habits, clock)

	meals := make([]timed, len(doc.Meals))
	for i, m := range doc.Meals {
		meals[i] = timed{models.View{ID: m.ID, Title: m.Name, Completed: m.Completed}, m.Time}
		s.Calories += m.Calories
	}
	s.Meals = summarize(meals, clock)

	workouts := make([]timed, len(doc.Workouts))
	for i, w := range doc.Workouts {
		workouts[i] = timed{view: models.View{ID: w.ID, Title: w.Name, Completed: w.Completed}}
		s.WorkoutMinutes += w.Duration
	}
	s.Workouts = summarize(workouts, clock)

	reminders := make([]timed, len(doc.Reminders))
	for i, r := range doc.Reminders {
		reminders[i] = timed{models.View{ID: r.ID, Title: r.Message, Completed: r.Completed}, r.Time}
	}
	s.Reminders = summarize(reminders, clock)

	s.Bars = []Bar{
		{"Water", s.WaterPercent},
		{"Habits", capped(len(doc.Habits) * 20)},
		{"Meals", capped(len(doc.Meals) * 15)},
		{"Workouts", capped(len(doc.Workouts) * 25)},
	}
	s.Tip = tip(s.Water, s.WaterGoal, len(doc.Habits), len(doc.Workouts))
	return s
}

// summarize picks the earliest open item at or after clock, then the earliest
// open item of the day, then the most recent item.
func summarize(items []timed, clock string) Collection {
	c := Collection{Total: len(items)}
	for _, it := range items {
		if it.view.Completed {
			c.Completed++
		}
	}
	if len(items) == 0 {
		return c
	}

	var withTime []timed
	for _, it := range items {
		if it.at != "" && !it.view.Completed {
			withTime = append(withTime, it)
		}
	}
	sort.SliceStable(withTime, func(i, j int) bool { return withTime[i].at < withTime[j].at })

	pick := items[0]
	if len(withTime) > 0 {
		pick = withTime[0]
		for _, it := range withTime {
			if it.at >= clock {
				pick = it
				break
			}
		}
	}
	v := pick.view
	c.Next = &v
	c.NextTime = pick.at
	return c
}

func tip(water, goal, habits, workouts int) string {
	switch {
	case water*2 < goal:
		return TipHydration
	case habits < 3:
		return TipHabits
	case workouts == 0:
		return TipWorkout
	}
	return TipPositive
}

func capped(v int) int {
	if v > 100 {
		return 100
	}
	return v
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/diag"
	"github.com/dmitrijs2005/fittracker/internal/client/home"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/services"
)

const barWidth = 20

var diagOrder = []models.CollectionKey{
	models.KeyHabits, models.KeyMeals, models.KeyWorkouts, models.KeyReminders, models.KeyHydrationLog,
}

func bar(pct int) string {
	n := pct * barWidth / 100
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", barWidth-n) + "]"
}

func writeHome(w io.Writer, s home.Summary) {
	fmt.Fprintf(w, "Water      %d / %d ml (%d%%)\n", s.Water, s.WaterGoal, s.WaterPercent)
	if s.LastDrink != nil {
		fmt.Fprintf(w, "           last drink %s\n", s.LastDrink.CreatedAt.Local().Format("15:04"))
	}
	rows := []struct {
		label string
		c     home.Collection
	}{
		{"Habits", s.Habits},
		{"Meals", s.Meals},
		{"Workouts", s.Workouts},
		{"Reminders", s.Reminders},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-10s %d/%d done", r.label, r.c.Completed, r.c.Total)
		if r.c.Next != nil {
			fmt.Fprintf(w, ", next: %s", r.c.Next.Title)
			if r.c.NextTime != "" {
				fmt.Fprintf(w, " at %s", r.c.NextTime)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Calories   %d kcal, workouts %d min\n", s.Calories, s.WorkoutMinutes)
	for _, b := range s.Bars {
		fmt.Fprintf(w, "%-10s %s %3d%%\n", b.Label, bar(b.Value), b.Value)
	}
	if s.Tip != "" {
		fmt.Fprintln(w, "Tip:", s.Tip)
	}
}

func writeList(w io.Writer, m services.Module, sel *services.Selection) {
	views := m.Views()
	total, done := m.Stats()
	if m.Completable() {
		fmt.Fprintf(w, "%s (%d/%d done)\n", m.Plural(), done, total)
	} else {
		fmt.Fprintf(w, "%s (%d)\n", m.Plural(), total)
	}
	if len(views) == 0 {
		fmt.Fprintf(w, "  no %s yet, try: add %s\n", m.Plural(), m.Key())
		return
	}
	for i, v := range views {
		mark := " "
		if sel.Has(m.Key(), v.ID) {
			mark = "*"
		}
		check := ""
		if m.Completable() {
			check = "[ ] "
			if v.Completed {
				check = "[x] "
			}
		}
		fmt.Fprintf(w, "%s%2d. %s%s", mark, i+1, check, v.Title)
		if v.Subtitle != "" {
			fmt.Fprintf(w, "  (%s)", v.Subtitle)
		}
		fmt.Fprintln(w)
	}
}

func writeAccount(w io.Writer, p models.Profile, sessions []models.Session) {
	fmt.Fprintf(w, "Name     %s\n", p.Name)
	fmt.Fprintf(w, "Email    %s\n", p.Email)
	fmt.Fprintf(w, "Phone    %s\n", p.Phone)
	twoFA := "off"
	if p.TwoFA {
		twoFA = "on"
	}
	fmt.Fprintf(w, "2FA      %s\n", twoFA)
	fmt.Fprintf(w, "Sessions %d\n", len(sessions))
}

func writeDiag(w io.Writer, r diag.Report, events []diag.Event) {
	fmt.Fprintf(w, "Entities  %d\n", total(r.Entities))
	for _, k := range diagOrder {
		fmt.Fprintf(w, "  %-13s %d\n", k, r.Entities[k])
	}
	fmt.Fprintf(w, "Water     %d / %d ml\n", r.Water, r.WaterGoal)
	fmt.Fprintf(w, "Saves     %d", r.Saves)
	if !r.LastSave.IsZero() {
		fmt.Fprintf(w, ", last at %s", r.LastSave.Local().Format("15:04:05"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Events    %d\n", r.Events)

	const tail = 10
	if len(events) > tail {
		events = events[len(events)-tail:]
	}
	for _, e := range events {
		fmt.Fprintf(w, "  %s %-12s %s\n", e.At.Local().Format("15:04:05"), e.Kind, e.Detail)
	}
}

func total(m map[models.CollectionKey]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

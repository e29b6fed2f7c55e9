package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/fittracker/internal/client/app"
	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/home"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
	"github.com/dmitrijs2005/fittracker/internal/client/services"
)

const barWidth = 24

var (
	listHints    = "a add  e edit  space done  d delete  m mark all  s select  M/D selected  E export"
	accountHints = "p profile  P password  t 2fa  r revoke  X delete  i sign in  o sign out  c register  f pull  y push  N newsletter"
	globalHints  = "tab sections  w +250ml  u undo  g goal  R reset  q quit"
	dialogHints  = "tab next  shift+tab back  enter submit  esc close"
)

func (m *Model) render() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.body)
	b.WriteString("\n\n")

	if m.app.Modal.IsOpen() && m.dialog != nil {
		b.WriteString(m.viewDialog())
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(dialogHints))
	} else {
		switch m.app.Router.Active().Name {
		case router.Home:
		case router.Account:
			b.WriteString(m.styles.Muted.Render(accountHints) + "\n")
		default:
			b.WriteString(m.styles.Muted.Render(listHints) + "\n")
		}
		b.WriteString(m.styles.Muted.Render(globalHints))
	}

	if msg, ok := m.app.Notifier.Current(); ok {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Toast.Render(msg))
	}
	return b.String()
}

func (m *Model) header() string {
	active := m.app.Router.Active().Name
	tabs := make([]string, 0, 8)
	for i, s := range m.app.Router.Sections() {
		label := fmt.Sprintf("%d %s", i+1, s.Title)
		if s.Name == active {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	status := string(m.mode)
	if m.app.Auth.Authenticated() {
		status += ", signed in"
	}
	if n := m.app.Selection.Count(); n > 0 {
		status += fmt.Sprintf(", %d selected", n)
	}
	title := m.styles.Title.Render(m.app.Router.Title()) + "  " + m.styles.Status.Render(status)
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) bar(pct int) string {
	n := pct * barWidth / 100
	return m.styles.BarFill.Render(strings.Repeat("█", n)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-n))
}

func (m *Model) viewHome() string {
	s := m.app.Summary()
	var b strings.Builder

	fmt.Fprintf(&b, "Water %d / %d ml  %s %d%%\n", s.Water, s.WaterGoal, m.bar(s.WaterPercent), s.WaterPercent)
	if s.LastDrink != nil {
		b.WriteString(m.styles.Muted.Render("last drink at "+s.LastDrink.CreatedAt.Local().Format("15:04")) + "\n")
	}
	b.WriteString("\n")

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
		fmt.Fprintf(&b, "%-10s %d/%d", r.label, r.c.Completed, r.c.Total)
		if r.c.Next != nil {
			next := r.c.Next.Title
			if r.c.NextTime != "" {
				next = r.c.NextTime + " " + next
			}
			b.WriteString(m.styles.Muted.Render("  next: " + next))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%d kcal eaten, %d min trained\n\n", s.Calories, s.WorkoutMinutes)

	for _, bar := range s.Bars {
		fmt.Fprintf(&b, "%-10s %s %3d%%\n", bar.Label, m.bar(bar.Value), bar.Value)
	}
	if s.Tip != "" {
		b.WriteString("\n" + m.styles.Title.Render("Tip") + " " + s.Tip)
	}
	return b.String()
}

func (m *Model) viewList(mod services.Module) string {
	var b strings.Builder
	views := mod.Views()
	total, done := mod.Stats()

	if mod.Completable() {
		fmt.Fprintf(&b, "%d of %d done\n\n", done, total)
	} else {
		water := m.app.Hydration
		fmt.Fprintf(&b, "%d / %d ml  %s %d%%\n\n", water.Total(), water.Goal(), m.bar(water.Percent()), water.Percent())
	}
	if len(views) == 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("No %s yet. Press a to add one.", mod.Plural())))
		return b.String()
	}

	cur := m.cursor(views)
	for i, v := range views {
		pointer := "  "
		if i == cur {
			pointer = m.styles.Cursor.Render("> ")
		}
		mark := " "
		if m.app.Selection.Has(mod.Key(), v.ID) {
			mark = m.styles.Selected.Render("*")
		}
		check := ""
		if mod.Completable() {
			check = "[ ] "
			if v.Completed {
				check = "[x] "
			}
		}
		title := v.Title
		if v.Completed {
			title = m.styles.Done.Render(title)
		}
		line := pointer + mark + check + title
		if v.Subtitle != "" {
			line += "  " + m.styles.Muted.Render(v.Subtitle)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewAccount() string {
	p := m.app.Account.Profile()
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			value = m.styles.Muted.Render("not set")
		}
		fmt.Fprintf(&b, "%-9s %s\n", label, value)
	}
	row("Name", p.Name)
	row("Email", p.Email)
	row("Phone", p.Phone)
	row("Avatar", p.Avatar)
	twoFA := "off"
	if p.TwoFA {
		twoFA = "on"
	}
	row("2FA", twoFA)
	pw := "not set"
	if m.app.Account.HasPassword() {
		pw = "set"
	}
	row("Password", pw)

	sessions := m.app.Account.Sessions()
	fmt.Fprintf(&b, "\nSessions (%d)\n", len(sessions))
	for _, s := range sessions {
		fmt.Fprintf(&b, "  %s  %s  %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Device, m.styles.Muted.Render(s.ID[:min(8, len(s.ID))]))
	}
	remote := "offline"
	if m.mode == app.ModeOnline {
		remote = "online"
	}
	if m.app.Auth.Authenticated() {
		remote += ", signed in"
	}
	fmt.Fprintf(&b, "\nBackend  %s", remote)
	return b.String()
}

func (m *Model) viewDialog() string {
	d := m.dialog
	focused := m.app.Modal.Focused()
	var b strings.Builder

	title := m.styles.Title.Render(d.form.Title)
	if d.form.Danger {
		title = m.styles.Danger.Render(d.form.Title)
	}
	b.WriteString(title + "\n")
	if d.form.Body != "" {
		b.WriteString("\n" + d.form.Body + "\n")
	}
	for _, f := range d.form.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		if f.ID == focused {
			label = m.styles.Cursor.Render(label)
		}
		value := ""
		if ti, ok := d.inputs[f.ID]; ok {
			value = ti.View()
		} else {
			value = m.styles.Muted.Render(f.Value)
		}
		if f.Type == forms.Select {
			value += m.styles.Muted.Render("  (" + strings.Join(f.Options, " / ") + ")")
		}
		fmt.Fprintf(&b, "\n%s\n%s\n", label, value)
	}

	b.WriteString("\n")
	b.WriteString(m.button(d.form.SubmitLabel, forms.SubmitID, focused))
	b.WriteString(" ")
	b.WriteString(m.button(d.form.CancelLabel, forms.CancelID, focused))
	return m.styles.Modal.Render(b.String())
}

func (m *Model) button(label, id, focused string) string {
	if label == "" {
		label = id
	}
	if id == focused {
		return m.styles.Focused.Render(label)
	}
	return m.styles.Button.Render(label)
}

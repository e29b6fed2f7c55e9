package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/fittracker/internal/client/app"
	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/modal"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
	"github.com/dmitrijs2005/fittracker/internal/client/services"
	"github.com/dmitrijs2005/fittracker/internal/common"
)

type submitFunc func(ctx context.Context, v forms.Values) error

// dialog is the state of the open form.
type dialog struct {
	form   *forms.Form
	inputs map[string]*textinput.Model
	submit submitFunc
}

type modeMsg app.Mode

type Model struct {
	ctx    context.Context
	app    *app.App
	host   *focusHost
	styles Styles

	width, height int
	body          string
	dialog        *dialog
	mode          app.Mode
	quitting      bool
}

// NewModel binds the model to a and registers a render callback for every
// section. host must be the modal host a was built with.
func NewModel(ctx context.Context, a *app.App, host *focusHost) *Model {
	m := &Model{ctx: ctx, app: a, host: host, styles: DefaultStyles(), mode: a.Mode()}

	a.Router.Register(router.Home, func(context.Context) error {
		m.body = m.viewHome()
		return nil
	})
	for _, mod := range a.Modules() {
		mod := mod
		a.Router.Register(sectionOf(mod.Key()), func(context.Context) error {
			m.body = m.viewList(mod)
			return nil
		})
	}
	a.Router.Register(router.Account, func(context.Context) error {
		m.body = m.viewAccount()
		return nil
	})
	a.Router.OnNavigate(func(context.Context, router.Section) { m.syncCursor() })
	a.Router.Start(ctx)
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case modeMsg:
		m.mode = app.Mode(msg)
	case redrawMsg:
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.app.Modal.IsOpen() {
			cmd = m.dialogKey(msg)
		} else {
			cmd = m.mainKey(msg)
		}
	}
	if !m.quitting {
		m.app.Router.Refresh(m.ctx)
	}
	return m, cmd
}

// module returns the list surface of the active section.
func (m *Model) module() (services.Module, bool) {
	for _, mod := range m.app.Modules() {
		if sectionOf(mod.Key()) == m.app.Router.Active().Name {
			return mod, true
		}
	}
	return nil, false
}

// cursor is the index of the focused row in views, clamped to the list.
func (m *Model) cursor(views []models.View) int {
	id, ok := m.host.row()
	if !ok {
		return 0
	}
	i := slices.IndexFunc(views, func(v models.View) bool { return v.ID == id })
	return max(i, 0)
}

func (m *Model) current() (services.Module, models.View, bool) {
	mod, ok := m.module()
	if !ok {
		return nil, models.View{}, false
	}
	views := mod.Views()
	if len(views) == 0 {
		return mod, models.View{}, false
	}
	return mod, views[m.cursor(views)], true
}

// syncCursor keeps host focus on an existing row of the active list.
func (m *Model) syncCursor() {
	mod, ok := m.module()
	if !ok {
		m.host.Focus("")
		return
	}
	views := mod.Views()
	if len(views) == 0 {
		m.host.Focus("")
		return
	}
	m.host.Focus(rowPrefix + views[m.cursor(views)].ID)
}

func (m *Model) move(step int) {
	mod, ok := m.module()
	if !ok {
		return
	}
	views := mod.Views()
	if len(views) == 0 {
		return
	}
	i := min(max(m.cursor(views)+step, 0), len(views)-1)
	m.host.Focus(rowPrefix + views[i].ID)
}

func (m *Model) mainKey(msg tea.KeyMsg) tea.Cmd {
	ctx := m.ctx
	switch key := msg.String(); key {
	case "q":
		m.quitting = true
		return tea.Quit
	case "tab", "right", "l":
		m.app.Router.Next(ctx)
	case "shift+tab", "left", "h":
		m.app.Router.Prev(ctx)
	case "1", "2", "3", "4", "5", "6", "7":
		sections := m.app.Router.Sections()
		if i := int(key[0] - '1'); i < len(sections) {
			m.app.Router.Navigate(ctx, sections[i].Name)
		}
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "w":
		m.check(m.app.Hydration.QuickAdd(ctx))
		m.syncCursor()
	case "u":
		m.check(m.app.Hydration.UndoLast(ctx))
		m.syncCursor()
	case "g":
		return m.openGoal()
	case "E":
		m.export()
	case "R":
		return m.open(forms.NewConfirm("Reset", "Erase every habit, meal, workout, drink and reminder?", "Reset"),
			func(ctx context.Context, _ forms.Values) error {
				if err := m.app.Reset(ctx); err != nil {
					return err
				}
				m.app.Notifier.Show("All data cleared")
				m.app.Router.Navigate(ctx, router.Home)
				return nil
			})
	case "M":
		m.check(m.app.Quick.MarkSelected(ctx))
	case "D":
		if m.app.Selection.Count() == 0 {
			m.app.Notifier.Show("Nothing selected")
			return nil
		}
		return m.open(forms.NewConfirm("Delete selected", fmt.Sprintf("Delete %d selected item(s)?", m.app.Selection.Count()), "Delete"),
			func(ctx context.Context, _ forms.Values) error {
				_, err := m.app.Quick.DeleteSelected(ctx)
				return err
			})
	default:
		if m.app.Router.Active().Name == router.Account {
			return m.accountKey(key)
		}
		return m.listKey(key)
	}
	return nil
}

func (m *Model) listKey(key string) tea.Cmd {
	ctx := m.ctx
	mod, ok := m.module()
	if !ok {
		return nil
	}
	switch key {
	case "a", "n":
		return m.open(mod.CreateForm(), mod.Create)
	case "m":
		m.check(mod.MarkAll(ctx))
	}

	_, item, ok := m.current()
	if !ok {
		return nil
	}
	switch key {
	case "e", "enter":
		form, found := mod.EditForm(item.ID)
		if !found {
			return nil
		}
		return m.open(form, func(ctx context.Context, v forms.Values) error {
			return mod.Edit(ctx, item.ID, v)
		})
	case " ", "x":
		m.check(mod.Toggle(ctx, item.ID))
	case "s":
		if mod.Completable() {
			m.app.Selection.Toggle(mod.Key(), item.ID)
		}
	case "d":
		return m.open(forms.NewConfirm("Delete", fmt.Sprintf("Delete %q?", item.Title), "Delete"),
			func(ctx context.Context, _ forms.Values) error {
				err := mod.Remove(ctx, item.ID)
				if m.app.Selection.Has(mod.Key(), item.ID) {
					m.app.Selection.Toggle(mod.Key(), item.ID)
				}
				return err
			})
	}
	return nil
}

func (m *Model) openGoal() tea.Cmd {
	form := &forms.Form{
		Title:       "Daily water goal",
		SubmitLabel: "Save",
		CancelLabel: "Cancel",
		Fields: []forms.Field{{
			ID: "goal", Label: "Goal (ml)", Type: forms.Number,
			Value: fmt.Sprint(m.app.Hydration.Goal()), Required: true,
		}},
	}
	return m.open(form, func(ctx context.Context, v forms.Values) error {
		ml, err := v.RequireInt("goal", "Goal", 1)
		if err != nil {
			m.app.Notifier.Show(err.Error())
			return err
		}
		return m.app.Hydration.SetGoal(ctx, ml)
	})
}

func (m *Model) export() {
	var err error
	if mod, ok := m.module(); ok {
		_, err = m.app.Export.ExportCollection(m.ctx, mod.Key())
	} else {
		_, err = m.app.Export.ExportAll(m.ctx)
	}
	m.check(err)
}

// check reports a failed action. Validation failures are already on screen.
func (m *Model) check(args ...any) {
	if len(args) == 0 {
		return
	}
	err, _ := args[len(args)-1].(error)
	if err == nil || errors.Is(err, common.ErrValidation) {
		return
	}
	m.app.Logger.Error(m.ctx, "action failed", "section", m.app.Router.Active().Name, "error", err)
	m.app.Notifier.Show("Something went wrong: " + err.Error())
}

// open shows form in the modal; submit runs on Enter. A validation error
// keeps the dialog open for correction.
func (m *Model) open(form *forms.Form, submit submitFunc) tea.Cmd {
	d := &dialog{form: form, inputs: make(map[string]*textinput.Model), submit: submit}
	for _, f := range form.Fields {
		if f.Disabled {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 200
		ti.Width = 32
		ti.SetValue(f.Value)
		if f.Type == forms.Password {
			ti.EchoMode = textinput.EchoPassword
		}
		d.inputs[f.ID] = &ti
	}
	m.dialog = d
	if !m.app.Modal.Open(form, modal.Options{OnClose: func() { m.dialog = nil }}) {
		m.dialog = nil
		return nil
	}
	return m.focusInput()
}

// focusInput focuses the text input matching the modal's focus.
func (m *Model) focusInput() tea.Cmd {
	if m.dialog == nil {
		return nil
	}
	var cmd tea.Cmd
	for id, ti := range m.dialog.inputs {
		if id == m.app.Modal.Focused() {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

func (m *Model) dialogKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.app.Modal.HandleKey(modal.KeyEscape)
		return nil
	case "tab", "down":
		m.app.Modal.HandleKey(modal.KeyTab)
		return m.focusInput()
	case "shift+tab", "up":
		m.app.Modal.HandleKey(modal.KeyShiftTab)
		return m.focusInput()
	case "enter":
		if m.app.Modal.Focused() == forms.CancelID {
			m.app.Modal.Close()
			return nil
		}
		m.submit()
		return nil
	}

	focused := m.app.Modal.Focused()
	if f, ok := m.dialog.form.Field(focused); ok && f.Type == forms.Select {
		m.cycleOption(f, msg.String())
		return nil
	}
	ti, ok := m.dialog.inputs[focused]
	if !ok {
		return nil
	}
	updated, cmd := ti.Update(msg)
	*ti = updated
	return cmd
}

func (m *Model) cycleOption(f *forms.Field, key string) {
	step := 0
	switch key {
	case "left", "h":
		step = -1
	case "right", "l", " ":
		step = 1
	}
	if step == 0 || len(f.Options) == 0 {
		return
	}
	ti := m.dialog.inputs[f.ID]
	i := slices.Index(f.Options, ti.Value())
	i = (i + step + len(f.Options)) % len(f.Options)
	ti.SetValue(f.Options[i])
}

func (m *Model) submit() {
	d := m.dialog
	for id, ti := range d.inputs {
		d.form.Set(id, ti.Value())
	}
	err := d.submit(m.ctx, d.form.Values())
	if errors.Is(err, common.ErrValidation) {
		return
	}
	m.app.Modal.Close()
	m.check(err)
	m.syncCursor()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

func sectionOf(key models.CollectionKey) string {
	if key == models.KeyHydrationLog {
		return router.Hydration
	}
	return string(key)
}

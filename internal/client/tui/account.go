package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
	"github.com/dmitrijs2005/fittracker/internal/client/services"
	"github.com/dmitrijs2005/fittracker/internal/common"
)

const sessionDevice = "terminal"

func (m *Model) accountKey(key string) tea.Cmd {
	ctx := m.ctx
	acc := m.app.Account
	switch key {
	case "p":
		p := acc.Profile()
		return m.open(&forms.Form{
			Title: "Edit profile", SubmitLabel: "Save", CancelLabel: "Cancel",
			Fields: []forms.Field{
				{ID: "name", Label: "Name", Type: forms.Text, Value: p.Name, Required: true},
				{ID: "email", Label: "Email", Type: forms.Email, Value: p.Email, Placeholder: "you@example.com"},
				{ID: "phone", Label: "Phone", Type: forms.Text, Value: p.Phone},
				{ID: "avatar", Label: "Avatar URL", Type: forms.Text, Value: p.Avatar},
			},
		}, func(ctx context.Context, v forms.Values) error {
			return acc.UpdateProfile(ctx, services.ProfileUpdate{
				Name: v.Text("name"), Email: v.Text("email"), Phone: v.Text("phone"), Avatar: v.Text("avatar"),
			})
		})

	case "P":
		fields := []forms.Field{
			{ID: "next", Label: "New password", Type: forms.Password, Required: true},
			{ID: "confirm", Label: "Confirm password", Type: forms.Password, Required: true},
		}
		if acc.HasPassword() {
			fields = append([]forms.Field{{ID: "current", Label: "Current password", Type: forms.Password, Required: true}}, fields...)
		}
		return m.open(&forms.Form{Title: "Change password", SubmitLabel: "Change", CancelLabel: "Cancel", Fields: fields},
			func(ctx context.Context, v forms.Values) error {
				return acc.ChangePassword(ctx, []byte(v["current"]), []byte(v["next"]), []byte(v["confirm"]))
			})

	case "t":
		_, err := acc.ToggleTwoFA(ctx)
		m.check(err)

	case "r":
		m.check(acc.RevokeAllSessions(ctx))

	case "X":
		return m.open(&forms.Form{
			Title: "Delete account", Body: "This erases the profile and every record.",
			SubmitLabel: "Delete", CancelLabel: "Cancel", Danger: true,
			Fields: []forms.Field{{ID: "password", Label: "Password", Type: forms.Password}},
		}, func(ctx context.Context, v forms.Values) error {
			if err := acc.DeleteAccount(ctx, []byte(v["password"])); err != nil {
				return err
			}
			m.app.Selection.Clear()
			m.app.Router.Navigate(ctx, router.Home)
			return nil
		})

	case "i":
		return m.open(&forms.Form{
			Title: "Sign in", SubmitLabel: "Sign in", CancelLabel: "Cancel",
			Fields: []forms.Field{
				{ID: "email", Label: "Email", Type: forms.Email, Value: acc.Profile().Email, Required: true},
				{ID: "password", Label: "Password", Type: forms.Password, Required: true},
			},
		}, m.login)

	case "c":
		return m.open(&forms.Form{
			Title: "Create remote account", SubmitLabel: "Create", CancelLabel: "Cancel",
			Fields: []forms.Field{
				{ID: "name", Label: "Name", Type: forms.Text, Value: acc.Profile().Name, Required: true},
				{ID: "email", Label: "Email", Type: forms.Email, Value: acc.Profile().Email, Required: true},
				{ID: "password", Label: "Password", Type: forms.Password, Required: true},
			},
		}, func(ctx context.Context, v forms.Values) error {
			_, err := m.app.Auth.Register(ctx, v.Text("name"), v.Text("email"), []byte(v["password"]))
			if err != nil {
				return m.invalid(err)
			}
			m.app.Notifier.Show("Account created, you can now sign in")
			return nil
		})

	case "o":
		if err := m.app.Auth.Logout(ctx); err != nil {
			m.check(err)
			return nil
		}
		m.app.Notifier.Show("Signed out")

	case "f":
		if m.signedIn() {
			m.check(m.app.Sync.Pull(ctx))
		}

	case "y":
		if m.signedIn() {
			m.check(m.app.Sync.Push(ctx))
		}

	case "N":
		return m.open(&forms.Form{
			Title: "Newsletter", SubmitLabel: "Subscribe", CancelLabel: "Cancel",
			Fields: []forms.Field{{ID: "email", Label: "Email", Type: forms.Email, Value: acc.Profile().Email, Required: true}},
		}, func(ctx context.Context, v forms.Values) error {
			return m.invalid(m.app.Sync.Newsletter(ctx, v.Text("email")))
		})
	}
	return nil
}

func (m *Model) login(ctx context.Context, v forms.Values) error {
	email := v.Text("email")
	err := m.app.Auth.Login(ctx, email, []byte(v["password"]))
	if errors.Is(err, client.ErrUnauthorized) {
		err = common.NewValidationError("", "Invalid email or password")
	}
	if err != nil {
		return m.invalid(err)
	}
	if _, err := m.app.Account.StartSession(ctx, sessionDevice); err != nil {
		return err
	}
	m.app.Notifier.Show("Signed in as " + email)
	return nil
}

func (m *Model) signedIn() bool {
	if m.app.Auth.Authenticated() {
		return true
	}
	m.app.Notifier.Show("Sign in first")
	return false
}

// invalid shows validation failures that the service did not report itself.
func (m *Model) invalid(err error) error {
	if errors.Is(err, common.ErrValidation) {
		m.app.Notifier.Show(err.Error())
	}
	return err
}

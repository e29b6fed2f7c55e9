package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
	"github.com/dmitrijs2005/fittracker/internal/client/services"
	"github.com/dmitrijs2005/fittracker/internal/shared"
)

func profileForm(p services.ProfileUpdate) *forms.Form {
	return &forms.Form{
		Title:       "Edit profile",
		SubmitLabel: "Save",
		CancelLabel: "Cancel",
		Fields: []forms.Field{
			{ID: "name", Label: "Name", Type: forms.Text, Value: p.Name, Required: true},
			{ID: "email", Label: "Email", Type: forms.Email, Value: p.Email, Placeholder: "you@example.com"},
			{ID: "phone", Label: "Phone", Type: forms.Text, Value: p.Phone},
			{ID: "avatar", Label: "Avatar URL", Type: forms.Text, Value: p.Avatar},
		},
	}
}

func (s *Shell) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		s.app.Router.Navigate(ctx, router.Account)
		return nil
	}
	if args[0] != "edit" {
		return s.usage("profile")
	}

	p := s.app.Account.Profile()
	form := profileForm(services.ProfileUpdate{Name: p.Name, Email: p.Email, Phone: p.Phone, Avatar: p.Avatar})
	if err := s.fill(form); err != nil {
		return err
	}
	v := form.Values()
	return s.app.Account.UpdateProfile(ctx, services.ProfileUpdate{
		Name:   v.Text("name"),
		Email:  v.Text("email"),
		Phone:  v.Text("phone"),
		Avatar: v.Text("avatar"),
	})
}

func (s *Shell) password(ctx context.Context, _ []string) error {
	var current []byte
	if s.app.Account.HasPassword() {
		pw, err := GetPassword("Current password", s.out)
		if err != nil {
			return err
		}
		current = pw
	}
	next, err := GetPassword("New password", s.out)
	if err != nil {
		shared.WipeByteArray(current)
		return err
	}
	confirm, err := GetPassword("Confirm password", s.out)
	if err != nil {
		shared.WipeByteArray(current)
		shared.WipeByteArray(next)
		return err
	}
	return s.app.Account.ChangePassword(ctx, current, next, confirm)
}

func (s *Shell) twoFA(ctx context.Context, _ []string) error {
	on, err := s.app.Account.ToggleTwoFA(ctx)
	if err != nil {
		return err
	}
	state := "off"
	if on {
		state = "on"
	}
	printlnFn("Two-factor authentication is", state)
	return nil
}

func (s *Shell) sessions(context.Context, []string) error {
	list := s.app.Account.Sessions()
	if len(list) == 0 {
		printlnFn("No active sessions")
		return nil
	}
	for i, ss := range list {
		printlnFn(fmt.Sprintf("%2d. %s  %s  %s", i+1, ss.ID, ss.CreatedAt.Local().Format("2006-01-02 15:04"), ss.Device))
	}
	return nil
}

func (s *Shell) revoke(ctx context.Context, _ []string) error {
	_, err := s.app.Account.RevokeAllSessions(ctx)
	return err
}

func (s *Shell) deleteAccount(ctx context.Context, _ []string) error {
	ok, err := Confirm(s.reader, "Delete the account and every record?", s.out)
	if err != nil || !ok {
		return err
	}
	pw, err := GetPassword("Password", s.out)
	if err != nil {
		return err
	}
	if err := s.app.Account.DeleteAccount(ctx, pw); err != nil {
		return err
	}
	s.app.Selection.Clear()
	s.app.Router.Navigate(ctx, router.Home)
	return nil
}

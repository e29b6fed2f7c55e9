package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
)

const sessionDevice = "repl"

func (s *Shell) login(ctx context.Context, args []string) error {
	email := ""
	if len(args) > 0 {
		email = args[0]
	} else {
		v, err := GetSimpleText(s.reader, "Email", s.out)
		if err != nil {
			return err
		}
		email = v
	}
	pw, err := GetPassword("Password", s.out)
	if err != nil {
		return err
	}

	if err := s.app.Auth.Login(ctx, email, pw); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.app.Notifier.Show("Invalid email or password")
			return nil
		}
		return s.invalid(err)
	}
	if _, err := s.app.Account.StartSession(ctx, sessionDevice); err != nil {
		return err
	}
	s.app.Notifier.Show("Signed in as " + email)
	return nil
}

func (s *Shell) register(ctx context.Context, _ []string) error {
	name, err := GetSimpleText(s.reader, "Name", s.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(s.reader, "Email", s.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword("Password", s.out)
	if err != nil {
		return err
	}
	if _, err := s.app.Auth.Register(ctx, name, email, pw); err != nil {
		return s.invalid(err)
	}
	s.app.Notifier.Show("Account created, you can now log in")
	return nil
}

func (s *Shell) logout(ctx context.Context, _ []string) error {
	if err := s.app.Auth.Logout(ctx); err != nil {
		return err
	}
	s.app.Notifier.Show("Signed out")
	return nil
}

func (s *Shell) pull(ctx context.Context, _ []string) error {
	if !s.app.Auth.Authenticated() {
		s.app.Notifier.Show("Log in first")
		return nil
	}
	_, err := s.app.Sync.Pull(ctx)
	return err
}

func (s *Shell) push(ctx context.Context, _ []string) error {
	if !s.app.Auth.Authenticated() {
		s.app.Notifier.Show("Log in first")
		return nil
	}
	_, err := s.app.Sync.Push(ctx)
	return err
}

func (s *Shell) newsletter(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("newsletter")
	}
	return s.invalid(s.app.Sync.Newsletter(ctx, args[0]))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/dmitrijs2005/fittracker/internal/cryptox"
	"github.com/dmitrijs2005/fittracker/internal/shared"
)

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name   string
	Email  string
	Phone  string
	Avatar string
}

// AccountService backs the account page: profile, local password, 2FA flag,
// sessions and account deletion.
//
// Password arguments are wiped before the methods return.
type AccountService interface {
	Profile() models.Profile
	UpdateProfile(ctx context.Context, p ProfileUpdate) error
	HasPassword() bool
	ChangePassword(ctx context.Context, current, next, confirm []byte) error
	ToggleTwoFA(ctx context.Context) (bool, error)
	Sessions() []models.Session
	StartSession(ctx context.Context, device string) (models.Session, error)
	RevokeAllSessions(ctx context.Context) (int, error)
	DeleteAccount(ctx context.Context, password []byte) error
}

type accountService struct {
	state    *state.AppState
	notifier Notifier
	now      func() time.Time
}

func NewAccountService(st *state.AppState, n Notifier) AccountService {
	return &accountService{state: st, notifier: n, now: time.Now}
}

func (a *accountService) Profile() models.Profile {
	p := a.state.Document().Profile
	p.PasswordHash = ""
	return p
}

func (a *accountService) UpdateProfile(ctx context.Context, p ProfileUpdate) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Avatar = strings.TrimSpace(p.Avatar)

	if p.Name == "" {
		return a.invalid("Name", "is required")
	}
	if p.Email != "" {
		if addr, err := mail.ParseAddress(p.Email); err != nil || addr.Address != p.Email {
			return a.invalid("Email", "is not a valid address")
		}
	}

	prof := &a.state.Document().Profile
	prof.Name, prof.Email, prof.Phone, prof.Avatar = p.Name, p.Email, p.Phone, p.Avatar
	return a.save(ctx, "Profile saved")
}

func (a *accountService) HasPassword() bool {
	return a.state.Document().Profile.PasswordHash != ""
}

func (a *accountService) ChangePassword(ctx context.Context, current, next, confirm []byte) error {
	defer shared.WipeByteArray(current)
	defer shared.WipeByteArray(next)
	defer shared.WipeByteArray(confirm)

	if len(next) == 0 {
		return a.invalid("New password", "is required")
	}
	if string(next) != string(confirm) {
		return a.invalid("", "Passwords do not match")
	}
	if err := a.verify(current, "Current password"); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}
	a.state.Document().Profile.PasswordHash = hash
	return a.save(ctx, "Password changed")
}

func (a *accountService) ToggleTwoFA(ctx context.Context) (bool, error) {
	prof := &a.state.Document().Profile
	prof.TwoFA = !prof.TwoFA
	msg := "Two-factor authentication disabled"
	if prof.TwoFA {
		msg = "Two-factor authentication enabled"
	}
	return prof.TwoFA, a.save(ctx, msg)
}

func (a *accountService) Sessions() []models.Session {
	s := a.state.Document().Sessions
	out := make([]models.Session, len(s))
	copy(out, s)
	return out
}

func (a *accountService) StartSession(ctx context.Context, device string) (models.Session, error) {
	id, err := shared.MakeRandHexString(16)
	if err != nil {
		return models.Session{}, fmt.Errorf("session id: %w", err)
	}
	s := models.Session{ID: id, CreatedAt: models.NewTimestamp(a.now()), Device: device}
	doc := a.state.Document()
	doc.Sessions = append([]models.Session{s}, doc.Sessions...)
	return s, a.state.Save(ctx)
}

func (a *accountService) RevokeAllSessions(ctx context.Context) (int, error) {
	doc := a.state.Document()
	n := len(doc.Sessions)
	doc.Sessions = []models.Session{}
	return n, a.save(ctx, "All sessions revoked")
}

// DeleteAccount requires the password (checked against the stored hash when
// one exists) and then resets all local data.
func (a *accountService) DeleteAccount(ctx context.Context, password []byte) error {
	defer shared.WipeByteArray(password)

	if len(password) == 0 {
		return a.invalid("Password", "is required")
	}
	if err := a.verify(password, "Password"); err != nil {
		return err
	}
	if err := a.state.Reset(ctx); err != nil {
		return err
	}
	a.show("Account deleted")
	return nil
}

func (a *accountService) verify(password []byte, field string) error {
	hash := a.state.Document().Profile.PasswordHash
	if hash == "" {
		return nil
	}
	err := cryptox.VerifyPassword(hash, password)
	if errors.Is(err, cryptox.ErrPasswordMismatch) {
		return a.invalid(field, "is incorrect")
	}
	return err
}

func (a *accountService) save(ctx context.Context, msg string) error {
	if err := a.state.Save(ctx); err != nil {
		return err
	}
	a.show(msg)
	return nil
}

func (a *accountService) invalid(field, msg string) error {
	err := common.NewValidationError(field, msg)
	a.show(err.Error())
	return err
}

func (a *accountService) show(msg string) {
	if a.notifier != nil {
		a.notifier.Show(msg)
	}
}

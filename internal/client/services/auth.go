package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/persistence"
	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/dmitrijs2005/fittracker/internal/shared"
)

// AuthService defines the remote authentication operations.
//
// Contract:
//   - Login: authenticate against the backend and persist the bearer token.
//   - Restore: reload a persisted token, discarding it when expired.
//   - Logout: forget the token locally.
//   - Register: create a remote user.
//   - Ping: check backend liveness.
//   - UserID: the remote user id carried by the current token, or "".
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Restore(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, name, email string, password []byte) (string, error)
	Ping(ctx context.Context) error
	Authenticated() bool
	UserID() string
}

// authService keeps the token in the same key/value store as the document.
type authService struct {
	client client.Client
	store  persistence.Store
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// token store.
func NewAuthService(c client.Client, store persistence.Store) AuthService {
	return &authService{client: c, store: store, now: time.Now}
}

// Login authenticates against the backend and saves the returned token.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	defer shared.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" {
		return common.NewValidationError("Email", "is required")
	}
	if len(password) == 0 {
		return common.NewValidationError("Password", "is required")
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.store.Set(ctx, common.TokenMetadataKey, []byte(token)); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}
	return nil
}

// Restore loads a saved token into the client. Expired or malformed tokens
// are deleted and reported as absent.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	raw, err := a.store.Get(ctx, common.TokenMetadataKey)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	token := string(raw)
	if client.TokenExpired(token, a.now()) {
		a.client.SetToken("")
		if err := a.store.Delete(ctx, common.TokenMetadataKey); err != nil {
			return false, err
		}
		return false, nil
	}
	a.client.SetToken(token)
	return true, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return a.store.Delete(ctx, common.TokenMetadataKey)
}

// Register creates a remote user and returns its id.
func (a *authService) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	defer shared.WipeByteArray(password)

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	switch {
	case name == "":
		return "", common.NewValidationError("Name", "is required")
	case email == "":
		return "", common.NewValidationError("Email", "is required")
	case len(password) == 0:
		return "", common.NewValidationError("Password", "is required")
	}
	return a.client.Register(ctx, name, email, password)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Authenticated() bool {
	return a.client.Token() != ""
}

// UserID returns the id claim of the current token; "" when logged out or
// when the token carries no id.
func (a *authService) UserID() string {
	token := a.client.Token()
	if token == "" {
		return ""
	}
	id, err := client.TokenUserID(token)
	if err != nil {
		return ""
	}
	return id
}

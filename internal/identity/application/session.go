// Package application wires the auth client and the token store into
// the session operations the CLI calls.
package application

import (
	"context"
	"errors"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/followthru/followthru/internal/identity/domain"
	"github.com/followthru/followthru/internal/identity/infrastructure/authapi"
)

// AuthAPI is the slice of the auth backend the session service needs.
type AuthAPI interface {
	Register(ctx context.Context, email, password, name string) (*authapi.Session, error)
	Login(ctx context.Context, email, password string) (*authapi.Session, error)
	Me(ctx context.Context, token string) (*domain.User, error)
	UpdateMe(ctx context.Context, token string, patch authapi.ProfilePatch) (*domain.User, error)
}

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// SessionService owns the login state: token lifecycle plus the
// profile operations behind it.
type SessionService struct {
	api    AuthAPI
	tokens TokenStore
	logger *slog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(api AuthAPI, tokens TokenStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{api: api, tokens: tokens, logger: logger}
}

// Credentials is a register or login request.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// Validate checks the credentials before any network call.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&c.Name, validation.Length(0, 120)),
	)
}

// Register creates an account and stores its token.
func (s *SessionService) Register(ctx context.Context, creds Credentials) (*domain.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	session, err := s.api.Register(ctx, creds.Email, creds.Password, creds.Name)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(session.AccessToken); err != nil {
		return nil, err
	}

	s.logger.Info("registered", "email", session.User.Email)
	return &session.User, nil
}

// Login exchanges credentials for a stored session.
func (s *SessionService) Login(ctx context.Context, creds Credentials) (*domain.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	session, err := s.api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(session.AccessToken); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", "email", session.User.Email)
	return &session.User, nil
}

// Logout clears the stored token. Logging out while logged out is fine.
func (s *SessionService) Logout() error {
	return s.tokens.Clear()
}

// CurrentUser returns the profile for the stored token. A rejected
// token clears the session before the error is returned.
func (s *SessionService) CurrentUser(ctx context.Context) (*domain.User, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.api.Me(ctx, token)
	if errors.Is(err, domain.ErrNotAuthenticated) {
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear rejected token", "error", clearErr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ProfileUpdate is a profile change request. Nil fields stay as-is.
type ProfileUpdate struct {
	Name            *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

// Validate checks the update before any network call. A password
// change needs both the current and the new password.
func (u ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, is.Email),
		validation.Field(&u.NewPassword, validation.Length(8, 128), validation.Required.When(u.CurrentPassword != nil).Error("new password is required to change the password")),
		validation.Field(&u.CurrentPassword, validation.Required.When(u.NewPassword != nil).Error("current password is required to change the password")),
	)
}

// UpdateProfile patches the profile behind the stored token.
//
// A wrong current password keeps the session: the token is fine, only
// the password attempt failed. A dead token clears the session.
func (s *SessionService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	token, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.api.UpdateMe(ctx, token, authapi.ProfilePatch{
		Name:            update.Name,
		Email:           update.Email,
		CurrentPassword: update.CurrentPassword,
		NewPassword:     update.NewPassword,
	})
	if errors.Is(err, domain.ErrNotAuthenticated) {
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear rejected token", "error", clearErr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

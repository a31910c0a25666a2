package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/models"
)

var (
	ErrNoSession = errors.New("server did not issue a session")
	ErrNotStaff  = errors.New("account is not a staff account")
)

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	AdminLogin(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Logout(ctx context.Context) error
	AdminCheck(ctx context.Context) (models.AdminCheck, error)
	Status(ctx context.Context) SessionStatus
}

// SessionStatus describes the local session for display.
type SessionStatus struct {
	Authenticated bool
	BaseURL       string
	ExpiresAt     time.Time
	HasExpiry     bool
}

// Expired reports whether the token carries an exp claim in the past.
func (s SessionStatus) Expired(now time.Time) bool {
	return s.HasExpiry && !now.Before(s.ExpiresAt)
}

type authService struct {
	client *api.Client
}

func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	return sessionUser(a.client.Login(ctx, models.Credentials{Email: email, Password: password}), false)
}

func (a *authService) AdminLogin(ctx context.Context, email, password string) (*models.User, error) {
	return sessionUser(a.client.AdminLogin(ctx, models.Credentials{Email: email, Password: password}), true)
}

func (a *authService) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	return sessionUser(a.client.Register(ctx, reg), false)
}

type loginResponse struct {
	User *models.User `json:"user"`
}

// sessionUser returns the logged-in user, or explains why no session was
// started although the call itself succeeded.
func sessionUser(env api.Envelope, staffOnly bool) (*models.User, error) {
	if err := env.Err(); err != nil {
		return nil, err
	}
	if env.SessionStarted {
		s, err := api.Decode[models.Session](env)
		if err != nil {
			return nil, err
		}
		return &s.User, nil
	}

	if staffOnly {
		if r, err := api.Decode[loginResponse](env); err == nil && r.User != nil && !r.User.IsStaff {
			return nil, ErrNotStaff
		}
	}
	return nil, ErrNoSession
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.Logout(ctx).Err()
}

func (a *authService) AdminCheck(ctx context.Context) (models.AdminCheck, error) {
	return api.Decode[models.AdminCheck](a.client.AdminCheck(ctx))
}

func (a *authService) Status(ctx context.Context) SessionStatus {
	sess := a.client.Session()
	st := SessionStatus{
		Authenticated: sess.Authenticated(ctx),
		BaseURL:       a.client.BaseURL(),
	}
	st.ExpiresAt, st.HasExpiry = sess.Expiry(ctx)
	return st
}

package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/etimsclient/internal/client/models"
)

const (
	pathLogin        = "/auth/login/"
	pathAdminLogin   = "/auth/admin-login/"
	pathAdminCheck   = "/auth/admin-check/"
	pathRegister     = "/auth/register/"
	pathTokenRefresh = "/auth/token/refresh/"
)

// Login authenticates with email and password. When the response carries a
// token pair the session is started and the returned payload is reshaped to
// {"token", "refresh", "user"}. Otherwise the raw envelope is returned and
// the session is left untouched.
func (c *Client) Login(ctx context.Context, creds models.Credentials) Envelope {
	return c.startSession(ctx, c.post(ctx, pathLogin, creds), false)
}

// AdminLogin is Login against the staff endpoint. Tokens are only kept when
// the returned user is staff.
func (c *Client) AdminLogin(ctx context.Context, creds models.Credentials) Envelope {
	return c.startSession(ctx, c.post(ctx, pathAdminLogin, creds), true)
}

// Register creates an account. A token pair in the response starts the
// session exactly like Login.
func (c *Client) Register(ctx context.Context, reg models.Registration) Envelope {
	return c.startSession(ctx, c.post(ctx, pathRegister, reg), false)
}

func (c *Client) AdminCheck(ctx context.Context) Envelope {
	return c.get(ctx, pathAdminCheck)
}

// Logout forgets the session locally. The server is not contacted and the
// result is always a success.
func (c *Client) Logout(ctx context.Context) Envelope {
	if err := c.session.Clear(ctx); err != nil {
		c.logger.Error(ctx, "logout: failed to clear session", "error", err)
	}
	return Envelope{Success: true}
}

// RefreshToken exchanges the stored refresh token for a new access token.
func (c *Client) RefreshToken(ctx context.Context) Envelope {
	refresh, err := c.session.RefreshToken(ctx)
	if err != nil {
		c.logger.Error(ctx, "refresh: failed to read refresh token", "error", err)
		return Envelope{Success: false, Message: err.Error()}
	}
	if refresh == "" {
		return Envelope{Success: false, Message: "No refresh token"}
	}

	env := c.post(ctx, pathTokenRefresh, map[string]string{"refresh": refresh})
	if !env.Success {
		return env
	}

	pair, err := Decode[models.TokenPair](env)
	if err != nil || pair.Access == "" {
		return env
	}
	if err := c.session.Rotate(ctx, pair.Access, pair.Refresh); err != nil {
		c.logger.Error(ctx, "refresh: failed to store tokens", "error", err)
		return Envelope{Success: false, Status: env.Status, Message: err.Error()}
	}
	return env
}

type loginPayload struct {
	Tokens *models.TokenPair `json:"tokens"`
	User   json.RawMessage   `json:"user"`
}

// sessionPayload mirrors models.Session but keeps the user object verbatim.
type sessionPayload struct {
	Token   string          `json:"token"`
	Refresh string          `json:"refresh"`
	User    json.RawMessage `json:"user"`
}

func (c *Client) startSession(ctx context.Context, env Envelope, staffOnly bool) Envelope {
	if !env.Success || len(env.Data) == 0 {
		return env
	}

	normalized, err := NormalizeKeys(env.Data)
	if err != nil {
		return env
	}
	var payload loginPayload
	if err := json.Unmarshal(unwrapData(normalized), &payload); err != nil {
		return env
	}
	if payload.Tokens == nil || payload.Tokens.Access == "" || payload.Tokens.Refresh == "" {
		return env
	}

	if staffOnly {
		var user models.User
		if len(payload.User) == 0 || json.Unmarshal(payload.User, &user) != nil || !user.IsStaff {
			c.logger.Info(ctx, "admin login by non-staff user, session not started")
			return env
		}
	}

	if err := c.session.Start(ctx, payload.Tokens.Access, payload.Tokens.Refresh); err != nil {
		c.logger.Error(ctx, "failed to start session", "error", err)
		return Envelope{Success: false, Status: env.Status, Message: fmt.Sprintf("failed to save session: %v", err)}
	}

	user := payload.User
	if len(user) == 0 {
		user = json.RawMessage("null")
	}
	data, err := json.Marshal(sessionPayload{
		Token:   payload.Tokens.Access,
		Refresh: payload.Tokens.Refresh,
		User:    user,
	})
	if err != nil {
		return env
	}
	return Envelope{Success: true, Status: env.Status, Data: data, SessionStarted: true}
}

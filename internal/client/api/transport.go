package api

import (
	"net/http"

	"github.com/dmitrijs2005/etimsclient/internal/client/session"
	"github.com/dmitrijs2005/etimsclient/internal/logging"
	"github.com/google/uuid"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
)

// authTransport attaches the bearer token resolved from the session and a
// fresh request id to every outgoing request.
type authTransport struct {
	session *session.Session
	logger  logging.Logger
	next    http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not modify the caller's request
	req = req.Clone(req.Context())

	token, err := t.session.AccessToken(req.Context())
	if err != nil {
		t.logger.Warn(req.Context(), "token lookup failed, sending unauthenticated", "error", err)
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	if req.Header.Get(headerRequestID) == "" {
		req.Header.Set(headerRequestID, uuid.NewString())
	}
	req.Header.Set("Accept", "application/json")

	return t.next.RoundTrip(req)
}

// unauthorizedTransport destroys the session when the server rejects the
// credentials. The response itself is passed through untouched.
type unauthorizedTransport struct {
	session *session.Session
	logger  logging.Logger
	next    http.RoundTripper
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	t.logger.Info(req.Context(), "server rejected credentials, clearing session", "path", req.URL.Path)
	if cerr := t.session.Clear(req.Context()); cerr != nil {
		t.logger.Error(req.Context(), "failed to clear session", "error", cerr)
	}
	return resp, nil
}

// Package api is the single choke point for HTTP calls to the eTIMS mobile
// backend. Every call yields an Envelope; failures are data, not errors.
//
// Authentication is handled by two RoundTrippers: one attaches the bearer
// token from the session, the other destroys the session on a 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/session"
	"github.com/dmitrijs2005/etimsclient/internal/logging"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultProbeTimeout = 5 * time.Second

	maxResponseBody = 10 << 20
)

type Options struct {
	BaseURL      string
	Timeout      time.Duration
	ProbeTimeout time.Duration
	Retry        RetryPolicy

	// Transport is the underlying transport, http.DefaultTransport when nil.
	Transport http.RoundTripper
	Logger    logging.Logger
}

type Client struct {
	mu      sync.RWMutex
	baseURL string

	session *session.Session
	http    *http.Client
	probe   *http.Client
	retry   RetryPolicy
	logger  logging.Logger
}

func New(sess *session.Session, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	logger := opts.Logger.With("component", "api")

	chain := &authTransport{
		session: sess,
		logger:  logger,
		next: &unauthorizedTransport{
			session: sess,
			logger:  logger,
			next:    opts.Transport,
		},
	}

	return &Client{
		baseURL: trimBase(opts.BaseURL),
		session: sess,
		http:    &http.Client{Transport: chain, Timeout: opts.Timeout},
		probe:   &http.Client{Transport: opts.Transport, Timeout: opts.ProbeTimeout},
		retry:   opts.Retry,
		logger:  logger,
	}
}

func trimBase(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL replaces the server address used by subsequent requests.
func (c *Client) SetBaseURL(u string) {
	c.mu.Lock()
	c.baseURL = trimBase(u)
	c.mu.Unlock()
}

func (c *Client) Session() *session.Session {
	return c.session
}

// Request performs one HTTP call and folds every outcome into an Envelope.
// It does not return errors and does not panic.
func (c *Client) Request(ctx context.Context, method, path string, body any) (env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(ctx, "request panicked", "method", method, "path", path, "panic", r)
			env = transportFailure(fmt.Errorf("%v", r))
		}
	}()

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return transportFailure(fmt.Errorf("encode request body: %w", err))
		}
		payload = b
	}

	start := time.Now()
	status, respBody, err := withRetry(ctx, c.retry, func(ctx context.Context) (int, []byte, error) {
		return c.send(ctx, method, path, payload)
	})
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return transportFailure(err)
	}

	c.logger.Debug(ctx, "request finished",
		"method", method, "path", path, "status", status, "duration", time.Since(start))
	return fromResponse(status, respBody)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) get(ctx context.Context, path string) Envelope {
	return c.Request(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) Envelope {
	return c.Request(ctx, http.MethodPost, path, body)
}

func (c *Client) put(ctx context.Context, path string, body any) Envelope {
	return c.Request(ctx, http.MethodPut, path, body)
}

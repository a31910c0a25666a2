package api

import (
	"context"
	"io"
	"net/http"
)

const healthPath = "/health/"

// FindWorkingURL probes the candidates in order and installs the first one
// whose health endpoint answers with a status below 500. Candidates after
// the winner are not contacted.
func (c *Client) FindWorkingURL(ctx context.Context, candidates []string) (string, error) {
	for _, candidate := range candidates {
		base := trimBase(candidate)
		if base == "" {
			continue
		}
		if c.reachable(ctx, base) {
			c.SetBaseURL(base)
			c.logger.Info(ctx, "server found", "url", base)
			return base, nil
		}
	}
	return "", ErrNoReachableURL
}

// Ping reports whether the current base URL answers its health endpoint.
func (c *Client) Ping(ctx context.Context) bool {
	return c.reachable(ctx, c.BaseURL())
}

func (c *Client) reachable(ctx context.Context, base string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+healthPath, nil)
	if err != nil {
		c.logger.Debug(ctx, "probe: bad candidate", "url", base, "error", err)
		return false
	}
	resp, err := c.probe.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "probe failed", "url", base, "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode >= 200 && resp.StatusCode < 500
}

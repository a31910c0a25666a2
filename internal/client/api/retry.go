package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy configures the optional retry decorator around Request.
// Attempts is the number of retries after the first try; 0 disables it.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

const defaultRetryBaseDelay = 200 * time.Millisecond

func (p RetryPolicy) enabled() bool { return p.Attempts > 0 }

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = defaultRetryBaseDelay
	}
	return retry.WithMaxRetries(uint64(p.Attempts), retry.NewExponential(base))
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

type attemptFunc func(ctx context.Context) (status int, body []byte, err error)

// withRetry runs attempt until it yields a non-retryable outcome or the
// policy is exhausted. The last outcome is returned as is.
func withRetry(ctx context.Context, p RetryPolicy, attempt attemptFunc) (int, []byte, error) {
	if !p.enabled() {
		return attempt(ctx)
	}

	var (
		status int
		body   []byte
		last   error
	)
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		status, body, last = attempt(ctx)
		switch {
		case last != nil:
			if errors.Is(last, context.Canceled) {
				return last
			}
			return retry.RetryableError(last)
		case retryableStatus(status):
			return retry.RetryableError(fmt.Errorf("status %d", status))
		}
		return nil
	})

	if last != nil {
		return 0, nil, last
	}
	if status == 0 && err != nil {
		// cancelled before the first attempt completed
		return 0, nil, err
	}
	return status, body, nil
}

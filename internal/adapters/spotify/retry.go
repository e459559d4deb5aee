package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

// doRequestWithRetry sends req, retrying on transport errors, 429 and 5xx
// responses with exponential backoff. A Retry-After header, when present,
// overrides the computed backoff.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("request canceled: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		retryAfter, retry := shouldRetry(resp, err)
		if !retry {
			return resp, err
		}

		if err != nil {
			c.log.Warn().Err(err).
				Int("attempt", attempt+1).
				Int("max", c.maxRetries).
				Msg("spotify request retry")
		} else if resp != nil {
			c.log.Warn().
				Int("status", resp.StatusCode).
				Int("attempt", attempt+1).
				Int("max", c.maxRetries).
				Msg("spotify request retry")
			_ = resp.Body.Close()
		}

		if attempt == c.maxRetries-1 {
			if err != nil {
				return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, err)
			}
			if resp != nil {
				return nil, fmt.Errorf("request failed after %d attempts: status %d", c.maxRetries, resp.StatusCode)
			}
			return nil, fmt.Errorf("request failed after %d attempts", c.maxRetries)
		}

		backoff := c.baseBackoff * time.Duration(1<<attempt)
		if retryAfter > 0 {
			backoff = retryAfter
		}
		if err := sleepWithContext(ctx, backoff); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts", c.maxRetries)
}

func shouldRetry(resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		return 0, true
	}
	if resp == nil {
		return 0, false
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return parseRetryAfter(resp), true
	}

	return 0, false
}

func parseRetryAfter(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if when, err := http.ParseTime(retryAfter); err == nil {
		if until := time.Until(when); until > 0 {
			return until
		}
	}

	return 0
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

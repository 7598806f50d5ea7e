// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the bounded retry policy for calls to the
// analysis service.
package httputil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RetryBaseDelay controls the base duration for exponential backoff
// between attempts. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetriesCap bounds the number of extra attempts regardless of config.
const MaxRetriesCap = 3

// Retryable reports whether a status code is a transient service failure.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoWithRetry executes req and, when maxRetries > 0, retries transient
// failures (network errors other than context cancellation, and statuses
// for which Retryable is true) with exponential backoff starting at
// RetryBaseDelay. maxRetries <= 0 sends exactly one request; values above
// MaxRetriesCap are clamped.
//
// body is replayed on each attempt. On each retried response the body is
// drained and closed before sleeping. If ctx ends during a backoff wait
// the function returns ctx.Err(). After exhausting retries the last
// response (or error) is returned as-is so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, body []byte, maxRetries int, log zerolog.Logger) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if maxRetries > MaxRetriesCap {
		maxRetries = MaxRetriesCap
	}

	for attempt := 0; ; attempt++ {
		r := req.Clone(ctx)
		if body != nil {
			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
		}

		resp, err := client.Do(r)
		if attempt >= maxRetries {
			return resp, err
		}

		switch {
		case err != nil:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return nil, err
			}
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("analysis request failed, retrying")
		case Retryable(resp.StatusCode):
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt+1).Msg("analysis service unavailable, retrying")
		default:
			return resp, nil
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

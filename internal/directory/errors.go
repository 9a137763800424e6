// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package directory

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Sentinel error kinds for directory calls. Callers branch with
// errors.Is; the *Error wrapper carries the HTTP context.
var (
	// ErrRateLimited is HTTP 429. Retryable.
	ErrRateLimited = errors.New("directory: rate limited")

	// ErrNotFound is HTTP 404: the term, cause, or identifier simply
	// yields nothing. Never retried, never trips the breaker.
	ErrNotFound = errors.New("directory: not found")

	// ErrBadRequest is any other 4xx. Never retried.
	ErrBadRequest = errors.New("directory: bad request")

	// ErrServerError is a 5xx response. Retryable.
	ErrServerError = errors.New("directory: server error")

	// ErrTimeout is a per-call timeout. Retryable.
	ErrTimeout = errors.New("directory: timeout")

	// ErrNetwork is a transport failure (DNS, refused connection).
	// Not retried: a dead endpoint rarely revives within a backoff.
	ErrNetwork = errors.New("directory: network error")

	// ErrUnavailable is a call rejected by the circuit breaker.
	ErrUnavailable = errors.New("directory: provider unavailable")
)

// maxErrorBodySize limits how much of an error response body is read,
// preventing unbounded allocation on large upstream error pages.
const maxErrorBodySize = 64 * 1024 // 64KB

// Error is a failed directory call with its classification and HTTP
// context. Unwrap exposes both the sentinel kind and any underlying
// transport error, so errors.Is works against either.
type Error struct {
	Op         string // "search", "browse", "details", "ping"
	Kind       error  // one of the sentinel kinds above
	StatusCode int    // zero when the failure happened before a response
	Body       string // truncated response body, for diagnostics
	RetryAfter time.Duration
	Err        error // underlying error, if any
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("directory %s: %v (status %d)", e.Op, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("directory %s: %v: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("directory %s: %v", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Retryable reports whether the error is worth retrying per the client's
// backoff policy: rate limits, 5xx, and timeouts qualify.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrServerError) ||
		errors.Is(err, ErrTimeout)
}

// readBodyForError reads at most maxErrorBodySize bytes of a response
// body for diagnostics, marking truncation.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

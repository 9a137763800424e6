// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/hurakan/feelgive-sub000/internal/metrics"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

// BreakerClient wraps an API with a circuit breaker so a struggling
// provider is given room to recover instead of being hammered by
// retry storms.
//
// The breaker opens after 10+ requests in the rolling interval with a
// 60%+ failure ratio, stays open for 2 minutes, then allows 3 probe
// requests in half-open state. NotFound and other 4xx results count as
// successes: a missing record is an answer, not an outage.
type BreakerClient struct {
	inner   API
	breaker *gobreaker.CircuitBreaker[interface{}]
	logger  zerolog.Logger
}

// NewBreakerClient wraps inner with a circuit breaker.
func NewBreakerClient(inner API, logger zerolog.Logger) *BreakerClient {
	log := logger.With().Str("component", "directory-breaker").Logger()

	settings := gobreaker.Settings{
		Name:        "directory",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// A definitive provider answer is not a provider failure.
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrBadRequest)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).
				Str("from", stateToString(from)).Str("to", stateToString(to)).
				Msg("Circuit breaker state changed")
			metrics.RecordBreakerTransition(name, stateToString(from), stateToString(to), stateToFloat(to))
		},
	}

	return &BreakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[interface{}](settings),
		logger:  log,
	}
}

// Search finds organizations matching a free-text term.
func (b *BreakerClient) Search(ctx context.Context, term string, opts SearchOptions) ([]models.Candidate, error) {
	result, err := b.execute("search", func() (interface{}, error) {
		return b.inner.Search(ctx, term, opts)
	})
	if err != nil {
		return nil, err
	}
	return castResult[[]models.Candidate]("search", result)
}

// Browse lists organizations under a cause tag.
func (b *BreakerClient) Browse(ctx context.Context, cause string, opts BrowseOptions) ([]models.Candidate, error) {
	result, err := b.execute("browse", func() (interface{}, error) {
		return b.inner.Browse(ctx, cause, opts)
	})
	if err != nil {
		return nil, err
	}
	return castResult[[]models.Candidate]("browse", result)
}

// GetDetails fetches the full record for one organization.
func (b *BreakerClient) GetDetails(ctx context.Context, identifier string) (*models.CharityDetails, error) {
	result, err := b.execute("details", func() (interface{}, error) {
		return b.inner.GetDetails(ctx, identifier)
	})
	if err != nil {
		return nil, err
	}
	return castResult[*models.CharityDetails]("details", result)
}

// Ping verifies the provider is reachable. Probes bypass the breaker:
// health checks are how an open breaker learns the provider is back.
func (b *BreakerClient) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx)
}

// State reports the breaker's current state name.
func (b *BreakerClient) State() string {
	return stateToString(b.breaker.State())
}

// execute runs fn through the breaker and normalizes rejections into
// the typed unavailable error.
func (b *BreakerClient) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.breaker.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordBreakerRequest("directory", "rejected")
			return nil, &Error{Op: op, Kind: ErrUnavailable, Err: err}
		}
		metrics.RecordBreakerRequest("directory", "failure")
		return nil, err
	}
	metrics.RecordBreakerRequest("directory", "success")
	return result, nil
}

// castResult asserts the breaker's untyped result back to T.
func castResult[T any](op string, result interface{}) (T, error) {
	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, &Error{Op: op, Kind: ErrServerError,
			Err: fmt.Errorf("unexpected result type %T", result)}
	}
	return typed, nil
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

var _ API = (*BreakerClient)(nil)

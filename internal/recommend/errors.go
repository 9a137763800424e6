// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAllSourcesFailed means every candidate-generation call failed.
// Distinct from a genuinely empty result set: callers must not present
// an upstream outage as "no organizations found".
var ErrAllSourcesFailed = errors.New("recommend: all candidate sources failed")

// SourceFailure records one failed generation call for debugging and
// partial-failure accounting.
type SourceFailure struct {
	Source string // "browse" or "search"
	Query  string // the cause or term that failed
	Err    error
}

// Describe renders the failure for the debug block.
func (f SourceFailure) Describe() string {
	return fmt.Sprintf("%s %q: %v", f.Source, f.Query, f.Err)
}

// AllSourcesFailedError carries the individual failures behind
// ErrAllSourcesFailed.
type AllSourcesFailedError struct {
	Failures []SourceFailure
}

func (e *AllSourcesFailedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Describe())
	}
	return fmt.Sprintf("recommend: all %d candidate sources failed: %s",
		len(e.Failures), strings.Join(parts, "; "))
}

func (e *AllSourcesFailedError) Unwrap() error {
	return ErrAllSourcesFailed
}

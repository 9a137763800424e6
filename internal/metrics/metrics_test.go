// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{"recommendations success", "POST", "/api/v1/recommendations", "200", 850 * time.Millisecond},
		{"cache stats", "GET", "/api/v1/cache/stats", "200", 2 * time.Millisecond},
		{"validation failure", "POST", "/api/v1/recommendations", "400", 1 * time.Millisecond},
		{"upstream outage", "POST", "/api/v1/recommendations", "502", 9 * time.Second},
		{"health probe", "GET", "/api/v1/health", "200", 500 * time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+2 {
		t.Errorf("active requests = %f, want %f", got, before+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %f, want %f after release", got, before)
	}
}

func TestRecordDirectoryRequestOutcomes(t *testing.T) {
	outcomes := []string{
		OutcomeSuccess, OutcomeRateLimited, OutcomeNotFound,
		OutcomeServerError, OutcomeTimeout, OutcomeNetworkError, OutcomeRejected,
	}
	for _, outcome := range outcomes {
		RecordDirectoryRequest("search", outcome, 120*time.Millisecond)
	}
	RecordDirectoryRequest("browse", OutcomeSuccess, 80*time.Millisecond)
	RecordDirectoryRequest("details", OutcomeSuccess, 40*time.Millisecond)
	RecordDirectoryRetry("search")

	got := testutil.ToFloat64(DirectoryRequestsTotal.WithLabelValues("search", OutcomeRateLimited))
	if got < 1 {
		t.Errorf("search/rate_limited counter = %f, want >= 1", got)
	}
}

func TestCacheCounters(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("details"))

	RecordCacheHit("details")
	RecordCacheHit("details")
	RecordCacheMiss("details")
	UpdateCacheGauges("details", 42)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("details")); got != hitsBefore+2 {
		t.Errorf("details hits = %f, want %f", got, hitsBefore+2)
	}
	if got := testutil.ToFloat64(CacheEntries.WithLabelValues("details")); got != 42 {
		t.Errorf("details entries gauge = %f, want 42", got)
	}
}

func TestPipelineMetrics(t *testing.T) {
	RecordPipelineOutcome("success")
	RecordPipelineOutcome("cached")
	RecordPipelineOutcome("all_sources_failed")

	RecordStage(StageGenerate, 1200*time.Millisecond, 187)
	RecordStage(StageRerank, 3*time.Millisecond, 62)
	RecordStage(StageEnrich, 900*time.Millisecond, 20)
	RecordStage(StageTotal, 2200*time.Millisecond, 10)

	RecordExclusions("vetted_false", 3)
	RecordExclusions("quality_gate", 41)
	RecordExclusions("geo_unrelated", 12)
	RecordExclusions("cause_unaligned", 0) // zero must not create a sample

	RecordGenerationFailure("search")
	RecordGenerationFailure("browse")
	RecordEnrichmentFailure()

	if got := testutil.ToFloat64(CandidateExclusions.WithLabelValues("quality_gate")); got < 41 {
		t.Errorf("quality_gate exclusions = %f, want >= 41", got)
	}
}

func TestBreakerMetrics(t *testing.T) {
	RecordBreakerRequest("directory", "success")
	RecordBreakerRequest("directory", "failure")
	RecordBreakerRequest("directory", "rejected")
	RecordBreakerTransition("directory", "closed", "open", 2)

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("directory")); got != 2 {
		t.Errorf("breaker state gauge = %f, want 2 (open)", got)
	}
}

func TestMaintenanceAuthMetrics(t *testing.T) {
	for _, result := range []string{"success", "invalid_token", "invalid_jwt", "missing", "disabled"} {
		RecordMaintenanceAuth(result)
	}
}

func TestSystemMetrics(t *testing.T) {
	SetAppInfo("test", "go1.24")
	SetUptime(time.Now().Add(-90 * time.Second))

	if got := testutil.ToFloat64(AppUptime); got < 89 || got > 95 {
		t.Errorf("uptime gauge = %f, want ~90", got)
	}
}

// TestMetricsRegistered confirms every collector landed on the default
// registry under its expected family name.
func TestMetricsRegistered(t *testing.T) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gathering metrics: %v", err)
	}

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	want := []string{
		"api_requests_total",
		"api_request_duration_seconds",
		"directory_requests_total",
		"cache_hits_total",
		"circuit_breaker_state",
		"pipeline_stage_duration_seconds",
		"pipeline_exclusions_total",
		"pipeline_enrichment_failures_total",
		"app_info",
	}
	for _, name := range want {
		if _, ok := byName[name]; !ok {
			t.Errorf("metric family %q not registered", name)
		}
	}

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

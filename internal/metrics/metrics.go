// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Directory call outcomes for DirectoryRequestsTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeRateLimited  = "rate_limited"
	OutcomeNotFound     = "not_found"
	OutcomeServerError  = "server_error"
	OutcomeTimeout      = "timeout"
	OutcomeNetworkError = "network_error"
	OutcomeRejected     = "rejected"
)

// Pipeline stages for StageDuration and CandidateCount.
const (
	StageGenerate = "generate"
	StageRerank   = "rerank"
	StageEnrich   = "enrich"
	StageTotal    = "total"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Directory Provider Metrics
	DirectoryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_requests_total",
			Help: "Total number of calls to the nonprofit directory provider",
		},
		[]string{"operation", "outcome"}, // operation: "search", "browse", "details"
	)

	DirectoryRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_request_duration_seconds",
			Help:    "Duration of directory provider calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DirectoryRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_retries_total",
			Help: "Total number of retry attempts against the directory provider",
		},
		[]string{"operation"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"namespace"}, // "search", "browse", "details", "recommendation"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"namespace"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"namespace"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry and clears)",
		},
		[]string{"namespace"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Pipeline Metrics
	PipelineRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_requests_total",
			Help: "Total number of recommendation pipeline runs",
		},
		[]string{"outcome"}, // "success", "cached", "all_sources_failed", "error"
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of recommendation pipeline stages in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"stage"},
	)

	CandidateCount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_candidates",
			Help:    "Number of candidates flowing out of each pipeline stage",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200, 400},
		},
		[]string{"stage"},
	)

	CandidateExclusions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_exclusions_total",
			Help: "Total number of candidates excluded during reranking",
		},
		[]string{"reason"}, // "vetted_false", "quality_gate", "geo_unrelated", "cause_unaligned"
	)

	GenerationSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_generation_source_failures_total",
			Help: "Total number of failed candidate generation sub-calls",
		},
		[]string{"source"}, // "search", "browse"
	)

	EnrichmentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_enrichment_failures_total",
			Help: "Total number of candidates whose detail fetch failed",
		},
	)

	// Maintenance Endpoint Metrics
	MaintenanceAuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenance_auth_attempts_total",
			Help: "Total number of maintenance endpoint authentication attempts",
		},
		[]string{"result"}, // "success", "invalid_token", "invalid_jwt", "missing", "disabled"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by our own rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordDirectoryRequest records one directory provider call. The caller
// maps its typed error to an outcome constant.
func RecordDirectoryRequest(operation, outcome string, duration time.Duration) {
	DirectoryRequestsTotal.WithLabelValues(operation, outcome).Inc()
	DirectoryRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDirectoryRetry records one retry attempt.
func RecordDirectoryRetry(operation string) {
	DirectoryRetriesTotal.WithLabelValues(operation).Inc()
}

// RecordCacheHit records a hit in the named namespace.
func RecordCacheHit(namespace string) {
	CacheHits.WithLabelValues(namespace).Inc()
}

// RecordCacheMiss records a miss in the named namespace.
func RecordCacheMiss(namespace string) {
	CacheMisses.WithLabelValues(namespace).Inc()
}

// UpdateCacheGauges publishes a namespace's current entry count and
// cumulative evictions. Called by the cache janitor after each sweep.
func UpdateCacheGauges(namespace string, entries int64) {
	CacheEntries.WithLabelValues(namespace).Set(float64(entries))
}

// RecordBreakerTransition records a circuit breaker state change and the
// new state gauge value.
func RecordBreakerTransition(name, from, to string, stateValue float64) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(stateValue)
}

// RecordBreakerRequest records one request's result through a breaker.
func RecordBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordPipelineOutcome records a finished pipeline run.
func RecordPipelineOutcome(outcome string) {
	PipelineRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordStage records a pipeline stage's duration and output size.
func RecordStage(stage string, duration time.Duration, candidates int) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	CandidateCount.WithLabelValues(stage).Observe(float64(candidates))
}

// RecordExclusions adds n exclusions for a rerank reason.
func RecordExclusions(reason string, n int) {
	if n > 0 {
		CandidateExclusions.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordGenerationFailure records one failed generation sub-call.
func RecordGenerationFailure(source string) {
	GenerationSourceFailures.WithLabelValues(source).Inc()
}

// RecordEnrichmentFailure records one candidate whose detail fetch failed.
func RecordEnrichmentFailure() {
	EnrichmentFailures.Inc()
}

// RecordMaintenanceAuth records a maintenance auth attempt result.
func RecordMaintenanceAuth(result string) {
	MaintenanceAuthAttempts.WithLabelValues(result).Inc()
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// SetUptime publishes seconds since process start.
func SetUptime(since time.Time) {
	AppUptime.Set(time.Since(since).Seconds())
}

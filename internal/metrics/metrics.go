// Package metrics holds the Prometheus collectors shared by the scoring
// engine, the AI providers and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Completed instruments by classification code.
	AssessmentsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laban_assessments_completed_total",
			Help: "Total number of completed instruments",
		},
		[]string{"instrument", "code"},
	)

	// Rejected answer sequences (wrong count or invalid token).
	AssessmentsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laban_assessments_rejected_total",
			Help: "Total number of rejected answer sequences",
		},
		[]string{"instrument", "reason"},
	)

	// Result saves that failed after scoring.
	ResultSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "laban_result_save_failures_total",
			Help: "Total number of results that could not be persisted",
		},
	)

	// LLM calls by purpose and outcome (ok, invalid_json, schema_mismatch,
	// rate_limited, unavailable, error).
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laban_llm_requests_total",
			Help: "Total number of generative AI requests",
		},
		[]string{"purpose", "outcome"},
	)

	// Retries after a failed attempt, by the outcome that triggered them.
	LLMRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laban_llm_retries_total",
			Help: "Generative AI attempts retried after a transient failure",
		},
		[]string{"purpose", "outcome"},
	)

	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "laban_llm_request_duration_seconds",
			Help:    "Time spent waiting on the generative AI provider",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"purpose"},
	)

	LLMTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laban_llm_tokens_total",
			Help: "Tokens consumed by generative AI requests",
		},
		[]string{"model", "direction"}, // direction: input/output
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laban_http_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "laban_http_request_duration_seconds",
			Help:    "Time spent serving HTTP API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

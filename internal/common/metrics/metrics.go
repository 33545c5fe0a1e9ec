// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StageExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cna_stage_executions_total",
			Help: "Drafting stage executions by task type and outcome",
		},
		[]string{"task_type", "outcome"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cna_stage_duration_seconds",
			Help:    "Duration of drafting stages in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"task_type"},
	)

	DraftsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cna_drafts_generated_total",
			Help: "Reply drafts rendered by law and drafting mode",
		},
		[]string{"law", "drafting_mode"},
	)

	DraftCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cna_draft_cache_lookups_total",
			Help: "Draft cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cna_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cna_http_request_duration_seconds",
			Help: "HTTP request latency in seconds",
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInflight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cna_http_requests_inflight",
			Help: "HTTP requests currently being served",
		},
	)
)

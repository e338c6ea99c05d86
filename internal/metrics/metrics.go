// Package metrics provides Prometheus metrics for the team finder service.
// Scrape these at /metrics for dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgc_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vgc_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vgc_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Refresh worker metrics
	RefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vgc_refreshes_total",
			Help: "Total number of successful data refreshes",
		},
	)

	RefreshFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vgc_refresh_failures_total",
			Help: "Refresh cycles that failed entirely and kept the previous snapshot",
		},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vgc_refresh_duration_seconds",
			Help:    "Time taken to fetch and normalize all sheets",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	SheetFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgc_sheet_fetch_failures_total",
			Help: "Per-sheet fetch failures (timeouts, network and HTTP errors)",
		},
		[]string{"sheet"},
	)

	TeamsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vgc_teams_loaded",
			Help: "Number of teams in the current snapshot",
		},
	)

	// MCP metrics
	MCPToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgc_mcp_tool_calls_total",
			Help: "Total number of MCP tool invocations",
		},
		[]string{"tool"},
	)
)

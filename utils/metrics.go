package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Counter: total HTTP requests
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ulenguage_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Histogram: request latency
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "ulenguage_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// Counter: unlock attempts by method and outcome
	UnlockAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ulenguage_unlock_attempts_total",
			Help: "Achievement unlock attempts",
		},
		[]string{"method", "outcome"},
	)

	// Counter: translation resolutions by winning source
	TranslationResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ulenguage_translation_resolutions_total",
			Help: "Translation resolutions by source step",
		},
		[]string{"source"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, UnlockAttempts, TranslationResolutions)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teampulse_analyses_total",
			Help: "Completed signal analyses by provenance and color",
		},
		[]string{"provenance", "color"},
	)

	InferenceFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teampulse_inference_fallbacks_total",
			Help: "Inference calls that failed and fell back to the heuristic analyzer",
		},
	)

	SignalsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teampulse_signals_recorded_total",
			Help: "Signal time series points written",
		},
		[]string{"signal_type"},
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teampulse_notification_failures_total",
			Help: "Best-effort notifications that failed to send",
		},
	)

	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "teampulse_inference_duration_seconds",
			Help:    "Inference service round trip duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
	)
)

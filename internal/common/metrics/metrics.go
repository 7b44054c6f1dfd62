// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillgap_analyses_completed_total",
			Help: "Total number of gap analyses completed, by extraction source",
		},
		[]string{"source"},
	)

	AnalysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillgap_analyses_failed_total",
			Help: "Total number of gap analyses that returned an error",
		},
		[]string{"error_code"},
	)

	ExtractionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillgap_extraction_fallbacks_total",
			Help: "Times the AI strategy was skipped or rejected, by reason",
		},
		[]string{"reason"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "skillgap_analysis_duration_seconds",
			Help: "Duration of snapshot generation in seconds",
		},
		[]string{"source"},
	)

	GapsDetected = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillgap_gaps_detected",
			Help:    "Number of gaps per generated snapshot",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		},
		[]string{"source"},
	)
)

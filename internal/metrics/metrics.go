// Package metrics instruments the sky-chart pipeline with Prometheus
// collectors. The binaries are batch processes, so the collectors mainly
// serve tests and any embedding program that exposes its own registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	catalogStars = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nightsky_catalog_stars",
			Help: "Stars in the loaded catalog after magnitude filtering.",
		},
	)

	evaluationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nightsky_evaluations_total",
			Help: "Total sky-frame evaluations.",
		},
	)

	evaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nightsky_evaluation_duration_seconds",
			Help:    "Sky-frame evaluation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	evaluationEntries = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nightsky_evaluation_entries",
			Help:    "Entries produced per sky-frame evaluation.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nightsky_renders_total",
			Help: "Total rendered artifacts by mode.",
		},
		[]string{"mode"},
	)

	renderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nightsky_render_duration_seconds",
			Help:    "Artifact render duration in seconds by mode.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(catalogStars)
	prometheus.MustRegister(evaluationsTotal)
	prometheus.MustRegister(evaluationDuration)
	prometheus.MustRegister(evaluationEntries)
	prometheus.MustRegister(rendersTotal)
	prometheus.MustRegister(renderDuration)
}

// SetCatalogStars records the size of the filtered catalog.
func SetCatalogStars(n int) {
	catalogStars.Set(float64(n))
}

// RecordEvaluation records one sky-frame evaluation.
func RecordEvaluation(d time.Duration, entries int) {
	evaluationsTotal.Inc()
	evaluationDuration.Observe(d.Seconds())
	evaluationEntries.Observe(float64(entries))
}

// RecordRender records one rendered artifact. Mode is one of "static",
// "trails", or "animation".
func RecordRender(mode string, d time.Duration) {
	rendersTotal.WithLabelValues(mode).Inc()
	renderDuration.WithLabelValues(mode).Observe(d.Seconds())
}

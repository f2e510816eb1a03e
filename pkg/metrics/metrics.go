// Package metrics provides Prometheus metrics for the mapper.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FieldConversionsTotal tracks converter outcomes by type tag and status
	FieldConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "mapper",
			Name:      "field_conversions_total",
			Help:      "Total number of converter invocations by type tag, converter and status",
		},
		[]string{"type_tag", "converter", "status"},
	)

	// PlanLookupsTotal tracks mapping plan cache lookups
	PlanLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "plan_cache",
			Name:      "lookups_total",
			Help:      "Total number of mapping plan lookups by result",
		},
		[]string{"result"},
	)

	// PlanCacheErrorsTotal tracks failures of the shared plan cache backend
	PlanCacheErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "plan_cache",
			Name:      "errors_total",
			Help:      "Total number of shared plan cache failures by operation",
		},
		[]string{"operation"},
	)

	// MapDuration tracks the duration of a top level mapping call
	MapDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "mapper",
			Name:      "map_duration_seconds",
			Help:      "Duration of mapping calls in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"model", "result"},
	)

	// MediaCacheLookupsTotal tracks media asset cache lookups
	MediaCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "media_cache",
			Name:      "lookups_total",
			Help:      "Total number of media asset cache lookups by kind and result",
		},
		[]string{"kind", "result"},
	)
)

var disabled atomic.Bool

// SetEnabled turns recording on or off. Recording is on by default.
func SetEnabled(on bool) {
	disabled.Store(!on)
}

// RecordFieldConversion records the outcome of one converter invocation
func RecordFieldConversion(typeTag, converter, status string) {
	if disabled.Load() {
		return
	}
	FieldConversionsTotal.WithLabelValues(typeTag, converter, status).Inc()
}

// RecordPlanLookup records a plan cache hit or miss
func RecordPlanLookup(hit bool) {
	if disabled.Load() {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	PlanLookupsTotal.WithLabelValues(result).Inc()
}

// RecordPlanCacheError records a failed shared plan cache operation
func RecordPlanCacheError(operation string) {
	if disabled.Load() {
		return
	}
	PlanCacheErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordMap records the duration of a mapping call
func RecordMap(model, result string, durationSeconds float64) {
	if disabled.Load() {
		return
	}
	MapDuration.WithLabelValues(model, result).Observe(durationSeconds)
}

// RecordMediaCacheLookup records a media cache hit or miss
func RecordMediaCacheLookup(kind string, hit bool) {
	if disabled.Load() {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	MediaCacheLookupsTotal.WithLabelValues(kind, result).Inc()
}

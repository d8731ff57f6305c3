// Package metrics holds the Prometheus collectors shared by the table editor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "datra"

var (
	// RowsSaved counts rows persisted by a successful save, per table and operation.
	RowsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "table",
		Name:      "rows_saved_total",
		Help:      "Rows written by successful table saves, by operation.",
	}, []string{"table", "operation"})

	// SaveFailures counts saves whose commit plan could not be applied.
	SaveFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "table",
		Name:      "save_failures_total",
		Help:      "Table saves that failed to commit.",
	}, []string{"table"})

	// SaveDuration observes the wall time of a table save.
	SaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "table",
		Name:      "save_duration_seconds",
		Help:      "Duration of table saves.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"table"})

	// StructuralFallbacks counts clone/equality calls that degraded to reference semantics.
	StructuralFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "structural",
		Name:      "fallbacks_total",
		Help:      "Clone or equality operations that fell back to reference semantics.",
	}, []string{"operation"})
)

// Operation label values for RowsSaved.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

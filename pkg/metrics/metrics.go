// Package metrics holds the Prometheus collectors of the dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query kinds
const (
	KindStartup = "startup"
	KindAdHoc   = "adhoc"
	KindPreset  = "preset"
)

var (
	// WarehouseQueryDuration tracks warehouse round trips by query kind
	WarehouseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "covidash_warehouse_query_duration_seconds",
			Help:    "Duration of warehouse queries in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	// WarehouseQueryErrors counts failed warehouse queries by kind
	WarehouseQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covidash_warehouse_query_errors_total",
			Help: "Total number of failed warehouse queries",
		},
		[]string{"kind"},
	)

	// AdHocRejected counts free-text queries refused before reaching the warehouse
	AdHocRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "covidash_adhoc_rejected_total",
			Help: "Total number of ad-hoc queries rejected as not read-only",
		},
	)

	// CommentInserts counts comment documents by store and result
	CommentInserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covidash_comment_inserts_total",
			Help: "Total number of comment document inserts",
		},
		[]string{"store", "result"},
	)

	// DatasetRecords is the number of records loaded at startup
	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "covidash_dataset_records",
			Help: "Number of records in the in-memory dataset",
		},
	)
)

// ObserveQuery records one warehouse query
func ObserveQuery(kind string, started time.Time, err error) {
	WarehouseQueryDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	if err != nil {
		WarehouseQueryErrors.WithLabelValues(kind).Inc()
	}
}

// ObserveCommentInsert records one insert attempt
func ObserveCommentInsert(store string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CommentInserts.WithLabelValues(store, result).Inc()
}

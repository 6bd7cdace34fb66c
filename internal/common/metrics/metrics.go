// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BatchesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_batches_completed_total",
			Help: "Total number of bulk recommendation runs completed",
		},
		[]string{"source"},
	)

	CustomersScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_customers_scored_total",
			Help: "Total number of customers scored across all runs",
		},
	)

	CustomersSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_customers_skipped_total",
			Help: "Total number of customers skipped during bulk runs",
		},
		[]string{"reason"},
	)

	BatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommender_batch_duration_seconds",
			Help: "Duration of bulk recommendation runs in seconds",
		},
		[]string{"source"},
	)

	CatalogPlans = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommender_catalog_plans",
			Help: "Number of plans in the most recently derived catalog",
		},
	)

	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommender_dataset_rows",
			Help: "Number of customer rows in the most recently loaded dataset",
		},
	)
)

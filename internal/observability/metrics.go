// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the collector.
type Metrics struct {
	// Fetch metrics
	FetchesTotal  *prometheus.CounterVec // labeled by outcome
	FetchDuration prometheus.Histogram

	// Storage metrics
	PointsStored    prometheus.Counter
	PointsRejected  prometheus.Counter
	RevisionsLogged prometheus.Counter

	// Batch metrics
	BatchRunsTotal   prometheus.Counter
	BatchEntitiesOK  prometheus.Counter
	BatchEntitiesErr prometheus.Counter
}

// Fetch outcome label values.
const (
	OutcomeOK            = "ok"
	OutcomeConfiguration = "configuration_error"
	OutcomeConnection    = "connection_error"
	OutcomeBadDocument   = "bad_document"
	OutcomeNoData        = "no_data"
)

// New creates and registers all metrics with the default registry.
func New() *Metrics {
	return &Metrics{
		FetchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dayahead_fetches_total",
			Help: "Total fetch-and-store runs by outcome.",
		}, []string{"outcome"}),
		FetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dayahead_fetch_duration_seconds",
			Help:    "Duration of a single fetch-and-store run.",
			Buckets: prometheus.DefBuckets,
		}),
		PointsStored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dayahead_points_stored_total",
			Help: "Total price points upserted.",
		}),
		PointsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dayahead_points_rejected_total",
			Help: "Total price points rejected by store-level validation.",
		}),
		RevisionsLogged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dayahead_revisions_logged_total",
			Help: "Total price revisions appended to the audit log.",
		}),
		BatchRunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dayahead_batch_runs_total",
			Help: "Total scheduled batch runs.",
		}),
		BatchEntitiesOK: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dayahead_batch_entities_succeeded_total",
			Help: "Entities fetched successfully across batch runs.",
		}),
		BatchEntitiesErr: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dayahead_batch_entities_failed_total",
			Help: "Entities that failed across batch runs.",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

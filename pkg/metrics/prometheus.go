package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TurnsProcessed  prometheus.Counter
	SessionsCreated prometheus.Counter
	TripsSaved      prometheus.Counter
	QueryDuration   prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics registers and returns the service metrics on the given
// registerer. Callers that expose /metrics should pass the same
// registry to promhttp.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TurnsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_processed_total",
			Help:      "The total number of chat turns processed",
		}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_sessions_created_total",
			Help:      "The total number of remote agent sessions created",
		}),
		TripsSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_saved_total",
			Help:      "The total number of trips saved to the store",
		}),
		QueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_query_duration_seconds",
			Help:      "Time taken to drain one agent query stream",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

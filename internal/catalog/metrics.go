package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the catalog engine.
type Metrics struct {
	refreshes     *prometheus.CounterVec
	staleDiscards prometheus.Counter
	navigations   prometheus.Counter
}

// NewMetrics registers the catalog metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vitrine",
			Subsystem: "catalog",
			Name:      "refreshes_total",
			Help:      "Completed catalog refreshes by record origin (remote, cache, fallback).",
		}, []string{"origin"}),
		staleDiscards: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vitrine",
			Subsystem: "catalog",
			Name:      "stale_refreshes_discarded_total",
			Help:      "Refresh results discarded because a newer refresh superseded them.",
		}),
		navigations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vitrine",
			Subsystem: "catalog",
			Name:      "navigations_total",
			Help:      "Relative navigation moves that changed the active index.",
		}),
	}
}

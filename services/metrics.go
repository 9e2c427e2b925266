package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contentWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glamstudio_content_writes_total",
		Help: "Content mutations by collection, operation and outcome.",
	}, []string{"collection", "op", "outcome"})

	fallbackReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glamstudio_fallback_reads_total",
		Help: "Public reads served from built-in defaults after a store failure.",
	}, []string{"source"})

	invalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glamstudio_invalidations_total",
		Help: "Publication invalidations by publisher and outcome.",
	}, []string{"publisher", "outcome"})

	analyticsEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glamstudio_analytics_events_total",
		Help: "Analytics events by outcome: recorded, dropped or failed.",
	}, []string{"outcome"})
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

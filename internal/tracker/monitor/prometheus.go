package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	// EventsReceived counts raw events per source (poller, webhook).
	EventsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_events_received_total",
			Help: "Total number of raw events received per source.",
		},
		[]string{"source"},
	)
	EventsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_events_skipped_total",
			Help: "Total number of events skipped before enrichment, by reason.",
		},
		[]string{"reason"},
	)
	EventsThrottled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_events_throttled_total",
			Help: "Total number of events dropped by the rate governor.",
		},
	)
	AlertsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_alerts_dispatched_total",
			Help: "Total number of alerts dispatched, by verdict.",
		},
		[]string{"verdict"},
	)
	DispatchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_dispatch_failures_total",
			Help: "Total number of alert deliveries that failed.",
		},
	)
	EnrichDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_enrich_duration_seconds",
			Help:    "Time taken to enrich one token record.",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
	)
)

func init() {
	prometheus.MustRegister(
		EventsReceived,
		EventsSkipped,
		EventsThrottled,
		AlertsDispatched,
		DispatchFailures,
		EnrichDuration,
	)
}

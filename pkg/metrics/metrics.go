package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application counters. Handlers, the dispatcher and the sweeper all report
// through these so a single /metrics scrape covers the request path and the
// background path.
var (
	MeetingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "meetings",
		Name:      "created_total",
		Help:      "Number of meetings created through the API.",
	})

	MeetingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "meetings",
		Name:      "cancelled_total",
		Help:      "Number of meetings cancelled through the API.",
	})

	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "notifications",
		Name:      "sent_total",
		Help:      "Number of meeting notification emails sent.",
	})

	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "notifications",
		Name:      "failed_total",
		Help:      "Number of meeting notification emails that failed to send.",
	})

	SweeperRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "sweeper",
		Name:      "runs_total",
		Help:      "Number of lifecycle sweeper ticks executed.",
	})

	SweeperCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "sweeper",
		Name:      "completed_total",
		Help:      "Number of meetings transitioned to completed by the sweeper.",
	})

	SweeperErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "sweeper",
		Name:      "errors_total",
		Help:      "Number of per-meeting errors encountered during sweeps.",
	})
)

// Package metric exposes prometheus counters for the reminder engine.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the reminder engine counters. Constructed once at
// process start and passed by handle, mirroring the scheduler itself.
type Metrics struct {
	AlarmsScheduled   prometheus.Counter
	AlarmsFired       prometheus.Counter
	AlarmsDenied      prometheus.Counter
	AlarmsCancelled   prometheus.Counter
	StaleFires        prometheus.Counter
	NotificationsSent prometheus.Counter
	RecoveredAlarms   prometheus.Counter
}

// New creates the metric set and registers it with the given registry.
// A nil registry uses a private one, which keeps tests isolated from the
// default global registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		AlarmsScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reminder",
			Name:      "alarms_scheduled_total",
			Help:      "Alarm registrations requested, including upsert replacements.",
		}),
		AlarmsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reminder",
			Name:      "alarms_fired_total",
			Help:      "Alarm registrations that reached their target instant.",
		}),
		AlarmsDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reminder",
			Name:      "alarms_denied_total",
			Help:      "Schedule requests declined by the exact-alarm permission gate.",
		}),
		AlarmsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reminder",
			Name:      "alarms_cancelled_total",
			Help:      "Alarm registrations removed before firing.",
		}),
		StaleFires: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reminder",
			Name:      "stale_fires_total",
			Help:      "Fires for notes that were deleted or had the reminder cleared.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reminder",
			Name:      "notifications_sent_total",
			Help:      "User notifications emitted by the delivery handler.",
		}),
		RecoveredAlarms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reminder",
			Name:      "recovered_alarms_total",
			Help:      "Alarms re-armed by boot recovery or the reconcile sweep.",
		}),
	}

	reg.MustRegister(
		m.AlarmsScheduled,
		m.AlarmsFired,
		m.AlarmsDenied,
		m.AlarmsCancelled,
		m.StaleFires,
		m.NotificationsSent,
		m.RecoveredAlarms,
	)

	return m
}

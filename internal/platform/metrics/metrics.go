package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. A nil *Metrics is
// valid everywhere it is injected; the increment helpers become no-ops so
// unit tests skip registry setup.
type Metrics struct {
	AuditEntriesRecorded prometheus.Counter
	NotificationsSent    prometheus.Counter
	PermissionDenials    prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AuditEntriesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "syndik_audit_entries_recorded_total",
			Help: "Total number of audit entries appended by the recorder",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "syndik_notifications_sent_total",
			Help: "Total number of notification records fanned out to administrators",
		}),
		PermissionDenials: promauto.NewCounter(prometheus.CounterOpts{
			Name: "syndik_permission_denials_total",
			Help: "Total number of requests rejected by the permission gate",
		}),
	}
}

func (m *Metrics) IncAuditEntriesRecorded() {
	if m != nil {
		m.AuditEntriesRecorded.Inc()
	}
}

func (m *Metrics) IncNotificationsSent() {
	if m != nil {
		m.NotificationsSent.Inc()
	}
}

func (m *Metrics) IncPermissionDenials() {
	if m != nil {
		m.PermissionDenials.Inc()
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

type Prometheus struct {
	logins      *prometheus.CounterVec
	logouts     prometheus.Counter
	expirations prometheus.Counter
	merged      *prometheus.CounterVec
	restored    *prometheus.CounterVec
	checkouts   prometheus.Counter
}

// NewPrometheus creates the storefront collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Sessions created, by identity provider.",
		}, []string{"provider"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Explicit and expiry-triggered logouts.",
		}),
		expirations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Sessions found expired on read.",
		}),
		merged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guest_items_merged_total",
			Help:      "Guest entries merged into an identity store at login.",
		}, []string{"kind"}),
		restored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_restored_total",
			Help:      "Logout backups restored at login.",
		}, []string{"kind"}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Completed checkouts.",
		}),
	}

	reg.MustRegister(p.logins, p.logouts, p.expirations, p.merged, p.restored, p.checkouts)
	return p
}

func (p *Prometheus) Login(provider string) { p.logins.WithLabelValues(provider).Inc() }
func (p *Prometheus) Logout()               { p.logouts.Inc() }
func (p *Prometheus) SessionExpired()       { p.expirations.Inc() }
func (p *Prometheus) CheckoutCompleted()    { p.checkouts.Inc() }

func (p *Prometheus) GuestItemsMerged(kind string, n int) {
	if n > 0 {
		p.merged.WithLabelValues(kind).Add(float64(n))
	}
}

func (p *Prometheus) BackupRestored(kind string) {
	p.restored.WithLabelValues(kind).Inc()
}

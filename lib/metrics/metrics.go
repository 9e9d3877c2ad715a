package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics метрики проверки доступа
type Metrics struct {
	DecisionsTotal *prometheus.CounterVec
	GuardTotal     *prometheus.CounterVec
	WatchersActive prometheus.Gauge
}

var Instance *Metrics

func NewHandler(registry prometheus.Registerer) {
	Instance = NewMetrics(registry)
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		DecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hr_suite_access_decisions_total",
				Help: "Total number of access decisions by outcome and reason",
			},
			[]string{"outcome", "reason"},
		),
		GuardTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hr_suite_guard_checks_total",
				Help: "Total number of guard checks by status",
			},
			[]string{"status"},
		),
		WatchersActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hr_suite_approval_watchers_active",
				Help: "Number of running approval status watchers",
			},
		),
	}
	if registry != nil {
		registry.MustRegister(m.DecisionsTotal, m.GuardTotal, m.WatchersActive)
	}
	return m
}

// ObserveDecision nil-safe, чтобы middleware работал и без инициализированных метрик
func (m *Metrics) ObserveDecision(outcome, reason string) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(outcome, reason).Inc()
}

func (m *Metrics) ObserveGuard(status string) {
	if m == nil {
		return
	}
	m.GuardTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) WatcherStarted() {
	if m == nil {
		return
	}
	m.WatchersActive.Inc()
}

func (m *Metrics) WatcherStopped() {
	if m == nil {
		return
	}
	m.WatchersActive.Dec()
}

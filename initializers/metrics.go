package initializers

import (
	"hr-suite-backend/lib/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var MetricsRegistry *prometheus.Registry

func InitMetrics() {
	MetricsRegistry = prometheus.NewRegistry()
	MetricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.NewHandler(MetricsRegistry)
}

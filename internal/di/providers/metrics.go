package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"

	"github.com/rentwheels/rentwheels-server/internal/metrics"
)

// ProvideMetricsRegistry provides the Prometheus registry with the
// standard process and Go runtime collectors attached.
func ProvideMetricsRegistry(i do.Injector) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry, nil
}

// ProvideMetricsCollector provides the application metrics collector.
func ProvideMetricsCollector(i do.Injector) (*metrics.Collector, error) {
	registry := do.MustInvoke[*prometheus.Registry](i)
	return metrics.NewCollector(registry), nil
}

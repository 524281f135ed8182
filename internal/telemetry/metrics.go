package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — набор Prometheus метрик dpctl.
//
// Все методы безопасны для nil-получателя: компоненты, созданные
// без метрик, просто ничего не считают.
type Metrics struct {
	Registry *prometheus.Registry

	registryErrors *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	cachedTotal    prometheus.Gauge
	activations    *prometheus.CounterVec
}

// NewMetrics создаёт метрики в собственном реестре.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		registryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dpctl_registry_errors_total",
			Help: "Failed registry queries, by operation",
		}, []string{"op"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dpctl_cache_events_total",
			Help: "Cache lifecycle events (load, build, write_error)",
		}, []string{"event"}),
		cachedTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dpctl_cached_pipelines",
			Help: "Number of pipeline descriptors in the cache",
		}),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dpctl_activations_total",
			Help: "Pipeline activation attempts, by status",
		}, []string{"status"}),
	}

	m.Registry.MustRegister(m.registryErrors, m.cacheEvents, m.cachedTotal, m.activations)
	return m
}

// RegistryError увеличивает счётчик ошибок реестра для операции op.
func (m *Metrics) RegistryError(op string) {
	if m == nil {
		return
	}
	m.registryErrors.WithLabelValues(op).Inc()
}

// CacheEvent увеличивает счётчик событий кэша.
func (m *Metrics) CacheEvent(event string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(event).Inc()
}

// SetCached устанавливает число pipeline в кэше.
func (m *Metrics) SetCached(n int) {
	if m == nil {
		return
	}
	m.cachedTotal.Set(float64(n))
}

// Activation увеличивает счётчик активаций со статусом status.
func (m *Metrics) Activation(status string) {
	if m == nil {
		return
	}
	m.activations.WithLabelValues(status).Inc()
}

// WriteTextfile записывает текущие значения метрик в файл path
// в текстовом формате Prometheus.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

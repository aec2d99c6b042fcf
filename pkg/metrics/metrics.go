// Package metrics expone los colectores Prometheus de la tienda.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "peptide_store"

// Metrics agrupa los colectores registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	ordersPlaced  prometheus.Counter
	orderFailures *prometheus.CounterVec
}

// New crea y registra los colectores.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
		}, []string{"method", "route"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Órdenes creadas correctamente.",
		}),
		orderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placement_failures_total",
			Help:      "Intentos de orden fallidos por motivo.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.ordersPlaced,
		m.orderFailures,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// OrderPlaced incrementa el contador de órdenes creadas.
func (m *Metrics) OrderPlaced() {
	m.ordersPlaced.Inc()
}

// OrderFailed incrementa el contador de fallos con el motivo dado.
func (m *Metrics) OrderFailed(reason string) {
	m.orderFailures.WithLabelValues(reason).Inc()
}

// Handler devuelve el handler HTTP de exposición (/metrics).
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry expone el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

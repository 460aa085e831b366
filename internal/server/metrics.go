package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routes lists the endpoints tracked by metrics. Any other path is counted
// as "other" to bound label cardinality.
var routes = []string{"/classify", "/orbit", "/health", "/metrics"}

// Metrics holds the Prometheus collectors of the service. Each Metrics owns
// its registry so that several servers (and tests) can coexist.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	activeRequests   prometheus.Gauge
	requestDuration  *prometheus.HistogramVec
	orbitsDiscovered prometheus.Counter
	handler          http.Handler
}

// NewMetrics creates and registers the service collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orbitcalc_requests_total",
			Help: "Total number of HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbitcalc_active_requests",
			Help: "Number of HTTP requests being served.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orbitcalc_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"route"}),
		orbitsDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbitcalc_orbits_discovered_total",
			Help: "Total number of orbit representatives returned by /classify.",
		}),
	}
	m.registry.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.requestDuration,
		m.orbitsDiscovered,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, r := range routes {
		m.requestsTotal.WithLabelValues(r, strconv.Itoa(http.StatusOK))
	}
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records a completed request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// AddOrbits records the number of representatives returned by a classification.
func (m *Metrics) AddOrbits(n int) { m.orbitsDiscovered.Add(float64(n)) }

// WritePrometheus writes the exposition format to w.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// routeLabel maps a request path to its metrics label.
func routeLabel(path string) string {
	for _, r := range routes {
		if path == r {
			return r
		}
	}
	return "other"
}

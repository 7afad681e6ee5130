// Package metrics exposes the engine's Prometheus instruments.
//
// A Collector owns its registry, so tests can create as many as they like.
// Every method is safe on a nil *Collector, which lets handlers run without
// metrics wiring.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fleetdispatch"

// Batch outcomes.
const (
	OutcomeCommitted = "committed"
	OutcomeConflict  = "conflict"
	OutcomeError     = "error"
)

// Collector groups the engine's instruments.
type Collector struct {
	registry *prometheus.Registry

	batches       *prometheus.CounterVec
	batchDuration prometheus.Histogram
	assignments   *prometheus.CounterVec
	alerts        *prometheus.CounterVec
	roadToggles   *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewCollector creates a Collector with Go and process collectors attached.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "batches_total", Help: "Batch executions by outcome."},
			[]string{"outcome"},
		),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Time spent inside the execution lock per batch.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5},
		}),
		assignments: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "assignments_total", Help: "Parcel assignments by path and outcome."},
			[]string{"path", "outcome"},
		),
		alerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "alerts_total", Help: "Alerts raised by severity."},
			[]string{"severity"},
		),
		roadToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "road_toggles_total", Help: "Road segment closures and reopenings."},
			[]string{"state"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	c.registry.MustRegister(
		c.batches,
		c.batchDuration,
		c.assignments,
		c.alerts,
		c.roadToggles,
		c.httpRequests,
		c.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// BatchFinished records one batch execution.
func (c *Collector) BatchFinished(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.batches.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCommitted {
		c.batchDuration.Observe(elapsed.Seconds())
	}
}

// Assignments adds accepted and rejected parcels for an assignment path
// ("batch" or "single").
func (c *Collector) Assignments(path string, accepted, rejected int) {
	if c == nil {
		return
	}
	c.assignments.WithLabelValues(path, "accepted").Add(float64(accepted))
	c.assignments.WithLabelValues(path, "rejected").Add(float64(rejected))
}

// AlertRaised counts one alert.
func (c *Collector) AlertRaised(severity string) {
	if c == nil {
		return
	}
	c.alerts.WithLabelValues(severity).Inc()
}

// RoadToggled counts one closure or reopening.
func (c *Collector) RoadToggled(closed bool) {
	if c == nil {
		return
	}
	state := "open"
	if closed {
		state = "closed"
	}
	c.roadToggles.WithLabelValues(state).Inc()
}

// HTTPRequest records one served request.
func (c *Collector) HTTPRequest(method, path string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	code := strconv.Itoa(status)
	c.httpRequests.WithLabelValues(method, path, code).Inc()
	c.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

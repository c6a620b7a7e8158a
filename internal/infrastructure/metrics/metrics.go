// Package metrics exposes Prometheus collectors for the API process.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/domain"
	"storefront/internal/domain/association"
	"storefront/internal/infrastructure/storage/postgres"
)

const namespace = "storefront"

// Metrics owns a private registry so tests can create as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	associationOps *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates the collectors, including Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		associationOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "association_operations_total",
			Help:      "Committed association writes by relation and operation.",
		}, []string{"relation", "op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.associationOps,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAssociations counts committed writes of every service via its hooks.
func (m *Metrics) ObserveAssociations(services []association.Service) {
	for _, svc := range services {
		name := svc.Relation().Name
		hooks := svc.Hooks()
		for _, event := range []domain.HookEvent{domain.AfterCreate, domain.AfterUpdate, domain.AfterDelete} {
			counter := m.associationOps.WithLabelValues(name, opLabel(event))
			hooks.On(event, func(context.Context, association.Record) error {
				counter.Inc()
				return nil
			})
		}
	}
}

// AssociationOps returns the counter for one relation and operation.
func (m *Metrics) AssociationOps(relation, op string) prometheus.Counter {
	return m.associationOps.WithLabelValues(relation, op)
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObservePool exports connection pool gauges read on every scrape.
func (m *Metrics) ObservePool(stats func() postgres.PoolStats) {
	gauge := func(name, help string, read func(postgres.PoolStats) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(read(stats())) })
	}

	m.registry.MustRegister(
		gauge("total_conns", "Open connections.", func(s postgres.PoolStats) int32 { return s.TotalConns }),
		gauge("acquired_conns", "Connections in use.", func(s postgres.PoolStats) int32 { return s.AcquiredConns }),
		gauge("idle_conns", "Idle connections.", func(s postgres.PoolStats) int32 { return s.IdleConns }),
		gauge("max_conns", "Pool size limit.", func(s postgres.PoolStats) int32 { return s.MaxConns }),
	)
}

func opLabel(event domain.HookEvent) string {
	switch event {
	case domain.AfterCreate:
		return "create"
	case domain.AfterUpdate:
		return "update"
	case domain.AfterDelete:
		return "delete"
	}
	return string(event)
}

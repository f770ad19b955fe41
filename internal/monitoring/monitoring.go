package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	nuts "github.com/vaudience/go-nuts"
)

// Dataset labels
const (
	DatasetRecords = "records"
	DatasetAttacks = "attacks"
)

// Service provides monitoring functionality
type Service struct {
	registry *prometheus.Registry

	loaded        *prometheus.GaugeVec
	dropped       *prometheus.CounterVec
	ready         prometheus.Gauge
	loadDuration  prometheus.Gauge
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	cache         *prometheus.CounterVec
	events        *prometheus.CounterVec
}

// NewService registers the service metrics on a fresh registry
func NewService() *Service {
	return NewServiceWithRegistry(prometheus.NewRegistry())
}

// NewServiceWithRegistry registers the service metrics on reg
func NewServiceWithRegistry(reg *prometheus.Registry) *Service {
	s := &Service{
		registry: reg,
		loaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "swat_dataset_rows_loaded",
			Help: "Rows held in memory after the load phase.",
		}, []string{"dataset"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swat_dataset_rows_dropped_total",
			Help: "Rows discarded during load because their timestamps did not normalize.",
		}, []string{"dataset"}),
		ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "swat_dataset_ready",
			Help: "1 once the dataset is loaded and queries are served.",
		}),
		loadDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "swat_dataset_load_seconds",
			Help: "Wall time of the last load phase.",
		}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swat_queries_total",
			Help: "Query engine calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swat_query_duration_seconds",
			Help:    "Query engine latency by operation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"operation"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swat_history_cache_total",
			Help: "History cache lookups by result.",
		}, []string{"result"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swat_events_total",
			Help: "Lifecycle events recorded by the service.",
		}, []string{"event"}),
	}

	reg.MustRegister(
		s.loaded, s.dropped, s.ready, s.loadDuration,
		s.queries, s.queryDuration, s.cache, s.events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

// Handler exposes the registry in the Prometheus text format
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	s.events.WithLabelValues(eventName).Inc()
	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
}

// RecordLoad publishes the outcome of one dataset's load
func (s *Service) RecordLoad(dataset string, kept, dropped int) {
	s.loaded.WithLabelValues(dataset).Set(float64(kept))
	s.dropped.WithLabelValues(dataset).Add(float64(dropped))
}

// SetReady flips the readiness gauge and records the load duration
func (s *Service) SetReady(ready bool, took time.Duration) {
	if ready {
		s.ready.Set(1)
	} else {
		s.ready.Set(0)
	}
	s.loadDuration.Set(took.Seconds())
}

// ObserveQuery counts one query and its latency
func (s *Service) ObserveQuery(operation string, err error, took time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.queries.WithLabelValues(operation, outcome).Inc()
	s.queryDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// ObserveCache counts a history cache lookup result (hit, miss, error)
func (s *Service) ObserveCache(result string) {
	s.cache.WithLabelValues(result).Inc()
}

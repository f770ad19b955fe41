// FilePath: internal/service/service.go
package service

import (
	"fmt"
	"time"

	"github.com/itsatony/swat_playback/internal/cache"
	"github.com/itsatony/swat_playback/internal/dataset"
	"github.com/itsatony/swat_playback/internal/errors"
	"github.com/itsatony/swat_playback/internal/models"
)

// Operation names used for query metrics
const (
	OpInfo        = "info"
	OpByIndex     = "by_index"
	OpByTimestamp = "by_timestamp"
	OpHistory     = "history"
	OpAttacks     = "attacks"
)

// Cache lookup outcomes
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// DatasetProvider exposes the published snapshot and the load lifecycle.
// *dataset.Loader implements it.
type DatasetProvider interface {
	Snapshot() (*dataset.Snapshot, bool)
	State() (models.LoadState, error)
	Status() models.LoadStatus
}

// QueryObserver receives per-query metrics. *monitoring.Service implements it.
type QueryObserver interface {
	ObserveQuery(operation string, err error, took time.Duration)
	ObserveCache(result string)
}

// Service answers dashboard queries against the loaded dataset
type Service struct {
	data    DatasetProvider
	cache   cache.HistoryCache
	metrics QueryObserver
	version string
}

// Option configures a Service
type Option func(*Service)

// WithHistoryCache caches history windows in c
func WithHistoryCache(c cache.HistoryCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithMetrics reports query metrics to m
func WithMetrics(m QueryObserver) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithVersion sets the version reported by Status
func WithVersion(v string) Option {
	return func(s *Service) {
		s.version = v
	}
}

// New creates a new service instance
func New(data DatasetProvider, opts ...Option) *Service {
	s := &Service{data: data}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks if all required dependencies are initialized
func (s *Service) Validate() error {
	if s.data == nil {
		return errors.NewInternalError("missing dataset provider", nil)
	}
	return nil
}

// Status summarizes the dataset lifecycle for the health route
func (s *Service) Status() models.LoadStatus {
	status := s.data.Status()
	status.Version = s.version
	return status
}

// snapshot returns the ready dataset or a DataNotReady error
func (s *Service) snapshot() (*dataset.Snapshot, error) {
	if snap, ok := s.data.Snapshot(); ok {
		return snap, nil
	}
	state, err := s.data.State()
	if state == models.StateFailed {
		return nil, errors.NewDataNotReadyError(fmt.Sprintf("Data failed to load: %v", err), err)
	}
	return nil, errors.NewDataNotReadyError("Data not loaded yet", nil)
}

func (s *Service) observe(op string, started time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveQuery(op, err, time.Since(started))
	}
}

func (s *Service) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.ObserveCache(result)
	}
}

// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/itsatony/swat_playback/api"
	"github.com/itsatony/swat_playback/internal/cache"
	"github.com/itsatony/swat_playback/internal/config"
	"github.com/itsatony/swat_playback/internal/database"
	"github.com/itsatony/swat_playback/internal/dataset"
	"github.com/itsatony/swat_playback/internal/ingest"
	"github.com/itsatony/swat_playback/internal/monitoring"
	"github.com/itsatony/swat_playback/internal/service"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	metricsSrv *http.Server
	loader     *dataset.Loader
	service    *service.Service
	monitoring *monitoring.Service
	db         database.DB
	cache      *cache.RedisHistoryCache
	cancelLoad context.CancelFunc
	loadDone   chan struct{}
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:   cfg,
		srv:      srv,
		loadDone: make(chan struct{}),
	}
}

// Start wires the services, begins listening and loads the dataset in the
// background. It blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	if err := s.Init(context.Background()); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.srv.Addr, err)
	}
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()
	s.startMetricsServer()
	s.startLoad()

	return s.waitForShutdown()
}

// Init builds sources, loader, cache, service and routes without listening
func (s *Server) Init(ctx context.Context) error {
	s.monitoring = monitoring.NewService()

	records, attacks, err := s.initSources()
	if err != nil {
		return err
	}
	s.loader = dataset.New(records, attacks, dataset.WithObserver(s.monitoring))
	s.setupEventHandlers()

	opts := []service.Option{
		service.WithMetrics(s.monitoring),
		service.WithVersion(nuts.GetVersion()),
	}
	if c := s.initCache(ctx); c != nil {
		s.cache = c
		opts = append(opts, service.WithHistoryCache(c))
	}
	s.service = service.New(s.loader, opts...)
	if err := s.service.Validate(); err != nil {
		return err
	}

	s.srv.Handler = api.NewRouter(s.service, s.config.Server).Handler()
	return nil
}

// Handler returns the API handler built by Init
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Loader returns the dataset loader built by Init
func (s *Server) Loader() *dataset.Loader {
	return s.loader
}

func (s *Server) startLoad() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelLoad = cancel
	go func() {
		defer close(s.loadDone)
		nuts.L.Infof("[Server] Loading dataset from %s", s.config.Dataset.Source)
		// failures are logged and kept by the loader; the server keeps serving
		_ = s.loader.Load(ctx)
	}()
}

func (s *Server) startMetricsServer() {
	port := s.config.Monitoring.PrometheusPort
	if port <= 0 {
		return
	}
	router := mux.NewRouter()
	router.Handle("/metrics", s.monitoring.Handler()).Methods(http.MethodGet)
	s.metricsSrv = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Server.Host, port),
		Handler: router,
	}
	go func() {
		nuts.L.Infof("[Server] Serving metrics on %s/metrics", s.metricsSrv.Addr)
		if err := s.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Metrics server error: %v", err)
		}
	}()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")
	return s.Shutdown()
}

// Shutdown stops the servers, cancels a running load and releases connections
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if s.cancelLoad != nil {
		s.cancelLoad()
		select {
		case <-s.loadDone:
		case <-ctx.Done():
			nuts.L.Warnf("[Server] Dataset load did not stop before shutdown timeout")
		}
	}

	if s.metricsSrv != nil {
		if err := s.metricsSrv.Shutdown(ctx); err != nil {
			nuts.L.Warnf("[Server] Error shutting down metrics server: %v", err)
		}
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing redis: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing database: %v", err)
		}
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupEventHandlers() {
	s.loader.OnEvent(dataset.EventAttacksLoaded, func(count string) {
		s.monitoring.RecordEvent("attacks_loaded", map[string]string{"attacks": count})
	})
	s.loader.OnEvent(dataset.EventRecordsLoaded, func(count string) {
		s.monitoring.RecordEvent("records_loaded", map[string]string{"records": count})
	})
	s.loader.OnEvent(dataset.EventReady, func(count string) {
		s.monitoring.RecordEvent("dataset_ready", map[string]string{"records": count})
	})
	s.loader.OnEvent(dataset.EventFailed, func(reason string) {
		s.monitoring.RecordEvent("dataset_failed", map[string]string{"error": reason})
	})
}

// initSources creates the sensor and attack row sources for the configured backend
func (s *Server) initSources() (ingest.Source, ingest.Source, error) {
	ds := s.config.Dataset
	switch ds.Source {
	case config.SourcePostgres:
		db, err := database.OpenPostgresDB(s.config.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		s.db = db
		nuts.L.Infof("[Server] Dataset tables: %s, %s", ds.SensorTable, ds.AttackTable)
		return ingest.NewPostgresSource(db, ds.SensorTable), ingest.NewPostgresSource(db, ds.AttackTable), nil
	case config.SourceCSV:
		nuts.L.Infof("[Server] Dataset files: %s, %s", ds.SensorCSV, ds.AttackCSV)
		return ingest.NewCSVFileSource(ds.SensorCSV), ingest.NewCSVFileSource(ds.AttackCSV), nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q", ds.Source)
	}
}

// initCache connects the optional history cache. The service runs without it
// when Redis is disabled or unreachable.
func (s *Server) initCache(ctx context.Context) *cache.RedisHistoryCache {
	if !s.config.Redis.Enabled {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := cache.NewRedisHistoryCache(ctx, s.config.Redis)
	if err != nil {
		nuts.L.Warnf("[Server] History cache disabled: %v", err)
		return nil
	}
	nuts.L.Infof("[Server] History cache enabled, ttl %v", s.config.Redis.TTL)
	return c
}

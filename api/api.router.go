// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/itsatony/swat_playback/api/middleware"
	"github.com/itsatony/swat_playback/api/resources"
	"github.com/itsatony/swat_playback/internal/config"
	"github.com/itsatony/swat_playback/internal/service"
	nuts "github.com/vaudience/go-nuts"
)

type Router struct {
	router    *mux.Router
	config    config.ServerConfig
	resources *resources.Resources
}

func NewRouter(svc *service.Service, cfg config.ServerConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		config:    cfg,
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.router.Use(middleware.RequestID, middleware.Logging)

	api := r.router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.resources.System.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/docs/swagger.json", r.resources.System.SwaggerDoc).Methods(http.MethodGet)

	// Dataset playback
	data := api.PathPrefix("/data").Subrouter()
	data.HandleFunc("/info", r.resources.Data.GetInfo).Methods(http.MethodGet)
	data.HandleFunc("/by-index/{index}", r.resources.Data.GetByIndex).Methods(http.MethodGet)
	data.HandleFunc("/by-timestamp", r.resources.Data.GetByTimestamp).Methods(http.MethodGet)
	data.HandleFunc("/history", r.resources.Data.GetHistory).Methods(http.MethodGet)

	// Attacks
	api.HandleFunc("/attacks", r.resources.Attacks.ListAttacks).Methods(http.MethodGet)

	// Dashboard
	if r.config.StaticDir != "" {
		nuts.L.Infof("[API] Serving static files from %s", r.config.StaticDir)
		r.router.PathPrefix("/").Handler(http.FileServer(http.Dir(r.config.StaticDir))).Methods(http.MethodGet, http.MethodHead)
	}
}

// Handler returns the router wrapped in CORS, compression and panic recovery
func (r *Router) Handler() http.Handler {
	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(r.config.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderRequestID}),
		handlers.ExposedHeaders([]string{middleware.HeaderRequestID}),
	)(h)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the agent's HTTP routes. The prometheus registry is the
// one the server's metrics were registered with.
func NewRouter(server *Server, registry *prometheus.Registry) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", server.metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/faults", server.metrics.InstrumentHandler("GET", "/api/v1/faults", server.handleListFaults))
		r.Get("/faults/{id}", server.metrics.InstrumentHandler("GET", "/api/v1/faults/{id}", server.handleGetFault))
	})

	return r
}

// StartServer starts the HTTP server and blocks until it fails.
func StartServer(server *Server, registry *prometheus.Registry, config ServerConfig) error {
	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	server.log.Info("starting muninn agent API", "addr", addr)
	if err := http.ListenAndServe(addr, NewRouter(server, registry)); err != nil {
		return fmt.Errorf("failed to serve API: %w", err)
	}
	return nil
}

// Package api exposes the discovered OpenAPI specifications over HTTP:
// collection listings for agent frontends, per-spec transcoding between
// YAML and JSON, raw downloads and metadata summaries.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/specdock/specdock/internal/config"
	"github.com/specdock/specdock/internal/domain/registry"
)

const shutdownTimeout = 5 * time.Second

// Server serves one immutable spec index built at startup.
type Server struct {
	log    logrus.FieldLogger
	cfg    *config.Config
	index  *registry.Index
	router chi.Router
}

// New assembles the HTTP surface around an already built spec index.
func New(log logrus.FieldLogger, cfg *config.Config, index *registry.Index) *Server {
	s := &Server{log: log, cfg: cfg, index: index}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(recordMetrics)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	if s.cfg.RateLimit.Enabled {
		r.Use(rateLimiter(s.cfg.RateLimit))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", s.handleCollections)
	r.Get("/health", s.handleHealth)
	r.Get("/specs", s.handleSpecs)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/{spec}", func(r chi.Router) {
		r.Get("/openapi.yaml", s.handleSpecYAML)
		r.Get("/openapi.json", s.handleSpecJSON)
		r.Get("/download", s.handleDownload)
		r.Get("/info", s.handleInfo)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is canceled, then drains open connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("Graceful shutdown failed: %v", err)
		}
	}()

	s.log.Infof("Listening on %s", s.cfg.Server.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("Server stopped")
	return nil
}

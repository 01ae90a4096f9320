package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/plugfox/hunchworks-server/api"
	"github.com/plugfox/hunchworks-server/internal/config"
	"github.com/plugfox/hunchworks-server/internal/controller"
	"github.com/plugfox/hunchworks-server/internal/log"
	"github.com/plugfox/hunchworks-server/internal/metrics"
	"github.com/plugfox/hunchworks-server/internal/view"
)

type Server struct {
	router  *chi.Mux
	public  chi.Router
	server  *http.Server
	hunches *controller.HunchesController
	views   *view.Renderer
	logger  *slog.Logger
}

func New(
	config *config.Config,
	logger *slog.Logger,
	metrics metrics.MetricsLogger,
	hunches *controller.HunchesController,
	views *view.Renderer,
) *Server {
	middleware.DefaultLogger = middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.NewLogAdapter(logger), NoColor: true})
	router := chi.NewRouter()
	router.Use(middlewareErrorRecoverer(logger))
	router.Use(middleware.Logger)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareMetrics(metrics))
	router.Use(middlewareMethodOverride)
	router.Use(middleware.URLFormat)
	router.Use(middleware.StripSlashes)
	if config.API.Timeout > 0 {
		router.Use(middleware.Timeout(config.API.Timeout))
	}
	router.Use(middleware.Heartbeat("/ping"))

	srv := &Server{
		router:  router,
		hunches: hunches,
		views:   views,
		logger:  logger,
	}

	router.NotFound(srv.notFound)
	router.MethodNotAllowed(srv.methodNotAllowed)

	// Public group
	srv.public = router.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
	})

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, hunches.Routes().HunchesURL(), http.StatusFound)
	})

	router.Route("/hunches", func(r chi.Router) {
		r.Get("/", srv.hunchesIndex)
		r.Get("/new", srv.hunchesNew)
		r.Get("/{id}", srv.hunchesShow)
		r.Get("/{id}/edit", srv.hunchesEdit)

		// Writes
		r.Group(func(r chi.Router) {
			if config.Secret != "" {
				r.Use(middlewareAuthorization(config.Secret, srv.unauthorized))
			}

			r.Post("/", srv.hunchesCreate)
			r.Put("/{id}", srv.hunchesUpdate)
			r.Patch("/{id}", srv.hunchesUpdate)
			r.Delete("/{id}", srv.hunchesDestroy)
		})
	})

	// Create a new HTTP server
	srv.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.API.Host, config.API.Port),
		Handler:      router,
		WriteTimeout: config.API.WriteTimeout,
		ReadTimeout:  config.API.ReadTimeout,
		IdleTimeout:  config.API.IdleTimeout,
		ErrorLog:     log.NewLogAdapter(logger),
	}

	return srv
}

// Handler returns the root handler of the server.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// AddHealthCheck adds a health check endpoint to the server.
// The statusFunc reports whether every dependency is healthy,
// along with a status line per dependency.
func (srv *Server) AddHealthCheck(statusFunc func(ctx context.Context) (bool, map[string]string)) {
	const bytesInMb = 1024 * 1024

	startedAt := time.Now() // Start time

	srv.public.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ok, status := statusFunc(r.Context())

		var memStats runtime.MemStats

		runtime.ReadMemStats(&memStats)

		data := map[string]any{
			"status": status,
			"uptime": time.Since(startedAt).String(),
			// Allocated memory / Reserved program memory
			"memory":     fmt.Sprintf("%v Mb / %v Mb", memStats.Alloc/bytesInMb, memStats.Sys/bytesInMb),
			"cpu":        runtime.NumCPU(),
			"goroutines": runtime.NumGoroutine(),
		}

		if ok {
			api.NewResponse().SetData(data).Ok(w, r)
		} else {
			api.NewResponse().SetError("status_error", "One or more services are not healthy", data).InternalServerError(w, r)
		}
	})
}

// ListenAndServe starts the server and listens for incoming requests.
func (srv *Server) ListenAndServe() error {
	srv.logger.Info("http server listening", slog.String("addr", srv.server.Addr))
	return srv.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server without interrupting any active connections.
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.server.Shutdown(ctx)
}

// Close closes the server immediately.
func (srv *Server) Close() error {
	return srv.server.Close()
}

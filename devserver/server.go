package devserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hairizuan-noorazman/user-admin/logger"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRouter wires the users API routes.
func NewRouter(store Store, log logger.Logger, metrics *Metrics) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger(log))
	if metrics != nil {
		router.Use(metrics.Middleware)
		router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}

	router.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	users := NewUserHandler(store, log)
	router.HandleFunc("/users", users.List).Methods(http.MethodGet)
	router.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", users.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", users.Update).Methods(http.MethodPatch)
	router.HandleFunc("/users/{id}", users.Delete).Methods(http.MethodDelete)

	return router
}

// MountPhotos serves the files under dir at /photos/, matching the URLs of
// local photo storage configured with a /photos public base URL.
func MountPhotos(router *mux.Router, dir string) {
	router.PathPrefix("/photos/").
		Handler(http.StripPrefix("/photos/", http.FileServer(http.Dir(dir)))).
		Methods(http.MethodGet, http.MethodHead)
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			ctx := logger.WithRequestID(r.Context(), id)
			w.Header().Set("X-Request-ID", id)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			log.Info(ctx, "request handled", map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

// Run serves handler until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config, handler http.Handler, log logger.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(context.Background(), "server stopped", nil)
	return nil
}

package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/config"
	"github.com/snowtrip/hokkaido/pkg/session"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			log.Debugf("%s %s (%s)", req.Method, req.URL.Path, time.Since(start))
		})
	})

	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}

	// Propagate X-Session-Id header into context for downstream services
	r.Use(session.Middleware)
}

// WithCors wraps the router so preflight requests are answered before routing.
func WithCors(h http.Handler, cfg config.Application) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Cors.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", session.Header},
		ExposedHeaders: []string{session.Header},
	})
	return c.Handler(h)
}

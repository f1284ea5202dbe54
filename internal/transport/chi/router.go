package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/cinema/internal/metrics"
)

// RouterOptions configures cross-cutting middleware.
type RouterOptions struct {
	APIKeys            []string
	RateLimitPerMin    int      // 0 disables rate limiting
	CORSAllowedOrigins []string // empty disables CORS
}

// NewRouter mounts the API and operational endpoints on a chi router.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(AccessLog(s.logger))
	if len(opts.CORSAllowedOrigins) > 0 {
		// Preflight requests carry no credentials, so CORS runs before auth.
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}
	r.Use(BearerAuthMiddleware(opts.APIKeys))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimitPerMin > 0 {
			r.Use(httprate.Limit(
				opts.RateLimitPerMin, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
				}),
			))
		}
		r.Get("/movies/titles", s.ListTitles)
		r.Get("/movies/top-rated", s.TopRated)
		r.Get("/recommendations", s.Recommend)
		r.Get("/stats", s.Stats)
	})

	return r
}

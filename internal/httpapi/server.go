package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"genrelay/internal/relay"
	"genrelay/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Text(ctx context.Context, message string) (string, error)
	Image(ctx context.Context, u *relay.Upload) (string, error)
	Audio(ctx context.Context, u *relay.Upload) (string, error)
	PDF(ctx context.Context, u *relay.Upload) (string, error)
	ModelInfo() map[types.Modality]string
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Post("/generate-text", handleText(svc))
	r.Post("/generate-image", handleUpload(svc.Image))
	r.Post("/generate-audio", handleUpload(svc.Audio))
	r.Post("/generate-pdf", handleUpload(svc.PDF))

	r.Get("/models", handleModels(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if swaggerEnabled {
		MountSwagger(r)
	}
	return r
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"valuation_service/pkg/httpx/reply"
	"valuation_service/pkg/logx"
	"valuation_service/pkg/middlewarex"
)

type RouterOptions struct {
	AllowedOrigins []string
	LogFieldMaxLen int
	Masker         logx.SensitiveDataMaskerInterface
	Metrics        *middlewarex.HTTPMetrics
}

// NewRouter builds the HTTP handler with the full middleware chain.
func NewRouter(s Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.ResponseLogging(opts.Masker, opts.LogFieldMaxLen),
		middlewarex.RequestLogging(opts.Masker, opts.LogFieldMaxLen),
		middlewarex.Recovery,
		cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", middlewarex.TraceIDHeader},
			ExposedHeaders:   []string{middlewarex.TraceIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.NotFound(reply.NotFound)
	r.MethodNotAllowed(reply.MethodNotAllowed)

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/valuation", func(r chi.Router) {
			r.Post("/estimate", handler(s.postEstimate))
			r.Post("/batch", handler(s.postBatch))
			r.Get("/factors", handler(s.getFactors))
			r.Get("/cities", handler(s.getCities))
			r.Get("/property-types", handler(s.getPropertyTypes))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}

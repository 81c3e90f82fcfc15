package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/logger"
	"github.com/samvad-hq/samvad-recipes/internal/preview"
)

// RecipeFetcher serves the catalog, cached when possible.
type RecipeFetcher interface {
	Fetch(ctx context.Context) ([]domain.Recipe, error)
}

// RecipeRefresher reloads the catalog from the network.
type RecipeRefresher interface {
	Refresh(ctx context.Context) ([]domain.Recipe, error)
}

// Previewer builds a link preview for one recipe.
type Previewer interface {
	Fetch(ctx context.Context, recipe domain.Recipe) (preview.Preview, error)
}

// Deps are the collaborators the HTTP facade needs. Previewer and
// OnRefresh are optional.
type Deps struct {
	Fetcher   RecipeFetcher
	Refresher RecipeRefresher
	Previewer Previewer
	// OnRefresh runs after a successful refresh, before the response is
	// written, e.g. to publish the catalog. Slow work belongs in a goroutine.
	OnRefresh func(ctx context.Context, recipes []domain.Recipe)
	Log       logger.Logger
}

// NewRouter builds the read-only catalog API.
func NewRouter(deps Deps) *chi.Mux {
	h := &handler{deps: deps, log: logger.Ensure(deps.Log)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.listRecipes)
		r.Post("/refresh", h.refresh)
		r.Get("/{uuid}", h.getRecipe)
		r.Get("/{uuid}/preview", h.previewRecipe)
	})
	r.Get("/cuisines", h.listCuisines)

	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.DebugObj("http request served", "http_request", map[string]any{
				"request_id":  middleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

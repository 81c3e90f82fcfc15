package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/logger"
	"github.com/samvad-hq/samvad-recipes/internal/preview"
	"github.com/samvad-hq/samvad-recipes/internal/recipes"
	"github.com/samvad-hq/samvad-recipes/pkg/networking"
)

type handler struct {
	deps Deps
	log  logger.Logger
}

type recipesResponse struct {
	Count   int             `json:"count"`
	Recipes []domain.Recipe `json:"recipes"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	all, ok := h.load(w, r)
	if !ok {
		return
	}
	list := domain.FilterByCuisine(all, r.URL.Query().Get("cuisine"))
	respondWithJSON(w, http.StatusOK, recipesResponse{Count: len(list), Recipes: list})
}

func (h *handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	all, ok := h.load(w, r)
	if !ok {
		return
	}
	recipe, found := domain.FindByID(all, chi.URLParam(r, "uuid"))
	if !found {
		respondWithError(w, http.StatusNotFound, "recipe not found")
		return
	}
	respondWithJSON(w, http.StatusOK, recipe)
}

func (h *handler) listCuisines(w http.ResponseWriter, r *http.Request) {
	all, ok := h.load(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, map[string][]string{"cuisines": domain.Cuisines(all)})
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	if h.deps.Refresher == nil {
		respondWithError(w, http.StatusNotImplemented, "refresh is not available")
		return
	}
	list, err := h.deps.Refresher.Refresh(r.Context())
	if err != nil {
		h.fail(w, "refresh", err)
		return
	}
	if h.deps.OnRefresh != nil {
		h.deps.OnRefresh(context.WithoutCancel(r.Context()), list)
	}
	respondWithJSON(w, http.StatusOK, recipesResponse{Count: len(list), Recipes: list})
}

func (h *handler) previewRecipe(w http.ResponseWriter, r *http.Request) {
	if h.deps.Previewer == nil {
		respondWithError(w, http.StatusNotImplemented, "preview is not available")
		return
	}
	all, ok := h.load(w, r)
	if !ok {
		return
	}
	recipe, found := domain.FindByID(all, chi.URLParam(r, "uuid"))
	if !found {
		respondWithError(w, http.StatusNotFound, "recipe not found")
		return
	}
	p, err := h.deps.Previewer.Fetch(r.Context(), recipe)
	if err != nil {
		if errors.Is(err, preview.ErrNoSourceURL) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.fail(w, "preview", err)
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (h *handler) load(w http.ResponseWriter, r *http.Request) ([]domain.Recipe, bool) {
	if h.deps.Fetcher == nil {
		respondWithError(w, http.StatusServiceUnavailable, "catalog is not available")
		return nil, false
	}
	list, err := h.deps.Fetcher.Fetch(r.Context())
	if err != nil {
		h.fail(w, "fetch", err)
		return nil, false
	}
	return list, true
}

func (h *handler) fail(w http.ResponseWriter, op string, err error) {
	code := statusFor(err)
	h.log.WarnObj("catalog request failed", "api_error", map[string]any{
		"op":     op,
		"status": code,
		"error":  err.Error(),
	})
	respondWithError(w, code, err.Error())
}

// statusFor maps catalog failures onto HTTP statuses. Upstream payload
// problems are gateway errors; anything else means the upstream was unreachable.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, recipes.ErrIncompleteData),
		errors.Is(err, recipes.ErrErrorResponse),
		errors.Is(err, networking.ErrDecoding),
		errors.Is(err, networking.ErrNonHTTPResponse):
		return http.StatusBadGateway
	case errors.Is(err, networking.ErrInvalidURL), errors.Is(err, networking.ErrEncoding):
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

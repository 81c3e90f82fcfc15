package recipes

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/logger"
	"golang.org/x/sync/singleflight"
)

const fetchKey = "recipes"

// Repository owns the single cached catalog. The slot is either empty or
// holds the last fully valid batch; it is only ever replaced whole.
type Repository struct {
	fetcher Fetcher
	mapper  *Mapper
	log     logger.Logger

	mu        sync.RWMutex
	cache     []domain.Recipe
	populated bool

	flight singleflight.Group
}

// NewRepository creates an empty repository over fetcher.
func NewRepository(fetcher Fetcher, mapper *Mapper, log logger.Logger) *Repository {
	if mapper == nil {
		mapper = NewMapper()
	}
	return &Repository{
		fetcher: fetcher,
		mapper:  mapper,
		log:     logger.Ensure(log),
	}
}

// GetRecipes serves the cache when it is populated and forceRefresh is false.
// Otherwise it fetches, maps and replaces the cache; on any failure the cache
// keeps its previous state and the error is returned unchanged.
//
// Concurrent fetches share one in-flight request. The shared request is not
// cancelled when a waiting caller's context is. A caller whose context is
// already done on entry never starts or joins a fetch.
func (r *Repository) GetRecipes(ctx context.Context, forceRefresh bool) ([]domain.Recipe, error) {
	if r == nil || r.fetcher == nil {
		return nil, fmt.Errorf("recipes repository is not initialized")
	}

	if !forceRefresh {
		if cached, ok := r.cached(); ok {
			cacheHitsCounter.Inc()
			return cached, nil
		}
		cacheMissesCounter.WithLabelValues("empty").Inc()
	} else {
		cacheMissesCounter.WithLabelValues("force_refresh").Inc()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := r.flight.DoChan(fetchKey, func() (any, error) {
		return r.fetchAndStore(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]domain.Recipe)), nil
	}
}

func (r *Repository) cached() ([]domain.Recipe, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.populated {
		return nil, false
	}
	return slices.Clone(r.cache), true
}

func (r *Repository) fetchAndStore(ctx context.Context) ([]domain.Recipe, error) {
	start := time.Now()
	defer func() { fetchDuration.Observe(time.Since(start).Seconds()) }()

	dtos, err := r.fetcher.GetRecipes(ctx)
	if err != nil {
		fetchCounter.WithLabelValues(outcomeError).Inc()
		r.log.ErrorObj("failed to fetch recipes", "recipes_fetch_error", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	outcome := r.mapper.MapAll(dtos)
	recipes, err := outcome.Records()
	if err != nil {
		fetchCounter.WithLabelValues(outcomeIncomplete).Inc()
		valid, total := outcome.Counts()
		reasons := make([]string, 0, len(outcome.Failures()))
		for _, f := range outcome.Failures() {
			reasons = append(reasons, f.Error())
		}
		r.log.WarnObj("recipes batch rejected", "recipes_batch", map[string]any{
			"valid":    valid,
			"total":    total,
			"failures": reasons,
		})
		return nil, err
	}

	r.replace(recipes)
	fetchCounter.WithLabelValues(outcomeOK).Inc()
	r.log.InfoObj("recipes cache replaced", "recipes_cache", map[string]any{
		"records":    len(recipes),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return recipes, nil
}

func (r *Repository) replace(recipes []domain.Recipe) {
	r.mu.Lock()
	r.cache = recipes
	r.populated = true
	r.mu.Unlock()
	cachedRecordsGauge.Set(float64(len(recipes)))
}

package usecase

import (
	"context"

	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/logger"
)

// RecipesRepository is the catalog source the use cases read from.
type RecipesRepository interface {
	GetRecipes(ctx context.Context, forceRefresh bool) ([]domain.Recipe, error)
}

// FetchRecipes returns the catalog, served from cache when one is held.
type FetchRecipes struct {
	repo RecipesRepository
	log  logger.Logger
}

func NewFetchRecipes(repo RecipesRepository, log logger.Logger) *FetchRecipes {
	return &FetchRecipes{repo: repo, log: logger.Ensure(log)}
}

func (u *FetchRecipes) Fetch(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := u.repo.GetRecipes(ctx, false)
	if err != nil {
		u.log.ErrorObj("fetch recipes failed", "error", err.Error())
		return nil, err
	}
	return recipes, nil
}

// RefreshRecipes always goes to the network and replaces the cache on success.
type RefreshRecipes struct {
	repo RecipesRepository
	log  logger.Logger
}

func NewRefreshRecipes(repo RecipesRepository, log logger.Logger) *RefreshRecipes {
	return &RefreshRecipes{repo: repo, log: logger.Ensure(log)}
}

func (u *RefreshRecipes) Refresh(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := u.repo.GetRecipes(ctx, true)
	if err != nil {
		u.log.ErrorObj("refresh recipes failed", "error", err.Error())
		return nil, err
	}
	return recipes, nil
}

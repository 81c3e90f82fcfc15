package recipes

import (
	"context"
	"fmt"

	"github.com/samvad-hq/samvad-recipes/internal/logger"
	"github.com/samvad-hq/samvad-recipes/pkg/networking"
)

// GetRecipesRequest describes the single catalog call: a bare GET.
func GetRecipesRequest(endpoint string) networking.Descriptor {
	return networking.Descriptor{
		Method: networking.GET,
		Path:   endpoint,
	}
}

// Fetcher retrieves the raw catalog.
type Fetcher interface {
	GetRecipes(ctx context.Context) ([]RecipeDTO, error)
}

// NetworkRequester fetches the catalog through a networking.Requester.
type NetworkRequester struct {
	requester  *networking.Requester
	classifier networking.Classifier[GetRecipesResponse, EmptyErrorResponse]
	endpoint   string
	log        logger.Logger
}

// NewNetworkRequester wires the catalog endpoint to requester. A nil
// classifier selects the status-code JSON classifier.
func NewNetworkRequester(
	requester *networking.Requester,
	endpoint string,
	classifier networking.Classifier[GetRecipesResponse, EmptyErrorResponse],
	log logger.Logger,
) *NetworkRequester {
	log = logger.Ensure(log)
	if classifier == nil {
		classifier = networking.NewStatusClassifier[GetRecipesResponse, EmptyErrorResponse](nil, log)
	}
	return &NetworkRequester{
		requester:  requester,
		classifier: classifier,
		endpoint:   endpoint,
		log:        log,
	}
}

// GetRecipes performs one request. Transport and decoding errors are
// returned unchanged; an error payload becomes ErrErrorResponse.
func (n *NetworkRequester) GetRecipes(ctx context.Context) ([]RecipeDTO, error) {
	resp, err := networking.Perform[GetRecipesResponse, EmptyErrorResponse](ctx, n.requester, GetRecipesRequest(n.endpoint), n.classifier)
	if err != nil {
		n.log.ErrorObj("recipes request failed", "recipes_request_error", map[string]any{
			"endpoint": n.endpoint,
			"error":    err.Error(),
		})
		return nil, err
	}

	if payload, ok := resp.Success(); ok {
		return payload.Recipes, nil
	}

	n.log.ErrorObj("recipes endpoint returned error payload", "recipes_request_error", map[string]any{
		"endpoint": n.endpoint,
	})
	return nil, fmt.Errorf("get recipes from %s: %w", n.endpoint, ErrErrorResponse)
}

package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/samvad-recipes/internal/domain"
)

// Event triggers.
const (
	TriggerWatch   = "watch"
	TriggerRefresh = "refresh"
	TriggerAPI     = "api"
)

// CatalogEvent is the payload published after a catalog has been loaded.
type CatalogEvent struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Trigger     string          `json:"trigger"`
	RecipeCount int             `json:"recipe_count"`
	Cuisines    []string        `json:"cuisines"`
	Recipes     []domain.Recipe `json:"recipes"`
	CollectedAt time.Time       `json:"collected_at"`
}

// NewCatalogEvent snapshots recipes loaded from source.
func NewCatalogEvent(source, trigger string, recipes []domain.Recipe) CatalogEvent {
	return CatalogEvent{
		ID:          uuid.NewString(),
		Source:      source,
		Trigger:     trigger,
		RecipeCount: len(recipes),
		Cuisines:    domain.Cuisines(recipes),
		Recipes:     recipes,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes are the routing keys sinks attach next to the payload.
func (e CatalogEvent) attributes() map[string]string {
	return map[string]string{
		"event_id": e.ID,
		"source":   e.Source,
		"trigger":  e.Trigger,
	}
}

package recipes

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/samvad-hq/samvad-recipes/internal/domain"
)

// GetRecipesResponse is the 2xx payload of the catalog endpoint.
type GetRecipesResponse struct {
	Recipes []RecipeDTO `json:"recipes"`
}

// UnmarshalJSON requires the recipes key to be present.
func (r *GetRecipesResponse) UnmarshalJSON(data []byte) error {
	var aux struct {
		Recipes *[]RecipeDTO `json:"recipes"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Recipes == nil {
		return fmt.Errorf("response is missing required key: recipes")
	}
	r.Recipes = *aux.Recipes
	return nil
}

// EmptyErrorResponse is the non-2xx payload; the endpoint sends an empty object.
type EmptyErrorResponse struct{}

// RecipeDTO mirrors one catalog entry on the wire. URL fields may be absent
// or malformed upstream; cuisine, name and uuid must be present.
type RecipeDTO struct {
	Cuisine       string  `json:"cuisine"`
	Name          string  `json:"name"`
	PhotoURLLarge *string `json:"photo_url_large,omitempty"`
	PhotoURLSmall *string `json:"photo_url_small,omitempty"`
	SourceURL     *string `json:"source_url,omitempty"`
	UUID          string  `json:"uuid"`
	YouTubeURL    *string `json:"youtube_url,omitempty"`
}

// UnmarshalJSON rejects entries that omit a required key.
func (d *RecipeDTO) UnmarshalJSON(data []byte) error {
	type plain RecipeDTO
	var aux struct {
		plain
		Cuisine *string `json:"cuisine"`
		Name    *string `json:"name"`
		UUID    *string `json:"uuid"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var missing []string
	if aux.Cuisine == nil {
		missing = append(missing, "cuisine")
	}
	if aux.Name == nil {
		missing = append(missing, "name")
	}
	if aux.UUID == nil {
		missing = append(missing, "uuid")
	}
	if len(missing) > 0 {
		return fmt.Errorf("recipe is missing required keys: %s", strings.Join(missing, ", "))
	}

	*d = RecipeDTO(aux.plain)
	d.Cuisine = *aux.Cuisine
	d.Name = *aux.Name
	d.UUID = *aux.UUID
	return nil
}

// ToDTO renders a validated recipe back into its wire shape.
func ToDTO(r domain.Recipe) RecipeDTO {
	return RecipeDTO{
		Cuisine:       r.Cuisine,
		Name:          r.Name,
		PhotoURLLarge: optionalURL(r.PhotoURLLarge),
		PhotoURLSmall: optionalURL(r.PhotoURLSmall),
		SourceURL:     optionalURL(r.SourceURL),
		UUID:          r.UUID,
		YouTubeURL:    optionalURL(r.YouTubeURL),
	}
}

func optionalURL(u *url.URL) *string {
	if u == nil {
		return nil
	}
	s := u.String()
	return &s
}

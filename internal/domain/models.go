package domain

import (
	"encoding/json"
	"net/url"
	"sort"
)

// Recipe is a fully validated catalog entry. Every URL field is parsed and
// non-nil for recipes produced by the mapper.
type Recipe struct {
	Cuisine       string
	Name          string
	PhotoURLLarge *url.URL
	PhotoURLSmall *url.URL
	SourceURL     *url.URL
	UUID          string
	YouTubeURL    *url.URL
}

// ID is the natural key of a recipe.
func (r Recipe) ID() string { return r.UUID }

type recipeJSON struct {
	Cuisine       string `json:"cuisine" yaml:"cuisine"`
	Name          string `json:"name" yaml:"name"`
	PhotoURLLarge string `json:"photo_url_large" yaml:"photo_url_large"`
	PhotoURLSmall string `json:"photo_url_small" yaml:"photo_url_small"`
	SourceURL     string `json:"source_url" yaml:"source_url"`
	UUID          string `json:"uuid" yaml:"uuid"`
	YouTubeURL    string `json:"youtube_url" yaml:"youtube_url"`
}

func (r Recipe) view() recipeJSON {
	return recipeJSON{
		Cuisine:       r.Cuisine,
		Name:          r.Name,
		PhotoURLLarge: urlString(r.PhotoURLLarge),
		PhotoURLSmall: urlString(r.PhotoURLSmall),
		SourceURL:     urlString(r.SourceURL),
		UUID:          r.UUID,
		YouTubeURL:    urlString(r.YouTubeURL),
	}
}

// MarshalJSON renders the recipe with the catalog's wire field names.
func (r Recipe) MarshalJSON() ([]byte, error) { return json.Marshal(r.view()) }

// MarshalYAML renders the recipe with the catalog's wire field names.
func (r Recipe) MarshalYAML() (interface{}, error) { return r.view(), nil }

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

// GroupByCuisine buckets recipes by cuisine, keeping input order inside each bucket.
func GroupByCuisine(recipes []Recipe) map[string][]Recipe {
	out := make(map[string][]Recipe)
	for _, r := range recipes {
		out[r.Cuisine] = append(out[r.Cuisine], r)
	}
	return out
}

// Cuisines returns the unique cuisines in alphabetical order.
func Cuisines(recipes []Recipe) []string {
	groups := GroupByCuisine(recipes)
	out := make([]string, 0, len(groups))
	for c := range groups {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FilterByCuisine returns the recipes of one cuisine. An empty cuisine keeps everything.
func FilterByCuisine(recipes []Recipe, cuisine string) []Recipe {
	if cuisine == "" {
		return recipes
	}
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.Cuisine == cuisine {
			out = append(out, r)
		}
	}
	return out
}

// FindByID returns the recipe with the given uuid.
func FindByID(recipes []Recipe, id string) (Recipe, bool) {
	for _, r := range recipes {
		if r.UUID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

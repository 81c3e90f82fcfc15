package recipes

func strPtr(s string) *string { return &s }

func validDTO(uuid, name string) RecipeDTO {
	return RecipeDTO{
		Cuisine:       "Italian",
		Name:          name,
		PhotoURLLarge: strPtr("https://example.com/large.jpg"),
		PhotoURLSmall: strPtr("https://example.com/small.jpg"),
		SourceURL:     strPtr("https://example.com"),
		UUID:          uuid,
		YouTubeURL:    strPtr("https://youtube.com/video"),
	}
}

const pizzaPayload = `{"recipes":[{"cuisine":"Italian","name":"Pizza","photo_url_large":"https://x/l.jpg","photo_url_small":"https://x/s.jpg","source_url":"https://x","uuid":"1","youtube_url":"https://y/v"}]}`

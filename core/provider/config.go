package provider

// Config holds configuration for the external metadata providers.
type Config struct {
	// JikanBaseURL is the anime catalog API root.
	JikanBaseURL string `mapstructure:"jikan_base_url" default:"https://api.jikan.moe/v4"`
	// TMDBBaseURL is the movie database API root.
	TMDBBaseURL string `mapstructure:"tmdb_base_url" default:"https://api.themoviedb.org/3"`
	// TMDBAPIKey authenticates movie database requests. Lookups are skipped when empty.
	TMDBAPIKey string `mapstructure:"tmdb_api_key" default:""`
	// ReviewBaseURL is the review aggregator site root.
	ReviewBaseURL string `mapstructure:"review_base_url" default:"https://www.rottentomatoes.com"`
	// UserAgent is sent with every provider request.
	UserAgent string `mapstructure:"user_agent" default:"anime-tracker/1.0"`
	// TimeoutSeconds bounds each provider request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

package reconcile

import (
	"anime-tracker/core/genre"
)

// Fields is the effective, persistable field set of a title.
// Optional URLs are nil when unknown; ReleaseYear 0 means unknown.
type Fields struct {
	Name          string  `json:"name"`
	Description   string  `json:"about"`
	ReleaseYear   int     `json:"release_year"`
	PosterURL     *string `json:"poster"`
	IMDbLink      *string `json:"imdb_link"`
	ReviewLink    *string `json:"rt_link"`
	StreamingLink *string `json:"crunchyroll"`
	CatalogLink   *string `json:"tmdb"`

	// Genres holds the stored genre names. Provider genres only apply while it is empty.
	Genres []string `json:"genre"`
}

// Partial carries user-supplied values. A nil pointer means "not supplied".
// Genres is nil when no list was supplied; an empty non-nil slice clears genres.
type Partial struct {
	Name          *string
	Description   *string
	ReleaseYear   *int
	PosterURL     *string
	IMDbLink      *string
	ReviewLink    *string
	StreamingLink *string
	CatalogLink   *string
	Genres        []genre.Input
}

// Mode tells the engine whether providers may be consulted.
type Mode string

const (
	// ModeCreate enriches missing fields from providers and fallbacks.
	ModeCreate Mode = "create"
	// ModeUpdate merges user values over stored ones without enrichment.
	ModeUpdate Mode = "update"
	// ModeEnrich re-runs enrichment for an existing title on request.
	ModeEnrich Mode = "enrich"
)

// Source records which layer supplied a field value.
type Source string

const (
	SourceUser     Source = "user"
	SourceStored   Source = "stored"
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
	SourceNone     Source = "none"
)

// Field names used in Result.Sources. They match the API field names.
const (
	FieldName          = "name"
	FieldDescription   = "about"
	FieldReleaseYear   = "release_year"
	FieldPoster        = "poster"
	FieldIMDbLink      = "imdb_link"
	FieldReviewLink    = "rt_link"
	FieldStreamingLink = "crunchyroll"
	FieldCatalogLink   = "tmdb"
	FieldGenres        = "genre"
)

// Result is the outcome of a reconcile run.
type Result struct {
	// Fields is the complete effective field set.
	Fields Fields

	// Genres is the normalized genre set to store when ReplaceGenres is true.
	Genres []genre.Ref

	// ReplaceGenres reports whether the stored genre set must be replaced by Genres.
	// When false the stored genres are left untouched.
	ReplaceGenres bool

	// Sources maps each field name to the layer its value came from.
	Sources map[string]Source
}

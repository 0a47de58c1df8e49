package reconcile

import (
	"context"

	"anime-tracker/core/media"
	"anime-tracker/core/provider"
)

// CatalogSource returns anime catalog metadata for a title.
type CatalogSource interface {
	FetchCatalogMetadata(ctx context.Context, title string) (*provider.Record, error)
}

// ReviewSource returns the review aggregator page for a title.
type ReviewSource interface {
	FetchReviewLink(ctx context.Context, title string, kind media.Kind) (string, error)
}

// StreamingSource returns the streaming catalog page and the IMDb page for a title.
type StreamingSource interface {
	FetchStreamingLink(ctx context.Context, title string, kind media.Kind) (string, error)
	FetchIMDbLink(ctx context.Context, title string, kind media.Kind, year int) (string, error)
}

// Sources bundles the providers consulted during enrichment.
// A nil source counts as unavailable.
type Sources struct {
	Catalog   CatalogSource
	Review    ReviewSource
	Streaming StreamingSource
}

// NewSources wires the real provider clients. Nil clients stay unavailable.
func NewSources(catalog *provider.Jikan, review *provider.RottenTomatoes, streaming *provider.TMDB) Sources {
	var s Sources
	if catalog != nil {
		s.Catalog = catalog
	}
	if review != nil {
		s.Review = review
	}
	if streaming != nil {
		s.Streaming = streaming
	}
	return s
}

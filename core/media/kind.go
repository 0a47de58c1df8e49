package media

import "fmt"

// Kind distinguishes the two title shapes tracked by the catalog.
type Kind string

const (
	KindSeries Kind = "series"
	KindMovie  Kind = "movie"
)

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSeries, KindMovie:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown title kind: %q", s)
	}
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k == KindSeries || k == KindMovie
}

// CatalogType is the media type segment used by the movie database API and site ("tv" or "movie").
func (k Kind) CatalogType() string {
	if k == KindMovie {
		return "movie"
	}
	return "tv"
}

// ReviewSegment is the review aggregator path segment ("m" or "tv").
func (k Kind) ReviewSegment() string {
	if k == KindMovie {
		return "m"
	}
	return "tv"
}

func (k Kind) String() string {
	return string(k)
}

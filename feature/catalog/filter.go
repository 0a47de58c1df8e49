package catalog

import (
	"strconv"
	"strings"

	"anime-tracker/core/apperror"
	"anime-tracker/core/media"
)

// Ordering values accepted by the list endpoint.
const (
	OrderReleaseYear     = "release_year"
	OrderReleaseYearDesc = "-release_year"
	OrderName            = "name"
	OrderNameDesc        = "-name"
)

// Filter narrows a title listing.
type Filter struct {
	Name           string
	Genre          string
	Search         string
	ReleasedAfter  *int
	ReleasedBefore *int
	Ordering       string
	Page           int
}

// NameParam returns the query parameter carrying the name filter for kind.
func NameParam(kind media.Kind) string {
	if kind == media.KindMovie {
		return "movie_name"
	}
	return "name"
}

// ParseFilter reads a Filter from query parameters. Malformed year bounds are
// validation errors, a malformed page is not found. Unknown orderings are ignored.
func ParseFilter(kind media.Kind, query map[string]string) (Filter, error) {
	f := Filter{
		Name:   strings.TrimSpace(query[NameParam(kind)]),
		Genre:  strings.TrimSpace(query["genre"]),
		Search: strings.TrimSpace(query["search"]),
		Page:   1,
	}

	var err error
	if f.ReleasedAfter, err = parseYear(query, "released_after"); err != nil {
		return Filter{}, err
	}
	if f.ReleasedBefore, err = parseYear(query, "released_before"); err != nil {
		return Filter{}, err
	}

	switch o := strings.TrimSpace(query["ordering"]); o {
	case OrderReleaseYear, OrderReleaseYearDesc, OrderName, OrderNameDesc:
		f.Ordering = o
	}

	if raw := strings.TrimSpace(query["page"]); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Filter{}, apperror.NotFound("Invalid page.")
		}
		f.Page = page
	}

	return f, nil
}

func parseYear(query map[string]string, key string) (*int, error) {
	raw := strings.TrimSpace(query[key])
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.Validation("%s: enter a whole number", key)
	}
	return &v, nil
}

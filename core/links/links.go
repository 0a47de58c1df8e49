package links

import (
	"net/url"
	"strconv"
	"strings"

	"anime-tracker/core/media"
)

const (
	reviewSiteURL    = "https://www.rottentomatoes.com"
	streamingSiteURL = "https://www.crunchyroll.com"
	imdbSiteURL      = "https://www.imdb.com"
	catalogSiteURL   = "https://www.themoviedb.org"
)

var slugReplacer = strings.NewReplacer(" ", "_", ":", "", "-", "_")

// ReviewSlug turns a title into the review aggregator's path slug:
// spaces and hyphens become underscores, colons are dropped, the result is
// lower-cased and path-escaped.
func ReviewSlug(title string) string {
	return url.PathEscape(strings.ToLower(slugReplacer.Replace(title)))
}

// ReviewFallback returns the review aggregator page guessed from the title.
//
//	ReviewFallback("Naruto", media.KindMovie) == "https://www.rottentomatoes.com/m/naruto"
func ReviewFallback(title string, kind media.Kind) string {
	return reviewSiteURL + "/" + kind.ReviewSegment() + "/" + ReviewSlug(title)
}

// StreamingFallback returns the streaming service search page for the title.
func StreamingFallback(title string) string {
	return streamingSiteURL + "/search?q=" + url.QueryEscape(title)
}

// IMDbFallback returns the IMDb search page for the title.
func IMDbFallback(title string) string {
	return imdbSiteURL + "/find?q=" + url.QueryEscape(title)
}

// CatalogFallback returns the movie database search page for the title.
func CatalogFallback(title string, kind media.Kind) string {
	return catalogSiteURL + "/search/" + kind.CatalogType() + "?query=" + url.QueryEscape(title)
}

// CatalogPage returns the movie database page for a known id.
func CatalogPage(kind media.Kind, id int) string {
	return catalogSiteURL + "/" + kind.CatalogType() + "/" + strconv.Itoa(id)
}

// IMDbTitle returns the IMDb title page for an IMDb id (e.g. "tt0409591").
func IMDbTitle(imdbID string) string {
	return imdbSiteURL + "/title/" + url.PathEscape(imdbID)
}

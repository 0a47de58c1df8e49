package provider

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"anime-tracker/core/media"

	"github.com/PuerkitoBio/goquery"
)

// RottenTomatoes is the review aggregator client. The site has no public API,
// so the search results page is parsed.
type RottenTomatoes struct {
	baseURL string
	fetcher fetcher
}

// NewRottenTomatoes creates a review aggregator client.
func NewRottenTomatoes(cfg Config, client *http.Client) *RottenTomatoes {
	return &RottenTomatoes{
		baseURL: strings.TrimRight(cfg.ReviewBaseURL, "/"),
		fetcher: fetcher{name: NameReview, client: client, userAgent: cfg.UserAgent},
	}
}

// FetchReviewLink returns the review page of the first search result of the given kind.
func (r *RottenTomatoes) FetchReviewLink(ctx context.Context, title string, kind media.Kind) (string, error) {
	q := url.Values{}
	q.Set("search", title)

	page, err := r.fetcher.get(ctx, r.baseURL+"/search?"+q.Encode())
	if err != nil {
		return "", err
	}

	href, err := r.findReviewHref(page, kind)
	if err != nil {
		return "", err
	}
	return href, nil
}

// findReviewHref picks the first result link whose path starts with the kind's segment.
func (r *RottenTomatoes) findReviewHref(page []byte, kind media.Kind) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", &Error{Provider: NameReview, Stage: "parse", Err: err}
	}

	base, err := url.Parse(r.baseURL + "/")
	if err != nil {
		return "", &Error{Provider: NameReview, Stage: "parse", Err: err}
	}

	prefix := "/" + kind.ReviewSegment() + "/"
	resultType := "tvSeries"
	if kind == media.KindMovie {
		resultType = "movie"
	}

	var found string
	doc.Find(`search-page-result[type="` + resultType + `"] a[href]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		u, err := base.Parse(strings.TrimSpace(href))
		if err != nil || !strings.HasPrefix(u.Path, prefix) || len(u.Path) <= len(prefix) {
			return true
		}
		u.RawQuery = ""
		u.Fragment = ""
		found = u.String()
		return false
	})

	if found == "" {
		return "", r.fetcher.noResult("parse")
	}
	return found, nil
}

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"anime-tracker/core/links"
	"anime-tracker/core/media"
)

// ErrMissingAPIKey is returned when the movie database key is not configured.
var ErrMissingAPIKey = errors.New("tmdb api key not configured")

// TMDB is the movie database (streaming catalog) client.
type TMDB struct {
	baseURL string
	apiKey  string
	fetcher fetcher
}

// NewTMDB creates a movie database client.
func NewTMDB(cfg Config, client *http.Client) *TMDB {
	return &TMDB{
		baseURL: strings.TrimRight(cfg.TMDBBaseURL, "/"),
		apiKey:  cfg.TMDBAPIKey,
		fetcher: fetcher{name: NameTMDB, client: client, userAgent: cfg.UserAgent},
	}
}

type tmdbSearchResponse struct {
	Results []struct {
		ID int `json:"id"`
	} `json:"results"`
}

type tmdbExternalIDs struct {
	IMDbID string `json:"imdb_id"`
}

// FetchStreamingLink returns the movie database page of the best match for title.
func (t *TMDB) FetchStreamingLink(ctx context.Context, title string, kind media.Kind) (string, error) {
	id, err := t.search(ctx, title, kind, 0)
	if err != nil {
		return "", err
	}
	return links.CatalogPage(kind, id), nil
}

// FetchIMDbLink resolves the IMDb page through the movie database's external ids.
// When year is set the search is narrowed to it first, then retried without it.
func (t *TMDB) FetchIMDbLink(ctx context.Context, title string, kind media.Kind, year int) (string, error) {
	id, err := t.search(ctx, title, kind, year)
	if errors.Is(err, ErrNoResult) && year > 0 {
		id, err = t.search(ctx, title, kind, 0)
	}
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("api_key", t.apiKey)

	var ext tmdbExternalIDs
	rawURL := fmt.Sprintf("%s/%s/%d/external_ids?%s", t.baseURL, kind.CatalogType(), id, q.Encode())
	if err := t.fetcher.getJSON(ctx, rawURL, &ext); err != nil {
		return "", err
	}
	if ext.IMDbID == "" {
		return "", t.fetcher.noResult("parse")
	}
	return links.IMDbTitle(ext.IMDbID), nil
}

func (t *TMDB) search(ctx context.Context, title string, kind media.Kind, year int) (int, error) {
	if t.apiKey == "" {
		return 0, &Error{Provider: NameTMDB, Stage: "request", Err: ErrMissingAPIKey}
	}

	q := url.Values{}
	q.Set("api_key", t.apiKey)
	q.Set("query", title)
	if year > 0 {
		if kind == media.KindMovie {
			q.Set("primary_release_year", strconv.Itoa(year))
		} else {
			q.Set("first_air_date_year", strconv.Itoa(year))
		}
	}

	var resp tmdbSearchResponse
	if err := t.fetcher.getJSON(ctx, t.baseURL+"/search/"+kind.CatalogType()+"?"+q.Encode(), &resp); err != nil {
		return 0, err
	}
	if len(resp.Results) == 0 || resp.Results[0].ID == 0 {
		return 0, t.fetcher.noResult("parse")
	}
	return resp.Results[0].ID, nil
}

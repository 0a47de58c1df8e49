package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// streamingTarget is the streaming service matched in the catalog's streaming list.
const streamingTarget = "crunchyroll"

// Jikan is the anime catalog client (MyAnimeList data through the Jikan API).
type Jikan struct {
	baseURL string
	fetcher fetcher
}

// NewJikan creates an anime catalog client.
func NewJikan(cfg Config, client *http.Client) *Jikan {
	return &Jikan{
		baseURL: strings.TrimRight(cfg.JikanBaseURL, "/"),
		fetcher: fetcher{name: NameJikan, client: client, userAgent: cfg.UserAgent},
	}
}

type jikanNamedURL struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type jikanAnime struct {
	MalID    int    `json:"mal_id"`
	Synopsis string `json:"synopsis"`
	Images   struct {
		JPG struct {
			LargeImageURL string `json:"large_image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Year  *int `json:"year"`
	Aired struct {
		Prop struct {
			From struct {
				Year *int `json:"year"`
			} `json:"from"`
		} `json:"prop"`
	} `json:"aired"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Streaming []jikanNamedURL `json:"streaming"`
}

type jikanSearchResponse struct {
	Data []jikanAnime `json:"data"`
}

type jikanExternalResponse struct {
	Data []jikanNamedURL `json:"data"`
}

// FetchCatalogMetadata searches the catalog for title and returns the first match.
// The external-links lookup is best-effort: its failure leaves IMDbLink empty.
func (j *Jikan) FetchCatalogMetadata(ctx context.Context, title string) (*Record, error) {
	q := url.Values{}
	q.Set("q", title)
	q.Set("limit", "1")

	var search jikanSearchResponse
	if err := j.fetcher.getJSON(ctx, j.baseURL+"/anime?"+q.Encode(), &search); err != nil {
		return nil, err
	}
	if len(search.Data) == 0 {
		return nil, j.fetcher.noResult("parse")
	}

	anime := search.Data[0]
	rec := &Record{
		CatalogID:   anime.MalID,
		Description: strings.TrimSpace(anime.Synopsis),
		PosterURL:   anime.Images.JPG.LargeImageURL,
		ReleaseYear: releaseYear(anime),
	}

	for _, g := range anime.Genres {
		if g.Name != "" {
			rec.Genres = append(rec.Genres, g.Name)
		}
	}

	for _, s := range anime.Streaming {
		if strings.Contains(strings.ToLower(s.Name), streamingTarget) && s.URL != "" {
			rec.StreamingLink = s.URL
			break
		}
	}

	if anime.MalID > 0 {
		j.applyExternalLinks(ctx, anime.MalID, rec)
	}

	return rec, nil
}

func (j *Jikan) applyExternalLinks(ctx context.Context, malID int, rec *Record) {
	var ext jikanExternalResponse
	if err := j.fetcher.getJSON(ctx, fmt.Sprintf("%s/anime/%d/external", j.baseURL, malID), &ext); err != nil {
		return
	}

	for _, link := range ext.Data {
		site := strings.ToLower(link.Name)
		switch {
		case strings.Contains(site, "imdb") && rec.IMDbLink == "":
			rec.IMDbLink = link.URL
		case strings.Contains(site, streamingTarget) && rec.StreamingLink == "":
			rec.StreamingLink = link.URL
		}
	}
}

func releaseYear(a jikanAnime) int {
	if a.Year != nil && *a.Year > 0 {
		return *a.Year
	}
	if y := a.Aired.Prop.From.Year; y != nil && *y > 0 {
		return *y
	}
	return 0
}

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"anime-tracker/core/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jikanSearchBody = `{
  "data": [{
    "mal_id": 20,
    "synopsis": "Moments prior to Naruto Uzumaki's birth...",
    "images": {"jpg": {"large_image_url": "https://cdn.myanimelist.net/images/anime/13/17405l.jpg"}},
    "year": null,
    "aired": {"prop": {"from": {"year": 2002}}},
    "genres": [{"name": "Action"}, {"name": "Adventure"}, {"name": ""}],
    "streaming": [
      {"name": "Netflix", "url": "https://www.netflix.com/title/70205012"},
      {"name": "Crunchyroll", "url": "https://www.crunchyroll.com/series/GY9PJ5KWR/naruto"}
    ]
  }]
}`

const jikanExternalBody = `{
  "data": [
    {"name": "Official Site", "url": "https://naruto-official.com"},
    {"name": "IMDb", "url": "https://www.imdb.com/title/tt0409591/"}
  ]
}`

func newJikanServer(t *testing.T, search, external string, externalStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/anime", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(search))
	})
	mux.HandleFunc("/anime/20/external", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(externalStatus)
		_, _ = w.Write([]byte(external))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newJikan(srv *httptest.Server) *provider.Jikan {
	cfg := provider.Config{JikanBaseURL: srv.URL, TimeoutSeconds: 2}
	return provider.NewJikan(cfg, provider.NewHTTPClient(cfg))
}

func TestJikan_FetchCatalogMetadata(t *testing.T) {
	srv := newJikanServer(t, jikanSearchBody, jikanExternalBody, http.StatusOK)

	rec, err := newJikan(srv).FetchCatalogMetadata(context.Background(), "Naruto")
	require.NoError(t, err)

	assert.Equal(t, 20, rec.CatalogID)
	assert.Equal(t, "Moments prior to Naruto Uzumaki's birth...", rec.Description)
	assert.Equal(t, "https://cdn.myanimelist.net/images/anime/13/17405l.jpg", rec.PosterURL)
	assert.Equal(t, 2002, rec.ReleaseYear, "falls back to aired.prop.from.year")
	assert.Equal(t, []string{"Action", "Adventure"}, rec.Genres)
	assert.Equal(t, "https://www.crunchyroll.com/series/GY9PJ5KWR/naruto", rec.StreamingLink)
	assert.Equal(t, "https://www.imdb.com/title/tt0409591/", rec.IMDbLink)
}

func TestJikan_ExternalLookupFailureIsIgnored(t *testing.T) {
	srv := newJikanServer(t, jikanSearchBody, `{}`, http.StatusInternalServerError)

	rec, err := newJikan(srv).FetchCatalogMetadata(context.Background(), "Naruto")
	require.NoError(t, err)
	assert.Empty(t, rec.IMDbLink)
	assert.Equal(t, 2002, rec.ReleaseYear)
}

func TestJikan_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{"Empty Data", http.StatusOK, `{"data": []}`, provider.ErrNoResult},
		{"Empty Body", http.StatusOK, ``, provider.ErrNoResult},
		{"Server Error", http.StatusServiceUnavailable, `{}`, nil},
		{"Bad JSON", http.StatusOK, `{"data": [`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			rec, err := newJikan(srv).FetchCatalogMetadata(context.Background(), "Nothing")
			assert.Nil(t, rec)
			require.Error(t, err)

			var perr *provider.Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, provider.NameJikan, perr.Provider)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestJikan_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newJikan(srv).FetchCatalogMetadata(context.Background(), "Naruto")

	var statusErr *provider.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

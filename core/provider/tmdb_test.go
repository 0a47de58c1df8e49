package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"anime-tracker/core/media"
	"anime-tracker/core/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTMDB(srv *httptest.Server, key string) *provider.TMDB {
	cfg := provider.Config{TMDBBaseURL: srv.URL, TMDBAPIKey: key, TimeoutSeconds: 2}
	return provider.NewTMDB(cfg, provider.NewHTTPClient(cfg))
}

func TestTMDB_FetchStreamingLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/tv", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		assert.Equal(t, "Naruto", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results": [{"id": 46260}, {"id": 1}]}`))
	}))
	defer srv.Close()

	link, err := newTMDB(srv, "secret").FetchStreamingLink(context.Background(), "Naruto", media.KindSeries)
	require.NoError(t, err)
	assert.Equal(t, "https://www.themoviedb.org/tv/46260", link)
}

func TestTMDB_FetchIMDbLink_RetriesWithoutYear(t *testing.T) {
	var searches []string
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		year := r.URL.Query().Get("primary_release_year")
		searches = append(searches, year)
		if year != "" {
			_, _ = w.Write([]byte(`{"results": []}`))
			return
		}
		_, _ = w.Write([]byte(`{"results": [{"id": 149}]}`))
	})
	mux.HandleFunc("/movie/149/external_ids", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imdb_id": "tt0094625"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	link, err := newTMDB(srv, "secret").FetchIMDbLink(context.Background(), "Akira", media.KindMovie, 1988)
	require.NoError(t, err)
	assert.Equal(t, "https://www.imdb.com/title/tt0094625", link)
	assert.Equal(t, []string{"1988", ""}, searches)
}

func TestTMDB_FetchIMDbLink_NoIMDbID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/tv", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2006", r.URL.Query().Get("first_air_date_year"))
		_, _ = w.Write([]byte(`{"results": [{"id": 13916}]}`))
	})
	mux.HandleFunc("/tv/13916/external_ids", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imdb_id": null}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTMDB(srv, "secret").FetchIMDbLink(context.Background(), "Death Note", media.KindSeries, 2006)
	assert.ErrorIs(t, err, provider.ErrNoResult)
}

func TestTMDB_MissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newTMDB(srv, "").FetchStreamingLink(context.Background(), "Naruto", media.KindSeries)
	assert.True(t, errors.Is(err, provider.ErrMissingAPIKey))
	assert.False(t, called, "no request without an api key")
}

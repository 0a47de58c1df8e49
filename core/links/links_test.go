package links_test

import (
	"testing"

	"anime-tracker/core/links"
	"anime-tracker/core/media"

	"github.com/stretchr/testify/assert"
)

func TestReviewFallback(t *testing.T) {
	tests := []struct {
		name  string
		title string
		kind  media.Kind
		want  string
	}{
		{"Movie", "Naruto", media.KindMovie, "https://www.rottentomatoes.com/m/naruto"},
		{"Series", "Naruto", media.KindSeries, "https://www.rottentomatoes.com/tv/naruto"},
		{"Spaces And Colon", "Attack on Titan: Final Season", media.KindSeries, "https://www.rottentomatoes.com/tv/attack_on_titan_final_season"},
		{"Hyphen", "Spider-Man", media.KindMovie, "https://www.rottentomatoes.com/m/spider_man"},
		{"Escaped", "Fate/Zero", media.KindSeries, "https://www.rottentomatoes.com/tv/fate%2Fzero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, links.ReviewFallback(tt.title, tt.kind))
		})
	}
}

func TestReviewFallback_Deterministic(t *testing.T) {
	a := links.ReviewFallback("One Piece Film: Red", media.KindMovie)
	b := links.ReviewFallback("One Piece Film: Red", media.KindMovie)
	assert.Equal(t, a, b)
}

func TestSearchFallbacks(t *testing.T) {
	assert.Equal(t, "https://www.crunchyroll.com/search?q=Naruto+Shippuden", links.StreamingFallback("Naruto Shippuden"))
	assert.Equal(t, "https://www.imdb.com/find?q=Death+Note", links.IMDbFallback("Death Note"))
	assert.Equal(t, "https://www.themoviedb.org/search/tv?query=Steins%3BGate", links.CatalogFallback("Steins;Gate", media.KindSeries))
	assert.Equal(t, "https://www.themoviedb.org/search/movie?query=Akira", links.CatalogFallback("Akira", media.KindMovie))
}

func TestPages(t *testing.T) {
	assert.Equal(t, "https://www.themoviedb.org/tv/46260", links.CatalogPage(media.KindSeries, 46260))
	assert.Equal(t, "https://www.imdb.com/title/tt0409591", links.IMDbTitle("tt0409591"))
}

package catalog

import (
	"anime-tracker/core/genre"
	"anime-tracker/core/media"
	"anime-tracker/core/utils"
	"anime-tracker/feature/catalog/models"
)

// SeriesRef is the read shape of a movie's parent series.
type SeriesRef struct {
	Name string `json:"name"`
}

// Details holds the read fields shared by both kinds.
type Details struct {
	// About is the description wrapped at 100 columns, null when empty.
	About       []string    `json:"about"`
	ReleaseYear int         `json:"release_year"`
	Poster      *string     `json:"poster"`
	IMDbLink    *string     `json:"imdb_link"`
	RTLink      *string     `json:"rt_link"`
	Crunchyroll *string     `json:"crunchyroll"`
	TMDB        *string     `json:"tmdb"`
	Genre       []genre.Ref `json:"genre"`
}

// SeriesResponse is the read shape of a series.
type SeriesResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Details
}

// MovieResponse is the read shape of a movie.
type MovieResponse struct {
	ID        uint   `json:"id"`
	MovieName string `json:"movie_name"`
	Details
	Series *SeriesRef `json:"series"`
}

// Page is the paginated list envelope.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []any   `json:"results"`
}

// Serialize renders a stored title as a SeriesResponse or a MovieResponse.
func Serialize(t *models.Title) any {
	d := Details{
		About:       utils.FormatDescription(t.About),
		ReleaseYear: t.ReleaseYear,
		Poster:      t.Poster,
		IMDbLink:    t.IMDbLink,
		RTLink:      t.ReviewLink,
		Crunchyroll: t.StreamingLink,
		TMDB:        t.CatalogLink,
		Genre:       make([]genre.Ref, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		d.Genre = append(d.Genre, genre.Ref{Name: g.Name})
	}

	if media.Kind(t.Kind) != media.KindMovie {
		return SeriesResponse{ID: t.ID, Name: t.Name, Details: d}
	}

	resp := MovieResponse{ID: t.ID, MovieName: t.Name, Details: d}
	if t.SeriesID != nil && t.Series != nil {
		resp.Series = &SeriesRef{Name: t.Series.Name}
	}
	return resp
}

// SerializeAll renders a slice of stored titles.
func SerializeAll(rows []models.Title) []any {
	out := make([]any, 0, len(rows))
	for i := range rows {
		out = append(out, Serialize(&rows[i]))
	}
	return out
}

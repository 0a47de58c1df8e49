package models

import (
	"time"

	"anime-tracker/core/reconcile"

	"gorm.io/gorm"
)

// Genre is a canonical genre row. Name is the case-sensitive identity.
type Genre struct {
	ID   uint   `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;size:100;uniqueIndex;not null"`
}

// TableName pins the table name.
func (Genre) TableName() string { return "genres" }

// Title is a series or a movie. Both kinds share the 'titles' table.
type Title struct {
	ID            uint    `gorm:"column:id;primaryKey"`
	Kind          string  `gorm:"column:kind;size:16;index;not null"`
	Name          string  `gorm:"column:name;size:255;index;not null"`
	About         string  `gorm:"column:about;type:text"`
	ReleaseYear   int     `gorm:"column:release_year;not null"`
	Poster        *string `gorm:"column:poster;size:500"`
	IMDbLink      *string `gorm:"column:imdb_link;size:500"`
	ReviewLink    *string `gorm:"column:rt_link;size:500"`
	StreamingLink *string `gorm:"column:crunchyroll;size:500"`
	CatalogLink   *string `gorm:"column:tmdb;size:500"`

	// SeriesID points a movie at its parent series. It is reset to NULL
	// when the series is deleted.
	SeriesID *uint  `gorm:"column:series_id;index"`
	Series   *Title `gorm:"foreignKey:SeriesID"`

	Genres []Genre `gorm:"many2many:title_genres;"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName pins the table name.
func (Title) TableName() string { return "titles" }

// Fields returns the reconcilable field set of the title.
func (t *Title) Fields() reconcile.Fields {
	return reconcile.Fields{
		Name:          t.Name,
		Description:   t.About,
		ReleaseYear:   t.ReleaseYear,
		PosterURL:     t.Poster,
		IMDbLink:      t.IMDbLink,
		ReviewLink:    t.ReviewLink,
		StreamingLink: t.StreamingLink,
		CatalogLink:   t.CatalogLink,
		Genres:        t.GenreNames(),
	}
}

// Apply copies a reconciled field set onto the title.
func (t *Title) Apply(f reconcile.Fields) {
	t.Name = f.Name
	t.About = f.Description
	t.ReleaseYear = f.ReleaseYear
	t.Poster = f.PosterURL
	t.IMDbLink = f.IMDbLink
	t.ReviewLink = f.ReviewLink
	t.StreamingLink = f.StreamingLink
	t.CatalogLink = f.CatalogLink
}

// GenreNames returns the genre names in stored order.
func (t *Title) GenreNames() []string {
	names := make([]string, len(t.Genres))
	for i, g := range t.Genres {
		names[i] = g.Name
	}
	return names
}

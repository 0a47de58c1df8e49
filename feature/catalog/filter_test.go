package catalog

import (
	"testing"

	"anime-tracker/core/apperror"
	"anime-tracker/core/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(media.KindMovie, map[string]string{
		"movie_name":      " naruto ",
		"name":            "ignored for movies",
		"genre":           "action",
		"released_after":  "2000",
		"released_before": "2010",
		"ordering":        "-release_year",
		"page":            "2",
	})
	require.NoError(t, err)

	assert.Equal(t, "naruto", f.Name)
	assert.Equal(t, "action", f.Genre)
	require.NotNil(t, f.ReleasedAfter)
	assert.Equal(t, 2000, *f.ReleasedAfter)
	assert.Equal(t, 2010, *f.ReleasedBefore)
	assert.Equal(t, OrderReleaseYearDesc, f.Ordering)
	assert.Equal(t, 2, f.Page)
}

func TestParseFilter_Defaults(t *testing.T) {
	f, err := ParseFilter(media.KindSeries, map[string]string{"ordering": "popularity"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Page)
	assert.Empty(t, f.Ordering)
	assert.Nil(t, f.ReleasedAfter)
}

func TestParseFilter_Errors(t *testing.T) {
	_, err := ParseFilter(media.KindSeries, map[string]string{"released_after": "abc"})
	assert.True(t, apperror.Is(err, apperror.TypeValidation))

	_, err = ParseFilter(media.KindSeries, map[string]string{"page": "0"})
	assert.True(t, apperror.Is(err, apperror.TypeNotFound))

	_, err = ParseFilter(media.KindSeries, map[string]string{"page": "last"})
	assert.True(t, apperror.Is(err, apperror.TypeNotFound))
}

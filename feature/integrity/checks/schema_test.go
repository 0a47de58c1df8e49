package checks

import (
	"testing"

	"anime-tracker/core/database"
	"anime-tracker/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckSchema_Migrated(t *testing.T) {
	db := openDB(t)
	require.NoError(t, catalog.Migrate(db))

	report, err := CheckSchema(db)
	require.NoError(t, err)

	assert.True(t, report.Matched)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Empty(t, report.Errors)
	for _, table := range []string{"titles", "genres", "title_genres"} {
		tbl, ok := report.Tables[table]
		require.True(t, ok, table)
		assert.Equal(t, "ok", tbl.Status, table)
		assert.Empty(t, tbl.MissingColumns, table)
	}
}

func TestCheckSchema_MissingTables(t *testing.T) {
	report, err := CheckSchema(openDB(t))
	require.NoError(t, err)

	assert.False(t, report.Matched)
	titles := report.Tables["titles"]
	assert.Equal(t, "missing", titles.Status)
	assert.Contains(t, titles.MissingColumns, "release_year")
	assert.Contains(t, titles.MissingColumns, "crunchyroll")
	assert.ElementsMatch(t, []string{"title_id", "genre_id"}, report.Tables["title_genres"].MissingColumns)
}

func TestCheckSchema_MissingColumn(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Exec("CREATE TABLE genres (id integer primary key)").Error)

	report, err := CheckSchema(db)
	require.NoError(t, err)

	genres := report.Tables["genres"]
	assert.Equal(t, "error", genres.Status)
	assert.Equal(t, []string{"name"}, genres.MissingColumns)
	assert.False(t, report.Matched)
}

func TestCheckSchema_NilDB(t *testing.T) {
	_, err := CheckSchema(nil)
	assert.Error(t, err)
}

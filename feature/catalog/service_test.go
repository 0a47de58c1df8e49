package catalog

import (
	"context"
	"errors"
	"testing"

	"anime-tracker/core/apperror"
	"anime-tracker/core/genre"
	"anime-tracker/core/media"
	"anime-tracker/core/provider"
	"anime-tracker/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) FetchCatalogMetadata(ctx context.Context, title string) (*provider.Record, error) {
	args := m.Called(ctx, title)
	rec, _ := args.Get(0).(*provider.Record)
	return rec, args.Error(1)
}

type mockReview struct{ mock.Mock }

func (m *mockReview) FetchReviewLink(ctx context.Context, title string, kind media.Kind) (string, error) {
	args := m.Called(ctx, title, kind)
	return args.String(0), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func newTestService(t *testing.T, sources reconcile.Sources) (*Service, Store) {
	t.Helper()
	store := NewStore(newTestDB(t))
	return NewService(store, reconcile.NewEngine(sources, nil, nil), nil, 3), store
}

func TestService_CreateEnrichesFromProviders(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("FetchCatalogMetadata", mock.Anything, "Naruto").Return(&provider.Record{
		Description: "A ninja story.",
		ReleaseYear: 2002,
		Genres:      []string{"Action", "Adventure"},
	}, nil)
	review := &mockReview{}
	review.On("FetchReviewLink", mock.Anything, "Naruto", media.KindSeries).Return("", errors.New("timeout"))

	svc, _ := newTestService(t, reconcile.Sources{Catalog: catalog, Review: review})

	title, err := svc.Create(context.Background(), media.KindSeries, TitleInput{Name: ptr("Naruto")})
	require.NoError(t, err)

	assert.Equal(t, "A ninja story.", title.About)
	assert.Equal(t, 2002, title.ReleaseYear)
	assert.Equal(t, []string{"Action", "Adventure"}, title.GenreNames())
	require.NotNil(t, title.ReviewLink)
	assert.Equal(t, "https://www.rottentomatoes.com/tv/naruto", *title.ReviewLink)
	require.NotNil(t, title.CatalogLink)
	assert.Equal(t, "https://www.themoviedb.org/search/tv?query=Naruto", *title.CatalogLink)
}

func TestService_CreateUserGenresWin(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("FetchCatalogMetadata", mock.Anything, mock.Anything).Return(&provider.Record{Genres: []string{"Drama"}}, nil)
	svc, _ := newTestService(t, reconcile.Sources{Catalog: catalog})

	title, err := svc.Create(context.Background(), media.KindSeries, TitleInput{
		Name:  ptr("Clannad"),
		Genre: genre.Names("Romance", "Romance", "Slice of Life"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Romance", "Slice of Life"}, title.GenreNames())
}

func TestService_CreateReusesExistingTitle(t *testing.T) {
	review := &mockReview{}
	svc, store := newTestService(t, reconcile.Sources{Review: review})
	ctx := context.Background()

	first, err := svc.Create(ctx, media.KindMovie, TitleInput{
		MovieName: ptr("Paprika"),
		RTLink:    ptr("https://www.rottentomatoes.com/m/paprika_2006"),
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, media.KindMovie, TitleInput{MovieName: ptr("Paprika"), ReleaseYear: ptr(2006)})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2006, second.ReleaseYear)
	assert.Equal(t, "https://www.rottentomatoes.com/m/paprika_2006", *second.ReviewLink)
	review.AssertNotCalled(t, "FetchReviewLink", mock.Anything, mock.Anything, mock.Anything)

	rows, err := store.All(ctx, media.KindMovie)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := newTestService(t, reconcile.Sources{})
	ctx := context.Background()

	_, err := svc.Create(ctx, media.KindSeries, TitleInput{})
	assert.True(t, apperror.Is(err, apperror.TypeValidation))

	_, err = svc.Create(ctx, media.KindSeries, TitleInput{Name: ptr("X"), Poster: ptr("not a url")})
	assert.True(t, apperror.Is(err, apperror.TypeValidation))

	_, err = svc.Create(ctx, media.KindMovie, TitleInput{MovieName: ptr("X"), Series: ptr(uint(99))})
	assert.True(t, apperror.Is(err, apperror.TypeValidation))

	_, err = svc.Create(ctx, media.KindSeries, TitleInput{Name: ptr("X"), Series: ptr(uint(1))})
	assert.True(t, apperror.Is(err, apperror.TypeValidation))
}

func TestService_CreateManyIsAllOrNothingOnValidation(t *testing.T) {
	svc, store := newTestService(t, reconcile.Sources{})
	ctx := context.Background()

	_, err := svc.CreateMany(ctx, media.KindSeries, []TitleInput{{Name: ptr("Ok")}, {}})
	assert.True(t, apperror.Is(err, apperror.TypeValidation))

	rows, err := store.All(ctx, media.KindSeries)
	require.NoError(t, err)
	assert.Empty(t, rows)

	titles, err := svc.CreateMany(ctx, media.KindSeries, []TitleInput{{Name: ptr("One")}, {Name: ptr("Two")}})
	require.NoError(t, err)
	assert.Len(t, titles, 2)
}

func TestService_UpdateDoesNotEnrich(t *testing.T) {
	catalog := &mockCatalog{}
	svc, store := newTestService(t, reconcile.Sources{Catalog: catalog})
	ctx := context.Background()
	seeded := seedTitle(t, store, media.KindSeries, "Monster", 2004, "A", "B")

	updated, err := svc.Update(ctx, media.KindSeries, seeded.ID, TitleInput{About: ptr("Thriller.")}, true)
	require.NoError(t, err)

	assert.Equal(t, "Thriller.", updated.About)
	assert.Equal(t, 2004, updated.ReleaseYear)
	assert.Nil(t, updated.ReviewLink)
	assert.Equal(t, []string{"A", "B"}, updated.GenreNames())
	catalog.AssertNotCalled(t, "FetchCatalogMetadata", mock.Anything, mock.Anything)

	updated, err = svc.Update(ctx, media.KindSeries, seeded.ID, TitleInput{Genre: genre.Names("C")}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, updated.GenreNames())
}

func TestService_PutRequiresName(t *testing.T) {
	svc, store := newTestService(t, reconcile.Sources{})
	seeded := seedTitle(t, store, media.KindSeries, "Monster", 2004)

	_, err := svc.Update(context.Background(), media.KindSeries, seeded.ID, TitleInput{About: ptr("x")}, false)
	assert.True(t, apperror.Is(err, apperror.TypeValidation))

	_, err = svc.Update(context.Background(), media.KindSeries, 999, TitleInput{About: ptr("x")}, true)
	assert.True(t, apperror.Is(err, apperror.TypeNotFound))
}

func TestService_EnrichFillsOnlyMissing(t *testing.T) {
	svc, store := newTestService(t, reconcile.Sources{})
	ctx := context.Background()
	seeded := seedTitle(t, store, media.KindMovie, "Naruto", 2004)
	seeded.ReviewLink = ptr("https://www.rottentomatoes.com/m/naruto_2004")
	require.NoError(t, store.Update(ctx, seeded))

	enriched, err := svc.Enrich(ctx, media.KindMovie, seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, "https://www.rottentomatoes.com/m/naruto_2004", *enriched.ReviewLink)
	require.NotNil(t, enriched.IMDbLink)
	assert.Equal(t, "https://www.imdb.com/find?q=Naruto", *enriched.IMDbLink)
	assert.Equal(t, 2004, enriched.ReleaseYear)
}

func TestService_EnrichKeepsStoredGenres(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("FetchCatalogMetadata", mock.Anything, "Monster").
		Return(&provider.Record{Description: "A surgeon's pursuit.", Genres: []string{"Drama"}}, nil)
	svc, store := newTestService(t, reconcile.Sources{Catalog: catalog})

	kept := seedTitle(t, store, media.KindSeries, "Monster", 2004, "Thriller", "Mystery")

	title, err := svc.Enrich(context.Background(), media.KindSeries, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thriller", "Mystery"}, title.GenreNames())
	assert.Equal(t, "A surgeon's pursuit.", title.About)

	bare := seedTitle(t, store, media.KindSeries, "Monster", 2004)
	title, err = svc.Enrich(context.Background(), media.KindSeries, bare.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama"}, title.GenreNames())
}

func TestService_CreateMergeKeepsStoredGenres(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("FetchCatalogMetadata", mock.Anything, "Akira").
		Return(&provider.Record{Genres: []string{"Drama"}}, nil)
	svc, store := newTestService(t, reconcile.Sources{Catalog: catalog})
	existing := seedTitle(t, store, media.KindMovie, "Akira", 1988, "Cyberpunk")

	title, err := svc.Create(context.Background(), media.KindMovie, TitleInput{MovieName: ptr("Akira")})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, title.ID)
	assert.Equal(t, []string{"Cyberpunk"}, title.GenreNames())
}

func TestService_ListEmptyAndInvalidPage(t *testing.T) {
	svc, store := newTestService(t, reconcile.Sources{})
	ctx := context.Background()

	_, _, err := svc.List(ctx, media.KindSeries, Filter{Page: 1})
	assert.ErrorIs(t, err, ErrNoResults)

	seedTitle(t, store, media.KindSeries, "One", 2000)
	_, _, err = svc.List(ctx, media.KindSeries, Filter{Page: 2})
	assert.True(t, apperror.Is(err, apperror.TypeNotFound))
	assert.NotErrorIs(t, err, ErrNoResults)
}

func TestService_Preview(t *testing.T) {
	svc, store := newTestService(t, reconcile.Sources{})
	res, existing, err := svc.Preview(context.Background(), media.KindMovie, "Naruto")
	require.NoError(t, err)
	assert.Nil(t, existing)
	assert.Equal(t, "https://www.rottentomatoes.com/m/naruto", *res.Fields.ReviewLink)

	rows, err := store.All(context.Background(), media.KindMovie)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

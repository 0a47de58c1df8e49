package export_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anime-tracker/core/loader"
	"anime-tracker/core/media"
	"anime-tracker/core/storage"
	"anime-tracker/core/storage/mocks"
	"anime-tracker/feature/catalog/models"
	"anime-tracker/feature/export"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type emptySource struct{}

func (emptySource) All(context.Context, media.Kind) ([]models.Title, error) {
	return []models.Title{}, nil
}

func TestHandleExport(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "anime").Return(true, nil)
	client.On("PutObject", mock.Anything, "anime", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "anime", mock.Anything).Return(nil)

	feature := export.NewFeature(client, storage.Config{Bucket: "anime"}, emptySource{}, nil)
	require.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/export/movie", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var res export.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "movie", res.Kind)
	assert.Contains(t, res.Key, "exports/movie/")

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/export/music", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeatureDisabledWithoutClient(t *testing.T) {
	feature := export.NewFeature(nil, storage.Config{}, emptySource{}, nil)
	assert.False(t, feature.IsEnabled())

	manager := loader.NewManager()
	manager.Register(feature)

	app := fiber.New()
	require.NoError(t, manager.LoadAll(app))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/export/series", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

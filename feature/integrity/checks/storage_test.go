package checks

import (
	"context"
	"errors"
	"testing"

	"anime-tracker/core/storage"
	"anime-tracker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func withPrefix(prefix string) interface{} {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool { return opts.Prefix == prefix })
}

var cfg = storage.Config{Bucket: "anime", Prefix: "exports"}

func TestCheckStorage_Disabled(t *testing.T) {
	report, err := CheckStorage(context.Background(), nil, cfg)
	require.NoError(t, err)
	assert.False(t, report.Enabled)
	assert.Equal(t, "disabled", report.Status)
}

func TestCheckStorage_CountsExports(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "anime").Return(true, nil)
	client.On("ListObjects", mock.Anything, "anime", withPrefix("exports/series/")).
		Return(objects(minio.ObjectInfo{Key: "exports/series/1.json"}, minio.ObjectInfo{Key: "exports/series/2.json"}))
	client.On("ListObjects", mock.Anything, "anime", withPrefix("exports/movie/")).Return(objects())

	report, err := CheckStorage(context.Background(), client, cfg)
	require.NoError(t, err)

	assert.Equal(t, "ok", report.Status)
	assert.True(t, report.BucketExists)
	assert.Equal(t, map[string]int{"series": 2, "movie": 0}, report.Exports)
	client.AssertExpectations(t)
}

func TestCheckStorage_MissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "anime").Return(false, nil)

	report, err := CheckStorage(context.Background(), client, cfg)
	require.NoError(t, err)
	assert.Equal(t, "missing", report.Status)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckStorage_Errors(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "anime").Return(false, errors.New("unreachable"))

	_, err := CheckStorage(context.Background(), client, cfg)
	assert.ErrorContains(t, err, "unreachable")

	client = new(mocks.Client)
	client.On("BucketExists", mock.Anything, "anime").Return(true, nil)
	client.On("ListObjects", mock.Anything, "anime", mock.Anything).
		Return(objects(minio.ObjectInfo{Err: errors.New("denied")}))

	_, err = CheckStorage(context.Background(), client, cfg)
	assert.ErrorContains(t, err, "denied")
}

func TestFixStorage(t *testing.T) {
	assert.Error(t, FixStorage(context.Background(), nil, cfg))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "anime").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "anime", mock.Anything).Return(nil)

	require.NoError(t, FixStorage(context.Background(), client, cfg))
	client.AssertCalled(t, "MakeBucket", mock.Anything, "anime", mock.Anything)
}

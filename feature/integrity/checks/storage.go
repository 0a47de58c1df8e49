package checks

import (
	"context"
	"fmt"
	"path"

	"anime-tracker/core/media"
	"anime-tracker/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport describes the export bucket.
type StorageReport struct {
	Enabled      bool           `json:"enabled"`
	Bucket       string         `json:"bucket"`
	BucketExists bool           `json:"bucket_exists"`
	Exports      map[string]int `json:"exports"`
	Status       string         `json:"status"` // "ok", "missing", "disabled"
}

// CheckStorage reports whether the export bucket exists and how many
// exports each kind holds. A nil client reports storage as disabled.
func CheckStorage(ctx context.Context, client storage.Client, cfg storage.Config) (*StorageReport, error) {
	report := &StorageReport{Bucket: cfg.Bucket, Exports: map[string]int{}, Status: "disabled"}
	if client == nil {
		return report, nil
	}
	report.Enabled = true
	if cfg.Prefix == "" {
		cfg.Prefix = "exports"
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	report.BucketExists = exists
	if !exists {
		report.Status = "missing"
		return report, nil
	}

	for _, kind := range []media.Kind{media.KindSeries, media.KindMovie} {
		prefix := path.Join(cfg.Prefix, kind.String()) + "/"
		count := 0
		for obj := range client.ListObjects(ctx, cfg.Bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
			}
			count++
		}
		report.Exports[kind.String()] = count
	}

	report.Status = "ok"
	return report, nil
}

// FixStorage creates the export bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, cfg storage.Config) error {
	if client == nil {
		return fmt.Errorf("object storage is disabled")
	}
	return storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region)
}

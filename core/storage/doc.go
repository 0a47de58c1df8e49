// Package storage wraps the MinIO client used to publish catalog exports.
//
// Client is the narrow interface the export and integrity features depend on; mocks.Client
// implements it with testify for unit tests. It works against AWS S3 and
// self-hosted MinIO alike.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	err = storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region)
package storage

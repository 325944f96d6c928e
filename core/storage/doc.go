// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so fetched listing documents can be archived to
// AWS S3 or a self-hosted MinIO instance. The Client interface keeps the feature
// code mockable (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

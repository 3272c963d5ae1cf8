// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the draw archive can live on AWS S3 or a
// self-hosted MinIO instance. Archived draws are stored as draws/NNNNNN.json.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so payout reports can be archived to AWS S3 or a
// self-hosted MinIO instance after each run. The Client interface only exposes the
// calls the archival path needs, which keeps the testify mock in core/storage/mocks
// small.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage

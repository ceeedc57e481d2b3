// Package storage publishes converted master databases to object storage.
//
// It wraps the MinIO Go client behind a small Client interface, which works against
// AWS S3 and self-hosted MinIO alike and is easy to mock (see core/storage/mocks).
//
// # Publisher
//
// Publisher uploads local files under a configured prefix. The bucket is checked once
// per Publisher and created when missing.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	pub := storage.NewPublisher(client, cfg.Storage, logger)
//	err = pub.PublishFile(ctx, "master_jp.db", "application/vnd.sqlite3")
package storage

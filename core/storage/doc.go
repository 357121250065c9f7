// Package storage wraps object storage for publishing combined rulesets.
//
// It wraps the MinIO Go client behind a small Client interface so that sinks and the
// publish command can be tested against core/storage/mocks. Both AWS S3 and self-hosted
// MinIO work.
//
// # Operations
//
//   - BucketExists / MakeBucket, or EnsureBucket for both.
//   - PutObject: uploads content (with size and options).
//   - GetObject: retrieves content as a stream.
//   - ListObjects: lists objects in a bucket (supports prefix/recursive).
//   - RemoveObject: deletes stale ruleset files.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	created, err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

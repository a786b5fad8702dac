// Package storage provides the object store used to publish compaction
// artifacts.
//
// It wraps the MinIO Go client behind a small Client interface so services
// and checks can be unit tested with core/storage/mocks. Both AWS S3 and
// self-hosted MinIO work.
//
// # Operations
//
//   - BucketExists / MakeBucket / EnsureBucket: bucket provisioning.
//   - PutObject / GetObject: artifact upload and download.
//   - ListObjects / ListKeys: artifact listing under the configured prefix.
//   - RemoveObject: artifact deletion.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	err = storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region)
//	key := cfg.ObjectKey("run-1.cbor")
package storage

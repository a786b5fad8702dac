package checks

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"record-compactor/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// CheckStorage verifies the bucket exists and the artifact prefix holds at
// least one object. A nil client means storage is not configured.
func CheckStorage(ctx context.Context, client storage.Client, cfg storage.Config) CheckResult {
	start := time.Now()
	res := newResult(Storage)
	if client == nil {
		return res.skip(start, "object storage not configured")
	}
	res.Metadata["bucket"] = cfg.Bucket
	res.Metadata["prefix"] = cfg.ObjectPrefix()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return res.fail(start, fmt.Sprintf("failed to reach bucket: %v", err))
	}
	if !exists {
		res.Metadata["missing"] = "bucket"
		return res.fail(start, fmt.Sprintf("bucket %s does not exist", cfg.Bucket))
	}

	if prefix := cfg.ObjectPrefix(); prefix != "" {
		opts := minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}
		found := false
		for obj := range client.ListObjects(ctx, cfg.Bucket, opts) {
			if obj.Err != nil {
				return res.fail(start, fmt.Sprintf("failed to list %s: %v", prefix, obj.Err))
			}
			found = true
			break
		}
		if !found {
			res.Metadata["missing"] = "prefix"
			return res.fail(start, fmt.Sprintf("artifact prefix %s is missing", prefix))
		}
	}
	return res.pass(start, fmt.Sprintf("bucket %s reachable", cfg.Bucket))
}

// FixStorage creates the bucket if needed and a placeholder object marking
// the artifact prefix.
func FixStorage(ctx context.Context, client storage.Client, cfg storage.Config, logger *zap.Logger) error {
	if client == nil {
		return fmt.Errorf("object storage not configured")
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return err
	}
	prefix := cfg.ObjectPrefix()
	if prefix == "" {
		return nil
	}
	_, err := client.PutObject(ctx, cfg.Bucket, prefix, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
	if err != nil {
		logger.Error("Failed to create artifact prefix", zap.String("prefix", prefix), zap.Error(err))
		return fmt.Errorf("failed to create prefix %s: %w", prefix, err)
	}
	logger.Info("Created artifact prefix", zap.String("bucket", cfg.Bucket), zap.String("prefix", prefix))
	return nil
}

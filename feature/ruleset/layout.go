package ruleset

import (
	"bytes"
	"context"
	"fmt"

	"ruleset-combiner/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RequiredFolders lists the folders a published mod must have below its prefix.
var RequiredFolders = []string{jsonsDir, imagesDir}

// CheckLayout returns the required folders missing below prefix.
func CheckLayout(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var missing []string
	for _, folder := range RequiredFolders {
		opts := minio.ListObjectsOptions{
			Prefix:    storage.ObjectKey(prefix, folder) + "/",
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for range client.ListObjects(ctx, bucket, opts) {
			found = true
			break
		}
		if !found {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}

// FixLayout creates placeholder objects for the missing folders.
func FixLayout(ctx context.Context, client storage.Client, bucket, prefix string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		key := storage.ObjectKey(prefix, folder) + "/"
		_, err := client.PutObject(ctx, bucket, key, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", key), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", key))
	}
	return nil
}

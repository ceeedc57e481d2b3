package checks

import (
	"context"
	"fmt"

	"masterdata-monitor/core/storage"

	"github.com/minio/minio-go/v7"
)

// CheckObjects returns the object names missing from the bucket.
func CheckObjects(ctx context.Context, client storage.Client, bucket string, names []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var missing []string
	for _, name := range names {
		found, err := objectExists(ctx, client, bucket, name)
		if err != nil {
			return nil, err
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// objectExists lists with the name as prefix; the exact key sorts first.
func objectExists(ctx context.Context, client storage.Client, bucket, name string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:    name,
		Recursive: true,
		MaxKeys:   1,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", name, obj.Err)
		}
		return obj.Key == name, nil
	}
	return false, nil
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Content types of the published files.
const (
	ContentTypeSQLite = "application/vnd.sqlite3"
	ContentTypeJSON   = "application/json"
)

// Publisher uploads converted databases and state documents to a bucket.
type Publisher struct {
	client Client
	bucket string
	prefix string
	region string
	logger *zap.Logger

	once      sync.Once
	bucketErr error
}

// NewPublisher creates a Publisher for the configured bucket.
func NewPublisher(client Client, cfg Config, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		region: cfg.Region,
		logger: logger,
	}
}

// ObjectName returns the object key a local file is published under.
func (p *Publisher) ObjectName(localPath string) string {
	return path.Join(p.prefix, filepath.Base(localPath))
}

// PublishFile uploads the file at localPath.
func (p *Publisher) PublishFile(ctx context.Context, localPath, contentType string) error {
	if err := p.ensureBucket(ctx); err != nil {
		return err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	objectName := p.ObjectName(localPath)
	_, err = p.client.PutObject(ctx, p.bucket, objectName, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	p.logger.Info("Published file",
		zap.String("bucket", p.bucket),
		zap.String("object", objectName),
		zap.Int64("size", info.Size()))
	return nil
}

func (p *Publisher) ensureBucket(ctx context.Context) error {
	p.once.Do(func() {
		exists, err := p.client.BucketExists(ctx, p.bucket)
		if err != nil {
			p.bucketErr = fmt.Errorf("failed to check bucket existence: %w", err)
			return
		}
		if exists {
			return
		}
		if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region}); err != nil {
			p.bucketErr = fmt.Errorf("failed to create bucket %s: %w", p.bucket, err)
			return
		}
		p.logger.Info("Created bucket", zap.String("bucket", p.bucket))
	})
	return p.bucketErr
}

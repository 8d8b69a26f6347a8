package objstore

import (
	"context"
	"fmt"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
}

// MinioWriter uploads objects to an S3 compatible bucket.
type MinioWriter struct {
	client *miniogo.Client
	bucket string
}

func NewMinioWriter(cfg MinioConfig) (*MinioWriter, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is not set")
	}
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioWriter{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (w *MinioWriter) EnsureBucket(ctx context.Context) error {
	exists, err := w.client.BucketExists(ctx, w.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", w.bucket, err)
	}
	if !exists {
		if err := w.client.MakeBucket(ctx, w.bucket, miniogo.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", w.bucket, err)
		}
	}
	return nil
}

func (w *MinioWriter) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := w.client.PutObject(ctx, w.bucket, key, r, size, miniogo.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// publicReadPolicy lets browsers fetch photos straight from the bucket.
const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`

// MinIOClient stores photos in an S3 compatible bucket. The reference is the
// public object URL.
type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	m := &MinIOClient{client: client, config: cfg}
	if err := m.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	bucket := m.config.BucketName

	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}

	if !exists {
		err = m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.config.Region})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	if err := m.client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
		return fmt.Errorf("failed to set policy on bucket %s: %w", bucket, err)
	}

	return nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, ext, contentType string, file io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := NewObjectName(ext)

	_, err := m.client.PutObject(ctx, m.config.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to minio: %w", objectName, err)
	}

	return m.objectURL(objectName), nil
}

// DeleteImage accepts either the public URL returned by UploadImage or a bare object name.
func (m *MinIOClient) DeleteImage(ctx context.Context, ref string) error {
	objectName := m.objectName(ref)

	err := m.client.RemoveObject(ctx, m.config.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete %s from minio: %w", objectName, err)
	}
	return nil
}

func (m *MinIOClient) objectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.config.PublicURL, m.config.BucketName, objectName)
}

func (m *MinIOClient) objectName(ref string) string {
	prefix := fmt.Sprintf("%s/%s/", m.config.PublicURL, m.config.BucketName)
	return strings.TrimPrefix(ref, prefix)
}

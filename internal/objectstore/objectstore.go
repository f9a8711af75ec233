// Package objectstore uploads finished output files to an S3-compatible
// bucket.
package objectstore

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"nmeafeed/internal/config"
)

type Uploader struct {
	client *minio.Client
	bucket string
	prefix string
}

func New(cfg config.S3Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	useSSL := cfg.UseSSL == nil || *cfg.UseSSL
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return &Uploader{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// UploadFile pushes a local file under a timestamped, collision-free key
// and returns the key.
func (u *Uploader) UploadFile(ctx context.Context, localPath string) (string, error) {
	key := path.Join(u.prefix, fmt.Sprintf("%s-%s.jsonl",
		time.Now().UTC().Format("20060102T150405Z"), uuid.NewString()))
	_, err := u.client.FPutObject(ctx, u.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/x-ndjson",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Probe checks that the bucket is reachable with the configured
// credentials.
func (u *Uploader) Probe(ctx context.Context) error {
	ok, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("bucket probe: %w", err)
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", u.bucket)
	}
	return nil
}

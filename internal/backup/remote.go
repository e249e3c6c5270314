package backup

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/julianstephens/weekly/internal/config"
	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/logger"
)

var ErrRemoteNotConfigured = errors.New("remote backups are not configured, set " +
	constants.EnvMinioHost + ", " + constants.EnvMinioKey + " and " + constants.EnvMinioSecret)

// Remote copies snapshots to and from an S3-compatible bucket.
type Remote struct {
	client *minio.Client
}

// NewRemote connects to the endpoint described by cfg.
func NewRemote(cfg config.Minio) (*Remote, error) {
	if !cfg.Configured() {
		return nil, ErrRemoteNotConfigured
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage client: %w", err)
	}
	return &Remote{client: client}, nil
}

// IsRemote reports whether target is an s3:// URL.
func IsRemote(target string) bool {
	return strings.HasPrefix(target, constants.RemoteBackupScheme)
}

// ParseURL splits s3://bucket/key. A missing key or a key ending in / gets
// fallbackName appended.
func ParseURL(target, fallbackName string) (bucket, key string, err error) {
	if !IsRemote(target) {
		return "", "", fmt.Errorf("remote target must start with %s: %q", constants.RemoteBackupScheme, target)
	}
	rest := strings.TrimPrefix(target, constants.RemoteBackupScheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("remote target has no bucket: %q", target)
	}
	if key == "" || strings.HasSuffix(key, "/") {
		if fallbackName == "" {
			return "", "", fmt.Errorf("remote target has no object key: %q", target)
		}
		key += fallbackName
	}
	return bucket, key, nil
}

// Push uploads the file at localPath to target, creating the bucket if needed.
func (r *Remote) Push(ctx context.Context, localPath, target string) (string, error) {
	bucket, key, err := ParseURL(target, filepath.Base(localPath))
	if err != nil {
		return "", err
	}

	exists, err := r.client.BucketExists(ctx, bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := r.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Info("Created backup bucket", "bucket", bucket)
	}

	info, err := r.client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, bucket, err)
	}
	logger.Debug("Uploaded backup", "bucket", bucket, "key", key, "size", info.Size)
	return constants.RemoteBackupScheme + bucket + "/" + key, nil
}

// Pull downloads target into localPath.
func (r *Remote) Pull(ctx context.Context, target, localPath string) error {
	bucket, key, err := ParseURL(target, "")
	if err != nil {
		return err
	}
	if err := r.client.FGetObject(ctx, bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to download %s from bucket %s: %w", key, bucket, err)
	}
	return nil
}


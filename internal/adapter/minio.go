package adapter

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jgough/video-vault/internal/service/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	maxUploadAttempts = 5
	initialBackoff    = 100 * time.Millisecond
)

type S3ClientImpl struct {
	s3Client *minio.Client
}

func NewMinioClient() *S3ClientImpl {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	useSSL := false
	if strings.ToLower(os.Getenv("MINIO_USE_SSL")) == "true" {
		useSSL = true
	}
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		slog.Error("MINIO_ACCESS_KEY is not set")
		os.Exit(1)
	}
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		slog.Error("MINIO_SECRET_KEY is not set")
		os.Exit(1)
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		slog.Error("Failed to create MinIO client", "err", err)
		return nil
	}
	return &S3ClientImpl{
		s3Client: client,
	}
}

// EnsureBucket creates the archive bucket when it does not exist yet.
func (s *S3ClientImpl) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.s3Client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	region := os.Getenv("MINIO_REGION")
	if region == "" {
		region = "eu-west-1"
	}
	if err := s.s3Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return err
	}
	slog.Info("Archive bucket created", "bucket", bucket)
	return nil
}

// ArchiveObject copies the file at path into the bucket under name.
// The sha256 hash rides along as object metadata and acts as the
// idempotency key: when the remote copy already carries the same hash
// the upload is skipped, otherwise the object is replaced to follow
// the last-writer-wins semantics of the media directory.
func (s *S3ClientImpl) ArchiveObject(ctx context.Context, bucket, name, path, hash string) error {
	stat, err := utils.Retry(maxUploadAttempts, initialBackoff, func() (minio.ObjectInfo, error) {
		return s.s3Client.StatObject(ctx, bucket, name, minio.StatObjectOptions{})
	})
	if err == nil {
		// MinIO/S3 prefixes user metadata with "X-Amz-Meta-".
		remoteHash := stat.UserMetadata["X-Amz-Meta-Hash"]
		if remoteHash == hash {
			slog.Debug("Archive copy up to date", "file", name, "hash", hash)
			return nil
		}
		slog.Info("Archive copy stale, replacing", "file", name, "remoteHash", remoteHash, "hash", hash)
	}

	info, err := utils.Retry(maxUploadAttempts, initialBackoff, func() (minio.UploadInfo, error) {
		return s.s3Client.FPutObject(ctx, bucket, name, path, minio.PutObjectOptions{
			ContentType:  "video/mp4",
			UserMetadata: map[string]string{"hash": hash},
		})
	})
	if err != nil {
		return err
	}
	slog.Debug("Archived object", "file", name, "size", info.Size)
	return nil
}

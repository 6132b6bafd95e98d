package blob

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioClient is the subset of *minio.Client used by MinioStore.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// MinioConfig configures a MinioStore.
type MinioConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	UseSSL      bool
	UploadTTL   time.Duration
	DownloadTTL time.Duration
}

// MinioStore implements Store on MinIO/S3 compatible storage.
type MinioStore struct {
	client      minioClient
	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration
	now         func() time.Time
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	s := newMinioStore(client, cfg)
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func newMinioStore(client minioClient, cfg MinioConfig) *MinioStore {
	return &MinioStore{
		client:      client,
		bucket:      cfg.Bucket,
		uploadTTL:   cfg.UploadTTL,
		downloadTTL: cfg.DownloadTTL,
		now:         time.Now,
	}
}

func (m *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Ping reports whether the bucket is reachable.
func (m *MinioStore) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", m.bucket)
	}
	return nil
}

// IssueUploadURL allocates a fresh storage id and presigns a PUT for it.
func (m *MinioStore) IssueUploadURL(ctx context.Context) (*Upload, error) {
	id := uuid.New().String()

	u, err := m.client.PresignedPutObject(ctx, m.bucket, id, m.uploadTTL)
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &Upload{
		URL:       u.String(),
		StorageID: id,
		ExpiresAt: m.now().UTC().Add(m.uploadTTL),
	}, nil
}

// ResolveURL presigns a GET for an existing object. Ids that were never
// issued by this store, or whose object is missing, resolve to nil.
func (m *MinioStore) ResolveURL(ctx context.Context, storageID string) (*string, error) {
	if _, err := uuid.Parse(storageID); err != nil {
		return nil, nil
	}

	if _, err := m.client.StatObject(ctx, m.bucket, storageID, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("stat object: %w", err)
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, storageID, m.downloadTTL, nil)
	if err != nil {
		return nil, fmt.Errorf("presign get: %w", err)
	}

	s := u.String()
	return &s, nil
}

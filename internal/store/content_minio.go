package store

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-bookshelf/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioAPI is the subset of *minio.Client used by the content bucket.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// minioClientWrapper adapts *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (w minioClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucketName, objectName, opts)
}

// minioContentStorage is a [ContentStorage] backed by an S3-compatible bucket.
type minioContentStorage struct {
	api    minioAPI
	bucket string
}

// NewMinioContentStorage connects to the configured endpoint and makes sure
// the bucket exists.
func NewMinioContentStorage(ctx context.Context, cfg config.Bucket) (ContentStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: error creating minio client: %w", ErrContentStorage, err)
	}

	return newMinioContentStorage(ctx, minioClientWrapper{c: client}, cfg.Name)
}

func newMinioContentStorage(ctx context.Context, api minioAPI, bucket string) (*minioContentStorage, error) {
	s := &minioContentStorage{api: api, bucket: bucket}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to ensure bucket exists: %w", ErrContentStorage, err)
	}

	return s, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (s *minioContentStorage) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err = s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload streams r into the bucket. The size is unknown, so the client uses
// multipart upload.
func (s *minioContentStorage) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	_, err := s.api.PutObject(ctx, s.bucket, key, r, -1, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("%w: failed to upload object: %w", ErrContentStorage, err)
	}
	return nil
}

// Download opens the object stored under key. A missing object is reported
// by the first Read as [ErrContentNotFound].
func (s *minioContentStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioError(err, "failed to get object")
	}
	return minioObject{ReadCloser: obj}, nil
}

// Delete removes the object stored under key.
func (s *minioContentStorage) Delete(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return minioError(err, "failed to delete object")
	}
	return nil
}

func minioError(err error, msg string) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrContentNotFound
	}
	return fmt.Errorf("%w: %s: %w", ErrContentStorage, msg, err)
}

// minioObject translates lazy object errors returned by Read.
type minioObject struct {
	io.ReadCloser
}

func (o minioObject) Read(p []byte) (int, error) {
	n, err := o.ReadCloser.Read(p)
	if err != nil && err != io.EOF {
		return n, minioError(err, "failed to read object")
	}
	return n, err
}

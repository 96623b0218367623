package storage

import (
	"CloudVault/config"
	"context"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements Store with a single shared MinIO client. Buckets
// are created and dropped lazily by the callers, so initialization only
// builds the client.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore builds a Store from a MinIO client.
func NewMinioStore(client *minio.Client) *MinioStore {
	return &MinioStore{client: client}
}

// BucketExists reports whether a bucket exists.
func (s *MinioStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return s.client.BucketExists(ctx, bucket)
}

// MakeBucket creates a bucket.
func (s *MinioStore) MakeBucket(ctx context.Context, bucket string) error {
	return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

// RemoveBucket deletes an empty bucket.
func (s *MinioStore) RemoveBucket(ctx context.Context, bucket string) error {
	return s.client.RemoveBucket(ctx, bucket)
}

// ListObjects lists every object in a bucket.
func (s *MinioStore) ListObjects(ctx context.Context, bucket string) ([]ObjectInfo, error) {
	objects := make([]ObjectInfo, 0)
	for item := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{}) {
		if item.Err != nil {
			return nil, item.Err
		}
		objects = append(objects, ObjectInfo{
			ObjectName: item.Key,
			Size:       item.Size,
		})
	}
	return objects, nil
}

// PutObject uploads an object to MinIO.
func (s *MinioStore) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts PutOptions) error {
	_, err := s.client.PutObject(ctx, bucket, object, reader, size, minio.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	return err
}

// GetObject fetches an object and its size from MinIO.
func (s *MinioStore) GetObject(ctx context.Context, bucket, object string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := s.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, ObjectInfo{}, err
	}
	info := ObjectInfo{
		ObjectName: object,
		Size:       stat.Size,
	}
	return obj, info, nil
}

// RemoveObject deletes an object from MinIO. Removing an absent key is
// treated as success by the server.
func (s *MinioStore) RemoveObject(ctx context.Context, bucket, object string) error {
	return s.client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{})
}

// CopyObject copies an object server-side.
func (s *MinioStore) CopyObject(ctx context.Context, dest CopyDest, src CopySource) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dest.Bucket, Object: dest.Object},
		minio.CopySrcOptions{Bucket: src.Bucket, Object: src.Object},
	)
	return err
}

// InitMinio initializes the shared MinIO client.
func InitMinio() {
	client, err := minio.New(config.MinioEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(config.AppConfig.MinioUsername, config.AppConfig.MinioPassword, ""),
		Secure: false,
	})
	if err != nil {
		log.Fatalln("minio error:", err)
	}
	Default = NewMinioStore(client)
	log.Println("init minio success")
}

package service

import (
	"CloudVault/internal/storage"
	"CloudVault/model"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"
)

// Locker serializes coordinator operations on a single bucket.
type Locker interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// LockFactory builds a Locker for a lock key.
type LockFactory func(key string) Locker

// FileService keeps the object store and the metadata table consistent
// for per-user buckets. Every operation is scoped to the owner's bucket.
// Uploads write the object before inserting metadata, so a metadata row
// never describes an object that was not written; the reverse window (a
// written object whose metadata insert failed) is accepted.
type FileService struct {
	db           *gorm.DB
	store        storage.Store
	endpoint     string
	bucketPrefix string
	newLock      LockFactory
}

// NewFileService creates the file operation coordinator.
func NewFileService(db *gorm.DB, store storage.Store, endpoint, bucketPrefix string) *FileService {
	return &FileService{
		db:           db,
		store:        store,
		endpoint:     endpoint,
		bucketPrefix: bucketPrefix,
	}
}

// WithLockFactory enables per-bucket locking around mutating operations.
func (s *FileService) WithLockFactory(factory LockFactory) *FileService {
	s.newLock = factory
	return s
}

// BucketName returns the bucket holding a user's objects.
func (s *FileService) BucketName(username string) string {
	return s.bucketPrefix + "-" + username
}

func (s *FileService) lockBucket(ctx context.Context, bucket string) (func(), error) {
	if s.newLock == nil {
		return func() {}, nil
	}
	lock := s.newLock("lock:bucket:" + bucket)
	if err := lock.Lock(ctx); err != nil {
		return nil, fmt.Errorf("lock bucket %s: %w", bucket, err)
	}
	return func() { _ = lock.Unlock(context.Background()) }, nil
}

func (s *FileService) objectListed(ctx context.Context, bucket, object string) (bool, error) {
	objects, err := s.store.ListObjects(ctx, bucket)
	if err != nil {
		return false, err
	}
	for _, item := range objects {
		if item.ObjectName == object {
			return true, nil
		}
	}
	return false, nil
}

// Upload stores the content in the user's bucket and records metadata.
// The object key is the full filename, matching the metadata name.
func (s *FileService) Upload(ctx context.Context, user *model.User, filename string, reader io.Reader, size int64, mimeType string) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	bucket := s.BucketName(user.UserName)
	unlock, err := s.lockBucket(ctx, bucket)
	if err != nil {
		return err
	}
	defer unlock()

	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.store.MakeBucket(ctx, bucket); err != nil {
			return err
		}
	} else {
		// A fresh bucket is empty, so the duplicate scan only runs when
		// the bucket already existed.
		listed, err := s.objectListed(ctx, bucket, filename)
		if err != nil {
			return err
		}
		if listed {
			return ErrDuplicateName
		}
	}

	if err := s.store.PutObject(ctx, bucket, filename, reader, size, storage.PutOptions{ContentType: mimeType}); err != nil {
		return err
	}

	now := time.Now()
	metadata := &model.FileMetadata{
		UserID:    user.ID,
		Name:      filename,
		Size:      size,
		MimeType:  mimeType,
		Location:  s.endpoint + "/" + bucket + "/" + filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The object is already written; a failure here leaves an orphaned
	// object behind and is the one inconsistency this ordering accepts.
	return s.db.Create(metadata).Error
}

// Download reads the whole object back into memory.
func (s *FileService) Download(ctx context.Context, user *model.User, filename string) ([]byte, error) {
	bucket := s.BucketName(user.UserName)
	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBucketNotFound
	}
	listed, err := s.objectListed(ctx, bucket, filename)
	if err != nil {
		return nil, err
	}
	if !listed {
		return nil, ErrNotFound
	}
	object, _, err := s.store.GetObject(ctx, bucket, filename)
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}

// Delete removes the object, drops the bucket once it is empty and
// deletes the metadata row.
func (s *FileService) Delete(ctx context.Context, user *model.User, filename string) error {
	bucket := s.BucketName(user.UserName)
	unlock, err := s.lockBucket(ctx, bucket)
	if err != nil {
		return err
	}
	defer unlock()

	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBucketNotFound
	}
	// Removing an absent key succeeds at the store, so no existence
	// check runs before the removal.
	if err := s.store.RemoveObject(ctx, bucket, filename); err != nil {
		return err
	}
	objects, err := s.store.ListObjects(ctx, bucket)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		if err := s.store.RemoveBucket(ctx, bucket); err != nil {
			return err
		}
	}
	return s.db.Where("name = ? AND user_id = ?", filename, user.ID).Delete(&model.FileMetadata{}).Error
}

// Rename moves the metadata row and the object key to the new name.
func (s *FileService) Rename(ctx context.Context, user *model.User, oldName, newName string) error {
	bucket := s.BucketName(user.UserName)
	unlock, err := s.lockBucket(ctx, bucket)
	if err != nil {
		return err
	}
	defer unlock()

	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBucketNotFound
	}
	objects, err := s.store.ListObjects(ctx, bucket)
	if err != nil {
		return err
	}
	oldListed, newListed := false, false
	for _, item := range objects {
		if item.ObjectName == oldName {
			oldListed = true
		}
		if item.ObjectName == newName {
			newListed = true
		}
	}
	if !oldListed {
		return ErrNotFound
	}
	// The unique index on (user_id, name) would reject the update below
	// anyway; checking the listing first reports it as a client error.
	if newListed {
		return ErrDuplicateName
	}

	var metadata model.FileMetadata
	if err := s.db.Where("name = ? AND user_id = ?", oldName, user.ID).First(&metadata).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.db.Model(&metadata).Updates(map[string]interface{}{
		"name":       newName,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return err
	}

	// Metadata moves first; if the copy below fails the row already
	// points at the new name while the object still sits under the old
	// key. Not transactional across the two stores.
	if err := s.store.CopyObject(ctx,
		storage.CopyDest{Bucket: bucket, Object: newName},
		storage.CopySource{Bucket: bucket, Object: oldName},
	); err != nil {
		return err
	}
	return s.store.RemoveObject(ctx, bucket, oldName)
}

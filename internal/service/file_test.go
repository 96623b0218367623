package service

import (
	"CloudVault/internal/storage"
	"CloudVault/model"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memStore is an in-memory object store for coordinator tests.
type memStore struct {
	buckets map[string]map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{buckets: make(map[string]map[string][]byte)}
}

func (s *memStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, ok := s.buckets[bucket]
	return ok, nil
}

func (s *memStore) MakeBucket(ctx context.Context, bucket string) error {
	s.buckets[bucket] = make(map[string][]byte)
	return nil
}

func (s *memStore) RemoveBucket(ctx context.Context, bucket string) error {
	if objects, ok := s.buckets[bucket]; ok && len(objects) > 0 {
		return errors.New("bucket not empty")
	}
	delete(s.buckets, bucket)
	return nil
}

func (s *memStore) ListObjects(ctx context.Context, bucket string) ([]storage.ObjectInfo, error) {
	objects, ok := s.buckets[bucket]
	if !ok {
		return nil, errors.New("bucket does not exist")
	}
	infos := make([]storage.ObjectInfo, 0, len(objects))
	for name, data := range objects {
		infos = append(infos, storage.ObjectInfo{ObjectName: name, Size: int64(len(data))})
	}
	return infos, nil
}

func (s *memStore) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts storage.PutOptions) error {
	objects, ok := s.buckets[bucket]
	if !ok {
		return errors.New("bucket does not exist")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	objects[object] = data
	return nil
}

func (s *memStore) GetObject(ctx context.Context, bucket, object string) (io.ReadCloser, storage.ObjectInfo, error) {
	data, ok := s.buckets[bucket][object]
	if !ok {
		return nil, storage.ObjectInfo{}, errors.New("object does not exist")
	}
	info := storage.ObjectInfo{ObjectName: object, Size: int64(len(data))}
	return io.NopCloser(bytes.NewReader(data)), info, nil
}

func (s *memStore) RemoveObject(ctx context.Context, bucket, object string) error {
	// Removing an absent key succeeds, matching the real store.
	if objects, ok := s.buckets[bucket]; ok {
		delete(objects, object)
	}
	return nil
}

func (s *memStore) CopyObject(ctx context.Context, dest storage.CopyDest, src storage.CopySource) error {
	data, ok := s.buckets[src.Bucket][src.Object]
	if !ok {
		return errors.New("source does not exist")
	}
	objects, ok := s.buckets[dest.Bucket]
	if !ok {
		return errors.New("destination bucket does not exist")
	}
	objects[dest.Object] = append([]byte(nil), data...)
	return nil
}

// openTestDb opens an isolated in-memory database with the schema applied.
func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.FileMetadata{}); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func newTestFileService(t *testing.T) (*FileService, *memStore, *model.User) {
	t.Helper()
	db := openTestDb(t)
	store := newMemStore()
	svc := NewFileService(db, store, "localhost:9000", "vault")

	user := &model.User{UserName: "alice", Email: "alice@test.com", Password: "hash"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return svc, store, user
}

func mustUpload(t *testing.T, svc *FileService, user *model.User, name string, content []byte, mimeType string) {
	t.Helper()
	err := svc.Upload(context.Background(), user, name, bytes.NewReader(content), int64(len(content)), mimeType)
	if err != nil {
		t.Fatalf("upload %s failed: %v", name, err)
	}
}

// TestUploadAndDownloadRoundTrip uploads a file and reads it back.
func TestUploadAndDownloadRoundTrip(t *testing.T) {
	svc, store, user := newTestFileService(t)
	content := []byte("0123456789")

	mustUpload(t, svc, user, "report.pdf", content, "application/pdf")

	if _, ok := store.buckets["vault-alice"]; !ok {
		t.Fatal("bucket vault-alice should exist after upload")
	}

	var metadata model.FileMetadata
	if err := svc.db.Where("name = ? AND user_id = ?", "report.pdf", user.ID).First(&metadata).Error; err != nil {
		t.Fatalf("metadata row missing: %v", err)
	}
	if metadata.Size != 10 {
		t.Fatalf("expect size 10, got %d", metadata.Size)
	}
	if metadata.MimeType != "application/pdf" {
		t.Fatalf("expect mime application/pdf, got %s", metadata.MimeType)
	}
	if metadata.Location != "localhost:9000/vault-alice/report.pdf" {
		t.Fatalf("unexpected location %s", metadata.Location)
	}

	got, err := svc.Download(context.Background(), user, "report.pdf")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("expect %q, got %q", content, got)
	}
}

// TestUploadEmptyFile rejects empty content.
func TestUploadEmptyFile(t *testing.T) {
	svc, store, user := newTestFileService(t)

	err := svc.Upload(context.Background(), user, "empty.txt", bytes.NewReader(nil), 0, "text/plain")
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expect ErrEmptyFile, got %v", err)
	}
	if len(store.buckets) != 0 {
		t.Fatal("empty upload should not create a bucket")
	}
}

// TestUploadDuplicateName rejects a second upload under the same name.
func TestUploadDuplicateName(t *testing.T) {
	svc, _, user := newTestFileService(t)
	mustUpload(t, svc, user, "report.pdf", []byte("0123456789"), "application/pdf")

	err := svc.Upload(context.Background(), user, "report.pdf", bytes.NewReader([]byte("other")), 5, "application/pdf")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expect ErrDuplicateName, got %v", err)
	}

	var count int64
	svc.db.Model(&model.FileMetadata{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expect 1 metadata row, got %d", count)
	}
}

// TestDeleteLastFileRemovesBucket drops the bucket once it is empty.
func TestDeleteLastFileRemovesBucket(t *testing.T) {
	svc, store, user := newTestFileService(t)
	mustUpload(t, svc, user, "a.txt", []byte("aaa"), "text/plain")

	if err := svc.Delete(context.Background(), user, "a.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.buckets["vault-alice"]; ok {
		t.Fatal("bucket should be removed after deleting the last file")
	}

	var count int64
	svc.db.Model(&model.FileMetadata{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expect 0 metadata rows, got %d", count)
	}

	if _, err := svc.Download(context.Background(), user, "a.txt"); !errors.Is(err, ErrBucketNotFound) {
		t.Fatalf("expect ErrBucketNotFound after delete, got %v", err)
	}
}

// TestDeleteKeepsBucketWithRemainingFiles keeps the bucket while other
// objects remain.
func TestDeleteKeepsBucketWithRemainingFiles(t *testing.T) {
	svc, store, user := newTestFileService(t)
	mustUpload(t, svc, user, "a.txt", []byte("aaa"), "text/plain")
	mustUpload(t, svc, user, "b.txt", []byte("bbb"), "text/plain")

	if err := svc.Delete(context.Background(), user, "a.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	objects, ok := store.buckets["vault-alice"]
	if !ok {
		t.Fatal("bucket should remain while b.txt exists")
	}
	if _, ok := objects["b.txt"]; !ok {
		t.Fatal("b.txt should remain in the bucket")
	}

	if _, err := svc.Download(context.Background(), user, "a.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expect ErrNotFound for deleted file, got %v", err)
	}
	if _, err := svc.Download(context.Background(), user, "b.txt"); err != nil {
		t.Fatalf("b.txt should still download: %v", err)
	}
}

// TestDeleteWithoutBucket fails when the user never uploaded.
func TestDeleteWithoutBucket(t *testing.T) {
	svc, _, user := newTestFileService(t)

	if err := svc.Delete(context.Background(), user, "a.txt"); !errors.Is(err, ErrBucketNotFound) {
		t.Fatalf("expect ErrBucketNotFound, got %v", err)
	}
}

// TestRenameMovesObjectAndMetadata renames a file and frees the old name.
func TestRenameMovesObjectAndMetadata(t *testing.T) {
	svc, _, user := newTestFileService(t)
	content := []byte("hello rename")
	mustUpload(t, svc, user, "a.txt", content, "text/plain")

	if err := svc.Rename(context.Background(), user, "a.txt", "b.txt"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	got, err := svc.Download(context.Background(), user, "b.txt")
	if err != nil {
		t.Fatalf("download after rename failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("expect %q, got %q", content, got)
	}
	if _, err := svc.Download(context.Background(), user, "a.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expect ErrNotFound for old name, got %v", err)
	}

	var metadata model.FileMetadata
	if err := svc.db.Where("name = ? AND user_id = ?", "b.txt", user.ID).First(&metadata).Error; err != nil {
		t.Fatalf("metadata should carry the new name: %v", err)
	}
}

// TestRenameToExistingName rejects a rename onto a name the user
// already holds, before the unique index would.
func TestRenameToExistingName(t *testing.T) {
	svc, _, user := newTestFileService(t)
	mustUpload(t, svc, user, "a.txt", []byte("aaa"), "text/plain")
	mustUpload(t, svc, user, "b.txt", []byte("bbb"), "text/plain")

	if err := svc.Rename(context.Background(), user, "a.txt", "b.txt"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expect ErrDuplicateName, got %v", err)
	}

	// Both files are untouched.
	if got, err := svc.Download(context.Background(), user, "a.txt"); err != nil || string(got) != "aaa" {
		t.Fatalf("a.txt should be intact, got %q err %v", got, err)
	}
	if got, err := svc.Download(context.Background(), user, "b.txt"); err != nil || string(got) != "bbb" {
		t.Fatalf("b.txt should be intact, got %q err %v", got, err)
	}
}

// TestRenameMissingFile fails for a name that is not in the bucket.
func TestRenameMissingFile(t *testing.T) {
	svc, _, user := newTestFileService(t)
	mustUpload(t, svc, user, "a.txt", []byte("aaa"), "text/plain")

	if err := svc.Rename(context.Background(), user, "missing.txt", "b.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expect ErrNotFound, got %v", err)
	}
}

// TestOwnersAreIsolated keeps two users with the same filename apart.
func TestOwnersAreIsolated(t *testing.T) {
	svc, store, alice := newTestFileService(t)
	bob := &model.User{UserName: "bob", Email: "bob@test.com", Password: "hash"}
	if err := svc.db.Create(bob).Error; err != nil {
		t.Fatalf("create bob failed: %v", err)
	}

	mustUpload(t, svc, alice, "report.pdf", []byte("alice data"), "application/pdf")
	mustUpload(t, svc, bob, "report.pdf", []byte("bob data"), "application/pdf")

	if len(store.buckets) != 2 {
		t.Fatalf("expect 2 buckets, got %d", len(store.buckets))
	}
	got, err := svc.Download(context.Background(), bob, "report.pdf")
	if err != nil {
		t.Fatalf("bob download failed: %v", err)
	}
	if string(got) != "bob data" {
		t.Fatalf("expect bob data, got %q", got)
	}
}

type busyLocker struct{}

func (busyLocker) Lock(ctx context.Context) error   { return errors.New("lock is busy") }
func (busyLocker) Unlock(ctx context.Context) error { return nil }

// TestBusyLockFailsOperation surfaces a held bucket lock as an error.
func TestBusyLockFailsOperation(t *testing.T) {
	svc, store, user := newTestFileService(t)
	svc.WithLockFactory(func(key string) Locker { return busyLocker{} })

	err := svc.Upload(context.Background(), user, "a.txt", bytes.NewReader([]byte("aaa")), 3, "text/plain")
	if err == nil {
		t.Fatal("upload should fail while the bucket lock is busy")
	}
	if errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrDuplicateName) {
		t.Fatalf("lock failure should not map to a client error, got %v", err)
	}
	if len(store.buckets) != 0 {
		t.Fatal("no bucket should be created when the lock is busy")
	}
}

package storage

import (
	"context"
	"io"
)

// PutOptions describes upload options for object storage.
type PutOptions struct {
	ContentType string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	ObjectName string
	Size       int64
}

// CopySource describes the source object for a server-side copy.
type CopySource struct {
	Bucket string
	Object string
}

// CopyDest describes the destination object for a server-side copy.
type CopyDest struct {
	Bucket string
	Object string
}

// Store abstracts bucket lifecycle and object operations.
type Store interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string) error
	RemoveBucket(ctx context.Context, bucket string) error
	ListObjects(ctx context.Context, bucket string) ([]ObjectInfo, error)
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts PutOptions) error
	GetObject(ctx context.Context, bucket, object string) (io.ReadCloser, ObjectInfo, error)
	RemoveObject(ctx context.Context, bucket, object string) error
	CopyObject(ctx context.Context, dest CopyDest, src CopySource) error
}

// Default is the main object store instance.
var Default Store

package service

import "errors"

// Sentinel errors handlers use to pick response codes. Anything else
// coming out of an operation is an unexpected downstream failure.
var (
	ErrUnauthenticated = errors.New("user session not found")
	ErrBucketNotFound  = errors.New("bucket not found")
	ErrNotFound        = errors.New("file not found")
	ErrDuplicateName   = errors.New("file with the same name already exists")
	ErrEmptyFile       = errors.New("file is empty")
)

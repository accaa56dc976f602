package repo_errors

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record violates a unique constraint")
	ErrInvalidValue = errors.New("record holds a value outside its closed set")
)

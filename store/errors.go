package store

import "github.com/pkg/errors"

var (
	// ErrAllocation is returned when the allocator cannot supply another chunk
	ErrAllocation = errors.New("chunk allocation failed")
	// ErrIndexOutOfRange is returned by Get and Remove for indices outside [0, Len())
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrChunkSize is returned when a store is created with fewer than two slots per chunk
	ErrChunkSize = errors.New("chunk size must be bigger than 1")
	// ErrClosed is returned by operations on a destroyed store
	ErrClosed = errors.New("store is destroyed")
)

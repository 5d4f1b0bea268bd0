// Package store implements a chunked bump-allocated element store.
//
// Elements live in fixed-size chunks chained through an explicit next link.
// Logical indices are always packed: removal overwrites the removed slot with
// the last element (swap-remove), so ordering is not preserved across Remove.
package store

import "github.com/pkg/errors"

// DefaultChunkSize is the number of slots per chunk, counting the link
const DefaultChunkSize = 4096

// Chunk is one fixed-capacity block of element slots
type Chunk[T any] struct {
	slots []T
	next  *Chunk[T]
}

func newChunk[T any](slots int) *Chunk[T] {
	return &Chunk[T]{slots: make([]T, slots)}
}

// Next returns the chunk linked after c, or nil for the last chunk
func (c *Chunk[T]) Next() *Chunk[T] {
	return c.next
}

// Cap returns the number of data slots in the chunk
func (c *Chunk[T]) Cap() int {
	return len(c.slots)
}

// Store holds elements in a singly linked chain of chunks
type Store[T any] struct {
	head      *Chunk[T]
	tail      *Chunk[T]
	perChunk  int
	count     int
	allocated int
	alloc     Allocator[T]
	closed    bool
}

// Option configures a Store
type Option[T any] func(*Store[T])

// WithAllocator sets the allocator chunks are obtained from
func WithAllocator[T any](a Allocator[T]) Option[T] {
	return func(s *Store[T]) {
		if a != nil {
			s.alloc = a
		}
	}
}

// New creates a store with one pre-allocated chunk. chunkSize counts the
// link position, so each chunk holds chunkSize-1 elements.
func New[T any](chunkSize int, opts ...Option[T]) (*Store[T], error) {
	if chunkSize < 2 {
		return nil, errors.Wrapf(ErrChunkSize, "[New] got %d", chunkSize)
	}

	s := &Store[T]{
		perChunk: chunkSize - 1,
		alloc:    HeapAllocator[T]{},
	}
	for _, opt := range opts {
		opt(s)
	}

	c, err := s.alloc.Allocate(s.perChunk)
	if err != nil {
		return nil, errors.Wrap(err, "[New] failed to allocate initial chunk")
	}
	s.head, s.tail = c, c
	s.allocated = 1
	return s, nil
}

// Len returns the number of live elements
func (s *Store[T]) Len() int {
	return s.count
}

// Chunks returns the number of allocated chunks
func (s *Store[T]) Chunks() int {
	return s.allocated
}

// ChunkCap returns the number of elements a single chunk holds
func (s *Store[T]) ChunkCap() int {
	return s.perChunk
}

// Add appends v at the next free logical index, growing the chain on demand
func (s *Store[T]) Add(v T) error {
	if s.closed {
		return errors.Wrap(ErrClosed, "[Add]")
	}

	if s.count == s.allocated*s.perChunk {
		if err := s.grow(); err != nil {
			return errors.Wrapf(err, "[Add] failed to grow store at %d elements", s.count)
		}
	}

	*s.slot(s.count) = v
	s.count++
	return nil
}

// Remove deletes the element at index i by moving the last element into its
// slot. Trailing chunks left without live elements are released.
func (s *Store[T]) Remove(i int) error {
	if s.closed {
		return errors.Wrap(ErrClosed, "[Remove]")
	}
	if i < 0 || i >= s.count {
		return errors.Wrapf(ErrIndexOutOfRange, "[Remove] index %d, len %d", i, s.count)
	}

	last := s.slot(s.count - 1)
	if i != s.count-1 {
		*s.slot(i) = *last
	}
	var zero T
	*last = zero
	s.count--

	s.Compact()
	return nil
}

// Get returns a pointer to the element at index i. The pointer is only valid
// until the next Add or Remove.
func (s *Store[T]) Get(i int) (*T, error) {
	if s.closed {
		return nil, errors.Wrap(ErrClosed, "[Get]")
	}
	if i < 0 || i >= s.count {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "[Get] index %d, len %d", i, s.count)
	}
	return s.slot(i), nil
}

// ChunkLink returns chunk number n. Negative or too large values resolve to
// the last chunk.
func (s *Store[T]) ChunkLink(n int) *Chunk[T] {
	if n < 0 || n >= s.allocated-1 {
		return s.tail
	}
	c := s.head
	for ; n > 0 && c.next != nil; n-- {
		c = c.next
	}
	return c
}

// Reset drops every element but keeps the allocated chunks for reuse
func (s *Store[T]) Reset() {
	for c := s.head; c != nil; c = c.next {
		clear(c.slots)
	}
	s.count = 0
}

// Compact releases trailing chunks that hold no live elements. The first
// chunk is never released.
func (s *Store[T]) Compact() {
	for s.allocated > 1 && s.count <= (s.allocated-1)*s.perChunk {
		prev := s.ChunkLink(s.allocated - 2)
		s.alloc.Release(prev.next)
		prev.next = nil
		s.tail = prev
		s.allocated--
	}
}

// Destroy releases all chunks. The store is unusable afterwards.
func (s *Store[T]) Destroy() {
	if s.closed {
		return
	}
	for c := s.head; c != nil; {
		next := c.next
		s.alloc.Release(c)
		c = next
	}
	s.head, s.tail = nil, nil
	s.count, s.allocated = 0, 0
	s.closed = true
}

// Iter returns a cursor positioned before the first element
func (s *Store[T]) Iter() *Cursor[T] {
	return &Cursor[T]{store: s, chunk: s.head}
}

func (s *Store[T]) grow() error {
	c, err := s.alloc.Allocate(s.perChunk)
	if err != nil {
		return err
	}
	s.tail.next = c
	s.tail = c
	s.allocated++
	return nil
}

// slot resolves a logical index to its physical slot. The caller checks bounds.
func (s *Store[T]) slot(i int) *T {
	c := s.ChunkLink(i / s.perChunk)
	return &c.slots[i%s.perChunk]
}

package store

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Allocator hands out and takes back chunks for a Store
type Allocator[T any] interface {
	Allocate(slots int) (*Chunk[T], error)
	Release(c *Chunk[T])
}

// HeapAllocator allocates every chunk fresh and lets the GC reclaim released ones
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Allocate(slots int) (*Chunk[T], error) {
	return newChunk[T](slots), nil
}

func (HeapAllocator[T]) Release(*Chunk[T]) {}

// ChunkPool recycles released chunks for memory efficiency and optionally caps
// how many chunks may be outstanding at once. It is safe for concurrent use, so
// one pool can back the stores of several simulations.
type ChunkPool[T any] struct {
	pool      sync.Pool
	maxChunks int64
	inUse     atomic.Int64
}

// NewChunkPool returns a pool that refuses to hand out more than maxChunks
// chunks at a time. A maxChunks of 0 means unlimited.
func NewChunkPool[T any](maxChunks int) *ChunkPool[T] {
	return &ChunkPool[T]{
		pool: sync.Pool{
			New: func() interface{} {
				return &Chunk[T]{}
			},
		},
		maxChunks: int64(maxChunks),
	}
}

// Allocate retrieves a chunk from the pool, resizing it if needed
func (p *ChunkPool[T]) Allocate(slots int) (*Chunk[T], error) {
	if n := p.inUse.Add(1); p.maxChunks > 0 && n > p.maxChunks {
		p.inUse.Add(-1)
		return nil, errors.Wrapf(ErrAllocation, "[ChunkPool.Allocate] budget of %d chunks exhausted", p.maxChunks)
	}

	c := p.pool.Get().(*Chunk[T])
	if cap(c.slots) < slots {
		c.slots = make([]T, slots)
	}
	c.slots = c.slots[:slots]
	c.next = nil
	return c, nil
}

// Release returns a chunk to the pool, clearing its state
func (p *ChunkPool[T]) Release(c *Chunk[T]) {
	if c == nil {
		return
	}
	// Clear the chunk before returning to pool
	clear(c.slots)
	c.next = nil
	p.inUse.Add(-1)
	p.pool.Put(c)
}

// InUse reports how many chunks are currently handed out
func (p *ChunkPool[T]) InUse() int {
	return int(p.inUse.Load())
}

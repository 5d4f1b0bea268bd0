package store

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

const testChunkSize = 5 // four elements per chunk

func newTestStore(t *testing.T) *Store[int] {
	t.Helper()
	s, err := New[int](testChunkSize)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func fill(t *testing.T, s *Store[int], n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.Add(i); err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
	}
}

func TestNewRejectsTinyChunks(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		if _, err := New[int](size); !errors.Is(err, ErrChunkSize) {
			t.Fatalf("New(%d): expected ErrChunkSize, got %v", size, err)
		}
	}
}

func TestNewStartsWithOneChunk(t *testing.T) {
	s := newTestStore(t)
	if s.Len() != 0 || s.Chunks() != 1 {
		t.Fatalf("expected empty store with 1 chunk, got len=%d chunks=%d", s.Len(), s.Chunks())
	}
	if s.ChunkLink(0).Next() != nil {
		t.Fatalf("expected single chunk to have a nil link")
	}
}

func TestAddGrowsChunksOnDemand(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 9)

	if s.Len() != 9 {
		t.Fatalf("expected 9 elements, got %d", s.Len())
	}
	if s.Chunks() != 3 {
		t.Fatalf("expected 3 chunks for 9 elements, got %d", s.Chunks())
	}
	for i := 0; i < 9; i++ {
		v, err := s.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if *v != i {
			t.Fatalf("Get(%d) = %d", i, *v)
		}
	}

	nilLinks := 0
	for c := s.ChunkLink(0); c != nil; c = c.Next() {
		if c.Next() == nil {
			nilLinks++
		}
	}
	if nilLinks != 1 {
		t.Fatalf("expected exactly one chunk with nil link, got %d", nilLinks)
	}
}

func TestGetOutOfRange(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 3)

	for _, i := range []int{-1, 3, 100} {
		if _, err := s.Get(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Get(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestRemoveSwapsInTail(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 7)

	if err := s.Remove(2); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	v, err := s.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}
	if *v != 6 {
		t.Fatalf("expected former tail 6 at index 2, got %d", *v)
	}
	if _, err := s.Get(6); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected old tail index to be out of range, got %v", err)
	}
}

func TestRemoveLastOnlyShrinks(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 3)

	if err := s.Remove(2); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	for i := 0; i < 2; i++ {
		if v, _ := s.Get(i); *v != i {
			t.Fatalf("Get(%d) = %d after removing tail", i, *v)
		}
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 2)

	for _, i := range []int{-1, 2} {
		if err := s.Remove(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Remove(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if s.Len() != 2 {
		t.Fatalf("failed removes changed length to %d", s.Len())
	}
}

func TestRemoveAllFromFrontReleasesChunks(t *testing.T) {
	s := newTestStore(t)
	n := testChunkSize*3 + 2
	fill(t, s, n)

	for s.Len() > 0 {
		if err := s.Remove(0); err != nil {
			t.Fatalf("Remove(0) at len %d: %v", s.Len(), err)
		}
		if s.Chunks()*s.ChunkCap() < s.Len() {
			t.Fatalf("chunk capacity %d below length %d", s.Chunks()*s.ChunkCap(), s.Len())
		}
	}
	if s.Chunks() != 1 {
		t.Fatalf("expected only the first chunk to remain, got %d", s.Chunks())
	}
}

func TestRandomAddRemoveKeepsCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newTestStore(t)
	want := 0

	for step := 0; step < 2000; step++ {
		if rng.Intn(3) > 0 || s.Len() == 0 {
			if err := s.Add(step); err != nil {
				t.Fatalf("Add: %v", err)
			}
			want++
		} else {
			if err := s.Remove(rng.Intn(s.Len())); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			want--
		}

		if s.Len() != want {
			t.Fatalf("step %d: len %d, want %d", step, s.Len(), want)
		}
		if _, err := s.Get(want); err == nil {
			t.Fatalf("step %d: Get(%d) should be out of range", step, want)
		}
		if want > 0 {
			if _, err := s.Get(want - 1); err != nil {
				t.Fatalf("step %d: Get(%d): %v", step, want-1, err)
			}
		}
	}
}

func TestResetKeepsChunks(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 10)
	chunks := s.Chunks()

	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("expected empty store after Reset, got %d", s.Len())
	}
	if s.Chunks() != chunks {
		t.Fatalf("Reset released chunks: %d -> %d", chunks, s.Chunks())
	}

	fill(t, s, 5)
	if s.Chunks() != chunks {
		t.Fatalf("refilling allocated new chunks: %d -> %d", chunks, s.Chunks())
	}
	if v, _ := s.Get(4); *v != 4 {
		t.Fatalf("Get(4) = %d after refill", *v)
	}

	s.Compact()
	if s.Chunks() != 2 {
		t.Fatalf("expected Compact to keep 2 chunks for 5 elements, got %d", s.Chunks())
	}
}

func TestChunkLinkResolvesLastChunk(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 9)

	last := s.ChunkLink(-1)
	if last.Next() != nil {
		t.Fatalf("ChunkLink(-1) is not the last chunk")
	}
	if s.ChunkLink(50) != last {
		t.Fatalf("out of range chunk number did not resolve to the last chunk")
	}
	if s.ChunkLink(1) != s.ChunkLink(0).Next() {
		t.Fatalf("ChunkLink(1) is not the second chunk")
	}
}

func TestDestroy(t *testing.T) {
	pool := NewChunkPool[int](0)
	s, err := New[int](testChunkSize, WithAllocator[int](pool))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fill(t, s, 9)
	if pool.InUse() != 3 {
		t.Fatalf("expected 3 chunks in use, got %d", pool.InUse())
	}

	s.Destroy()
	if pool.InUse() != 0 {
		t.Fatalf("expected Destroy to release every chunk, %d still in use", pool.InUse())
	}
	if err := s.Add(1); !errors.Is(err, ErrClosed) {
		t.Fatalf("Add after Destroy: expected ErrClosed, got %v", err)
	}
	if _, err := s.Get(0); !errors.Is(err, ErrClosed) {
		t.Fatalf("Get after Destroy: expected ErrClosed, got %v", err)
	}
}

func TestChunkPoolBudget(t *testing.T) {
	pool := NewChunkPool[int](2)
	s, err := New[int](testChunkSize, WithAllocator[int](pool))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fill(t, s, 8)

	err = s.Add(8)
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation once the budget is spent, got %v", err)
	}
	if s.Len() != 8 {
		t.Fatalf("failed Add changed length to %d", s.Len())
	}

	// freeing a chunk makes room again
	for i := 0; i < 4; i++ {
		if err := s.Remove(0); err != nil {
			t.Fatalf("Remove: %v", err)
		}
	}
	if pool.InUse() != 1 {
		t.Fatalf("expected 1 chunk in use after shrinking, got %d", pool.InUse())
	}
	fill(t, s, 4)
}

func TestNewFailsWithoutBudget(t *testing.T) {
	pool := NewChunkPool[int](1)
	if _, err := New[int](testChunkSize, WithAllocator[int](pool)); err != nil {
		t.Fatalf("first store: %v", err)
	}
	if _, err := New[int](testChunkSize, WithAllocator[int](pool)); !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation for second store, got %v", err)
	}
}

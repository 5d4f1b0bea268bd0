package store

import "testing"

func TestCursorWalksAcrossChunks(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 11)

	it := s.Iter()
	for want := 0; want < 11; want++ {
		if p := it.Peek(); p == nil || *p != want {
			t.Fatalf("Peek before %d returned %v", want, p)
		}
		v := it.Next()
		if v == nil || *v != want {
			t.Fatalf("Next returned %v, want %d", v, want)
		}
		if prev := it.Previous(); prev == nil || *prev != want {
			t.Fatalf("Previous after %d returned %v", want, prev)
		}
	}
	if it.Next() != nil || it.Peek() != nil {
		t.Fatalf("expected exhausted cursor")
	}
}

func TestCursorEmptyStore(t *testing.T) {
	s := newTestStore(t)
	it := s.Iter()
	if it.Next() != nil || it.Peek() != nil || it.Previous() != nil || it.NextBack() != nil {
		t.Fatalf("expected nil from every operation on an empty store")
	}
}

func TestCursorSeesAppendedElements(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 4)

	it := s.Iter()
	for it.Next() != nil {
	}
	if err := s.Add(4); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if v := it.Next(); v == nil || *v != 4 {
		t.Fatalf("expected cursor to reach element appended into a new chunk, got %v", v)
	}
}

func TestCursorCloneIsIndependent(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 6)

	it := s.Iter()
	it.Next()
	it.Next()

	clone := it.Clone()
	sum := 0
	clone.ForEach(func(v *int) { sum += *v })
	if sum != 2+3+4+5 {
		t.Fatalf("clone visited wrong elements, sum %d", sum)
	}
	if it.Index() != 2 {
		t.Fatalf("walking the clone moved the original to %d", it.Index())
	}
	if v := it.Next(); *v != 2 {
		t.Fatalf("original resumed at %d", *v)
	}
}

func TestCursorNextBackWithinChunk(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 4)

	it := s.Iter()
	it.Next()
	it.Next()
	it.Next() // index 3

	if v := it.NextBack(); v == nil || *v != 2 {
		t.Fatalf("NextBack returned %v, want 2", v)
	}
	if v := it.NextBack(); v == nil || *v != 1 {
		t.Fatalf("NextBack returned %v, want 1", v)
	}
	if v := it.Next(); *v != 1 {
		t.Fatalf("Next after stepping back returned %d, want 1", *v)
	}
}

func TestCursorNextBackStopsAtChunkBoundary(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 8)

	it := s.Iter()
	for i := 0; i < 6; i++ {
		it.Next()
	}
	// elements 4 and 5 sit in the second chunk
	if v := it.NextBack(); v == nil || *v != 5 {
		t.Fatalf("NextBack returned %v, want 5", v)
	}
	if v := it.NextBack(); v != nil {
		t.Fatalf("expected NextBack to refuse crossing into the first chunk, got %d", *v)
	}
	if it.Index() != 5 {
		t.Fatalf("refused NextBack moved the cursor to %d", it.Index())
	}
}

func TestCursorPreviousAfterSwapRemove(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 9)

	it := s.Iter()
	for i := 0; i < 5; i++ {
		it.Next()
	}
	// drop element 4 (first slot of the second chunk) while standing on it
	if err := s.Remove(it.Index() - 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if v := it.Previous(); v == nil || *v != 8 {
		t.Fatalf("Previous returned %v, want swapped-in 8", v)
	}

	seen := []int{}
	it.ForEach(func(v *int) { seen = append(seen, *v) })
	want := []int{5, 6, 7}
	if len(seen) != len(want) {
		t.Fatalf("remaining elements %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("remaining elements %v, want %v", seen, want)
		}
	}
}

func TestCursorPreviousAfterRemovingTail(t *testing.T) {
	s := newTestStore(t)
	fill(t, s, 5)

	it := s.Iter()
	for it.Next() != nil {
	}
	if err := s.Remove(it.Index() - 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if v := it.Previous(); v != nil {
		t.Fatalf("expected nil after removing the tail, got %d", *v)
	}
}

package store

// Iterator walks the elements of a store
type Iterator[T any] interface {
	// Next advances and returns the element it passed, or nil at the end
	Next() *T
	// Peek returns what Next would return without advancing
	Peek() *T
	// Previous returns the element last returned by Next without moving
	Previous() *T
	// NextBack steps back one element and returns it
	NextBack() *T
	// Clone duplicates the current position
	Clone() Iterator[T]
	// ForEach calls fn on every remaining element
	ForEach(fn func(*T))
	// Index returns the logical index Next will return next
	Index() int
}

// Cursor is the Iterator over a Store. It reads the element count through its
// store, so it sees elements appended behind it, but any Add or Remove other
// than the ones it is driving invalidates it.
//
// The chain is singly linked, so NextBack cannot step over the first slot of a
// chunk other than the first one and returns nil there.
type Cursor[T any] struct {
	store *Store[T]
	chunk *Chunk[T] // holds element idx-1, or the head when idx is 0
	idx   int
}

var _ Iterator[int] = (*Cursor[int])(nil)

func (c *Cursor[T]) Next() *T {
	s := c.store
	if c.idx >= s.count {
		return nil
	}
	off := c.idx % s.perChunk
	if c.idx > 0 && off == 0 {
		if c.chunk.next == nil {
			return nil
		}
		c.chunk = c.chunk.next
	}
	c.idx++
	return &c.chunk.slots[off]
}

func (c *Cursor[T]) Peek() *T {
	s := c.store
	if c.idx >= s.count {
		return nil
	}
	off := c.idx % s.perChunk
	chunk := c.chunk
	if c.idx > 0 && off == 0 {
		if chunk = chunk.next; chunk == nil {
			return nil
		}
	}
	return &chunk.slots[off]
}

func (c *Cursor[T]) Previous() *T {
	if c.idx == 0 || c.idx > c.store.count {
		return nil
	}
	return &c.chunk.slots[(c.idx-1)%c.store.perChunk]
}

func (c *Cursor[T]) NextBack() *T {
	s := c.store
	if c.idx == 0 || c.idx > s.count {
		return nil
	}
	if c.idx > 1 && (c.idx-1)%s.perChunk == 0 {
		// element idx-2 is in the previous chunk, which we cannot reach
		return nil
	}
	c.idx--
	return &c.chunk.slots[c.idx%s.perChunk]
}

func (c *Cursor[T]) Clone() Iterator[T] {
	cp := *c
	return &cp
}

func (c *Cursor[T]) ForEach(fn func(*T)) {
	for v := c.Next(); v != nil; v = c.Next() {
		fn(v)
	}
}

func (c *Cursor[T]) Index() int {
	return c.idx
}

package vtab

import "fmt"

// Chunk is a bounded output batch with NumColumns string columns. Produce
// inserts rows 0..n-1 in order, then calls SetLen(n).
type Chunk interface {
	Capacity() int
	// Reset drops any rows inserted since the last Reset.
	Reset()
	Insert(col, row int, v string)
	SetLen(n int)
}

// StringChunk is a Chunk backed by plain Go slices.
type StringChunk struct {
	Cols [NumColumns][]string
	n    int
	cap  int
}

// NewStringChunk allocates a chunk holding up to capacity rows.
func NewStringChunk(capacity int) *StringChunk {
	c := &StringChunk{cap: capacity}
	if capacity > 0 {
		for i := range c.Cols {
			c.Cols[i] = make([]string, 0, capacity)
		}
	}
	return c
}

func (c *StringChunk) Capacity() int { return c.cap }
func (c *StringChunk) Len() int      { return c.n }

func (c *StringChunk) Reset() {
	for i := range c.Cols {
		clear(c.Cols[i])
		c.Cols[i] = c.Cols[i][:0]
	}
	c.n = 0
}

func (c *StringChunk) Insert(col, row int, v string) {
	if row != len(c.Cols[col]) {
		panic(fmt.Sprintf("vtab: out-of-order insert col=%d row=%d len=%d", col, row, len(c.Cols[col])))
	}
	c.Cols[col] = append(c.Cols[col], v)
}

func (c *StringChunk) SetLen(n int) { c.n = n }

// Row returns the (metadata, sequence, quality) triple at i.
func (c *StringChunk) Row(i int) (metadata, sequence, quality string) {
	return c.Cols[ColMetadata][i], c.Cols[ColSequence][i], c.Cols[ColQuality][i]
}

// Clone returns an independent copy holding the same rows.
func (c *StringChunk) Clone() *StringChunk {
	out := NewStringChunk(c.cap)
	for i := range c.Cols {
		out.Cols[i] = append(out.Cols[i], c.Cols[i][:c.n]...)
	}
	out.n = c.n
	return out
}

// Package arrowchunk fills Apache Arrow string columns from vtab.Produce,
// for hosts that consume columnar record batches.
package arrowchunk

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"fquack/internal/vtab"
)

// Chunk is a vtab.Chunk backed by Arrow string builders.
type Chunk struct {
	schema   *arrow.Schema
	builders [vtab.NumColumns]*array.StringBuilder
	cap      int
	n        int
}

var _ vtab.Chunk = (*Chunk)(nil)

// New returns a chunk of the given capacity. A nil mem uses the Go allocator.
func New(mem memory.Allocator, capacity int) *Chunk {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	c := &Chunk{schema: vtab.FastqSchema().Arrow(), cap: capacity}
	for i := range c.builders {
		c.builders[i] = array.NewStringBuilder(mem)
		if capacity > 0 {
			c.builders[i].Reserve(capacity)
		}
	}
	return c
}

func (c *Chunk) Schema() *arrow.Schema { return c.schema }
func (c *Chunk) Capacity() int         { return c.cap }
func (c *Chunk) Len() int              { return c.n }

func (c *Chunk) Reset() {
	for _, b := range c.builders {
		if b.Len() > 0 {
			b.NewArray().Release()
		}
	}
	c.n = 0
}

// Insert appends v; rows arrive in order so row equals the builder length.
func (c *Chunk) Insert(col, _ int, v string) { c.builders[col].Append(v) }

func (c *Chunk) SetLen(n int) { c.n = n }

// NewRecord moves the buffered rows into a record and empties the builders.
// The caller must Release the record.
func (c *Chunk) NewRecord() arrow.Record {
	cols := make([]arrow.Array, len(c.builders))
	for i, b := range c.builders {
		cols[i] = b.NewArray()
	}
	rec := array.NewRecord(c.schema, cols, int64(c.n))
	for _, a := range cols {
		a.Release()
	}
	c.n = 0
	return rec
}

// Release frees the builders' memory.
func (c *Chunk) Release() {
	for _, b := range c.builders {
		b.Release()
	}
}

package writers

import (
	"context"
	"io"

	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"fquack/internal/arrowchunk"
	"fquack/internal/scan"
	"fquack/internal/vtab"
)

// WriteArrow scans files straight into Arrow builders and writes an IPC
// stream with one record batch per produced chunk. It does not go through
// the Batch channel: rows never exist as Go strings in between. Returns the
// number of rows written.
func WriteArrow(ctx context.Context, cfg scan.Config, files []string, out io.Writer, mem memory.Allocator) (int64, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	w := ipc.NewWriter(out, ipc.WithSchema(vtab.FastqSchema().Arrow()), ipc.WithAllocator(mem))

	var (
		total  int64
		chunks []*arrowchunk.Chunk
	)
	defer func() {
		for _, c := range chunks {
			c.Release()
		}
	}()
	newChunk := func(capacity int) *arrowchunk.Chunk {
		c := arrowchunk.New(mem, capacity)
		chunks = append(chunks, c)
		return c
	}

	err := scan.ForEachChunk(ctx, cfg, files, newChunk, func(_ string, c *arrowchunk.Chunk, n int) error {
		rec := c.NewRecord()
		defer rec.Release()
		total += int64(n)
		return w.Write(rec)
	})
	if err != nil {
		_ = w.Close()
		return total, err
	}
	return total, w.Close()
}

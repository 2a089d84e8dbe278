package scan

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fquack/internal/debuglog"
	"fquack/internal/vtab"
)

// DefaultBatchSize matches the vector size DuckDB hands to table functions.
const DefaultBatchSize = 2048

// Config controls a scan.
type Config struct {
	BatchSize int  // chunk capacity; <= 0 uses DefaultBatchSize
	Mmap      bool // memory-map plain input files
	Threads   int  // Count only: files scanned at once; <= 0 means 1
}

// Batch is one non-empty chunk produced from File.
type Batch struct {
	File  string
	Chunk *vtab.StringChunk
}

// ForEachBatch scans files in order and calls visit for each produced chunk.
// visit owns the chunk it receives. ctx is checked between producer calls;
// the handle is closed on every exit path.
func ForEachBatch(ctx context.Context, cfg Config, files []string, visit func(Batch) error) error {
	for _, f := range files {
		err := scanFile(ctx, cfg, f, vtab.NewStringChunk, func(c *vtab.StringChunk, _ int) error {
			return visit(Batch{File: f, Chunk: c})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ForEachChunk scans files in order into host-provided chunks. newChunk is
// called once per file and the chunk is refilled on every producer call, so
// visit must consume it before returning.
func ForEachChunk[C vtab.Chunk](ctx context.Context, cfg Config, files []string, newChunk func(capacity int) C, visit func(file string, c C, n int) error) error {
	for _, f := range files {
		err := scanFile(ctx, cfg, f, reuse(newChunk), func(c C, n int) error {
			return visit(f, c, n)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// reuse wraps newChunk so it allocates once.
func reuse[C vtab.Chunk](newChunk func(int) C) func(int) C {
	var (
		c  C
		ok bool
	)
	return func(size int) C {
		if !ok {
			c, ok = newChunk(size), true
		}
		return c
	}
}

// FileCount is the number of rows in one file.
type FileCount struct {
	File string
	Rows int64
}

// Count returns the row count of every file, in argument order. Up to
// cfg.Threads files are scanned at the same time.
func Count(ctx context.Context, cfg Config, files []string) ([]FileCount, error) {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	out := make([]FileCount, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, f := range files {
		i, f := i, f // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			var rows int64
			err := scanFile(gctx, cfg, f, reuse(vtab.NewStringChunk), func(_ *vtab.StringChunk, n int) error {
				rows += int64(n)
				return nil
			})
			out[i] = FileCount{File: f, Rows: rows}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// scanFile runs one full lifecycle. chunk is asked for the target of every
// producer call and may hand back the same chunk each time.
func scanFile[C vtab.Chunk](ctx context.Context, cfg Config, path string, chunk func(capacity int) C, visit func(c C, n int) error) (err error) {
	size := cfg.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	_, bd, err := vtab.Bind([]any{path})
	if err != nil {
		return err
	}
	h, err := vtab.Init(bd, vtab.WithMmap(cfg.Mmap))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	for calls := 1; ; calls++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := chunk(size)
		n, err := vtab.Produce(h, c)
		if err != nil {
			return err
		}
		if n == 0 {
			debuglog.Printf("file %s: exhausted after %d calls, %d rows", path, calls, h.Rows())
			return nil
		}
		if err := visit(c, n); err != nil {
			return err
		}
	}
}

package writers

import (
	"fmt"
	"io"
	"sort"

	"fquack/internal/scan"
)

// Options are shared by all writers; each uses the fields it understands.
type Options struct {
	Header       bool   // TSV header line
	SourceColumn bool   // add source_file to TSV/JSONL/Parquet rows
	DBPath       string // sqlite database file
	BufSize      int    // channel buffer; <= 0 means 16
}

// Factory starts a writer goroutine on out.
type Factory func(out io.Writer, o Options) (chan<- scan.Batch, <-chan error)

// Writer registry (format → factory). Register in init() blocks from the
// per-format files.
var registry = map[string]Factory{}

// Register adds or replaces (last wins) the factory for format.
func Register(format string, f Factory) { registry[format] = f }

// Formats lists the registered format names in order.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Start dispatches to the registered factory. An unknown format still
// returns a usable channel pair; the error arrives on the error channel.
func Start(format string, out io.Writer, o Options) (chan<- scan.Batch, <-chan error) {
	f, ok := registry[format]
	if !ok {
		return start(o.BufSize, func(<-chan scan.Batch) error {
			return fmt.Errorf("unknown output format %q (no writer registered)", format)
		})
	}
	return f(out, o)
}

// start runs fn in a goroutine. If fn returns early the rest of the input is
// drained so senders never block on a dead writer.
func start(bufSize int, fn func(in <-chan scan.Batch) error) (chan<- scan.Batch, <-chan error) {
	if bufSize <= 0 {
		bufSize = 16
	}
	in := make(chan scan.Batch, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := fn(in)
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}

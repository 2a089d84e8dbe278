package vtab

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"fquack/internal/debuglog"
	"fquack/internal/fastq"
)

// Source yields records in file order and returns io.EOF when exhausted.
// Calling Next after io.EOF must keep returning io.EOF.
type Source interface {
	Next() (*fastq.Record, error)
	Close() error
}

// Handle is the per-scan resource: the open Source behind a mutex plus the
// exhaustion flag. It is shared by the scan owner and every Produce call.
type Handle struct {
	ID uuid.UUID

	path string

	mu       sync.Mutex
	src      Source // nil once closed
	dec      *lossyDecoder
	poisoned bool

	// done is read without the lock as a fast path and only written while
	// holding mu.
	done atomic.Bool

	rows  atomic.Int64
	calls atomic.Int64
}

// InitOption tunes Init.
type InitOption func(*initConfig)

type initConfig struct {
	mmap bool
	open func(path string) (Source, error)
}

// WithMmap memory-maps plain input files.
func WithMmap(on bool) InitOption {
	return func(c *initConfig) { c.mmap = on }
}

// WithOpener replaces the FASTQ opener, e.g. to feed an in-memory source.
func WithOpener(open func(path string) (Source, error)) InitOption {
	return func(c *initConfig) { c.open = open }
}

// Init opens the bound file. It runs once per scan.
func Init(bd BindData, opts ...InitOption) (*Handle, error) {
	var cfg initConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.open == nil {
		cfg.open = func(path string) (Source, error) {
			r, err := fastq.OpenWith(path, fastq.Options{Mmap: cfg.mmap})
			if err != nil {
				return nil, err
			}
			return r, nil
		}
	}

	src, err := cfg.open(bd.Filename)
	if err != nil {
		return nil, newIOError(bd.Filename, err)
	}
	h := &Handle{
		ID:   uuid.New(),
		path: bd.Filename,
		src:  src,
		dec:  newLossyDecoder(),
	}
	debuglog.Printf("scan %s: opened %s (mmap=%t)", h.ID, bd.Filename, cfg.mmap)
	return h, nil
}

// Path is the bound filename.
func (h *Handle) Path() string { return h.path }

// Exhausted reports whether the source has been fully drained.
func (h *Handle) Exhausted() bool { return h.done.Load() }

// Rows is the number of rows produced so far.
func (h *Handle) Rows() int64 { return h.rows.Load() }

// Close releases the source. It waits for an in-flight Produce call and is
// safe to call more than once.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.src == nil {
		return nil
	}
	err := h.src.Close()
	h.src = nil
	debuglog.Printf("scan %s: closed after %d rows in %d calls", h.ID, h.rows.Load(), h.calls.Load())
	return err
}

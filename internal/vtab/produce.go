package vtab

import (
	"fmt"
	"io"

	"fquack/internal/debuglog"
)

// Produce fills out with up to out.Capacity() rows and returns how many it
// wrote. It returns 0 exactly when the source is exhausted; from then on
// every call returns 0 without locking. On a FormatError the chunk is reset
// so no row of the failed call is committed.
//
// A panic while the source is locked poisons h: later calls fail with an
// InternalError instead of reading a source left in an unknown state.
func Produce(h *Handle, out Chunk) (n int, err error) {
	if h.done.Load() {
		out.Reset()
		out.SetLen(0)
		return 0, nil
	}
	capacity := out.Capacity()
	if capacity < 1 {
		return 0, &Error{Kind: ArgumentError, Op: "produce", Path: h.path,
			Err: fmt.Errorf("chunk capacity must be >= 1, got %d", capacity)}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.poisoned {
		return 0, newInternalError(h.path, "failed to lock reader: poisoned by an earlier panic")
	}
	if h.src == nil {
		return 0, newInternalError(h.path, "failed to lock reader: handle closed")
	}
	// Another call may have drained the source while we waited.
	if h.done.Load() {
		out.Reset()
		out.SetLen(0)
		return 0, nil
	}

	defer func() {
		if r := recover(); r != nil {
			h.poisoned = true
			panic(r)
		}
	}()

	call := h.calls.Add(1)
	debuglog.Printf("scan %s: starting produce call %d", h.ID, call)

	out.Reset()
	for n < capacity {
		rec, err := h.src.Next()
		if err == io.EOF {
			h.done.Store(true)
			break
		}
		if err != nil {
			out.Reset()
			out.SetLen(0)
			return 0, newFormatError(h.path, err)
		}

		out.Insert(ColMetadata, n, h.dec.String(rec.ID()))
		out.Insert(ColSequence, n, h.dec.String(rec.Seq))
		out.Insert(ColQuality, n, h.dec.String(rec.Qual))
		n++

		if debuglog.Enabled() {
			debuglog.Printf("scan %s: inserted record %d", h.ID, h.rows.Load()+int64(n))
		}
	}

	out.SetLen(n)
	h.rows.Add(int64(n))
	return n, nil
}

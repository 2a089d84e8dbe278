package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"fquack/internal/output"
	"fquack/internal/scan"
)

func init() { Register("jsonl", StartJSONLWriter) }

// Reuse a 64 KiB buffered writer across JSONL writers.
var bwPool = sync.Pool{
	New: func() any { return bufio.NewWriterSize(io.Discard, 64<<10) },
}

// StartJSONLWriter streams each row as one JSON line (v1).
func StartJSONLWriter(out io.Writer, o Options) (chan<- scan.Batch, <-chan error) {
	return start(o.BufSize, func(in <-chan scan.Batch) error {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)
		for b := range in {
			for _, r := range output.ToAPIReads(b, o.SourceColumn) {
				if err := enc.Encode(r); err != nil {
					return err
				}
			}
		}
		return bw.Flush()
	})
}

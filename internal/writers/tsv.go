package writers

import (
	"io"

	"github.com/valyala/bytebufferpool"

	"fquack/internal/output"
	"fquack/internal/scan"
)

func init() { Register("tsv", StartTSVWriter) }

// StartTSVWriter streams batches as tab-separated rows, one Write per batch.
func StartTSVWriter(out io.Writer, o Options) (chan<- scan.Batch, <-chan error) {
	return start(o.BufSize, func(in <-chan scan.Batch) error {
		if o.Header {
			if _, err := io.WriteString(out, output.Header(o.SourceColumn)+"\n"); err != nil {
				return err
			}
		}
		for b := range in {
			buf := bytebufferpool.Get()
			output.AppendTSV(buf, b, o.SourceColumn)
			_, err := out.Write(buf.B)
			bytebufferpool.Put(buf)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

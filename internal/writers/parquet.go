package writers

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"fquack/internal/output"
	"fquack/internal/scan"
	"fquack/pkg/api"
)

func init() { Register("parquet", StartParquetWriter) }

// StartParquetWriter writes all rows into one Parquet file; each batch
// becomes one Write call. The footer is written when the input closes.
func StartParquetWriter(out io.Writer, o Options) (chan<- scan.Batch, <-chan error) {
	return start(o.BufSize, func(in <-chan scan.Batch) error {
		pw := parquet.NewGenericWriter[api.ReadV1](out)
		for b := range in {
			if _, err := pw.Write(output.ToAPIReads(b, o.SourceColumn)); err != nil {
				_ = pw.Close()
				return err
			}
		}
		return pw.Close()
	})
}

package cmdutil

import (
	"context"

	"fquack/internal/scan"
)

// RunStream scans files and hands every produced batch to send. It returns
// the number of rows sent and the first error encountered.
func RunStream(ctx context.Context, cfg scan.Config, files []string, send func(scan.Batch) error) (int64, error) {
	var total int64
	err := scan.ForEachBatch(ctx, cfg, files, func(b scan.Batch) error {
		if err := send(b); err != nil {
			return err
		}
		total += int64(b.Chunk.Len())
		return nil
	})
	return total, err
}

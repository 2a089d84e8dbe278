package output

import (
	"fquack/internal/scan"
	"fquack/pkg/api"
)

// ToAPIReads converts a produced batch to the stable wire schema (v1).
func ToAPIReads(b scan.Batch, withSource bool) []api.ReadV1 {
	out := make([]api.ReadV1, b.Chunk.Len())
	for i := range out {
		m, s, q := b.Chunk.Row(i)
		out[i] = api.ReadV1{Metadata: m, Sequence: s, Quality: q}
		if withSource {
			out[i].SourceFile = b.File
		}
	}
	return out
}

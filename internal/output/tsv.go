package output

import (
	"github.com/valyala/bytebufferpool"

	"fquack/internal/scan"
)

// AppendTSV appends one tab-separated line per row of b to buf.
// Fields are written verbatim: IDs stop at the first whitespace and
// sequence/quality lines carry no tabs.
func AppendTSV(buf *bytebufferpool.ByteBuffer, b scan.Batch, withSource bool) {
	for i := 0; i < b.Chunk.Len(); i++ {
		m, s, q := b.Chunk.Row(i)
		if withSource {
			_, _ = buf.WriteString(b.File)
			_ = buf.WriteByte('\t')
		}
		_, _ = buf.WriteString(m)
		_ = buf.WriteByte('\t')
		_, _ = buf.WriteString(s)
		_ = buf.WriteByte('\t')
		_, _ = buf.WriteString(q)
		_ = buf.WriteByte('\n')
	}
}

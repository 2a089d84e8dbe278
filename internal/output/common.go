package output

// TSVHeader is the canonical header row for TSV output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "metadata\tsequence\tquality"

// TSVHeaderWithSource prefixes TSVHeader with the source file column.
const TSVHeaderWithSource = "source_file\t" + TSVHeader

// Header picks the header row for the given column layout.
func Header(withSource bool) string {
	if withSource {
		return TSVHeaderWithSource
	}
	return TSVHeader
}

// CountHeader is the header row of count output.
const CountHeader = "source_file\trows"

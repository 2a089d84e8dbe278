package vtab

import "github.com/apache/arrow/go/v17/arrow"

// LogicalType is a host column type. Only VARCHAR is ever declared.
type LogicalType string

const Varchar LogicalType = "VARCHAR"

// Column indexes into every Chunk.
const (
	ColMetadata = iota
	ColSequence
	ColQuality

	NumColumns
)

// Column is one declared output column.
type Column struct {
	Name string
	Type LogicalType
}

// Schema is the ordered list of output columns.
type Schema []Column

// FastqSchema returns the fixed output shape: metadata, sequence, quality.
func FastqSchema() Schema {
	return Schema{
		{Name: "metadata", Type: Varchar},
		{Name: "sequence", Type: Varchar},
		{Name: "quality", Type: Varchar},
	}
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Name
	}
	return out
}

// Arrow converts the schema to non-nullable Arrow utf8 fields; the producer
// never emits nulls.
func (s Schema) Arrow() *arrow.Schema {
	fields := make([]arrow.Field, len(s))
	for i, c := range s {
		fields[i] = arrow.Field{Name: c.Name, Type: arrow.BinaryTypes.String, Nullable: false}
	}
	return arrow.NewSchema(fields, nil)
}

// pkg/api/reads_v1.go
package api

// ReadV1 is the stable JSONL/Parquet schema for one FASTQ row.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReadV1 struct {
	SourceFile string `json:"source_file,omitempty" parquet:"source_file,optional"`
	Metadata   string `json:"metadata" parquet:"metadata"`
	Sequence   string `json:"sequence" parquet:"sequence"`
	Quality    string `json:"quality" parquet:"quality"`
}

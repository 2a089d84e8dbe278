// Package writers turns produced FASTQ batches into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (TSV, JSONL, Arrow IPC, Parquet, SQLite).
//   • vtab stays table-function-only; scan stays orchestration-only.
//   • JSONL and Parquet go through pkg/api (v1) for a stable wire format.
//
// Registered writers run in their own goroutine: callers send scan.Batch
// values on the returned channel, close it, then read exactly one error.
// Arrow IPC is the exception: WriteArrow drives the scan itself and
// produces into Arrow builders.
package writers

package writers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/google/go-cmp/cmp"
	"github.com/parquet-go/parquet-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fquack/internal/scan"
	"fquack/internal/vtab"
	"fquack/pkg/api"
)

func mkBatch(file string, rows ...[3]string) scan.Batch {
	c := vtab.NewStringChunk(len(rows))
	for r, row := range rows {
		for col, v := range row {
			c.Insert(col, r, v)
		}
	}
	c.SetLen(len(rows))
	return scan.Batch{File: file, Chunk: c}
}

func run(t *testing.T, format string, out io.Writer, o Options, batches ...scan.Batch) error {
	t.Helper()
	in, errCh := Start(format, out, o)
	for _, b := range batches {
		in <- b
	}
	close(in)
	return <-errCh
}

var sample = []scan.Batch{
	mkBatch("a.fq", [3]string{"r1", "ACGT", "IIII"}, [3]string{"r2", "GG", "##"}),
	mkBatch("b.fq", [3]string{"r3", "T", "I"}),
}

func TestUnknownFormat(t *testing.T) {
	err := run(t, "xml", io.Discard, Options{}, sample...)
	if err == nil || !strings.Contains(err.Error(), `unknown output format "xml"`) {
		t.Fatalf("want unknown format error, got %v", err)
	}
}

func TestFormatsRegistered(t *testing.T) {
	want := []string{"jsonl", "parquet", "sqlite", "tsv"}
	if diff := cmp.Diff(want, Formats()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestTSVWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := run(t, "tsv", &buf, Options{Header: true}, sample...); err != nil {
		t.Fatal(err)
	}
	want := "metadata\tsequence\tquality\nr1\tACGT\tIIII\nr2\tGG\t##\nr3\tT\tI\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}

	buf.Reset()
	if err := run(t, "tsv", &buf, Options{SourceColumn: true}, sample[1]); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "b.fq\tr3\tT\tI\n" {
		t.Fatalf("source column: got %q", got)
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriterErrorDrainsInput(t *testing.T) {
	in, errCh := StartTSVWriter(failWriter{syscall.EPIPE}, Options{BufSize: 1})
	for i := 0; i < 10; i++ {
		in <- sample[0]
	}
	close(in)
	err := <-errCh
	if !IsBrokenPipe(err) {
		t.Fatalf("want broken pipe, got %v", err)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if IsBrokenPipe(nil) || IsBrokenPipe(errors.New("x")) {
		t.Fatal("false positive")
	}
	if !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatal("closed pipe not detected")
	}
}

func TestJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := run(t, "jsonl", &buf, Options{SourceColumn: true}, sample...); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d: %q", len(lines), buf.String())
	}
	want := `{"source_file":"a.fq","metadata":"r1","sequence":"ACGT","quality":"IIII"}`
	if lines[0] != want {
		t.Fatalf("got %s want %s", lines[0], want)
	}
}

func TestWriteArrow(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fq")
	b := filepath.Join(dir, "b.fq")
	_ = os.WriteFile(a, []byte("@r1 x\nACGT\n+\nIIII\n@r2\nGG\n+\n##\n@r3\nT\n+\nI\n"), 0o644)
	_ = os.WriteFile(b, []byte("@r4\nC\n+\n!\n"), 0o644)

	var buf bytes.Buffer
	total, err := WriteArrow(context.Background(), scan.Config{BatchSize: 2}, []string{a, b}, &buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if total != 4 {
		t.Fatalf("total=%d want 4", total)
	}

	rdr, err := ipc.NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer rdr.Release()

	var ids, quals []string
	var sizes []int64
	for rdr.Next() {
		rec := rdr.Record()
		sizes = append(sizes, rec.NumRows())
		meta := rec.Column(vtab.ColMetadata).(*array.String)
		qual := rec.Column(vtab.ColQuality).(*array.String)
		for i := 0; i < meta.Len(); i++ {
			ids = append(ids, meta.Value(i))
			quals = append(quals, qual.Value(i))
		}
	}
	if err := rdr.Err(); err != nil {
		t.Fatal(err)
	}
	// One record batch per produced chunk, per file.
	if diff := cmp.Diff([]int64{2, 1, 1}, sizes); diff != "" {
		t.Fatalf("batch sizes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"r1", "r2", "r3", "r4"}, ids); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"IIII", "##", "I", "!"}, quals); diff != "" {
		t.Fatalf("quals (-want +got):\n%s", diff)
	}
}

func TestWriteArrowScanError(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.fq")
	_ = os.WriteFile(bad, []byte("@r1\nACGT\n+\nII\n"), 0o644)
	_, err := WriteArrow(context.Background(), scan.Config{}, []string{bad}, io.Discard, nil)
	if !vtab.IsKind(err, vtab.FormatError) {
		t.Fatalf("want FormatError, got %v", err)
	}
}

func TestParquetWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := run(t, "parquet", &buf, Options{SourceColumn: true}, sample...); err != nil {
		t.Fatal(err)
	}
	rows, err := parquet.Read[api.ReadV1](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	want := []api.ReadV1{
		{SourceFile: "a.fq", Metadata: "r1", Sequence: "ACGT", Quality: "IIII"},
		{SourceFile: "a.fq", Metadata: "r2", Sequence: "GG", Quality: "##"},
		{SourceFile: "b.fq", Metadata: "r3", Sequence: "T", Quality: "I"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSQLiteWriter(t *testing.T) {
	db := filepath.Join(t.TempDir(), "reads.db")
	if err := run(t, "sqlite", nil, Options{DBPath: db}, sample...); err != nil {
		t.Fatal(err)
	}

	g, err := gorm.Open(sqlite.Open(db), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := g.DB()
	defer sqlDB.Close()

	var rows []ReadRow
	if err := g.Order("id").Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	if rows[2].SourceFile != "b.fq" || rows[2].Metadata != "r3" || rows[0].Sequence != "ACGT" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestSQLiteWriterNeedsDB(t *testing.T) {
	if err := run(t, "sqlite", nil, Options{}, sample...); err == nil {
		t.Fatal("expected error without a database path")
	}
}

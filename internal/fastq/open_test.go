package fastq

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tmp.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	return b
}

func zstdBytes(t *testing.T, data string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll([]byte(data), nil)
}

func countRecords(t *testing.T, path string, o Options) int {
	t.Helper()
	r, err := OpenWith(path, o)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer func() { _ = r.Close() }()
	got, err := readAll(t, r)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return len(got)
}

func TestOpenPlainGzipZstdMmap(t *testing.T) {
	cases := []struct {
		name string
		path string
		opts Options
	}{
		{"plain", writeFile(t, "x.fastq", []byte(plain)), Options{}},
		{"gzip by magic", writeFile(t, "x.fq", gzipBytes(t, plain)), Options{}},
		{"gzip by suffix", writeFile(t, "x.fq.gz", gzipBytes(t, plain)), Options{}},
		{"zstd", writeFile(t, "x.fq.zst", zstdBytes(t, plain)), Options{}},
		{"mmap", writeFile(t, "m.fastq", []byte(plain)), Options{Mmap: true}},
		{"mmap gzip", writeFile(t, "m.fq.gz", gzipBytes(t, plain)), Options{Mmap: true}},
		{"mmap empty", writeFile(t, "e.fastq", nil), Options{Mmap: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := 2
			if tc.name == "mmap empty" {
				want = 0
			}
			if n := countRecords(t, tc.path, tc.opts); n != want {
				t.Fatalf("want %d records, got %d", want, n)
			}
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.fastq"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want fs.ErrNotExist, got %v", err)
	}
}

func TestOpenBrokenGzipHeader(t *testing.T) {
	path := writeFile(t, "bad.fq.gz", []byte("@not gzip at all\nA\n+\nI\n"))
	if _, err := Open(path); err == nil {
		t.Fatalf("expected gzip header error")
	}
}

func TestOpenStdin(t *testing.T) {
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	fr, err := Open("-")
	if err != nil {
		t.Fatalf("open stdin: %v", err)
	}
	got, err := readAll(t, fr)
	if err != nil {
		t.Fatalf("read stdin: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", len(got))
	}
}

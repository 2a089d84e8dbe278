package fastq

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Options controls how Open reads a path.
type Options struct {
	// Mmap maps plain (non-stdin, non-empty) files into memory instead of
	// reading them through the file descriptor.
	Mmap bool
}

// multiCloser closes multiple io.Closers in order and keeps the first error.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var err error
	for _, c := range m {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens path ("-" for stdin) for FASTQ parsing.
func Open(path string) (*Reader, error) { return OpenWith(path, Options{}) }

// OpenWith is Open with explicit options. Compression is detected by magic
// bytes or by a .gz / .zst suffix. A broken gzip header fails here, before
// any record is read.
func OpenWith(path string, o Options) (*Reader, error) {
	var (
		src     io.Reader
		closers multiCloser
	)
	switch {
	case path == "-":
		src = os.Stdin
	case o.Mmap:
		rc, err := openMmap(path)
		if err != nil {
			return nil, err
		}
		src, closers = rc, append(closers, rc)
	default:
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closers = fh, append(closers, fh)
	}

	br := bufio.NewReaderSize(src, readBufSize)
	sig, _ := br.Peek(len(zstdMagic))

	var in io.Reader = br
	switch {
	case bytes.HasPrefix(sig, gzipMagic) || strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closers.Close()
			return nil, fmt.Errorf("open %s: gzip: %w", path, err)
		}
		in = gr
		closers = append(multiCloser{gr}, closers...)
	case bytes.HasPrefix(sig, zstdMagic) || strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = closers.Close()
			return nil, fmt.Errorf("open %s: zstd: %w", path, err)
		}
		in = zr
		closers = append(multiCloser{zr.IOReadCloser()}, closers...)
	}

	r := NewReader(in)
	if len(closers) > 0 {
		r.closer = closers
	}
	return r, nil
}

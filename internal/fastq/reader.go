// Package fastq decodes single-line FASTQ records from plain, gzip or zstd
// input.
package fastq

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const (
	readBufSize = 256 << 10
	// MaxLine is the default longest accepted line (64 MiB); longer lines
	// fail with ErrLineTooLong instead of growing without bound.
	MaxLine = 64 << 20
)

// Record is one FASTQ entry. Head is the header line without the leading '@'.
// The slices alias the Reader's buffers and are only valid until the next
// call to Next.
type Record struct {
	Head []byte
	Seq  []byte
	Qual []byte
}

// ID returns the header up to the first space. Tabs are part of the ID.
func (r *Record) ID() []byte {
	if i := bytes.IndexByte(r.Head, ' '); i >= 0 {
		return r.Head[:i]
	}
	return r.Head
}

// Desc returns the part of the header after the ID, or nil.
func (r *Record) Desc() []byte {
	if i := bytes.IndexByte(r.Head, ' '); i >= 0 {
		return r.Head[i+1:]
	}
	return nil
}

// Reader is a streaming FASTQ parser. It is not safe for concurrent use.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer

	line    int
	count   int
	maxLine int
	err   error // sticky: io.EOF or the first failure

	hbuf, sbuf, pbuf, qbuf []byte
	rec                    Record
}

// NewReader parses FASTQ from r. The caller keeps ownership of r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, readBufSize)
	}
	return &Reader{br: br, maxLine: MaxLine}
}

// SetMaxLine changes the longest accepted line; n <= 0 restores MaxLine.
func (r *Reader) SetMaxLine(n int) {
	if n <= 0 {
		n = MaxLine
	}
	r.maxLine = n
}

// Next returns the next record, or io.EOF once the input is exhausted.
// After io.EOF or a failure every later call returns the same error, so
// draining an exhausted reader is safe.
func (r *Reader) Next() (*Record, error) {
	if r.err != nil {
		return nil, r.err
	}

	var err error
	for {
		r.hbuf, err = r.readLine(r.hbuf)
		if err != nil {
			return nil, r.fail(err)
		}
		if len(r.hbuf) > 0 {
			break
		}
	}
	r.count++
	if r.hbuf[0] != '@' {
		return nil, r.fail(r.parseErr(ErrInvalidStart, "expected '@' at start of record, found %q", r.hbuf[0]))
	}

	if r.sbuf, err = r.readLine(r.sbuf); err != nil {
		return nil, r.fail(r.truncated(err, "sequence"))
	}
	if r.pbuf, err = r.readLine(r.pbuf); err != nil {
		return nil, r.fail(r.truncated(err, "separator"))
	}
	if len(r.pbuf) == 0 || r.pbuf[0] != '+' {
		return nil, r.fail(r.parseErr(ErrInvalidSep, "expected '+' separator line"))
	}
	if r.qbuf, err = r.readLine(r.qbuf); err != nil {
		return nil, r.fail(r.truncated(err, "quality"))
	}
	if len(r.sbuf) != len(r.qbuf) {
		return nil, r.fail(r.parseErr(ErrUnequalLengths,
			"sequence length %d does not match quality length %d", len(r.sbuf), len(r.qbuf)))
	}

	r.rec = Record{Head: r.hbuf[1:], Seq: r.sbuf, Qual: r.qbuf}
	return &r.rec, nil
}

// Records returns the number of records started so far, including a
// record that failed to parse.
func (r *Reader) Records() int { return r.count }

// Close releases the underlying input when the Reader owns it.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// readLine reads one line into dst without its line terminator. It returns
// io.EOF only when no bytes were left.
func (r *Reader) readLine(dst []byte) ([]byte, error) {
	dst = dst[:0]
	for {
		frag, err := r.br.ReadSlice('\n')
		dst = append(dst, frag...)
		if err == bufio.ErrBufferFull {
			if len(dst) > r.maxLine+1 {
				return r.tooLong(dst)
			}
			continue
		}
		if err == io.EOF && len(dst) > 0 {
			break
		}
		if err != nil {
			return dst, err
		}
		break
	}
	r.line++
	if n := len(dst); n > 0 && dst[n-1] == '\n' {
		dst = dst[:n-1]
	}
	if n := len(dst); n > 0 && dst[n-1] == '\r' {
		dst = dst[:n-1]
	}
	if len(dst) > r.maxLine {
		r.line--
		return r.tooLong(dst)
	}
	return dst, nil
}

func (r *Reader) tooLong(dst []byte) ([]byte, error) {
	r.line++
	return dst[:0], r.parseErr(ErrLineTooLong, "line exceeds %d bytes", r.maxLine)
}

func (r *Reader) truncated(err error, what string) error {
	if err == io.EOF {
		return r.parseErr(ErrUnexpectedEnd, "unexpected end of input, missing %s line", what)
	}
	return err
}

func (r *Reader) parseErr(kind ErrorKind, format string, a ...any) error {
	return &ParseError{Kind: kind, Line: r.line, Record: r.count, Msg: fmt.Sprintf(format, a...)}
}

func (r *Reader) fail(err error) error {
	if err != io.EOF {
		if _, ok := err.(*ParseError); !ok {
			err = fmt.Errorf("fastq read: %w", err)
		}
	}
	r.err = err
	return err
}

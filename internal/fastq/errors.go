package fastq

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every *ParseError via errors.Is.
var ErrMalformed = errors.New("malformed fastq record")

// ErrorKind classifies a grammar violation.
type ErrorKind int

const (
	ErrInvalidStart   ErrorKind = iota + 1 // header line does not start with '@'
	ErrInvalidSep                          // third line does not start with '+'
	ErrUnequalLengths                      // len(seq) != len(qual)
	ErrUnexpectedEnd                       // file ends inside a record
	ErrLineTooLong                         // a line is longer than the reader's limit
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidStart:
		return "invalid start"
	case ErrInvalidSep:
		return "invalid separator"
	case ErrUnequalLengths:
		return "unequal lengths"
	case ErrUnexpectedEnd:
		return "unexpected end"
	case ErrLineTooLong:
		return "line too long"
	default:
		return "unknown"
	}
}

// ParseError reports a record that does not follow the FASTQ grammar.
// Line is 1-based and points at the offending line; Record is the 1-based
// ordinal of the record being parsed.
type ParseError struct {
	Kind   ErrorKind
	Line   int
	Record int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fastq: record %d, line %d: %s", e.Record, e.Line, e.Msg)
}

func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

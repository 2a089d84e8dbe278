package vtab

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// lossyDecoder turns field bytes into text, replacing each maximal invalid
// UTF-8 subsequence with U+FFFD. Not safe for concurrent use.
type lossyDecoder struct {
	dec *encoding.Decoder
}

func newLossyDecoder() *lossyDecoder {
	return &lossyDecoder{dec: unicode.UTF8.NewDecoder()}
}

func (d *lossyDecoder) String(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := d.dec.Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}

// File: textio/encode.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package textio

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/strvec"
)

// Encode writes seq as "( e1 e2 ... )": elements each followed by a
// single space, format producing each element's text.
func Encode[T any](w io.Writer, seq iter.Seq[T], format func(T) string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("( ")
	for v := range seq {
		bw.WriteString(format(v))
		bw.WriteByte(' ')
	}
	bw.WriteByte(')')
	return bw.Flush()
}

// QuoteIfNeeded returns s as a bare token when the decoder would read it
// back unchanged, else as a quoted Go string literal.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\r\f\v()[]#\"") {
		return strconv.Quote(s)
	}
	return s
}

// WriteStrings encodes a string vector.
func WriteStrings(w io.Writer, v *strvec.Vector) error {
	return Encode(w, v.All(), QuoteIfNeeded)
}

// LoadStrings decodes the bracketed form in data and appends each
// element to v. It returns the number of elements added.
func LoadStrings(v *strvec.Vector, data string) (int, error) {
	d := Decoder[string]{Parse: func(tok string) (string, error) { return tok, nil }}
	return d.Decode(strings.NewReader(data), SinkFunc[string](func(s string, _ api.ConstructMode) {
		v.Push(s)
	}))
}

// File: textio/decode.go
// Package textio reads and writes the bracketed text form of containers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grammar: optional whitespace, '(' or '[', then elements separated by
// whitespace, then ')' or ']'. '#' starts a comment running to end of
// line. An element is a bare token or a double-quoted Go string literal.
// An empty sequence is valid and loads nothing.

package textio

import (
	"bufio"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/pool"
)

// Sink receives decoded elements.
type Sink[T any] interface {
	PushWith(elem T, mode api.ConstructMode)
}

// SinkFunc adapts a function to Sink.
type SinkFunc[T any] func(elem T, mode api.ConstructMode)

// PushWith implements Sink.
func (f SinkFunc[T]) PushWith(elem T, mode api.ConstructMode) { f(elem, mode) }

// Decoder turns element tokens into values.
//
// With Parse set every element gets a fresh value pushed with Mode.
// With ParseInto set one temporary is reused for the whole sequence and
// every element is pushed with api.Copy, so the sink must copy it.
type Decoder[T any] struct {
	Parse     func(tok string) (T, error)
	ParseInto func(dst *T, tok string) error
	Mode      api.ConstructMode
	// Logger, when set, reports elements skipped because they failed to parse.
	Logger *log.Logger
}

var tokenBuilders = pool.NewSyncPool(
	func() *strings.Builder { return new(strings.Builder) },
	func(b *strings.Builder) { b.Reset() },
)

// Decode reads one bracketed sequence from r into sink and returns the
// number of elements pushed. Input is staged until the closing bracket is
// read: on api.ErrTruncated or api.ErrMalformed the sink is untouched.
// Elements that fail to parse are skipped.
//
// Decode stops right after the closing bracket only when r is an
// io.ByteScanner (*bufio.Reader, *strings.Reader, *bytes.Reader). Any
// other reader is wrapped in a bufio.Reader that may buffer past the
// closer, so callers decoding several sequences from one stream must
// wrap it in a *bufio.Reader once and pass that to every call.
func (d *Decoder[T]) Decode(r io.Reader, sink Sink[T]) (int, error) {
	if d.Parse == nil && d.ParseInto == nil {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "textio: decoder has no parse function")
	}
	br, ok := r.(io.ByteScanner)
	if !ok {
		br = bufio.NewReader(r)
	}

	c, err := skipSpace(br)
	if err != nil {
		return 0, readErr(err)
	}
	if c != '(' && c != '[' {
		return 0, api.NewError(api.ErrCodeMalformed, "textio: sequence must open with '(' or '['").
			WithContext("got", string(rune(c)))
	}

	staged := queue.New()
	for {
		c, err = skipSpace(br)
		if err != nil {
			return 0, readErr(err)
		}
		switch c {
		case ')', ']':
			return d.commit(staged, sink), nil
		case '#':
			if err = skipLine(br); err != nil {
				return 0, readErr(err)
			}
			continue
		}
		_ = br.UnreadByte()
		tok, err := readToken(br)
		if err != nil {
			return 0, readErr(err)
		}
		staged.Add(tok)
	}
}

func (d *Decoder[T]) commit(staged *queue.Queue, sink Sink[T]) int {
	n := 0
	var tmp T
	for staged.Length() > 0 {
		tok := staged.Remove().(string)
		if d.ParseInto != nil {
			if err := d.ParseInto(&tmp, tok); err != nil {
				d.skip(tok, err)
				continue
			}
			sink.PushWith(tmp, api.Copy)
		} else {
			v, err := d.Parse(tok)
			if err != nil {
				d.skip(tok, err)
				continue
			}
			sink.PushWith(v, d.Mode)
		}
		n++
	}
	return n
}

func (d *Decoder[T]) skip(tok string, err error) {
	if d.Logger != nil {
		d.Logger.Printf("[textio] skipping element %q: %v", tok, err)
	}
}

func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return api.NewError(api.ErrCodeTruncated, "textio: sequence ended before closing bracket")
	}
	return err
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	return isSpace(c) || c == ')' || c == ']' || c == '#'
}

func skipSpace(br io.ByteScanner) (byte, error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !isSpace(c) {
			return c, nil
		}
	}
}

func skipLine(br io.ByteScanner) error {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			return nil
		}
	}
}

// readToken reads a bare or quoted token; the delimiter after a bare
// token is left unread.
func readToken(br io.ByteScanner) (string, error) {
	b := tokenBuilders.Get()
	defer tokenBuilders.Put(b)

	c, err := br.ReadByte()
	if err != nil {
		return "", err
	}
	if c != '"' {
		for {
			b.WriteByte(c)
			c, err = br.ReadByte()
			if err != nil {
				// a bare token cut by EOF still lacks its closer
				return "", err
			}
			if isDelim(c) {
				_ = br.UnreadByte()
				return b.String(), nil
			}
		}
	}

	b.WriteByte('"')
	escaped := false
	for {
		c, err = br.ReadByte()
		if err != nil {
			return "", err
		}
		b.WriteByte(c)
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			s, uerr := strconv.Unquote(b.String())
			if uerr != nil {
				return "", api.NewError(api.ErrCodeMalformed, "textio: bad quoted element").
					WithContext("token", b.String())
			}
			return s, nil
		}
	}
}

// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-vec.
// Container precondition violations are programmer errors and panic with
// a structured *Error; expected failures are reported by return values.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrOutOfRange       = errors.New("position out of range")
	ErrEmpty            = errors.New("container is empty")
	ErrCapacityExceeded = errors.New("capacity exceeds representable range")
	ErrMalformed        = errors.New("malformed sequence")
	ErrTruncated        = errors.New("truncated sequence")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeOutOfRange
	ErrCodeEmpty
	ErrCodeCapacityExceeded
	ErrCodeMalformed
	ErrCodeTruncated
	ErrCodeInternal
)

var codeSentinels = map[ErrorCode]error{
	ErrCodeInvalidArgument:  ErrInvalidArgument,
	ErrCodeOutOfRange:       ErrOutOfRange,
	ErrCodeEmpty:            ErrEmpty,
	ErrCodeCapacityExceeded: ErrCapacityExceeded,
	ErrCodeMalformed:        ErrMalformed,
	ErrCodeTruncated:        ErrTruncated,
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel matching Code, so errors.Is works.
func (e *Error) Unwrap() error {
	return codeSentinels[e.Code]
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Fatal panics with a structured error built from code, message and
// alternating key/value context pairs.
func Fatal(code ErrorCode, message string, kv ...any) {
	e := NewError(code, message)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			e.WithContext(k, kv[i+1])
		}
	}
	panic(e)
}

// CheckIndex panics unless 0 <= pos < length.
func CheckIndex(op string, pos, length int) {
	if pos < 0 || pos >= length {
		Fatal(ErrCodeOutOfRange, op+": index out of range", "pos", pos, "len", length)
	}
}

// CheckNotEmpty panics when length is zero.
func CheckNotEmpty(op string, length int) {
	if length == 0 {
		Fatal(ErrCodeEmpty, op+": empty container")
	}
}

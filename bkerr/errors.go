// Package bkerr defines the error kinds Bukvar surfaces per file (spec §7):
// ScanError, ParseError, CodecError, and IoError, plus an ErrValidation
// sentinel. Validation findings themselves are ast.Diagnostic values, not
// an error type here.
// These are plain wrapped-sentinel errors in the teacher's style
// (cmd/soc/store.go's errStoreExists/errStoreNotExists), not a custom
// error-hierarchy framework.
package bkerr

import (
	"errors"
	"fmt"

	"github.com/glagolica/bukvar/span"
)

// Sentinel errors identifying each error kind, for errors.Is checks.
var (
	ErrScan       = errors.New("bukvar: scan error")
	ErrParse      = errors.New("bukvar: parse error")
	ErrValidation = errors.New("bukvar: validation diagnostic")
	ErrCodec      = errors.New("bukvar: codec error")
	ErrIO         = errors.New("bukvar: i/o error")
)

// ScanError reports an unrepresentable byte sequence encountered in a
// strict context. Most malformed UTF-8 downgrades silently to the
// replacement character instead (spec §4.1); ScanError is reserved for
// scan-level failures that have no forgiving recovery.
type ScanError struct {
	Span span.Span
	Msg  string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error at %v: %s", e.Span, e.Msg)
}

// Unwrap lets errors.Is(err, ErrScan) succeed.
func (e *ScanError) Unwrap() error { return ErrScan }

// ParseError reports a malformed construct that could not be recovered
// without ambiguity. Per spec §7, most malformation downgrades (unterminated
// fences close at EOF, bad tables become paragraphs) rather than raising
// this; ParseError exists for the rare case recovery itself is undefined.
type ParseError struct {
	Span span.Span
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %v: %s", e.Span, e.Msg)
}

// Unwrap lets errors.Is(err, ErrParse) succeed.
func (e *ParseError) Unwrap() error { return ErrParse }

// CodecError reports a fatal binary-decode failure: bad magic, unknown
// version, truncated stream, or an invalid string id. Per spec §7, this is
// the only error kind the parser core treats as fatal.
type CodecError struct {
	Offset int
	Msg    string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec error at offset %d: %s", e.Offset, e.Msg)
}

// Unwrap lets errors.Is(err, ErrCodec) succeed.
func (e *CodecError) Unwrap() error { return ErrCodec }

// IoError wraps an I/O failure surfaced by the external driver (directory
// walking, output writing); the parser core itself never performs I/O.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("i/o error for %s: %v", e.Path, e.Err)
}

// Unwrap lets errors.Is(err, ErrIO) and errors.Is(err, e.Err) both succeed.
func (e *IoError) Unwrap() []error { return []error{ErrIO, e.Err} }

// Package bkutil provides small io.Writer helpers used by cmd/bukvar's
// logging path, ported from the teacher's internal/socutil
// (writer.go) and trimmed to what this module actually exercises.
package bkutil

import (
	"bytes"
	"io"
)

// ErrWriter wraps a writer, remembering its first error and refusing
// further writes once one occurs, so callers can defer a single error
// check instead of checking every Write.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to the wrapped Writer while Err is nil, latching the
// first error it sees.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// PrefixWriter returns a writer that prepends prefix before every line
// written through it. Callers that care about a trailing partial line
// should Close it to flush.
func PrefixWriter(prefix string, w io.Writer) *Prefixer {
	return &Prefixer{Prefix: prefix, to: w}
}

// Prefixer writes prefix before every line written to an underlying writer.
// Set Skip true to suppress the prefix on the very next line.
type Prefixer struct {
	Prefix string
	Skip   bool

	to  io.Writer
	buf bytes.Buffer
}

// Close flushes any buffered partial line to the underlying writer.
func (p *Prefixer) Close() error {
	if p.buf.Len() == 0 {
		return nil
	}
	_, err := p.to.Write(p.buf.Bytes())
	p.buf.Reset()
	return err
}

// Write buffers b, inserting Prefix before every line, and flushes complete
// lines to the underlying writer.
func (p *Prefixer) Write(b []byte) (n int, err error) {
	first := true
	for len(b) > 0 {
		if !first || p.atLineStart() {
			p.addPrefix()
		}
		first = false

		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			i++
			line = b[:i]
			b = b[i:]
		} else {
			b = nil
		}
		m, _ := p.buf.Write(line)
		n += m
	}
	return n, p.flushComplete()
}

func (p *Prefixer) atLineStart() bool {
	b := p.buf.Bytes()
	return len(b) == 0 || b[len(b)-1] == '\n'
}

func (p *Prefixer) addPrefix() {
	if p.Skip {
		p.Skip = false
		return
	}
	p.buf.WriteString(p.Prefix)
}

// flushComplete writes every complete (newline-terminated) line currently
// buffered, following the teacher's FlushLineChunks policy.
func (p *Prefixer) flushComplete() error {
	b := p.buf.Bytes()
	i := bytes.LastIndexByte(b, '\n')
	if i < 0 {
		return nil
	}
	n := i + 1
	_, err := p.to.Write(b[:n])
	p.buf.Next(n)
	return err
}

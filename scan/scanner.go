// Package scan implements the byte-level cursor the block parser scans
// through: lookahead, line classification, and lazy UTF-8 validation.
// Everything here operates on bytes; only Text() requires well-formed
// UTF-8, substituting the replacement character for malformed runs (spec
// §4.1).
package scan

import "unicode/utf8"

// Scanner is a byte cursor over a fixed source buffer, tracking the current
// offset, line number, and line-start offset needed to compute (line,
// column) positions (spec §4.1).
type Scanner struct {
	src       []byte
	offset    int
	line      int // 1-based
	lineStart int // offset of the first byte of the current line
}

// New returns a Scanner positioned at the start of src.
func New(src []byte) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Bytes returns the full source buffer the Scanner was built over.
func (s *Scanner) Bytes() []byte { return s.src }

// Offset returns the current byte offset.
func (s *Scanner) Offset() int { return s.offset }

// Len returns how many bytes remain unread.
func (s *Scanner) Len() int { return len(s.src) - s.offset }

// AtEOF reports whether the cursor is at the end of the buffer.
func (s *Scanner) AtEOF() bool { return s.offset >= len(s.src) }

// BOL reports whether the cursor sits at the start of a line.
func (s *Scanner) BOL() bool { return s.offset == s.lineStart }

// Peek returns the byte k bytes ahead of the cursor (k == 0 is the next
// unread byte) and whether that offset is in bounds.
func (s *Scanner) Peek(k int) (byte, bool) {
	i := s.offset + k
	if i < 0 || i >= len(s.src) {
		return 0, false
	}
	return s.src[i], true
}

// PeekSlice returns up to n unread bytes starting at the cursor, without
// advancing it. The returned slice may be shorter than n near EOF.
func (s *Scanner) PeekSlice(n int) []byte {
	end := s.offset + n
	if end > len(s.src) {
		end = len(s.src)
	}
	if end < s.offset {
		end = s.offset
	}
	return s.src[s.offset:end]
}

// Advance moves the cursor forward by n bytes, updating line/column
// bookkeeping for every newline crossed. n must not move the cursor past
// len(src) or before 0.
func (s *Scanner) Advance(n int) {
	end := s.offset + n
	if end > len(s.src) {
		end = len(s.src)
	}
	for i := s.offset; i < end; i++ {
		switch s.src[i] {
		case '\n':
			s.line++
			s.lineStart = i + 1
		case '\r':
			// A lone \r is a newline; in \r\n the \n does the counting.
			if i+1 >= len(s.src) || s.src[i+1] != '\n' {
				s.line++
				s.lineStart = i + 1
			}
		}
	}
	s.offset = end
}

// ReadLine returns the slice from the cursor up to and including the next
// newline, and advances the cursor past it. \r\n, \n, and \r are all
// recognized as a single newline terminator; the returned slice preserves
// the original bytes verbatim (needed so raw code-block content round-trips
// exactly), it is only the *scanner's* line/column bookkeeping that treats
// them uniformly.
func (s *Scanner) ReadLine() []byte {
	start := s.offset
	i := start
	for i < len(s.src) {
		switch s.src[i] {
		case '\n':
			i++
			s.Advance(i - start)
			return s.src[start:i]
		case '\r':
			if i+1 < len(s.src) && s.src[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
			s.Advance(i - start)
			return s.src[start:i]
		}
		i++
	}
	// EOF without a trailing newline.
	s.Advance(i - start)
	return s.src[start:i]
}

// Position returns the 1-based (line, column) of the cursor.
func (s *Scanner) Position() (line, column int) {
	return s.line, s.offset - s.lineStart + 1
}

// Text decodes b as UTF-8, substituting U+FFFD for any malformed byte
// sequence. This is the only place in the scan package that cares about
// UTF-8 validity; byte-level scanning elsewhere is encoding-agnostic (spec
// §4.1).
func Text(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		out = append(out, r)
		b = b[size:]
	}
	return string(out)
}

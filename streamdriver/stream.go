// Package streamdriver backs the Scanner with a chunked io.Reader instead
// of a fully buffered slice (spec §4.9). It guarantees at least one full
// line per request, buffering partial lines across chunk boundaries, the
// way the teacher's cmd/scanex and cmd/poc wrap bufio.NewScanner with
// bufio.ScanLines rather than hand-rolling chunk bookkeeping.
package streamdriver

import (
	"bufio"
	"fmt"
	"io"

	"github.com/glagolica/bukvar/bkerr"
)

// LineReader reads complete lines from an underlying io.Reader, bounding
// its internal buffer to 2 × maxLineLength: block parsing never needs
// lookahead beyond the current line plus the following one (Setext
// headings, list/paragraph continuation), so that bound is always enough
// to hold the two lines in flight.
type LineReader struct {
	sc            *bufio.Scanner
	maxLineLength int
}

// NewLineReader wraps r, starting the reader's internal buffer at
// maxLineLength bytes and capping it at 2 × maxLineLength. A line that does
// not fit in that cap surfaces as an error from Next, rather than being
// silently truncated.
func NewLineReader(r io.Reader, maxLineLength int) *LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, maxLineLength), 2*maxLineLength)
	sc.Split(scanLinesKeepNewline)
	return &LineReader{sc: sc, maxLineLength: maxLineLength}
}

// Next returns the next line, including its trailing newline (if any, EOF's
// final line may lack one), and whether a line was available. err is
// non-nil only on a genuine read/bound failure, wrapped as a bkerr.IoError.
func (lr *LineReader) Next() (line []byte, ok bool, err error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return nil, false, &bkerr.IoError{Path: "<stream>", Err: fmt.Errorf("reading line: %w", err)}
		}
		return nil, false, nil
	}
	return lr.sc.Bytes(), true, nil
}

// ReadAll drains r into a single buffer via a LineReader, bounding memory
// per line to maxLineLength while still handing the block parser (which is
// not itself incremental) one contiguous buffer. Real streaming — parsing
// as lines arrive without ever materializing the whole document — is left
// to a future incremental block parser; this is the bridge that lets
// today's parser consume a streamed source.
func ReadAll(r io.Reader, maxLineLength int) ([]byte, error) {
	lr := NewLineReader(r, maxLineLength)
	var out []byte
	for {
		line, ok, err := lr.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, line...)
	}
	return out, nil
}

// scanLinesKeepNewline is bufio.ScanLines with the trailing newline kept in
// the returned token, since the block parser's line splitter
// (blockparser.splitLines) needs to see it to preserve raw code-block
// content byte-for-byte.
func scanLinesKeepNewline(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := indexNewline(data); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func indexNewline(data []byte) int {
	for i, b := range data {
		if b == '\n' {
			return i
		}
	}
	return -1
}

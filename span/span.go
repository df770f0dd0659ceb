// Package span tracks byte-offset ranges and line/column positions into a
// source buffer. Every AST node carries a Span; Spans are otherwise pure
// values with no ownership over the bytes they describe.
package span

import "fmt"

// Span is a byte range [Start, End) into an original source buffer.
//
// Invariant: Start <= End for every Span produced by this package. Parser
// code that would otherwise construct an inverted span should clamp End to
// Start instead.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the receiver covers.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the receiver covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Contains reports whether other falls entirely within the receiver.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Union returns the smallest Span containing both s and other.
func (s Span) Union(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// String implements fmt.Stringer, rendering as "[start:end]".
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d]", s.Start, s.End)
}

// Position is a 1-based line and column pair, used only for diagnostics and
// textual/sourcemap output; the authoritative coordinate space remains byte
// offsets.
type Position struct {
	Line   int
	Column int
}

// String implements fmt.Stringer, rendering as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Tracker maps byte offsets within a fixed source buffer to Positions. It is
// built once per source buffer and is read-only thereafter: constructing it
// is the only place that scans the whole buffer looking for newlines.
type Tracker struct {
	// lineStarts[i] is the byte offset of the first byte of line i+1 (so
	// lineStarts[0] == 0 always, for line 1).
	lineStarts []int
}

// NewTracker builds a Tracker over src. It scans src once for newline bytes;
// callers that only need Positions for a handful of spans (diagnostics,
// --sourcemap output) still pay this cost once, not per lookup.
func NewTracker(src []byte) *Tracker {
	t := &Tracker{lineStarts: make([]int, 1, 64)}
	for i, b := range src {
		if b == '\n' {
			t.lineStarts = append(t.lineStarts, i+1)
		}
	}
	return t
}

// Position returns the 1-based line/column for a byte offset. Offsets are
// not bounds-checked: an offset past the end of the tracked buffer is
// reported on the last line, with its column counted from that line's start.
func (t *Tracker) Position(offset int) Position {
	// binary search for the last lineStart <= offset
	lo, hi := 0, len(t.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line := lo + 1
	col := offset - t.lineStarts[lo] + 1
	return Position{Line: line, Column: col}
}

// Package blockparser implements the block-level pass: splitting a document
// into the tree of block nodes (headings, paragraphs, lists, block quotes,
// tables, code fences, footnote definitions, definition lists, containers)
// whose leaves still hold raw inline text. It is grounded on the teacher's
// scandown.BlockStack: the line-classifying helpers (delimiter, fence,
// ruler, listMarker, quoteMarker, trimIndent) are ported close to verbatim,
// but the driving loop is rewritten as a recursive grouping over an
// in-memory line list — rather than scandown's bufio.SplitFunc protocol —
// since Bukvar builds a tree, not a token stream (the streaming line-reader
// role the teacher gives bufio.Scanner is instead played by
// streamdriver.LineSource).
package blockparser

import (
	"bytes"

	"github.com/glagolica/bukvar/scan"
)

// line is one line of input: text (without its terminator), the raw bytes
// including terminator (needed for exact CodeBlock/HtmlBlock content), and
// the byte offset of text[0] in the original source.
type line struct {
	text   []byte
	raw    []byte
	offset int
}

// splitLines breaks src into lines starting at baseOffset within the
// original document, using scan.Scanner so newline recognition matches the
// rest of the module.
func splitLines(src []byte, baseOffset int) []line {
	sc := scan.New(src)
	var lines []line
	for !sc.AtEOF() {
		off := sc.Offset()
		raw := sc.ReadLine()
		lines = append(lines, line{text: trimNewline(raw), raw: raw, offset: baseOffset + off})
	}
	return lines
}

func isBlank(l line) bool {
	return len(bytes.TrimSpace(l.text)) == 0
}

// endOffset returns the offset just past this line, including its
// terminator.
func (l line) endOffset() int { return l.offset + len(l.raw) }

func trimNewline(b []byte) []byte {
	i := len(b) - 1
	for i >= 0 {
		switch b[i] {
		case '\r', '\n':
			i--
		default:
			return b[:i+1]
		}
	}
	return b[:0]
}

// trimIndent consumes up to limit columns of leading space/tab indent,
// counting a tab as reaching the next multiple of 4 (relative to prior
// columns already consumed outside this slice). Ported from
// scandown.trimIndent.
func trimIndent(b []byte, prior, limit int) (n int, tail []byte) {
	for tail = b; n < limit && len(tail) > 0; tail = tail[1:] {
		switch c := tail[0]; c {
		case ' ':
			n++
		case '\t':
			if m := n + 4 - prior; m > limit {
				return n, tail
			} else if m == limit {
				return m, tail
			} else {
				n = m
			}
			prior = 0
		default:
			return n, tail
		}
	}
	return n, tail
}

func isByte(b byte, any ...byte) bool {
	for _, ab := range any {
		if b == ab {
			return true
		}
	}
	return false
}

// delimiter matches a run of 1..maxWidth of one of marks followed by a
// space, tab, or end of line. Ported from scandown.delimiter.
func delimiter(b []byte, maxWidth int, marks ...byte) (delim byte, width int, tail []byte) {
	if len(b) == 0 || !isByte(b[0], marks...) {
		return 0, 0, nil
	}
	delim = b[0]
	width = 1
	tail = b[1:]
	for {
		if len(tail) == 0 {
			return delim, width, tail
		}
		switch tail[0] {
		case delim:
			width++
			if width > maxWidth {
				return 0, 0, nil
			}
			tail = tail[1:]
		case ' ', '\t':
			return delim, width, tail
		default:
			return 0, 0, nil
		}
	}
}

// ordinal matches a 1-9 digit ordinal list marker ("1." / "2)"). Ported
// from scandown.ordinal, extended to also return the parsed numeric value
// (needed for List.StartIndex).
func ordinal(b []byte) (delim byte, width int, tail []byte, num int) {
	tail = b
	digits := 0
	for len(tail) > 0 {
		switch c := tail[0]; {
		case c >= '0' && c <= '9':
			digits++
			num = num*10 + int(c-'0')
			tail = tail[1:]
			continue
		case c == '.' || c == ')':
			delim = c
			tail = tail[1:]
		}
		break
	}
	if delim == 0 || digits < 1 || digits > 9 {
		return 0, 0, nil, 0
	}
	return delim, digits + 1, tail, num
}

func listMarker(b []byte) (delim byte, width int, tail []byte, ordered bool, num int) {
	delim, width, tail = delimiter(b, 1, '-', '*', '+')
	if delim == 0 {
		delim, width, tail, num = ordinal(b)
		ordered = delim != 0
	}
	if delim == 0 {
		return 0, 0, nil, false, 0
	}
	if in, cont := trimIndent(tail, 1, 1); in > 0 || len(cont) == 0 {
		return delim, width + in, cont, ordered, num
	}
	return 0, 0, nil, false, 0
}

func quoteMarker(b []byte) (delim byte, width int, tail []byte) {
	delim, width, tail = delimiter(b, 3, '>')
	if delim == 0 {
		return 0, 0, nil
	}
	if in, cont := trimIndent(tail, 1, 1); in > 0 || len(cont) == 0 {
		return delim, width + in, cont
	}
	return 0, 0, nil
}

func fence(b []byte, min int, marks ...byte) (f byte, width int, tail []byte) {
	if len(b) == 0 || !isByte(b[0], marks...) {
		return 0, 0, nil
	}
	f = b[0]
	width = 1
	for ; width < len(b); width++ {
		if b[width] != f {
			break
		}
	}
	if width < min {
		return 0, 0, nil
	}
	return f, width, b[width:]
}

func ruler(b []byte, marks ...byte) (r byte, width int, tail []byte) {
	if len(b) == 0 || !isByte(b[0], marks...) {
		return 0, 0, nil
	}
	r = b[0]
	width = 1
	for ; width < len(b); width++ {
		switch b[width] {
		case r, ' ', '\t':
		default:
			return 0, 0, nil
		}
	}
	return r, width, b[width:]
}

package blockparser

import (
	"bytes"
	"strings"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// parseParagraph absorbs lines[i] and every following contiguous
// non-blank line that doesn't itself open another block, recognizing
// Setext-heading promotion on the absorbed text.
func parseParagraph(lines []line, i int) (*ast.Node, int) {
	start := lines[i]
	var text bytes.Buffer
	text.Write(bytes.TrimLeft(start.text, " "))

	j := i + 1
	for j < len(lines) {
		l := lines[j]
		if isBlank(l) {
			break
		}
		_, content := trimIndent(l.text, 0, 4)
		if lvl, setext := trySetextUnderline(content); setext {
			h := ast.NewNode(ast.Heading, span.Span{Start: start.offset, End: l.endOffset()})
			h.Level = lvl
			h.Literal = text.String()
			return h, j + 1
		}
		// A ": " line is a definition-list detail; it closes this
		// paragraph so parseBlocks can turn it into the term.
		if bytes.HasPrefix(bytes.TrimLeft(content, " "), []byte(": ")) {
			break
		}
		if opensAnyBlock(content) {
			break
		}
		text.WriteByte('\n')
		text.Write(bytes.TrimLeft(l.text, " "))
		j++
	}

	p := ast.NewNode(ast.Paragraph, span.Span{Start: start.offset, End: lines[j-1].endOffset()})
	p.Literal = text.String()
	return p, j
}

// trySetextUnderline matches a bare run of '=' (level 1) or '-' (level 2).
func trySetextUnderline(content []byte) (level int, ok bool) {
	r, width, tail := ruler(content, '=', '-')
	if r == 0 || len(bytes.TrimSpace(tail)) != 0 || width == 0 {
		return 0, false
	}
	if r == '=' {
		return 1, true
	}
	return 2, true
}

// tryLinkDefMarker matches "[label]: url \"title\"" (title optional,
// single line only).
func tryLinkDefMarker(content []byte) (label, url, title string, ok bool) {
	s := string(bytes.TrimLeft(content, " "))
	if len(s) == 0 || s[0] != '[' {
		return "", "", "", false
	}
	end := strings.IndexByte(s, ']')
	if end < 0 || end+1 >= len(s) || s[end+1] != ':' {
		return "", "", "", false
	}
	label = s[1:end]
	rest := strings.TrimSpace(s[end+2:])
	if rest == "" {
		return "", "", "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", "", "", false
	}
	url = strings.Trim(fields[0], "<>")
	if len(fields) > 1 {
		t := strings.Join(fields[1:], " ")
		t = strings.TrimSpace(t)
		if len(t) >= 2 && (t[0] == '"' || t[0] == '\'') && t[len(t)-1] == t[0] {
			title = t[1 : len(t)-1]
		}
	}
	return label, url, title, true
}

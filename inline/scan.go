package inline

import (
	"strings"
	"unicode"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// scan walks raw left to right, matching the highest-precedence construct
// at each position (code span, autolink/raw html, link/image, math,
// footnote ref, line break, emphasis delimiter run), falling back to plain
// text.
func scan(raw []byte, offset int, links Resolver) []item {
	var items []item
	var text strings.Builder
	textStart := 0

	flushText := func(end int) {
		if text.Len() == 0 {
			return
		}
		items = append(items, item{node: textNode(text.String(), offset+textStart, offset+end)})
		text.Reset()
	}

	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == '`':
			if node, next, ok := scanCodeSpan(raw, i, offset); ok {
				flushText(i)
				items = append(items, item{node: node})
				i = next
				textStart = i
				continue
			}

		case c == '<':
			if node, next, ok := scanAngle(raw, i, offset); ok {
				flushText(i)
				items = append(items, item{node: node})
				i = next
				textStart = i
				continue
			}

		case c == '[':
			if node, next, ok := scanFootnoteRef(raw, i, offset); ok {
				flushText(i)
				items = append(items, item{node: node})
				i = next
				textStart = i
				continue
			}
			if node, next, ok := scanLinkOrImage(raw, i, offset, links, false); ok {
				flushText(i)
				items = append(items, item{node: node})
				i = next
				textStart = i
				continue
			}

		case c == '!':
			if i+1 < len(raw) && raw[i+1] == '[' {
				if node, next, ok := scanLinkOrImage(raw, i+1, offset, links, true); ok {
					flushText(i)
					items = append(items, item{node: node})
					i = next
					textStart = i
					continue
				}
			}

		case c == '$':
			if node, next, ok := scanMath(raw, i, offset); ok {
				flushText(i)
				items = append(items, item{node: node})
				i = next
				textStart = i
				continue
			}

		case c == '\\' && i+1 < len(raw) && raw[i+1] == '\n':
			flushText(i)
			items = append(items, item{node: breakNode(ast.HardBreak, offset+i, offset+i+2)})
			i += 2
			textStart = i
			continue

		case c == '\n':
			spaces := 0
			for i-spaces > textStart && raw[i-spaces-1] == ' ' {
				spaces++
			}
			hard := spaces >= 2
			cut := i
			if hard {
				cut = i - spaces
				trimmed := text.String()
				trimmed = trimmed[:len(trimmed)-spaces]
				text.Reset()
				text.WriteString(trimmed)
			}
			flushText(cut)
			kind := ast.SoftBreak
			if hard {
				kind = ast.HardBreak
			}
			items = append(items, item{node: breakNode(kind, offset+i, offset+i+1)})
			i++
			textStart = i
			continue

		case c == 'h' || c == 'w':
			if node, next, ok := scanBareAutolink(raw, i, offset); ok {
				flushText(i)
				items = append(items, item{node: node})
				i = next
				textStart = i
				continue
			}

		case c == '*' || c == '_' || c == '~':
			run, width := scanDelimRun(raw, i, c)
			if run != nil {
				flushText(i)
				run.start = offset + i
				items = append(items, item{delim: run})
				i += width
				textStart = i
				continue
			}
		}

		text.WriteByte(c)
		i++
	}
	flushText(len(raw))
	return items
}

func breakNode(kind ast.Kind, start, end int) *ast.Node {
	return ast.NewNode(kind, span.Span{Start: start, End: end})
}

// scanCodeSpan matches a run of N backticks, then the next run of exactly N
// backticks as closer.
func scanCodeSpan(raw []byte, i, offset int) (*ast.Node, int, bool) {
	n := 0
	for i+n < len(raw) && raw[i+n] == '`' {
		n++
	}
	contentStart := i + n
	j := contentStart
	for j < len(raw) {
		if raw[j] == '`' {
			k := j
			m := 0
			for k < len(raw) && raw[k] == '`' {
				m++
				k++
			}
			if m == n {
				content := string(raw[contentStart:j])
				content = strings.ReplaceAll(content, "\n", " ")
				if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && strings.TrimSpace(content) != "" {
					content = content[1 : len(content)-1]
				}
				node := ast.NewNode(ast.Code, span.Span{Start: offset + i, End: offset + k})
				node.Literal = content
				return node, k, true
			}
			j = k
			continue
		}
		j++
	}
	return nil, 0, false
}

// scanAngle matches "<...>": an absolute-URI or email autolink, else raw
// inline HTML.
func scanAngle(raw []byte, i, offset int) (*ast.Node, int, bool) {
	end := -1
	for j := i + 1; j < len(raw); j++ {
		if raw[j] == '>' {
			end = j
			break
		}
		if raw[j] == '<' || raw[j] == ' ' || raw[j] == '\n' {
			break
		}
	}
	if end < 0 {
		return nil, 0, false
	}
	inner := string(raw[i+1 : end])
	if looksLikeURI(inner) || looksLikeEmail(inner) {
		node := ast.NewNode(ast.Autolink, span.Span{Start: offset + i, End: offset + end + 1})
		node.URL = inner
		node.Literal = inner
		return node, end + 1, true
	}
	if len(inner) > 0 && (inner[0] == '/' || isASCIILetter(inner[0]) || inner[0] == '!' || inner[0] == '?') {
		node := ast.NewNode(ast.RawHtml, span.Span{Start: offset + i, End: offset + end + 1})
		node.Raw = string(raw[i : end+1])
		return node, end + 1, true
	}
	return nil, 0, false
}

func looksLikeURI(s string) bool {
	schemes := []string{"http://", "https://", "ftp://", "mailto:"}
	for _, sch := range schemes {
		if strings.HasPrefix(strings.ToLower(s), sch) {
			return true
		}
	}
	return false
}

func looksLikeEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t<>")
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// scanFootnoteRef matches "[^label]".
func scanFootnoteRef(raw []byte, i, offset int) (*ast.Node, int, bool) {
	if i+2 >= len(raw) || raw[i+1] != '^' {
		return nil, 0, false
	}
	end := -1
	for j := i + 2; j < len(raw); j++ {
		switch raw[j] {
		case ']':
			end = j
		case '\n', '[':
			j = len(raw)
			continue
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, 0, false
	}
	label := string(raw[i+2 : end])
	if label == "" {
		return nil, 0, false
	}
	node := ast.NewNode(ast.FootnoteRef, span.Span{Start: offset + i, End: offset + end + 1})
	node.Label = label
	return node, end + 1, true
}

// scanMath matches "$...$" or "$$...$$" on a single line, rejecting a
// trailing space, and after a single "$" also a leading space or digit.
func scanMath(raw []byte, i, offset int) (*ast.Node, int, bool) {
	double := i+1 < len(raw) && raw[i+1] == '$'
	delimLen := 1
	if double {
		delimLen = 2
	}
	contentStart := i + delimLen
	if !double {
		if contentStart < len(raw) && (raw[contentStart] == ' ' || (raw[contentStart] >= '0' && raw[contentStart] <= '9')) {
			return nil, 0, false
		}
	}
	j := contentStart
	for j < len(raw) {
		if raw[j] == '\n' {
			return nil, 0, false
		}
		if raw[j] == '$' {
			if double {
				if j+1 < len(raw) && raw[j+1] == '$' {
					break
				}
			} else {
				break
			}
		}
		j++
	}
	if j >= len(raw) {
		return nil, 0, false
	}
	content := string(raw[contentStart:j])
	if content == "" || content[len(content)-1] == ' ' {
		return nil, 0, false
	}
	end := j + delimLen
	node := ast.NewNode(ast.MathInline, span.Span{Start: offset + i, End: offset + end})
	node.TeX = content
	return node, end, true
}

// scanDelimRun classifies a run of '*', '_', or '~' for the emphasis
// matching pass.
func scanDelimRun(raw []byte, i int, c byte) (*delimRun, int) {
	n := 0
	for i+n < len(raw) && raw[i+n] == c {
		n++
	}
	if c == '~' {
		if n < 2 {
			return nil, 0
		}
		n = 2 // GFM strikethrough only ever consumes a run of exactly two
	}

	var before, after rune
	before = ' '
	if i > 0 {
		before = rune(raw[i-1])
	}
	width := n
	if c == '~' {
		// recompute actual run length to skip past it even though we only
		// use 2 of it per match.
		width = 0
		for i+width < len(raw) && raw[i+width] == c {
			width++
		}
	}
	after = ' '
	if i+width < len(raw) {
		after = rune(raw[i+width])
	}

	leftFlanking := !unicode.IsSpace(after) && (!isPunct(after) || unicode.IsSpace(before) || isPunct(before))
	rightFlanking := !unicode.IsSpace(before) && (!isPunct(before) || unicode.IsSpace(after) || isPunct(after))

	canOpen := leftFlanking
	canClose := rightFlanking
	if c == '_' && leftFlanking && rightFlanking {
		// underscore forbids intraword emphasis
		if isAlnumRune(before) && isAlnumRune(after) {
			canOpen, canClose = false, false
		}
	}
	return &delimRun{char: c, count: n, canOpen: canOpen, canClose: canClose}, width
}

// scanBareAutolink matches a bare GFM autolink starting with "http://",
// "https://", or "www.", running until whitespace or a trailing
// punctuation character that isn't part of the URL.
func scanBareAutolink(raw []byte, i, offset int) (*ast.Node, int, bool) {
	rest := raw[i:]
	var prefixed bool
	switch {
	case hasCIPrefix(rest, "http://"), hasCIPrefix(rest, "https://"):
		prefixed = true
	case hasCIPrefix(rest, "www."):
		prefixed = false
	default:
		return nil, 0, false
	}

	j := i
	for j < len(raw) && !isSpaceByte(raw[j]) && raw[j] != '<' {
		j++
	}
	for j > i && strings.ContainsRune(").,;:!?'\"", rune(raw[j-1])) {
		j--
	}
	if j <= i {
		return nil, 0, false
	}
	text := string(raw[i:j])
	url := text
	if !prefixed {
		url = "http://" + text
	}
	node := ast.NewNode(ast.Autolink, span.Span{Start: offset + i, End: offset + j})
	node.URL = url
	node.Literal = text
	return node, j, true
}

func hasCIPrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	return strings.EqualFold(string(b[:len(prefix)]), prefix)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func isAlnumRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

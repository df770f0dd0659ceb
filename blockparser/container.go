package blockparser

import (
	"bytes"
	"strings"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// containerTags are the HTML-like block tags recognized as structured
// content (spec §4.3, glossary "Container"). Their bodies are recursively
// block-parsed rather than treated as raw HtmlBlock.
var containerTags = map[string]bool{
	"toc":   true,
	"steps": true,
	"step":  true,
	"tabs":  true,
	"tab":   true,
}

func looksLikeContainerOpen(content []byte) bool {
	name, _, _ := parseContainerTagLine(content)
	return name != "" && containerTags[name]
}

// parseContainer builds a Container node from an opening tag line,
// consuming up to and including its matching "</name>" line, or just the
// opening line if it is self-closing (e.g. "<toc />").
func parseContainer(lines []line, i int, c *ctx) (*ast.Node, int) {
	start := lines[i]
	name, attrs, selfClosing := parseContainerTagLine(start.text)

	node := ast.NewNode(ast.Container, span.Span{Start: start.offset, End: start.endOffset()})
	node.ContainerKind = strings.ToUpper(name)
	for _, kv := range attrs {
		node.SetAttr(kv.Key, ast.StringAttr(kv.Value))
		if kv.Key == "names" || kv.Key == "name" {
			node.ContainerName = kv.Value
		}
	}

	if selfClosing {
		return node, i + 1
	}

	closeTag := "</" + name + ">"
	j := i + 1
	var inner []line
	for j < len(lines) {
		trimmed := strings.ToLower(strings.TrimSpace(string(lines[j].text)))
		if trimmed == closeTag {
			break
		}
		inner = append(inner, lines[j])
		j++
	}
	for _, child := range parseBlocks(inner, c) {
		node.AppendChild(child)
	}
	if j < len(lines) {
		node.Span.End = lines[j].endOffset()
		j++
	} else if len(inner) > 0 {
		node.Span.End = inner[len(inner)-1].endOffset()
	}
	return node, j
}

// parseContainerTagLine recognizes "<name attr=\"val\" .../>" or
// "<name attr=\"val\" ...>" at the start of a line.
func parseContainerTagLine(text []byte) (name string, attrs []ast.KV, selfClosing bool) {
	s := strings.TrimSpace(string(text))
	if len(s) < 3 || s[0] != '<' {
		return "", nil, false
	}
	gt := strings.IndexByte(s, '>')
	if gt < 0 {
		return "", nil, false
	}
	inner := s[1:gt]
	selfClosing = strings.HasSuffix(inner, "/")
	inner = strings.TrimSuffix(inner, "/")
	inner = strings.TrimSpace(inner)

	fields := splitTagFields(inner)
	if len(fields) == 0 {
		return "", nil, false
	}
	name = strings.ToLower(fields[0])
	if !containerTags[name] {
		return "", nil, false
	}
	for _, f := range fields[1:] {
		eq := strings.IndexByte(f, '=')
		if eq < 0 {
			continue
		}
		key := f[:eq]
		val := strings.Trim(f[eq+1:], `"'`)
		attrs = append(attrs, ast.KV{Key: key, Value: val})
	}
	if name == "toc" && strings.TrimSpace(string(text)) != "" && gt == len(s)-1 && !selfClosing {
		// "<toc></toc>" form never occurs in practice; treat a bare
		// "<toc>" as self-closing since it carries no body per spec.
		selfClosing = true
	}
	return name, attrs, selfClosing
}

// splitTagFields splits an HTML-attribute-ish string on whitespace while
// keeping quoted values (which may contain spaces) intact.
func splitTagFields(s string) []string {
	var fields []string
	var cur bytes.Buffer
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote != 0:
			cur.WriteByte(c)
			if c == inQuote {
				inQuote = 0
			}
		case c == '"' || c == '\'':
			inQuote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t':
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

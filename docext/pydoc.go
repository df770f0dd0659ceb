package docext

import (
	"context"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// docstringStyle is the section-header convention a PyDoc body follows,
// per spec §4.5.
type docstringStyle int

const (
	styleNone docstringStyle = iota
	styleGoogle
	styleNumPy
	styleSphinx
)

var googleHeaders = regexp.MustCompile(`(?m)^\s*(Args|Arguments|Returns|Raises|Yields|Attributes|Examples|Note|Notes):\s*$`)
var numpyUnderline = regexp.MustCompile(`(?m)^\s*(Parameters|Returns|Raises|Yields|Attributes|Examples|Notes)\s*\n\s*-+\s*$`)
var sphinxDirective = regexp.MustCompile(`(?m)^\s*:(param|returns|return|raises|type|rtype)\b`)

// ExtractPython walks src's syntax tree, locating the module docstring plus
// every def/class docstring (the first statement of each body, if it is a
// bare string literal), and lowers each into a Document fragment.
func ExtractPython(src []byte) ([]*ast.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, &ExtractError{Language: Python, Msg: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &ExtractError{Language: Python, Msg: "empty syntax tree"}
	}

	var comments []comment
	if c, ok := moduleDocstring(root, src); ok {
		comments = append(comments, c)
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition", "class_definition":
			if c, ok := bodyDocstring(n, src); ok {
				comments = append(comments, c)
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	nodes := make([]*ast.Node, 0, len(comments))
	for _, c := range comments {
		description, tags := parsePyDocBody(c.text)
		nodes = append(nodes, buildFragment(description, tags, c.span))
	}
	return nodes, nil
}

func moduleDocstring(root *sitter.Node, src []byte) (comment, bool) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() == "expression_statement" && child.ChildCount() > 0 {
			if s := child.Child(0); s.Type() == "string" {
				return comment{
					text: stripPyQuotes(string(src[s.StartByte():s.EndByte()])),
					span: span.Span{Start: int(child.StartByte()), End: int(child.EndByte())},
				}, true
			}
		}
		if child.Type() != "comment" {
			break
		}
	}
	return comment{}, false
}

func bodyDocstring(def *sitter.Node, src []byte) (comment, bool) {
	var block *sitter.Node
	for i := 0; i < int(def.ChildCount()); i++ {
		if def.Child(i).Type() == "block" {
			block = def.Child(i)
			break
		}
	}
	if block == nil || block.ChildCount() == 0 {
		return comment{}, false
	}
	first := block.Child(0)
	if first.Type() != "expression_statement" || first.ChildCount() == 0 {
		return comment{}, false
	}
	s := first.Child(0)
	if s.Type() != "string" {
		return comment{}, false
	}
	return comment{
		text: stripPyQuotes(string(src[s.StartByte():s.EndByte()])),
		span: span.Span{Start: int(first.StartByte()), End: int(first.EndByte())},
	}, true
}

func stripPyQuotes(raw string) string {
	for _, q := range []string{`"""`, `'''`} {
		if strings.HasPrefix(raw, q) && strings.HasSuffix(raw, q) && len(raw) >= 2*len(q) {
			return raw[len(q) : len(raw)-len(q)]
		}
	}
	return strings.Trim(raw, `"'`)
}

func detectStyle(body string) docstringStyle {
	switch {
	case numpyUnderline.MatchString(body):
		return styleNumPy
	case sphinxDirective.MatchString(body):
		return styleSphinx
	case googleHeaders.MatchString(body):
		return styleGoogle
	default:
		return styleNone
	}
}

// parsePyDocBody detects the docstring's section-header convention and
// parses it into a description plus a DocTag-shaped tag list.
func parsePyDocBody(raw string) (string, []Tag) {
	body := strings.Trim(raw, "\n")
	switch detectStyle(body) {
	case styleGoogle:
		return parseGoogleStyle(body)
	case styleNumPy:
		return parseNumPyStyle(body)
	case styleSphinx:
		return parseSphinxStyle(body)
	default:
		return body, nil
	}
}

func parseGoogleStyle(body string) (string, []Tag) {
	lines := strings.Split(body, "\n")
	var descLines []string
	var tags []Tag
	section := ""
	for _, ln := range lines {
		trimmed := strings.TrimRight(ln, " \t")
		if m := googleHeaders.FindStringSubmatch(trimmed); m != nil {
			section = m[1]
			continue
		}
		if section == "" {
			descLines = append(descLines, ln)
			continue
		}
		entry := strings.TrimSpace(trimmed)
		if entry == "" {
			continue
		}
		name, ident, typ, desc := splitGoogleEntry(entry, section)
		tags = append(tags, Tag{Name: name, Ident: ident, Type: typ, Description: desc})
	}
	return strings.Join(descLines, "\n"), tags
}

func splitGoogleEntry(entry, section string) (name, ident, typ, desc string) {
	parts := strings.SplitN(entry, ":", 2)
	head := strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		desc = strings.TrimSpace(parts[1])
	}
	switch section {
	case "Args", "Arguments", "Attributes":
		name = "param"
		if i := strings.IndexByte(head, '('); i >= 0 && strings.HasSuffix(head, ")") {
			ident = strings.TrimSpace(head[:i])
			typ = head[i+1 : len(head)-1]
		} else {
			ident = head
		}
	case "Returns", "Yields":
		name = "returns"
		typ = head
		if desc == "" {
			desc = head
			typ = ""
		}
	case "Raises":
		name = "throws"
		ident = head
	default:
		name = strings.ToLower(section)
		desc = entry
	}
	return name, ident, typ, desc
}

func parseNumPyStyle(body string) (string, []Tag) {
	lines := strings.Split(body, "\n")
	var descLines []string
	var tags []Tag
	section := ""
	skipUnderline := false
	for _, ln := range lines {
		if skipUnderline {
			skipUnderline = false
			continue
		}
		header := strings.TrimSpace(ln)
		switch header {
		case "Parameters", "Returns", "Raises", "Yields", "Attributes":
			section = header
			skipUnderline = true
			continue
		}
		if section == "" {
			descLines = append(descLines, ln)
			continue
		}
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(ln, "    ") && strings.Contains(trimmed, ":") {
			parts := strings.SplitN(trimmed, ":", 2)
			ident := strings.TrimSpace(parts[0])
			typ := ""
			if len(parts) > 1 {
				typ = strings.TrimSpace(parts[1])
			}
			name := numpySectionTag(section)
			tags = append(tags, Tag{Name: name, Ident: ident, Type: typ})
			continue
		}
		if n := len(tags); n > 0 {
			tags[n-1].Description = strings.TrimSpace(tags[n-1].Description + "\n" + trimmed)
		}
	}
	return strings.Join(descLines, "\n"), tags
}

func numpySectionTag(section string) string {
	switch section {
	case "Parameters":
		return "param"
	case "Returns", "Yields":
		return "returns"
	case "Raises":
		return "throws"
	default:
		return strings.ToLower(section)
	}
}

func parseSphinxStyle(body string) (string, []Tag) {
	lines := strings.Split(body, "\n")
	var descLines []string
	var tags []Tag
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if strings.HasPrefix(trimmed, ":") {
			tags = append(tags, parseSphinxDirective(trimmed))
			continue
		}
		if len(tags) > 0 && trimmed != "" {
			tags[len(tags)-1].Description = strings.TrimSpace(tags[len(tags)-1].Description + "\n" + trimmed)
			continue
		}
		descLines = append(descLines, ln)
	}
	return strings.Join(descLines, "\n"), tags
}

func parseSphinxDirective(line string) Tag {
	line = strings.TrimPrefix(line, ":")
	end := strings.IndexByte(line, ':')
	if end < 0 {
		return Tag{Name: line}
	}
	head := line[:end]
	desc := strings.TrimSpace(line[end+1:])
	fields := strings.Fields(head)
	switch fields[0] {
	case "param":
		ident := ""
		if len(fields) > 1 {
			ident = fields[len(fields)-1]
		}
		return Tag{Name: "param", Ident: ident, Description: desc}
	case "type":
		ident := ""
		if len(fields) > 1 {
			ident = fields[1]
		}
		return Tag{Name: "param", Ident: ident, Type: desc}
	case "returns", "return":
		return Tag{Name: "returns", Description: desc}
	case "rtype":
		return Tag{Name: "returns", Type: desc}
	case "raises":
		ident := ""
		if len(fields) > 1 {
			ident = fields[1]
		}
		return Tag{Name: "throws", Ident: ident, Description: desc}
	default:
		return Tag{Name: fields[0], Description: desc}
	}
}

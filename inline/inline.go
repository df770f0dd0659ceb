// Package inline implements the second pass: turning the raw text each
// block leaf carries into a tree of inline nodes (emphasis, links, code
// spans, footnote refs, math, autolinks, line breaks). Tie-break rule
// throughout (spec §4.4): left-most, longest match wins; code spans and
// raw HTML/autolinks bind tighter than emphasis, which binds tighter than
// plain text.
package inline

import (
	"strings"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// LinkDef is a reference-style link definition, as collected by the block
// pass (`[label]: url "title"`).
type LinkDef struct {
	URL   string
	Title string
}

// Resolver looks up reference-style link/image targets by lowercased
// label (spec open question: reference-form labels are matched
// case-insensitively, see DESIGN.md).
type Resolver map[string]LinkDef

func (r Resolver) lookup(label string) (LinkDef, bool) {
	d, ok := r[strings.ToLower(label)]
	return d, ok
}

// Parse tokenizes raw and resolves it into a sequence of inline nodes.
// offset is raw's starting byte position in the original source, so
// returned nodes carry correct absolute spans.
func Parse(raw string, offset int, links Resolver) []*ast.Node {
	items := scan([]byte(raw), offset, links)
	resolveEmphasis(&items)
	return flatten(items)
}

// item is either a fully resolved *ast.Node or an unresolved emphasis
// delimiter run.
type item struct {
	node  *ast.Node
	delim *delimRun
}

type delimRun struct {
	char     byte
	count    int
	canOpen  bool
	canClose bool
	start    int // byte offset of the run
}

func flatten(items []item) []*ast.Node {
	var out []*ast.Node
	appendText := func(s string, start, end int) {
		if n := len(out); n > 0 && out[n-1].Kind == ast.Text {
			out[n-1].Literal += s
			out[n-1].Span.End = end
			return
		}
		out = append(out, textNode(s, start, end))
	}
	for _, it := range items {
		if it.node != nil {
			if it.node.Kind == ast.Text {
				appendText(it.node.Literal, it.node.Span.Start, it.node.Span.End)
				continue
			}
			out = append(out, it.node)
			continue
		}
		if it.delim != nil && it.delim.count > 0 {
			s := strings.Repeat(string(it.delim.char), it.delim.count)
			appendText(s, it.delim.start, it.delim.start+it.delim.count)
		}
	}
	return out
}

func textNode(s string, start, end int) *ast.Node {
	n := ast.NewNode(ast.Text, span.Span{Start: start, End: end})
	n.Literal = s
	return n
}

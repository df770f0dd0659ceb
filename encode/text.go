package encode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glagolica/bukvar/ast"
)

// EncodeCompact renders doc as one line per node: "kind [span] fields…
// children-count", depth-first pre-order, following
// scandown.Block.Format's terse dispatch (ast/format.go's Kind.Format
// already follows the same style for a single node).
func EncodeCompact(doc *ast.Node) string {
	var sb strings.Builder
	writeCompact(&sb, doc)
	return sb.String()
}

func writeCompact(sb *strings.Builder, n *ast.Node) {
	if n == nil {
		return
	}
	fmt.Fprintf(sb, "%v [%d:%d]", n.Kind, n.Span.Start, n.Span.End)
	for _, f := range nodeFields(n) {
		sb.WriteByte(' ')
		sb.WriteString(f)
	}
	fmt.Fprintf(sb, " %d\n", len(n.Children))
	for _, c := range n.Children {
		writeCompact(sb, c)
	}
}

// EncodePretty renders doc as an indented tree, two spaces per depth, each
// node's fields on its own line and children following on subsequent lines.
func EncodePretty(doc *ast.Node) string {
	var sb strings.Builder
	writePretty(&sb, doc, 0)
	return sb.String()
}

func writePretty(sb *strings.Builder, n *ast.Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "%v [%d:%d]", n.Kind, n.Span.Start, n.Span.End)
	for _, f := range nodeFields(n) {
		sb.WriteByte(' ')
		sb.WriteString(f)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		writePretty(sb, c, depth+1)
	}
}

// nodeFields renders a node's Attrs plus its kind-specific fields as
// "key=value" tokens, in a stable order. Embedded newlines in string values
// are escaped to "\n"; no other escaping is performed (spec §4.8).
func nodeFields(n *ast.Node) []string {
	var out []string
	for _, a := range n.Attrs {
		out = append(out, a.Key+"="+formatAttrValue(a.Value))
	}
	switch n.Kind {
	case ast.Heading:
		out = append(out, "level="+strconv.Itoa(n.Level), "id="+escapeField(n.ID))
	case ast.Paragraph:
		if n.Tight {
			out = append(out, "tight")
		}
	case ast.BlockQuote:
		if n.IsAlert {
			out = append(out, "alert="+n.AlertKind)
		}
	case ast.List:
		if n.Ordered {
			out = append(out, "ordered", "start="+strconv.Itoa(n.StartIndex))
		}
	case ast.ListItem:
		if n.Task != ast.TaskNone {
			out = append(out, "task="+n.Task.String())
		}
	case ast.Table:
		for i, a := range n.ColumnAlign {
			out = append(out, fmt.Sprintf("col%d=%s", i, a))
		}
	case ast.TableRow:
		if n.HeaderRow {
			out = append(out, "header")
		}
	case ast.TableCell:
		if len(n.ColumnAlign) > 0 {
			out = append(out, "align="+n.ColumnAlign[0].String())
		}
		out = append(out, "text="+escapeField(n.Literal))
	case ast.CodeBlock:
		if n.Lang != "" {
			out = append(out, "lang="+n.Lang)
		}
		out = append(out, "content="+escapeField(n.Content))
		if n.LineNumbers {
			out = append(out, "linenumbers")
		}
	case ast.HtmlBlock, ast.RawHtml:
		out = append(out, "raw="+escapeField(n.Raw))
	case ast.FootnoteDef, ast.FootnoteRef:
		out = append(out, "label="+n.Label)
	case ast.MathBlock, ast.MathInline:
		out = append(out, "tex="+escapeField(n.TeX))
	case ast.Container:
		out = append(out, "kind="+n.ContainerKind)
		if n.ContainerName != "" {
			out = append(out, "name="+n.ContainerName)
		}
	case ast.Text, ast.Code, ast.Autolink:
		out = append(out, "text="+escapeField(n.Literal))
	case ast.Link, ast.Image:
		out = append(out, "url="+escapeField(n.URL))
		if n.Title != "" {
			out = append(out, "title="+escapeField(n.Title))
		}
		if n.Kind == ast.Image && n.Alt != "" {
			out = append(out, "alt="+escapeField(n.Alt))
		}
		if n.Unresolved {
			out = append(out, "unresolved")
		}
	case ast.DocTag:
		out = append(out, "name="+n.TagName)
		if n.TagType != "" {
			out = append(out, "type="+n.TagType)
		}
		if n.TagIdent != "" {
			out = append(out, "ident="+n.TagIdent)
		}
	}
	return out
}

func formatAttrValue(v ast.AttrValue) string {
	switch v.Kind {
	case ast.AttrString:
		return escapeField(v.Str)
	case ast.AttrInt:
		return strconv.FormatInt(v.Int, 10)
	case ast.AttrBool:
		return strconv.FormatBool(v.Bool)
	case ast.AttrRangeList:
		parts := make([]string, len(v.Ranges))
		for i, r := range v.Ranges {
			parts[i] = fmt.Sprintf("%d-%d", r.Start, r.End)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return ""
	}
}

func escapeField(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

package encode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

func TestEncodeCompactSingleLinePerNode(t *testing.T) {
	doc := ast.NewNode(ast.Document, span.Span{Start: 0, End: 10})
	h := ast.NewNode(ast.Heading, span.Span{Start: 0, End: 10})
	h.Level = 1
	h.ID = "title"
	doc.AppendChild(h)

	out := EncodeCompact(doc)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "Document [0:10]")
	require.True(t, strings.HasSuffix(lines[0], " 1"))
	require.Contains(t, lines[1], "Heading [0:10]")
	require.Contains(t, lines[1], "level=1")
	require.Contains(t, lines[1], "id=title")
	require.True(t, strings.HasSuffix(lines[1], " 0"))
}

func TestEncodePrettyIndentsByDepth(t *testing.T) {
	doc := ast.NewNode(ast.Document, span.Span{Start: 0, End: 5})
	p := ast.NewNode(ast.Paragraph, span.Span{Start: 0, End: 5})
	text := ast.NewNode(ast.Text, span.Span{Start: 0, End: 5})
	text.Literal = "hi"
	p.AppendChild(text)
	doc.AppendChild(p)

	out := EncodePretty(doc)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	require.False(t, strings.HasPrefix(lines[0], " "))
	require.True(t, strings.HasPrefix(lines[1], "  Paragraph"))
	require.True(t, strings.HasPrefix(lines[2], "    Text"))
	require.Contains(t, lines[2], "text=hi")
}

func TestEncodeEscapesEmbeddedNewlines(t *testing.T) {
	doc := ast.NewNode(ast.Document, span.Span{})
	text := ast.NewNode(ast.Text, span.Span{})
	text.Literal = "line1\nline2"
	doc.AppendChild(text)

	out := EncodeCompact(doc)
	require.Contains(t, out, `text=line1\nline2`)
	require.NotContains(t, out, "line1\nline2")
}

func TestEncodeCompactListFields(t *testing.T) {
	list := ast.NewNode(ast.List, span.Span{})
	list.Ordered = true
	list.StartIndex = 3
	item := ast.NewNode(ast.ListItem, span.Span{})
	item.Task = ast.TaskChecked
	list.AppendChild(item)

	out := EncodeCompact(list)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Contains(t, lines[0], "ordered")
	require.Contains(t, lines[0], "start=3")
	require.Contains(t, lines[1], "task=checked")
}

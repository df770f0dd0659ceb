package encode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

func sampleDocument() *ast.Node {
	doc := ast.NewNode(ast.Document, span.Span{Start: 0, End: 40})
	doc.Frontmatter = &ast.Frontmatter{
		Format: "yaml",
		Pairs:  []ast.KV{{Key: "title", Value: "Example"}},
	}

	h := ast.NewNode(ast.Heading, span.Span{Start: 0, End: 10})
	h.Level = 2
	h.ID = "example"
	h.SetAttr("custom", ast.StringAttr("value"))
	doc.AppendChild(h)

	p := ast.NewNode(ast.Paragraph, span.Span{Start: 10, End: 30})
	p.Tight = true
	text := ast.NewNode(ast.Text, span.Span{Start: 10, End: 15})
	text.Literal = "hello\nworld"
	em := ast.NewNode(ast.Emphasis, span.Span{Start: 15, End: 20})
	emText := ast.NewNode(ast.Text, span.Span{Start: 16, End: 19})
	emText.Literal = "mid"
	em.AppendChild(emText)
	link := ast.NewNode(ast.Link, span.Span{Start: 20, End: 30})
	link.URL = "https://example.com"
	link.Title = "Ex"
	p.AppendChild(text)
	p.AppendChild(em)
	p.AppendChild(link)
	doc.AppendChild(p)

	list := ast.NewNode(ast.List, span.Span{Start: 30, End: 40})
	list.Ordered = true
	list.StartIndex = 1
	item := ast.NewNode(ast.ListItem, span.Span{Start: 30, End: 40})
	item.Task = ast.TaskChecked
	item.SetAttr("ordinal", ast.IntAttr(1))
	item.SetAttr("flag", ast.BoolAttr(true))
	item.SetAttr("range", ast.RangeListAttr([]ast.Range{{Start: 1, End: 2}}))
	list.AppendChild(item)
	doc.AppendChild(list)

	cb := ast.NewNode(ast.CodeBlock, span.Span{Start: 40, End: 50})
	cb.Lang = "go"
	cb.Content = "fmt.Println(1)\n"
	cb.Highlight = []ast.Range{{Start: 1, End: 1}}
	cb.LineNumbers = true
	doc.AppendChild(cb)

	return doc
}

func TestBinaryRoundTrip(t *testing.T) {
	doc := sampleDocument()
	data := EncodeBinary(doc, FlagHasSourceMap)
	decoded, err := DecodeBinary(data)
	require.NoError(t, err)
	require.Equal(t, doc, decoded)
}

func TestBinaryRoundTripWithoutSpans(t *testing.T) {
	doc := sampleDocument()
	data := EncodeBinary(doc, 0)
	decoded, err := DecodeBinary(data)
	require.NoError(t, err)
	require.Equal(t, "yaml", decoded.Frontmatter.Format)
	require.Equal(t, ast.Heading, decoded.Children[0].Kind)
	require.Equal(t, span.Span{}, decoded.Children[0].Span)
}

func TestBinaryRoundTripEmptyDocument(t *testing.T) {
	doc := ast.NewNode(ast.Document, span.Span{})
	data := EncodeBinary(doc, FlagHasSourceMap)
	decoded, err := DecodeBinary(data)
	require.NoError(t, err)
	require.Equal(t, doc, decoded)
}

func TestDecodeBinaryBadMagic(t *testing.T) {
	_, err := DecodeBinary([]byte("nope"))
	require.Error(t, err)
}

func TestDecodeBinaryTruncated(t *testing.T) {
	doc := sampleDocument()
	data := EncodeBinary(doc, FlagHasSourceMap)
	_, err := DecodeBinary(data[:len(data)-5])
	require.Error(t, err)
}

func TestDecodeBinaryBadVersion(t *testing.T) {
	doc := ast.NewNode(ast.Document, span.Span{})
	data := EncodeBinary(doc, FlagHasSourceMap)
	data[4] = 0xff
	_, err := DecodeBinary(data)
	require.Error(t, err)
}

func TestStringInterningDeduplicates(t *testing.T) {
	doc := ast.NewNode(ast.Document, span.Span{})
	a := ast.NewNode(ast.Text, span.Span{})
	a.Literal = "repeat"
	b := ast.NewNode(ast.Text, span.Span{})
	b.Literal = "repeat"
	doc.AppendChild(a)
	doc.AppendChild(b)

	data := EncodeBinary(doc, 0)
	decoded, err := DecodeBinary(data)
	require.NoError(t, err)
	require.Equal(t, "repeat", decoded.Children[0].Literal)
	require.Equal(t, "repeat", decoded.Children[1].Literal)
}

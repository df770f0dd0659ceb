package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/blockparser"
	"github.com/glagolica/bukvar/inline"
	"github.com/glagolica/bukvar/span"
)

func messages(diags []ast.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func docOf(children ...*ast.Node) *ast.Node {
	doc := ast.NewNode(ast.Document, span.Span{})
	for _, c := range children {
		doc.AppendChild(c)
	}
	return doc
}

func paragraphFrom(raw string, links inline.Resolver) *ast.Node {
	p := ast.NewNode(ast.Paragraph, span.Span{Start: 0, End: len(raw)})
	for _, n := range inline.Parse(raw, 0, links) {
		p.AppendChild(n)
	}
	return p
}

func TestUnresolvedFootnoteRef(t *testing.T) {
	doc := docOf(paragraphFrom("See[^missing].", nil))
	diags := Check(doc)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "unresolved footnote reference")
}

func TestResolvedFootnoteRefNoDiagnostic(t *testing.T) {
	def := ast.NewNode(ast.FootnoteDef, span.Span{})
	def.Label = "1"
	doc := docOf(paragraphFrom("See[^1].", nil), def)
	diags := Check(doc)
	require.Empty(t, diags)
}

func TestDuplicateFootnoteDefinition(t *testing.T) {
	def1 := ast.NewNode(ast.FootnoteDef, span.Span{})
	def1.Label = "note"
	def2 := ast.NewNode(ast.FootnoteDef, span.Span{})
	def2.Label = "note"
	diags := Check(docOf(def1, def2))
	require.Contains(t, messages(diags), "duplicate footnote definition: note")
}

func TestUnresolvedReferenceLink(t *testing.T) {
	doc := docOf(paragraphFrom("See [a link][missing] here.", nil))
	diags := Check(doc)
	require.Contains(t, messages(diags), "unresolved link reference")
}

func TestResolvedReferenceLinkNoDiagnostic(t *testing.T) {
	links := inline.Resolver{"ok": {URL: "https://example.com"}}
	doc := docOf(paragraphFrom("See [a link][ok] here.", links))
	diags := Check(doc)
	require.Empty(t, diags)
}

func TestEmptyImageURL(t *testing.T) {
	img := ast.NewNode(ast.Image, span.Span{})
	img.URL = ""
	doc := docOf(docWrapParagraph(img))
	diags := Check(doc)
	require.Contains(t, messages(diags), "empty image url")
}

func TestBrokenRelativeImageURL(t *testing.T) {
	img := ast.NewNode(ast.Image, span.Span{})
	img.URL = "not a real path.png"
	doc := docOf(docWrapParagraph(img))
	diags := Check(doc)
	var found bool
	for _, m := range messages(diags) {
		if m == "broken relative image url: not a real path.png" {
			found = true
		}
	}
	require.True(t, found)
}

func TestAbsoluteImageURLNoDiagnostic(t *testing.T) {
	img := ast.NewNode(ast.Image, span.Span{})
	img.URL = "https://example.com/pic.png"
	doc := docOf(docWrapParagraph(img))
	diags := Check(doc)
	require.Empty(t, diags)
}

func docWrapParagraph(children ...*ast.Node) *ast.Node {
	p := ast.NewNode(ast.Paragraph, span.Span{})
	for _, c := range children {
		p.AppendChild(c)
	}
	return p
}

func TestDuplicateHeadingID(t *testing.T) {
	h1 := ast.NewNode(ast.Heading, span.Span{})
	h1.Level = 1
	h1.ID = "title"
	h2 := ast.NewNode(ast.Heading, span.Span{})
	h2.Level = 1
	h2.ID = "title"
	diags := Check(docOf(h1, h2))
	require.Contains(t, messages(diags), "duplicate heading id: title")
}

func TestUniqueHeadingIDsNoDiagnostic(t *testing.T) {
	r := blockparser.Parse([]byte("# Title\n\n# Title\n"))
	diags := Check(r.Document)
	require.NotContains(t, messages(diags), "duplicate heading id: title")
}

func TestEmptyTableHeader(t *testing.T) {
	r := blockparser.Parse([]byte("|   |\n|---|\n| a |\n"))
	diags := Check(r.Document)
	require.Contains(t, messages(diags), "empty table header")
}

func TestNonEmptyTableHeaderNoDiagnostic(t *testing.T) {
	r := blockparser.Parse([]byte("| a |\n|---|\n| 1 |\n"))
	diags := Check(r.Document)
	require.NotContains(t, messages(diags), "empty table header")
}

func TestNonMonotonicOrderedList(t *testing.T) {
	list := ast.NewNode(ast.List, span.Span{})
	list.Ordered = true
	item1 := ast.NewNode(ast.ListItem, span.Span{})
	item1.SetAttr("ordinal", ast.IntAttr(3))
	item2 := ast.NewNode(ast.ListItem, span.Span{})
	item2.SetAttr("ordinal", ast.IntAttr(1))
	list.AppendChild(item1)
	list.AppendChild(item2)

	diags := Check(docOf(list))
	require.Contains(t, messages(diags), "non-monotonic ordered list numbering")
}

func TestMonotonicOrderedListNoDiagnostic(t *testing.T) {
	r := blockparser.Parse([]byte("1. a\n2. b\n3. c\n"))
	diags := Check(r.Document)
	require.NotContains(t, messages(diags), "non-monotonic ordered list numbering")
}

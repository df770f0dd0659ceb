package bukvar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/docext"
)

func TestParseExpandsInlineInParagraph(t *testing.T) {
	doc := Parse([]byte("Hello *world*.\n"))
	require.Equal(t, ast.Document, doc.Kind)
	para := doc.Children[0]
	require.Equal(t, ast.Paragraph, para.Kind)
	require.NotEmpty(t, para.Children)

	var sawEmphasis bool
	for _, c := range para.Children {
		if c.Kind == ast.Emphasis {
			sawEmphasis = true
		}
	}
	require.True(t, sawEmphasis)
}

func TestParseResolvesReferenceLinkDefinitions(t *testing.T) {
	doc := Parse([]byte("See [here][ref].\n\n[ref]: https://example.com \"Example\"\n"))
	para := doc.Children[0]
	var link *ast.Node
	for _, c := range para.Children {
		if c.Kind == ast.Link {
			link = c
		}
	}
	require.NotNil(t, link)
	require.False(t, link.Unresolved)
	require.Equal(t, "https://example.com", link.URL)
	require.Equal(t, "Example", link.Title)
}

func TestParseDocCommentJavaScript(t *testing.T) {
	src := []byte("/**\n * Sum.\n * @param {number} a - First.\n * @returns {number} sum\n */\nfunction sum(a, b) { return a + b }\n")
	frags, err := ParseDocComment(docext.JavaScript, src)
	require.NoError(t, err)
	require.Len(t, frags, 1)
	require.Equal(t, ast.Document, frags[0].Kind)
}

func TestParseDocCommentPython(t *testing.T) {
	src := []byte("\"\"\"Module summary.\"\"\"\n\ndef f():\n    pass\n")
	frags, err := ParseDocComment(docext.Python, src)
	require.NoError(t, err)
	require.Len(t, frags, 1)
}

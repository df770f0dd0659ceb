package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glagolica/bukvar/span"
)

func TestAppendChildWidensSpan(t *testing.T) {
	doc := NewNode(Document, span.Span{Start: 0, End: 0})
	h := NewNode(Heading, span.Span{Start: 0, End: 5})
	p := NewNode(Paragraph, span.Span{Start: 7, End: 20})

	doc.AppendChild(h)
	doc.AppendChild(p)

	require.Equal(t, span.Span{Start: 0, End: 20}, doc.Span)
	require.True(t, doc.Span.Contains(h.Span))
	require.True(t, doc.Span.Contains(p.Span))
}

func TestAttrGetSet(t *testing.T) {
	n := NewNode(Container, span.Span{})
	n.SetAttr("name", StringAttr("tabs"))
	v, ok := n.Attr("name")
	require.True(t, ok)
	require.Equal(t, "tabs", v.Str)

	n.SetAttr("name", StringAttr("steps"))
	v, ok = n.Attr("name")
	require.True(t, ok)
	require.Equal(t, "steps", v.Str)

	_, ok = n.Attr("missing")
	require.False(t, ok)
}

func TestWalkPrePost(t *testing.T) {
	doc := NewNode(Document, span.Span{})
	h := NewNode(Heading, span.Span{})
	text := NewNode(Text, span.Span{})
	text.Literal = "hi"
	h.AppendChild(text)
	doc.AppendChild(h)

	var events []string
	doc.Walk(func(n *Node, entering bool) bool {
		dir := "enter"
		if !entering {
			dir = "exit"
		}
		events = append(events, dir+":"+n.Kind.String())
		return true
	})

	require.Equal(t, []string{
		"enter:Document",
		"enter:Heading",
		"enter:Text",
		"exit:Text",
		"exit:Heading",
		"exit:Document",
	}, events)
}

func TestKindPredicates(t *testing.T) {
	require.True(t, Heading.IsBlock())
	require.False(t, Heading.IsInline())
	require.True(t, Emphasis.IsInline())
	require.False(t, Emphasis.IsBlock())
}

func TestFrontmatterGet(t *testing.T) {
	var fm *Frontmatter
	_, ok := fm.Get("x")
	require.False(t, ok)

	fm = &Frontmatter{Format: "yaml", Pairs: []KV{{Key: "title", Value: "Hi"}}}
	v, ok := fm.Get("title")
	require.True(t, ok)
	require.Equal(t, "Hi", v)
}

package bukvar

import (
	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/blockparser"
	"github.com/glagolica/bukvar/docext"
	"github.com/glagolica/bukvar/inline"
)

// Parse runs the full Markdown pipeline over src: the block pass, then the
// inline pass over every block that carries raw inline text (Heading,
// Paragraph, DefinitionTerm, TableCell), resolving reference-style
// links/images against the definitions the block pass collected.
func Parse(src []byte) *ast.Node {
	res := blockparser.Parse(src)
	links := resolverFrom(res.LinkDefs)
	expandInline(res.Document, links)
	return res.Document
}

// ParseDocComment extracts doc comments from a non-Markdown source file
// written in lang, lowering each into its own Document fragment.
func ParseDocComment(lang docext.Language, src []byte) ([]*ast.Node, error) {
	if lang == docext.Python {
		return docext.ExtractPython(src)
	}
	return docext.ExtractJS(lang, src)
}

func resolverFrom(defs map[string]blockparser.LinkDef) inline.Resolver {
	r := make(inline.Resolver, len(defs))
	for label, def := range defs {
		r[label] = inline.LinkDef{URL: def.URL, Title: def.Title}
	}
	return r
}

// expandInline walks doc, running the Inline Parser over every node whose
// block-pass Literal field holds raw, not-yet-tokenized inline text. The
// block pass leaves that text in place (blockparser/paragraph.go,
// blockparser/table.go) rather than parsing it itself, since only the
// facade has the complete link-definition table needed to resolve
// reference-style links.
func expandInline(n *ast.Node, links inline.Resolver) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Heading, ast.Paragraph, ast.DefinitionTerm, ast.TableCell:
		if n.Literal != "" && len(n.Children) == 0 {
			n.Children = inline.Parse(n.Literal, n.Span.Start, links)
		}
	}
	for _, c := range n.Children {
		expandInline(c, links)
	}
}

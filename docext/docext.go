// Package docext extracts documentation comments (JSDoc, JavaDoc, PyDoc)
// from source files into DAST fragments, sharing the markdown pass's
// Inline Parser for description text (spec §4.5).
package docext

import (
	"fmt"
	"strings"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/inline"
	"github.com/glagolica/bukvar/span"
)

// Language selects which grammar and doc-comment convention to use.
type Language int

// Supported source languages.
const (
	JavaScript Language = iota
	TypeScript
	Java
	Python
)

// Tag is one recognized or unrecognized @tag/:directive line from a doc
// comment, before being lowered into a DocTag node.
type Tag struct {
	Name        string
	Type        string
	Ident       string
	Description string
}

// comment is a located, unprocessed doc-comment block: its raw inner text
// (comment markers stripped) and its byte span in the original source.
type comment struct {
	text string
	span span.Span
}

// buildFragment turns a description string plus a tag list into the
// `Document { children: [Paragraph(description), DocTag...] }` shape spec
// §4.5 asks for, running both through the Inline Parser.
func buildFragment(description string, tags []Tag, s span.Span) *ast.Node {
	doc := ast.NewNode(ast.Document, s)
	if strings.TrimSpace(description) != "" {
		para := ast.NewNode(ast.Paragraph, s)
		para.Literal = strings.TrimSpace(description)
		para.Children = inline.Parse(para.Literal, s.Start, nil)
		doc.AppendChild(para)
	}
	for _, tg := range tags {
		tagNode := ast.NewNode(ast.DocTag, s)
		tagNode.TagName = tg.Name
		tagNode.TagType = tg.Type
		tagNode.TagIdent = tg.Ident
		desc := strings.TrimSpace(tg.Description)
		if desc != "" {
			tagNode.Children = inline.Parse(desc, s.Start, nil)
		}
		doc.AppendChild(tagNode)
	}
	return doc
}

// ExtractError wraps a language-grammar parse or walk failure.
type ExtractError struct {
	Language Language
	Msg      string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("docext: %s: %s", languageName(e.Language), e.Msg)
}

func languageName(l Language) string {
	switch l {
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case Java:
		return "java"
	case Python:
		return "python"
	default:
		return "unknown"
	}
}

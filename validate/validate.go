// Package validate walks a parsed Document and produces a side list of
// Diagnostics (spec §4.6): unresolved footnote/link references, duplicate
// heading ids, broken image urls, empty table headers, and non-monotonic
// ordered-list numbering. The walk never mutates the tree it inspects,
// following scandown.BlockStack.Format's read-only report style.
package validate

import (
	"strings"

	"github.com/glagolica/bukvar/ast"
)

// Check walks doc and returns every diagnostic found, in document order.
func Check(doc *ast.Node) []ast.Diagnostic {
	if doc == nil {
		return nil
	}
	v := &visitor{
		footnoteLabels: map[string]bool{},
		headingIDs:     map[string]int{},
		footnoteDefs:   map[string]int{},
	}
	v.collectFootnoteDefs(doc)
	v.walk(doc)
	return v.diags
}

type visitor struct {
	footnoteLabels map[string]bool
	headingIDs     map[string]int
	footnoteDefs   map[string]int
	diags          []ast.Diagnostic
}

func (v *visitor) report(n *ast.Node, msg string) {
	v.diags = append(v.diags, ast.Diagnostic{
		Severity: ast.SeverityWarning,
		Span:     n.Span,
		Message:  msg,
	})
}

func (v *visitor) collectFootnoteDefs(n *ast.Node) {
	n.Walk(func(node *ast.Node, entering bool) bool {
		if entering && node.Kind == ast.FootnoteDef {
			v.footnoteLabels[strings.ToLower(node.Label)] = true
		}
		return true
	})
}

func (v *visitor) walk(n *ast.Node) {
	n.Walk(func(node *ast.Node, entering bool) bool {
		if !entering {
			return true
		}
		switch node.Kind {
		case ast.FootnoteRef:
			v.checkFootnoteRef(node)
		case ast.Link:
			v.checkLink(node)
		case ast.Image:
			v.checkImage(node)
		case ast.Heading:
			v.checkHeadingID(node)
		case ast.Table:
			v.checkTableHeader(node)
		case ast.List:
			v.checkOrderedList(node)
		case ast.FootnoteDef:
			v.checkFootnoteDef(node)
		}
		return true
	})
}

func (v *visitor) checkFootnoteRef(n *ast.Node) {
	if !v.footnoteLabels[strings.ToLower(n.Label)] {
		v.report(n, "unresolved footnote reference: "+n.Label)
	}
}

func (v *visitor) checkLink(n *ast.Node) {
	if n.Unresolved {
		v.report(n, "unresolved link reference")
	}
}

func (v *visitor) checkImage(n *ast.Node) {
	if n.Unresolved {
		v.report(n, "unresolved image reference")
		return
	}
	url := strings.TrimSpace(n.URL)
	if url == "" {
		v.report(n, "empty image url")
		return
	}
	if strings.Contains(url, "://") {
		return
	}
	if strings.Contains(url, " ") {
		v.report(n, "broken relative image url: "+n.URL)
	}
}

// checkFootnoteDef flags second-and-later definitions of the same label;
// blockparser.parseFootnoteDef keeps only the first definition in its
// lookup table, so later ones parse fine as tree nodes but would otherwise
// silently lose their footnote identity.
func (v *visitor) checkFootnoteDef(n *ast.Node) {
	key := strings.ToLower(n.Label)
	v.footnoteDefs[key]++
	if v.footnoteDefs[key] > 1 {
		v.report(n, "duplicate footnote definition: "+n.Label)
	}
}

func (v *visitor) checkHeadingID(n *ast.Node) {
	if n.ID == "" {
		return
	}
	v.headingIDs[n.ID]++
	if v.headingIDs[n.ID] > 1 {
		v.report(n, "duplicate heading id: "+n.ID)
	}
}

func (v *visitor) checkTableHeader(n *ast.Node) {
	if len(n.Children) == 0 || !n.Children[0].HeaderRow {
		return
	}
	header := n.Children[0]
	if len(header.Children) == 0 {
		v.report(n, "empty table header")
		return
	}
	for _, cell := range header.Children {
		if strings.TrimSpace(cell.Literal) != "" {
			return
		}
	}
	v.report(n, "empty table header")
}

func (v *visitor) checkOrderedList(n *ast.Node) {
	if !n.Ordered {
		return
	}
	prev := -1
	have := false
	for _, item := range n.Children {
		val, ok := item.Attr("ordinal")
		if !ok {
			continue
		}
		num := int(val.Int)
		if have && num < prev {
			v.report(n, "non-monotonic ordered list numbering")
			return
		}
		prev = num
		have = true
	}
}

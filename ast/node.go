// Package ast defines the Document Abstract Syntax Tree (DAST): a single
// tagged-variant Node type covering every block, inline, and doc-comment
// kind in spec.md §3, plus the small set of side types (Attr, Frontmatter,
// Diagnostic) that hang off it.
//
// Node is deliberately one flat struct with per-Kind optional fields,
// following russross/blackfriday's Node (as wired through by the teacher's
// cmd/poc/main.go) rather than a class hierarchy: visitors dispatch on Kind,
// there is no interface-per-node-type. Nodes are built by the block/inline
// parsers and, once built, are never mutated except for the Validator
// attaching Diagnostics to the Document as a sibling structure.
package ast

import "github.com/glagolica/bukvar/span"

// Kind tags the variant a Node represents.
type Kind uint8

// Block kinds.
const (
	Document Kind = iota + 1
	Heading
	Paragraph
	BlockQuote
	List
	ListItem
	Table
	TableRow
	TableCell
	CodeBlock
	HtmlBlock
	ThematicBreak
	FootnoteDef
	DefinitionList
	DefinitionTerm
	DefinitionDetail
	MathBlock
	Container
)

// Inline kinds.
const (
	Text Kind = iota + 64
	Emphasis
	Strong
	Strikethrough
	Code
	Link
	Image
	Autolink
	HardBreak
	SoftBreak
	FootnoteRef
	MathInline
	RawHtml
	TaskMarker
)

// Doc-comment kind.
const (
	DocTag Kind = iota + 128
)

// IsBlock reports whether k is one of the block-level kinds (spec §3
// invariant 3: inline-only kinds never appear as direct children of
// Document, which in practice means "any direct Document child is a block
// kind").
func (k Kind) IsBlock() bool { return k >= Document && k <= Container }

// IsInline reports whether k is one of the inline kinds.
func (k Kind) IsInline() bool { return k >= Text && k <= TaskMarker }

// Align is a table column's alignment, from the separator row.
type Align uint8

// Column alignments.
const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// TaskState is a ListItem's task-list marker state.
type TaskState uint8

// Task marker states.
const (
	TaskNone TaskState = iota
	TaskUnchecked
	TaskChecked
)

// Range is an inclusive, 1-based line span, used for fenced-code
// highlight/diff attributes.
type Range struct {
	Start int
	End   int
}

// AttrKind tags an AttrValue's payload, matching the binary codec's AttrVal
// type byte (spec §4.7).
type AttrKind uint8

// Attribute value kinds.
const (
	AttrString AttrKind = iota
	AttrInt
	AttrBool
	AttrRangeList
)

// AttrValue is a small tagged union: string, int64, bool, or a Range list.
// Attrs hold incidental, kind-independent metadata (e.g. a Container's
// name→value map); frequently-used kind-specific payload lives as typed
// fields directly on Node instead (see the field groups below).
type AttrValue struct {
	Kind   AttrKind
	Str    string
	Int    int64
	Bool   bool
	Ranges []Range
}

// StringAttr builds a string-valued AttrValue.
func StringAttr(s string) AttrValue { return AttrValue{Kind: AttrString, Str: s} }

// IntAttr builds an int-valued AttrValue.
func IntAttr(i int64) AttrValue { return AttrValue{Kind: AttrInt, Int: i} }

// BoolAttr builds a bool-valued AttrValue.
func BoolAttr(b bool) AttrValue { return AttrValue{Kind: AttrBool, Bool: b} }

// RangeListAttr builds a range-list-valued AttrValue.
func RangeListAttr(rs []Range) AttrValue { return AttrValue{Kind: AttrRangeList, Ranges: rs} }

// Attr is a single name/value attribute. Attrs are carried as an ordered
// slice, not a map, so that encoders can emit them in a stable,
// deterministic order (spec §5 "Ordering guarantees").
type Attr struct {
	Key   string
	Value AttrValue
}

// KV is an ordered frontmatter key/value pair. Value is always the raw
// string form: scalars as authored, and anything more complex as its raw
// source text (spec §4.2).
type KV struct {
	Key   string
	Value string
}

// Frontmatter is the parsed leading YAML/TOML fence, exposed as an ordered
// flat mapping.
type Frontmatter struct {
	// Format is "yaml" or "toml".
	Format string
	Pairs  []KV
}

// Get returns the raw value for key and whether it was present.
func (fm *Frontmatter) Get(key string) (string, bool) {
	if fm == nil {
		return "", false
	}
	for _, kv := range fm.Pairs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Node is the single DAST entity: a tagged variant covering every block,
// inline, and doc-comment kind. Every Node carries a Span into the original
// source (spec §3 invariant 1); parents span at least the union of their
// children's spans.
type Node struct {
	Kind     Kind
	Span     span.Span
	Attrs    []Attr
	Children []*Node

	// Document-only.
	Frontmatter *Frontmatter

	// Heading.
	Level int // 1-6
	ID    string

	// List / Paragraph: on a List, Tight is set by the block parser when no
	// blank line separates its items or their child blocks (spec §4.3 "List
	// tightness"); on a Paragraph it marks inline-only rendering downstream.
	Tight bool

	// BlockQuote (alert extension).
	IsAlert   bool
	AlertKind string // NOTE|TIP|IMPORTANT|WARNING|CAUTION, uppercase

	// List.
	Ordered    bool
	StartIndex int

	// ListItem.
	Task TaskState

	// Table / TableCell.
	ColumnAlign []Align // on Table: per-column; on TableCell: this cell's column alignment
	HeaderRow   bool    // on TableRow

	// CodeBlock.
	Lang        string
	Content     string // raw code body, bytes as authored
	Highlight   []Range
	PlusDiff    []Range
	MinusDiff   []Range
	LineNumbers bool

	// HtmlBlock / RawHtml.
	Raw string

	// FootnoteDef / FootnoteRef.
	Label string

	// DefinitionList has no extra fields; DefinitionTerm/DefinitionDetail
	// carry their content as Children (inline for Term, block for Detail).

	// MathBlock / MathInline.
	TeX string

	// Container (alerts handled via BlockQuote instead; this is for
	// <steps>/<tabs>/<toc/>).
	ContainerKind string
	ContainerName string // e.g. <tabs names="...">

	// Text / Code / Autolink.
	Literal string

	// Emphasis/Strong/Strikethrough have no extra fields beyond Children.

	// Link / Image (URL also on Autolink).
	URL        string
	Title      string
	Alt        string // Image only: flattened alt text
	Unresolved bool   // reference-form link/image with no matching definition

	// DocTag (doc-comment only).
	TagName   string
	TagType   string
	TagIdent  string
	// Description is carried as Children: []*Node{inline tree}.
}

// NewNode returns a Node of the given kind with span s.
func NewNode(kind Kind, s span.Span) *Node {
	return &Node{Kind: kind, Span: s}
}

// AppendChild appends child to the receiver's Children and widens the
// receiver's Span to contain it, maintaining invariant 1. Callers must give
// n an initial Span (covering at least its own opening token) before the
// first AppendChild call.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	n.Span = n.Span.Union(child.Span)
}

// Attr returns the value for key and whether it was set.
func (n *Node) Attr(key string) (AttrValue, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return AttrValue{}, false
}

// SetAttr sets (or replaces) the attribute named key.
func (n *Node) SetAttr(key string, v AttrValue) {
	for i, a := range n.Attrs {
		if a.Key == key {
			n.Attrs[i].Value = v
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: v})
}

// Walk performs a pre/post-order depth-first traversal, calling visit(node,
// entering) once on entry and once on exit for every node, matching the
// blackfriday-style Walk teacher code (cmd/poc/main.go) relies on. Returning
// false from visit on entry skips the node's children (but still calls the
// matching exit visit).
func (n *Node) Walk(visit func(node *Node, entering bool) bool) {
	if n == nil {
		return
	}
	if visit(n, true) {
		for _, c := range n.Children {
			c.Walk(visit)
		}
	}
	visit(n, false)
}

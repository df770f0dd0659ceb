package ast

import (
	"fmt"
	"io"
)

// Format writes a type string representing the receiver Kind, following the
// teacher's BlockType.Format (scandown/fmt.go) almost exactly: a plain
// String() would do, but implementing fmt.Formatter directly is what the
// teacher does throughout, and it's what encode's textual encoder dispatches
// through.
func (k Kind) Format(f fmt.State, _ rune) {
	io.WriteString(f, k.String())
}

// String names the Kind.
func (k Kind) String() string {
	switch k {
	case Document:
		return "Document"
	case Heading:
		return "Heading"
	case Paragraph:
		return "Paragraph"
	case BlockQuote:
		return "BlockQuote"
	case List:
		return "List"
	case ListItem:
		return "ListItem"
	case Table:
		return "Table"
	case TableRow:
		return "TableRow"
	case TableCell:
		return "TableCell"
	case CodeBlock:
		return "CodeBlock"
	case HtmlBlock:
		return "HtmlBlock"
	case ThematicBreak:
		return "ThematicBreak"
	case FootnoteDef:
		return "FootnoteDef"
	case DefinitionList:
		return "DefinitionList"
	case DefinitionTerm:
		return "DefinitionTerm"
	case DefinitionDetail:
		return "DefinitionDetail"
	case MathBlock:
		return "MathBlock"
	case Container:
		return "Container"
	case Text:
		return "Text"
	case Emphasis:
		return "Emphasis"
	case Strong:
		return "Strong"
	case Strikethrough:
		return "Strikethrough"
	case Code:
		return "Code"
	case Link:
		return "Link"
	case Image:
		return "Image"
	case Autolink:
		return "Autolink"
	case HardBreak:
		return "HardBreak"
	case SoftBreak:
		return "SoftBreak"
	case FootnoteRef:
		return "FootnoteRef"
	case MathInline:
		return "MathInline"
	case RawHtml:
		return "RawHtml"
	case TaskMarker:
		return "TaskMarker"
	case DocTag:
		return "DocTag"
	default:
		return fmt.Sprintf("InvalidKind(%d)", uint8(k))
	}
}

// String names the Align value as it appears in the separator row.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

// String names the TaskState.
func (t TaskState) String() string {
	switch t {
	case TaskUnchecked:
		return "unchecked"
	case TaskChecked:
		return "checked"
	default:
		return "none"
	}
}

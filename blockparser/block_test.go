package blockparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glagolica/bukvar/ast"
)

func TestHeadingAndParagraph(t *testing.T) {
	r := Parse([]byte("# Hello\n\nPara *em* text.\n"))
	doc := r.Document
	require.Len(t, doc.Children, 2)
	require.Equal(t, ast.Heading, doc.Children[0].Kind)
	require.Equal(t, 1, doc.Children[0].Level)
	require.Equal(t, "Hello", doc.Children[0].Literal)
	require.Equal(t, ast.Paragraph, doc.Children[1].Kind)
	require.Equal(t, "Para *em* text.", doc.Children[1].Literal)
}

func TestAlertBlockquote(t *testing.T) {
	r := Parse([]byte("> [!WARNING]\n> Be careful.\n"))
	bq := r.Document.Children[0]
	require.Equal(t, ast.BlockQuote, bq.Kind)
	require.True(t, bq.IsAlert)
	require.Equal(t, "WARNING", bq.AlertKind)
	require.Len(t, bq.Children, 1)
	require.Equal(t, "Be careful.", bq.Children[0].Literal)
}

func TestFencedCodeBlockWithHighlight(t *testing.T) {
	src := "```rust highlight=\"2, 4-5\"\nA\nB\nC\nD\nE\n```\n"
	r := Parse([]byte(src))
	cb := r.Document.Children[0]
	require.Equal(t, ast.CodeBlock, cb.Kind)
	require.Equal(t, "rust", cb.Lang)
	require.Equal(t, []ast.Range{{Start: 2, End: 2}, {Start: 4, End: 5}}, cb.Highlight)
	require.Equal(t, "A\nB\nC\nD\nE\n", cb.Content)
}

func TestTable(t *testing.T) {
	r := Parse([]byte("| a | b |\n|---|:-:|\n| 1 | 2 |\n"))
	tbl := r.Document.Children[0]
	require.Equal(t, ast.Table, tbl.Kind)
	require.Equal(t, []ast.Align{ast.AlignNone, ast.AlignCenter}, tbl.ColumnAlign)
	require.Len(t, tbl.Children, 2)
	require.True(t, tbl.Children[0].HeaderRow)
	require.Equal(t, "a", tbl.Children[0].Children[0].Literal)
	require.Equal(t, "1", tbl.Children[1].Children[0].Literal)
}

func TestTableColumnPaddingAndTruncation(t *testing.T) {
	r := Parse([]byte("| a | b | c |\n|---|---|---|\n| 1 |\n| 1 | 2 | 3 | 4 |\n"))
	tbl := r.Document.Children[0]
	require.Len(t, tbl.Children[1].Children, 3)
	require.Equal(t, "", tbl.Children[1].Children[1].Literal)
	require.Len(t, tbl.Children[2].Children, 3)
}

func TestNonTableFallsBackToParagraph(t *testing.T) {
	r := Parse([]byte("a | b\nnot a delimiter row\n"))
	require.Equal(t, ast.Paragraph, r.Document.Children[0].Kind)
}

func TestFootnoteRefAndDef(t *testing.T) {
	r := Parse([]byte("Footnote ref[^1].\n\n[^1]: defined here.\n"))
	require.Equal(t, "Footnote ref[^1].", r.Document.Children[0].Literal)
	def, ok := r.Footnotes["1"]
	require.True(t, ok)
	require.Equal(t, ast.FootnoteDef, def.Kind)
	require.Equal(t, "defined here.", def.Children[0].Literal)
}

func TestLinkReferenceDefinitionCollected(t *testing.T) {
	r := Parse([]byte("See [here][ref].\n\n[ref]: https://example.com \"Example\"\n"))
	require.Len(t, r.Document.Children, 1)
	def, ok := r.LinkDefs["ref"]
	require.True(t, ok)
	require.Equal(t, "https://example.com", def.URL)
	require.Equal(t, "Example", def.Title)
}

func TestUnorderedList(t *testing.T) {
	r := Parse([]byte("- one\n- two\n- three\n"))
	list := r.Document.Children[0]
	require.Equal(t, ast.List, list.Kind)
	require.False(t, list.Ordered)
	require.True(t, list.Tight)
	require.Len(t, list.Children, 3)
	require.Equal(t, "one", list.Children[0].Children[0].Literal)
}

func TestOrderedListStartIndex(t *testing.T) {
	r := Parse([]byte("3. three\n4. four\n"))
	list := r.Document.Children[0]
	require.True(t, list.Ordered)
	require.Equal(t, 3, list.StartIndex)
}

func TestLooseListWithBlankLineBetweenItems(t *testing.T) {
	r := Parse([]byte("- one\n\n- two\n"))
	list := r.Document.Children[0]
	require.False(t, list.Tight)
}

func TestTaskListMarker(t *testing.T) {
	r := Parse([]byte("- [ ] todo\n- [x] done\n"))
	list := r.Document.Children[0]
	require.Equal(t, ast.TaskUnchecked, list.Children[0].Task)
	require.Equal(t, ast.TaskChecked, list.Children[1].Task)
	require.Equal(t, "todo", list.Children[0].Children[0].Literal)
}

func TestThematicBreak(t *testing.T) {
	r := Parse([]byte("para\n\n---\n\nmore\n"))
	require.Equal(t, ast.ThematicBreak, r.Document.Children[1].Kind)
}

func TestSetextHeadingPromotion(t *testing.T) {
	r := Parse([]byte("Title\n=====\n\nSub\n---\n"))
	require.Equal(t, ast.Heading, r.Document.Children[0].Kind)
	require.Equal(t, 1, r.Document.Children[0].Level)
	require.Equal(t, "Title", r.Document.Children[0].Literal)
	require.Equal(t, 2, r.Document.Children[1].Level)
}

func TestDefinitionList(t *testing.T) {
	r := Parse([]byte("Term\n: Detail one.\n: Detail two.\n"))
	dl := r.Document.Children[0]
	require.Equal(t, ast.DefinitionList, dl.Kind)
	require.Equal(t, ast.DefinitionTerm, dl.Children[0].Kind)
	require.Equal(t, "Term", dl.Children[0].Literal)
	require.Len(t, dl.Children, 3)
	require.Equal(t, ast.DefinitionDetail, dl.Children[1].Kind)
}

func TestContainerTOC(t *testing.T) {
	r := Parse([]byte("<toc />\n"))
	n := r.Document.Children[0]
	require.Equal(t, ast.Container, n.Kind)
	require.Equal(t, "TOC", n.ContainerKind)
	require.Empty(t, n.Children)
}

func TestContainerTabsWithAttrs(t *testing.T) {
	src := "<tabs names=\"Go, Rust\">\n# In Go\n\nhi\n</tabs>\n"
	r := Parse([]byte(src))
	n := r.Document.Children[0]
	require.Equal(t, ast.Container, n.Kind)
	require.Equal(t, "TABS", n.ContainerKind)
	require.Equal(t, "Go, Rust", n.ContainerName)
	require.Len(t, n.Children, 2)
}

func TestMathBlockFence(t *testing.T) {
	r := Parse([]byte("$$\nx^2 + y^2 = z^2\n$$\n"))
	n := r.Document.Children[0]
	require.Equal(t, ast.MathBlock, n.Kind)
	require.Equal(t, "x^2 + y^2 = z^2", n.TeX)
}

func TestIndentedCodeBlock(t *testing.T) {
	r := Parse([]byte("para\n\n    code line\n    more code\n"))
	cb := r.Document.Children[1]
	require.Equal(t, ast.CodeBlock, cb.Kind)
	require.Equal(t, "code line\nmore code\n", cb.Content)
}

func TestNestedBlockquoteInList(t *testing.T) {
	r := Parse([]byte("- item\n  > quoted\n"))
	list := r.Document.Children[0]
	item := list.Children[0]
	require.Len(t, item.Children, 2)
	require.Equal(t, ast.BlockQuote, item.Children[1].Kind)
}

func TestFrontmatterAttachedToDocument(t *testing.T) {
	r := Parse([]byte("---\ntitle: Hi\n---\n# Body\n"))
	require.NotNil(t, r.Document.Frontmatter)
	title, ok := r.Document.Frontmatter.Get("title")
	require.True(t, ok)
	require.Equal(t, "Hi", title)
	require.Equal(t, ast.Heading, r.Document.Children[0].Kind)
}

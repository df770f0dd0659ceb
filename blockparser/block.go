package blockparser

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shurcooL/sanitized_anchor_name"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/frontmatter"
	"github.com/glagolica/bukvar/span"
)

// LinkDef is a reference-style link definition collected during block
// parsing (spec §4.4: "resolved against a link-definition table built
// during block parse").
type LinkDef struct {
	URL   string
	Title string
}

// Result is everything the block pass hands to the inline pass: the tree
// itself plus the side-tables the inline parser needs for link and
// footnote resolution.
type Result struct {
	Document  *ast.Node
	LinkDefs  map[string]LinkDef
	Footnotes map[string]*ast.Node
}

// ctx carries the mutable side-tables threaded through the recursive
// descent.
type ctx struct {
	linkDefs  map[string]LinkDef
	footnotes map[string]*ast.Node
	usedIDs   map[string]bool
}

// Parse runs the block pass over a full source buffer, including
// frontmatter detection. Leaf nodes still hold raw inline text in their
// Literal/Content fields; the inline pass rewrites them in place with
// children.
func Parse(src []byte) *Result {
	fm, bodyOffset := frontmatter.Parse(src)
	body := src[bodyOffset:]
	lines := splitLines(body, bodyOffset)

	c := &ctx{
		linkDefs:  map[string]LinkDef{},
		footnotes: map[string]*ast.Node{},
		usedIDs:   map[string]bool{},
	}

	doc := ast.NewNode(ast.Document, span.Span{Start: 0, End: len(src)})
	doc.Frontmatter = fm
	for _, child := range parseBlocks(lines, c) {
		doc.AppendChild(child)
	}
	if doc.Span.End < len(src) {
		doc.Span.End = len(src)
	}

	return &Result{Document: doc, LinkDefs: c.linkDefs, Footnotes: c.footnotes}
}

// parseBlocks consumes every line in lines, producing sibling block nodes.
// lines is expected to already have any enclosing container prefix (quote
// marker, list indent) stripped.
func parseBlocks(lines []line, c *ctx) []*ast.Node {
	var nodes []*ast.Node
	i := 0
	for i < len(lines) {
		l := lines[i]
		if isBlank(l) {
			i++
			continue
		}
		indent, content := trimIndent(l.text, 0, 4)

		// Indented code block: 4+ spaces, only recognized between blocks
		// (not interrupting a paragraph).
		if indent >= 4 {
			n, next := parseIndentedCodeBlock(lines, i)
			nodes = append(nodes, n)
			i = next
			continue
		}

		switch {
		case tryThematicBreak(content):
			nodes = append(nodes, ast.NewNode(ast.ThematicBreak, span.Span{Start: l.offset, End: l.endOffset()}))
			i++
			continue

		case isFenceOpen(content):
			n, next := parseFencedBlock(lines, i, indent)
			nodes = append(nodes, n)
			i = next
			continue

		case isMathFenceOpen(content):
			n, next := parseMathFence(lines, i, indent)
			nodes = append(nodes, n)
			i = next
			continue

		case looksLikeHTMLBlockOpen(content):
			n, next := parseHTMLBlock(lines, i)
			nodes = append(nodes, n)
			i = next
			continue

		case looksLikeContainerOpen(content):
			n, next := parseContainer(lines, i, c)
			nodes = append(nodes, n)
			i = next
			continue
		}

		if lvl, id, text, ok := tryATXHeading(content); ok {
			h := ast.NewNode(ast.Heading, span.Span{Start: l.offset, End: l.endOffset()})
			h.Level = lvl
			h.ID = assignHeadingID(c, id, text)
			h.Literal = text
			nodes = append(nodes, h)
			i++
			continue
		}

		if delim, _, tail := quoteMarker(content); delim != 0 {
			n, next := parseBlockquote(lines, i, indent, tail, c)
			nodes = append(nodes, n)
			i = next
			continue
		}

		if delim, width, _, ordered, num := listMarker(content); delim != 0 {
			n, next := parseList(lines, i, delim, ordered, num, width, indent, c)
			nodes = append(nodes, n)
			i = next
			continue
		}

		if label, ok := tryFootnoteDefMarker(content); ok {
			n, next := parseFootnoteDef(lines, i, indent, label, c)
			nodes = append(nodes, n)
			i = next
			continue
		}

		if label, url, title, ok := tryLinkDefMarker(content); ok {
			key := strings.ToLower(label)
			if _, exists := c.linkDefs[key]; !exists {
				c.linkDefs[key] = LinkDef{URL: url, Title: title}
			}
			i++
			continue
		}

		if row, ok := parseTableRow(content); ok && i+1 < len(lines) {
			if aligns, ok2 := parseTableDelimiterRow(lines[i+1].text); ok2 {
				n, next := buildTable(lines, i, row, aligns)
				nodes = append(nodes, n)
				i = next
				continue
			}
		}

		// Definition-list detail immediately after a paragraph we just
		// closed: "Term\n: detail".
		if strings.HasPrefix(strings.TrimLeft(string(content), " "), ": ") && len(nodes) > 0 && nodes[len(nodes)-1].Kind == ast.Paragraph {
			term := nodes[len(nodes)-1]
			nodes = nodes[:len(nodes)-1]
			dl := ast.NewNode(ast.DefinitionList, term.Span)
			dt := ast.NewNode(ast.DefinitionTerm, term.Span)
			dt.Literal = term.Literal
			dl.AppendChild(dt)
			for i < len(lines) {
				_, cContent := trimIndent(lines[i].text, 0, 4)
				trimmed := bytes.TrimLeft(cContent, " ")
				if !bytes.HasPrefix(trimmed, []byte(": ")) && !bytes.HasPrefix(trimmed, []byte(":")) {
					break
				}
				detailLines, next := collectIndentedRun(lines, i, 2)
				dd := buildDefinitionDetail(detailLines, c)
				dl.AppendChild(dd)
				i = next
			}
			nodes = append(nodes, dl)
			continue
		}

		// Fall through: paragraph, absorbing contiguous lines that don't
		// open a new block and aren't blank.
		n, next := parseParagraph(lines, i)
		nodes = append(nodes, n)
		i = next
	}
	return nodes
}

func assignHeadingID(c *ctx, explicit, text string) string {
	id := explicit
	if id == "" {
		id = sanitized_anchor_name.Create(text)
	}
	if id == "" {
		return ""
	}
	base := id
	for n := 2; c.usedIDs[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	c.usedIDs[id] = true
	return id
}

func tryThematicBreak(content []byte) bool {
	r, width, tail := ruler(content, '-', '_', '*')
	if r == 0 || len(bytes.TrimSpace(tail)) != 0 {
		return false
	}
	count := 0
	for _, b := range content {
		if b == r {
			count++
		}
	}
	return count >= 3 && width >= 3
}

// tryATXHeading matches "#{1,6} text {#id}?".
func tryATXHeading(content []byte) (level int, id, text string, ok bool) {
	delim, width, tail := delimiter(content, 6, '#')
	if delim == 0 {
		return 0, "", "", false
	}
	text = strings.TrimSpace(string(tail))
	// trim optional closing sequence of '#'
	text = strings.TrimRight(text, "#")
	text = strings.TrimRight(text, " ")
	if idx := strings.LastIndex(text, "{#"); idx >= 0 && strings.HasSuffix(text, "}") {
		id = text[idx+2 : len(text)-1]
		text = strings.TrimSpace(text[:idx])
	}
	return width, id, text, true
}

func isFenceOpen(content []byte) bool {
	f, width, _ := fence(content, 3, '`', '~')
	return f != 0 && width >= 3
}

func isMathFenceOpen(content []byte) bool {
	return bytes.Equal(bytes.TrimRight(content, " \t"), []byte("$$"))
}

// parseFencedBlock consumes a fenced code block starting at lines[i]
// (opening fence) through its matching closing fence or EOF.
func parseFencedBlock(lines []line, i, indent int) (*ast.Node, int) {
	open := lines[i]
	_, openContent := trimIndent(open.text, 0, 4)
	f, width, info := fence(openContent, 3, '`', '~')

	node := ast.NewNode(ast.CodeBlock, span.Span{Start: open.offset, End: open.endOffset()})
	lang, attrs := parseFenceInfo(string(bytes.TrimSpace(info)))
	node.Lang = lang
	node.Highlight = attrs.highlight
	node.PlusDiff = attrs.plusDiff
	node.MinusDiff = attrs.minusDiff
	node.LineNumbers = attrs.lineNumbers

	var content bytes.Buffer
	j := i + 1
	for ; j < len(lines); j++ {
		_, lineContent := trimIndent(lines[j].text, 0, indent)
		if cf, _, rest := fence(bytes.TrimLeft(lineContent, " \t"), width, f); cf == f && len(bytes.TrimSpace(rest)) == 0 {
			j++
			break
		}
		content.Write(lineContent)
		content.WriteByte('\n')
	}
	node.Content = content.String()
	end := open.endOffset()
	if last := j - 1; last >= i && last < len(lines) {
		end = lines[last].endOffset()
	}
	node.Span.End = end
	return node, j
}

// parseIndentedCodeBlock consumes consecutive 4+-space indented lines (and
// any interleaved blank lines) into one CodeBlock.
func parseIndentedCodeBlock(lines []line, i int) (*ast.Node, int) {
	start := lines[i]
	node := ast.NewNode(ast.CodeBlock, span.Span{Start: start.offset, End: start.endOffset()})

	var content bytes.Buffer
	j := i
	lastNonBlank := i
	for j < len(lines) {
		if isBlank(lines[j]) {
			content.WriteByte('\n')
			j++
			continue
		}
		indent, rest := trimIndent(lines[j].text, 0, 4)
		if indent < 4 {
			break
		}
		content.Write(rest)
		content.WriteByte('\n')
		lastNonBlank = j
		j++
	}
	node.Content = content.String()
	node.Span.End = lines[lastNonBlank].endOffset()
	return node, lastNonBlank + 1
}

func isMathFenceClose(content []byte) bool {
	return isMathFenceOpen(content)
}

func parseMathFence(lines []line, i, indent int) (*ast.Node, int) {
	open := lines[i]
	node := ast.NewNode(ast.MathBlock, span.Span{Start: open.offset, End: open.endOffset()})
	var tex bytes.Buffer
	j := i + 1
	for ; j < len(lines); j++ {
		_, content := trimIndent(lines[j].text, 0, indent)
		if isMathFenceClose(content) {
			j++
			break
		}
		tex.Write(content)
		tex.WriteByte('\n')
	}
	node.TeX = strings.TrimRight(tex.String(), "\n")
	if j-1 >= 0 && j-1 < len(lines) {
		node.Span.End = lines[j-1].endOffset()
	}
	return node, j
}

var htmlBlockTags = []string{"<!--", "<script", "<pre", "<style", "<div", "<p", "<table", "<ul", "<ol", "<li", "<h1", "<h2", "<h3", "<section", "<article", "<aside", "<header", "<footer", "<figure"}

func looksLikeHTMLBlockOpen(content []byte) bool {
	lower := bytes.ToLower(bytes.TrimLeft(content, " "))
	if len(lower) == 0 || lower[0] != '<' {
		return false
	}
	if looksLikeContainerOpen(content) {
		return false
	}
	for _, tag := range htmlBlockTags {
		if bytes.HasPrefix(lower, []byte(tag)) {
			return true
		}
	}
	return false
}

// parseHTMLBlock consumes lines verbatim until a blank line or EOF.
func parseHTMLBlock(lines []line, i int) (*ast.Node, int) {
	start := lines[i]
	node := ast.NewNode(ast.HtmlBlock, span.Span{Start: start.offset, End: start.endOffset()})
	var raw bytes.Buffer
	j := i
	for ; j < len(lines) && !isBlank(lines[j]); j++ {
		raw.Write(lines[j].text)
		raw.WriteByte('\n')
	}
	node.Raw = raw.String()
	node.Span.End = lines[j-1].endOffset()
	return node, j
}

// parseBlockquote consumes a run of lines belonging to one block quote,
// following CommonMark's lazy-continuation rule for the plain-paragraph
// case: a non-blank line without its own '>' marker still belongs to the
// quote if the quote's last open block is a Paragraph.
func parseBlockquote(lines []line, i, indent int, firstTail []byte, c *ctx) (*ast.Node, int) {
	start := lines[i]
	node := ast.NewNode(ast.BlockQuote, span.Span{Start: start.offset, End: start.endOffset()})

	var inner []line
	inner = append(inner, line{text: firstTail, raw: firstTail, offset: start.offset + (len(start.text) - len(firstTail))})

	lastWasParagraphLike := true
	j := i + 1
	for j < len(lines) {
		l := lines[j]
		if isBlank(l) {
			// A blank line ends the quote. A line holding only '>' is not
			// blank; it is handled below and ends lazy continuation.
			if delim, _, tail := quoteMarker(bytes.TrimLeft(l.text, " ")); delim != 0 {
				inner = append(inner, line{text: tail, raw: tail, offset: l.offset})
				lastWasParagraphLike = false
				j++
				continue
			}
			break
		}
		_, content := trimIndent(l.text, 0, 3)
		if delim, _, tail := quoteMarker(content); delim != 0 {
			inner = append(inner, line{text: tail, raw: tail, offset: l.offset + (len(l.text) - len(tail))})
			lastWasParagraphLike = len(bytes.TrimSpace(tail)) > 0
			j++
			continue
		}
		if lastWasParagraphLike && !opensAnyBlock(content) {
			inner = append(inner, l)
			j++
			continue
		}
		break
	}

	// Alert marker: first inner line is exactly "[!KIND]".
	if len(inner) > 0 {
		trimmed := strings.TrimSpace(string(inner[0].text))
		if strings.HasPrefix(trimmed, "[!") && strings.HasSuffix(trimmed, "]") {
			kind := strings.ToUpper(trimmed[2 : len(trimmed)-1])
			switch kind {
			case "NOTE", "TIP", "IMPORTANT", "WARNING", "CAUTION":
				node.IsAlert = true
				node.AlertKind = kind
				inner = inner[1:]
			}
		}
	}

	for _, child := range parseBlocks(inner, c) {
		node.AppendChild(child)
	}
	node.Span.End = lines[j-1].endOffset()
	return node, j
}

// opensAnyBlock is the interruption test used by paragraph/blockquote lazy
// continuation: a block quote or paragraph is interrupted by any line that
// would itself open a thematic break, fence, HTML block, container, ATX
// heading, new blockquote, list item, footnote definition, or link
// reference definition.
func opensAnyBlock(content []byte) bool {
	indent, trimmed := trimIndent(content, 0, 4)
	if indent >= 4 {
		return false
	}
	if tryThematicBreak(trimmed) || isFenceOpen(trimmed) || looksLikeHTMLBlockOpen(trimmed) || looksLikeContainerOpen(trimmed) {
		return true
	}
	if _, _, _, ok := tryATXHeading(trimmed); ok {
		return true
	}
	if delim, _, _ := quoteMarker(trimmed); delim != 0 {
		return true
	}
	if delim, _, _, _, _ := listMarker(trimmed); delim != 0 {
		return true
	}
	if _, ok := tryFootnoteDefMarker(trimmed); ok {
		return true
	}
	if _, _, _, ok := tryLinkDefMarker(trimmed); ok {
		return true
	}
	return false
}

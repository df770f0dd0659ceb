package docext

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	tstypescript "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// jsdocRecognized lists the tags whose "@name [{type}] [ident] description"
// slots parseTagGroup fills in (spec §4.5's JSDoc/JavaDoc tag grammar);
// any other tag keeps its whole remainder as description.
var jsdocRecognized = map[string]bool{
	"param": true, "returns": true, "return": true, "throws": true,
	"deprecated": true, "example": true, "see": true,
}

// ExtractJS locates `/** ... */` comments in src using the language grammar
// for lang (JavaScript, TypeScript, or Java) and lowers each into a
// Document fragment.
func ExtractJS(lang Language, src []byte) ([]*ast.Node, error) {
	var sitterLang *sitter.Language
	switch lang {
	case JavaScript:
		sitterLang = javascript.GetLanguage()
	case TypeScript:
		sitterLang = tstypescript.GetLanguage()
	case Java:
		sitterLang = java.GetLanguage()
	default:
		return nil, &ExtractError{Language: lang, Msg: "unsupported language for JSDoc-style extraction"}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(sitterLang)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, &ExtractError{Language: lang, Msg: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &ExtractError{Language: lang, Msg: "empty syntax tree"}
	}

	var comments []comment
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if strings.Contains(n.Type(), "comment") {
			raw := string(src[n.StartByte():n.EndByte()])
			if strings.HasPrefix(raw, "/**") {
				comments = append(comments, comment{
					text: raw,
					span: span.Span{Start: int(n.StartByte()), End: int(n.EndByte())},
				})
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	nodes := make([]*ast.Node, 0, len(comments))
	for _, c := range comments {
		description, tags := parseJSDocBody(c.text)
		nodes = append(nodes, buildFragment(description, tags, c.span))
	}
	return nodes, nil
}

// parseJSDocBody strips the comment delimiters and per-line "*" prefix,
// then splits the remaining text into a leading description block and a
// sequence of @tag lines.
func parseJSDocBody(raw string) (description string, tags []Tag) {
	body := strings.TrimPrefix(raw, "/**")
	body = strings.TrimSuffix(body, "*/")

	var lines []string
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimRight(ln, " \t\r")
		trimmed := strings.TrimLeft(ln, " \t")
		trimmed = strings.TrimPrefix(trimmed, "*")
		trimmed = strings.TrimPrefix(trimmed, " ")
		lines = append(lines, trimmed)
	}
	// Drop leading/trailing blank lines left over from the comment's own
	// opening/closing delimiter lines.
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	var descLines []string
	var tagLines []string
	inTags := false
	for _, ln := range lines {
		if !inTags && strings.HasPrefix(strings.TrimSpace(ln), "@") {
			inTags = true
		}
		if inTags {
			tagLines = append(tagLines, ln)
		} else {
			descLines = append(descLines, ln)
		}
	}
	description = strings.Join(descLines, "\n")

	tags = groupTagLines(tagLines)
	return description, tags
}

// groupTagLines joins continuation lines (lines not starting a new @tag)
// onto the preceding tag's description, then parses each group.
func groupTagLines(lines []string) []Tag {
	var groups []string
	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), "@") || len(groups) == 0 {
			groups = append(groups, ln)
			continue
		}
		groups[len(groups)-1] += "\n" + ln
	}

	var tags []Tag
	for _, g := range groups {
		tags = append(tags, parseTagGroup(g))
	}
	return tags
}

// parseTagGroup parses "@name [{type}] [identifier] [description]" from a
// single (possibly multi-line) tag group.
func parseTagGroup(g string) Tag {
	g = strings.TrimSpace(g)
	g = strings.TrimPrefix(g, "@")
	fields := strings.SplitN(g, " ", 2)
	name := fields[0]
	rest := ""
	if len(fields) > 1 {
		rest = fields[1]
	}

	tag := Tag{Name: name}
	if !jsdocRecognized[name] {
		tag.Description = rest
		return tag
	}

	rest = strings.TrimLeft(rest, " \t")
	if strings.HasPrefix(rest, "{") {
		end := strings.IndexByte(rest, '}')
		if end >= 0 {
			tag.Type = rest[1:end]
			rest = strings.TrimLeft(rest[end+1:], " \t")
		}
	}
	if name == "param" || name == "throws" {
		rest = strings.TrimLeft(rest, " \t")
		fields2 := strings.SplitN(rest, " ", 2)
		if fields2[0] != "" {
			tag.Ident = strings.TrimPrefix(fields2[0], "-")
			tag.Ident = strings.TrimSpace(tag.Ident)
			if len(fields2) > 1 {
				rest = fields2[1]
			} else {
				rest = ""
			}
		}
	}
	rest = strings.TrimLeft(rest, " \t")
	rest = strings.TrimPrefix(rest, "-")
	rest = strings.TrimSpace(rest)
	tag.Description = rest
	return tag
}

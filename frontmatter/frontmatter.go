// Package frontmatter detects and decodes the optional YAML or TOML
// metadata block at the very start of a document (spec §4.2). Detection is
// hand-rolled (BOM stripping, delimiter-on-its-own-line scanning); decoding
// of the fenced block delegates to real YAML/TOML libraries rather than a
// hand-rolled subset parser.
package frontmatter

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/glagolica/bukvar/ast"
)

const (
	yamlDelim = "---"
	tomlDelim = "+++"
)

// Parse looks for a frontmatter fence at the very start of src. It returns
// the parsed Frontmatter (nil if none was found) and the byte offset at
// which the document body begins. If an opening fence is present but never
// closed, Parse reverts to offset 0 and a nil Frontmatter, leaving the
// unterminated fence to be parsed as ordinary document content (spec §4.2).
func Parse(src []byte) (*ast.Frontmatter, int) {
	body := src
	skipped := 0
	if bom := []byte("﻿"); len(body) >= len(bom) && string(body[:len(bom)]) == string(bom) {
		body = body[len(bom):]
		skipped = len(bom)
	}

	format, delim := "", ""
	switch {
	case hasFence(body, yamlDelim):
		format, delim = "yaml", yamlDelim
	case hasFence(body, tomlDelim):
		format, delim = "toml", tomlDelim
	default:
		return nil, 0
	}

	firstNL := strings.IndexByte(string(body), '\n')
	if firstNL < 0 {
		return nil, 0
	}
	rest := body[firstNL+1:]

	closeRel := findClosingFence(rest, delim)
	if closeRel < 0 {
		return nil, 0
	}

	block := rest[:closeRel]
	closeLineEnd := closeRel + len(delim)
	// Consume the rest of the closing delimiter's line, including its
	// newline, so the body starts cleanly on the next line.
	if nl := strings.IndexByte(string(rest[closeLineEnd:]), '\n'); nl >= 0 {
		closeLineEnd += nl + 1
	} else {
		closeLineEnd = len(rest)
	}

	fm, err := decode(format, block)
	if err != nil {
		return nil, 0
	}

	bodyOffset := skipped + firstNL + 1 + closeLineEnd
	return fm, bodyOffset
}

func hasFence(body []byte, delim string) bool {
	s := string(body)
	return strings.HasPrefix(s, delim+"\n") || strings.HasPrefix(s, delim+"\r\n") || s == delim
}

// findClosingFence scans rest line by line for one consisting of exactly
// delim (plus optional trailing whitespace), returning its byte offset
// within rest, or -1 if none exists.
func findClosingFence(rest []byte, delim string) int {
	s := string(rest)
	offset := 0
	for {
		nl := strings.IndexByte(s, '\n')
		var line string
		if nl >= 0 {
			line = s[:nl]
		} else {
			line = s
		}
		if strings.TrimRight(line, "\r") == delim {
			return offset
		}
		if nl < 0 {
			return -1
		}
		offset += nl + 1
		s = s[nl+1:]
	}
}

// decode parses block as the named format into an ordered key/value list.
// Only top-level scalar values are kept as typed strings; any nested map,
// list, or other composite value is stored as raw re-serialized text under
// its key (spec §4.2: "anything more complex is stored as a raw string").
func decode(format string, block []byte) (*ast.Frontmatter, error) {
	var raw map[string]interface{}
	var keys []string
	var err error

	switch format {
	case "yaml":
		err = yaml.Unmarshal(block, &raw)
		if err == nil {
			keys, err = orderedYAMLKeys(block)
		}
	case "toml":
		var meta toml.MetaData
		meta, err = toml.Decode(string(block), &raw)
		if err == nil {
			for _, k := range meta.Keys() {
				if len(k) == 1 {
					keys = append(keys, k[0])
				}
			}
		}
	}
	if err != nil {
		return nil, err
	}

	fm := &ast.Frontmatter{Format: format}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		fm.Pairs = append(fm.Pairs, ast.KV{Key: k, Value: scalarize(raw[k])})
	}
	return fm, nil
}

// orderedYAMLKeys re-walks block with a generic node decode to recover
// top-level key order, since decoding straight into a Go map loses it.
func orderedYAMLKeys(block []byte) ([]string, error) {
	var ordered yaml.MapSlice
	if err := yaml.Unmarshal(block, &ordered); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(ordered))
	for _, item := range ordered {
		if k, ok := item.Key.(string); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// scalarize renders v as its frontmatter-pair text: scalars print as their
// natural string form, anything composite is re-serialized as a raw YAML
// flow value.
func scalarize(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool, int, int64, float64:
		return toString(t)
	default:
		b, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}
}

func toString(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

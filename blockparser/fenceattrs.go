package blockparser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/glagolica/bukvar/ast"
)

type fenceAttrs struct {
	highlight   []ast.Range
	plusDiff    []ast.Range
	minusDiff   []ast.Range
	lineNumbers bool
}

// parseFenceInfo parses a fenced code block's info string: an optional
// leading language bareword, then whitespace-separated key="value" or
// bareword-flag attributes (spec §4.3).
func parseFenceInfo(info string) (lang string, attrs fenceAttrs) {
	fields := splitTagFields(info)
	for i, f := range fields {
		eq := strings.IndexByte(f, '=')
		if eq < 0 {
			if i == 0 {
				lang = f
				continue
			}
			if strings.EqualFold(f, "linenumbers") {
				attrs.lineNumbers = true
			}
			continue
		}
		key := strings.ToLower(f[:eq])
		val := strings.Trim(f[eq+1:], `"'`)
		switch key {
		case "highlight":
			attrs.highlight = parseRangeList(val)
		case "plusdiff":
			attrs.plusDiff = parseRangeList(val)
		case "minusdiff":
			attrs.minusDiff = parseRangeList(val)
		}
	}
	return lang, attrs
}

// parseRangeList parses "1, 3-5, 7" into sorted, non-overlapping inclusive
// line-number ranges.
func parseRangeList(s string) []ast.Range {
	var ranges []ast.Range
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if dash := strings.IndexByte(part, '-'); dash > 0 {
			lo, err1 := strconv.Atoi(strings.TrimSpace(part[:dash]))
			hi, err2 := strconv.Atoi(strings.TrimSpace(part[dash+1:]))
			if err1 == nil && err2 == nil && lo <= hi {
				ranges = append(ranges, ast.Range{Start: lo, End: hi})
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			ranges = append(ranges, ast.Range{Start: n, End: n})
		}
	}
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

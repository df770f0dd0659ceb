package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseYAMLFrontmatter(t *testing.T) {
	src := []byte("---\ntitle: Hello\ncount: 3\n---\nbody text\n")

	fm, offset := Parse(src)
	require.NotNil(t, fm)
	require.Equal(t, "yaml", fm.Format)

	title, ok := fm.Get("title")
	require.True(t, ok)
	require.Equal(t, "Hello", title)

	count, ok := fm.Get("count")
	require.True(t, ok)
	require.Equal(t, "3", count)

	require.Equal(t, "body text\n", string(src[offset:]))
}

func TestParseTOMLFrontmatter(t *testing.T) {
	src := []byte("+++\ntitle = \"Hi\"\n+++\nbody\n")

	fm, offset := Parse(src)
	require.NotNil(t, fm)
	require.Equal(t, "toml", fm.Format)

	title, ok := fm.Get("title")
	require.True(t, ok)
	require.Equal(t, "Hi", title)
	require.Equal(t, "body\n", string(src[offset:]))
}

func TestParseNoFrontmatter(t *testing.T) {
	src := []byte("# Just a heading\n")
	fm, offset := Parse(src)
	require.Nil(t, fm)
	require.Equal(t, 0, offset)
}

func TestParseUnterminatedFenceReverts(t *testing.T) {
	src := []byte("---\ntitle: Hello\nno closing fence here\n")
	fm, offset := Parse(src)
	require.Nil(t, fm)
	require.Equal(t, 0, offset)
}

func TestParseNonScalarStoredRaw(t *testing.T) {
	src := []byte("---\ntags:\n  - a\n  - b\n---\nbody\n")
	fm, _ := Parse(src)
	require.NotNil(t, fm)

	tags, ok := fm.Get("tags")
	require.True(t, ok)
	require.Contains(t, tags, "a")
	require.Contains(t, tags, "b")
}

func TestParseBOMPrefixed(t *testing.T) {
	src := append([]byte("﻿"), []byte("---\ntitle: Hi\n---\nbody\n")...)
	fm, offset := Parse(src)
	require.NotNil(t, fm)
	title, _ := fm.Get("title")
	require.Equal(t, "Hi", title)
	require.Equal(t, "body\n", string(src[offset:]))
}

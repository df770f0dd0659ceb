package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternDeduplicates(t *testing.T) {
	tbl := NewTable()

	a := tbl.Intern("hello")
	b := tbl.Intern("world")
	c := tbl.Intern("hello")

	require.Equal(t, a, c)
	require.NotEqual(t, a, b)
	require.Equal(t, 2, tbl.Len())

	s, ok := tbl.Lookup(a)
	require.True(t, ok)
	require.Equal(t, "hello", s)
}

func TestLookupInvalidID(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Lookup(ID(0))
	require.False(t, ok)
	_, ok = tbl.Lookup(ID(99))
	require.False(t, ok)
}

func TestFromStringsRoundTrip(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("foo")
	b := tbl.Intern("bar")

	rebuilt := FromStrings(tbl.Strings())
	s, ok := rebuilt.Lookup(a)
	require.True(t, ok)
	require.Equal(t, "foo", s)
	s, ok = rebuilt.Lookup(b)
	require.True(t, ok)
	require.Equal(t, "bar", s)
}

package docext

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glagolica/bukvar/ast"
)

func TestJSDocSumExample(t *testing.T) {
	src := []byte("/** Sum.\n * @param {number} a - First.\n * @returns {number} sum\n */\nfunction sum(a) { return a; }\n")
	nodes, err := ExtractJS(JavaScript, src)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	frag := nodes[0]
	require.Equal(t, ast.Document, frag.Kind)
	require.Len(t, frag.Children, 3)

	require.Equal(t, ast.Paragraph, frag.Children[0].Kind)
	require.Equal(t, "Sum.", frag.Children[0].Literal)

	param := frag.Children[1]
	require.Equal(t, ast.DocTag, param.Kind)
	require.Equal(t, "param", param.TagName)
	require.Equal(t, "number", param.TagType)
	require.Equal(t, "a", param.TagIdent)
	require.Equal(t, "First.", param.Children[0].Literal)

	ret := frag.Children[2]
	require.Equal(t, "returns", ret.TagName)
	require.Equal(t, "number", ret.TagType)
	require.Equal(t, "sum", ret.Children[0].Literal)
}

func TestJSDocUnknownTagKeepsFullRemainder(t *testing.T) {
	src := []byte("/**\n * Does a thing.\n * @weird some stuff here\n */\nfunction f() {}\n")
	nodes, err := ExtractJS(JavaScript, src)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	tag := nodes[0].Children[1]
	require.Equal(t, "weird", tag.TagName)
	require.Equal(t, "some stuff here", tag.Children[0].Literal)
}

func TestJavaDocDeprecated(t *testing.T) {
	src := []byte("/**\n * Old API.\n * @deprecated use newThing() instead\n */\nclass Foo {}\n")
	nodes, err := ExtractJS(Java, src)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, "deprecated", nodes[0].Children[1].TagName)
}

func TestPyDocGoogleStyle(t *testing.T) {
	src := []byte(`def greet(name):
    """Say hello.

    Args:
        name (str): Who to greet.

    Returns:
        str: The greeting.
    """
    return "hi " + name
`)
	nodes, err := ExtractPython(src)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	frag := nodes[0]
	require.Equal(t, "Say hello.", frag.Children[0].Literal)

	var param, ret *ast.Node
	for _, c := range frag.Children[1:] {
		switch c.TagName {
		case "param":
			param = c
		case "returns":
			ret = c
		}
	}
	require.NotNil(t, param)
	require.Equal(t, "name", param.TagIdent)
	require.Equal(t, "str", param.TagType)
	require.NotNil(t, ret)
	require.Equal(t, "str", ret.TagType)
}

func TestPyDocModuleDocstring(t *testing.T) {
	src := []byte("\"\"\"Module summary.\"\"\"\n\nimport os\n")
	nodes, err := ExtractPython(src)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, "Module summary.", nodes[0].Children[0].Literal)
}

func TestPyDocSphinxStyle(t *testing.T) {
	src := []byte(`def add(a, b):
    """Add two numbers.

    :param a: first addend
    :param b: second addend
    :returns: the sum
    """
    return a + b
`)
	nodes, err := ExtractPython(src)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	var names []string
	for _, c := range nodes[0].Children[1:] {
		names = append(names, c.TagName)
	}
	require.Contains(t, names, "param")
	require.Contains(t, names, "returns")
}

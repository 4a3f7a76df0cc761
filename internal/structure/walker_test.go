package structure

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

type textPair struct {
	Header string
	Body   string
	Depth  int
}

type textSmall struct {
	Text  string
	Depth int
}

func texts(src string, c Collection) ([]textSmall, []textPair) {
	var smalls []textSmall
	for _, s := range c.Smalls {
		smalls = append(smalls, textSmall{Text: src[s.Start:s.End], Depth: s.Depth})
	}
	var pairs []textPair
	for _, p := range c.Compounds {
		pairs = append(pairs, textPair{
			Header: src[p.Header.Start:p.Header.End],
			Body:   strings.TrimRight(src[p.Body.Start:p.Body.End], "\n"),
			Depth:  p.Depth,
		})
	}
	return smalls, pairs
}

func TestCollect(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		smalls []textSmall
		pairs  []textPair
	}{
		{
			name:   "if with body on next line",
			src:    "if True:\n    pass\n",
			smalls: []textSmall{{Text: "pass", Depth: 1}},
			pairs:  []textPair{{Header: "if True:", Body: "    pass", Depth: 0}},
		},
		{
			name:   "two small statements",
			src:    "a = 1\nb = 2\n",
			smalls: []textSmall{{Text: "a = 1", Depth: 0}, {Text: "b = 2", Depth: 0}},
		},
		{
			name: "clauses become separate pairs",
			src:  "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n",
			smalls: []textSmall{
				{Text: "x = 1", Depth: 1},
				{Text: "x = 2", Depth: 1},
				{Text: "x = 3", Depth: 1},
			},
			pairs: []textPair{
				{Header: "if a:", Body: "    x = 1", Depth: 0},
				{Header: "elif b:", Body: "    x = 2", Depth: 0},
				{Header: "else:", Body: "    x = 3", Depth: 0},
			},
		},
		{
			name:   "nested compounds report inner first",
			src:    "def f():\n    for i in r:\n        pass\n",
			smalls: []textSmall{{Text: "pass", Depth: 2}},
			pairs: []textPair{
				{Header: "for i in r:", Body: "        pass", Depth: 1},
				{Header: "def f():", Body: "    for i in r:\n        pass", Depth: 0},
			},
		},
		{
			name:   "body on the header line is not widened",
			src:    "while x: pass\n",
			smalls: []textSmall{{Text: "pass", Depth: 1}},
			pairs:  []textPair{{Header: "while x:", Body: "pass", Depth: 0}},
		},
		{
			name: "try with handlers",
			src:  "try:\n    f()\nexcept E:\n    g()\nfinally:\n    h()\n",
			smalls: []textSmall{
				{Text: "f()", Depth: 1},
				{Text: "g()", Depth: 1},
				{Text: "h()", Depth: 1},
			},
			pairs: []textPair{
				{Header: "try:", Body: "    f()", Depth: 0},
				{Header: "except E:", Body: "    g()", Depth: 0},
				{Header: "finally:", Body: "    h()", Depth: 0},
			},
		},
		{
			name:   "match block starts on the header line",
			src:    "match x:\n    case 1:\n        a()\n",
			smalls: []textSmall{{Text: "a()", Depth: 2}},
			pairs: []textPair{
				{Header: "case 1:", Body: "        a()", Depth: 1},
				{Header: "match x:", Body: "    case 1:\n        a()", Depth: 0},
			},
		},
		{
			name: "empty document",
			src:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.src)
			smalls, pairs := texts(tt.src, Collect(tree, []byte(tt.src), &Python))

			if diff := cmp.Diff(tt.smalls, smalls); diff != "" {
				t.Errorf("small statements mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.pairs, pairs); diff != "" {
				t.Errorf("compound pairs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalkIsRepeatable(t *testing.T) {
	src := "class A:\n    def m(self):\n        return 1\n\nx = A()\n"
	tree := parse(t, src)

	first := Collect(tree, []byte(src), &Python)
	second := Collect(tree, []byte(src), &Python)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("walks differ (-first +second):\n%s", diff)
	}
	assert.Len(t, first.Compounds, 2)
	assert.Len(t, first.Smalls, 2)
}

func TestWalkNilTree(t *testing.T) {
	called := false
	Walk(nil, nil, &Python,
		func(int, int, int) { called = true },
		func(Node, Node, int) { called = true },
	)
	assert.False(t, called)
}

func TestInnermost(t *testing.T) {
	src := "if True:\n    x = 1\ny = 2\n"
	c := Collect(parse(t, src), []byte(src), &Python)

	start, end, ok := c.Innermost(strings.Index(src, "x"))
	require.True(t, ok)
	assert.Equal(t, "x = 1", src[start:end])

	start, _, ok = c.Innermost(1)
	require.True(t, ok)
	assert.Equal(t, 0, start)

	_, _, ok = c.Innermost(len(src) + 10)
	assert.False(t, ok)
}

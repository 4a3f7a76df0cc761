// Package structure walks a syntax tree and reports the statements that can
// be dragged: small statements and (header, body) pairs of compound ones.
package structure

import (
	"bytes"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node is a span of source bytes. Kind is the tree-sitter node type of the
// span's first node.
type Node struct {
	Start int
	End   int
	Kind  string
}

// SmallFunc receives a small statement and its nesting depth.
type SmallFunc func(start, end, depth int)

// CompoundFunc receives one header/body pair of a compound statement. depth
// is the depth of the header; the body sits one level deeper.
type CompoundFunc func(header, body Node, depth int)

type frame struct {
	tracks   bool
	children []Node
}

type walker struct {
	g          *Grammar
	src        []byte
	depth      int
	onSmall    SmallFunc
	onCompound CompoundFunc
}

// Walk visits tree depth first. Small statements are reported when they are
// left, so inner statements come before the statements that contain them.
// Compound statements are reported once per header/body run, also on leave.
// Headers span from the run's first child to the end of its last non-body
// child. A body that starts on its own line is widened to the line start.
// A nil tree reports nothing.
func Walk(tree *sitter.Tree, src []byte, g *Grammar, onSmall SmallFunc, onCompound CompoundFunc) {
	if tree == nil || g == nil {
		return
	}
	root := tree.RootNode()
	if root == nil || root.IsNull() {
		return
	}
	if onSmall == nil {
		onSmall = func(int, int, int) {}
	}
	if onCompound == nil {
		onCompound = func(Node, Node, int) {}
	}
	w := &walker{g: g, src: src, onSmall: onSmall, onCompound: onCompound}
	w.visit(root, nil)
}

func (w *walker) visit(n *sitter.Node, parent *frame) {
	typ := n.Type()
	isBody := w.g.Body[typ]
	isClause := w.g.Clause[typ]
	isCompound := w.g.Compound[typ]

	f := &frame{tracks: isCompound || isClause}
	if isBody {
		w.depth++
	}

	cursor := sitter.NewTreeCursor(n)
	if cursor.GoToFirstChild() {
		for {
			w.visit(cursor.CurrentNode(), f)
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	cursor.Close()

	if isBody {
		w.depth--
	}

	start, end := int(n.StartByte()), int(n.EndByte())
	foldIntoParent := isClause && parent != nil && parent.tracks

	if isCompound || (isClause && !foldIntoParent) {
		w.emitRuns(f.children)
	}
	if w.g.Small[typ] {
		w.onSmall(start, end, w.depth)
	}

	if parent == nil || !parent.tracks || w.g.Ignore[typ] {
		return
	}
	if foldIntoParent {
		parent.children = append(parent.children, f.children...)
		return
	}
	parent.children = append(parent.children, Node{Start: start, End: end, Kind: typ})
}

// emitRuns reports every "non-body children then a body" run.
func (w *walker) emitRuns(children []Node) {
	runStart := 0
	for i, c := range children {
		if !w.g.Body[c.Kind] {
			continue
		}
		if i > runStart {
			header := Node{
				Start: children[runStart].Start,
				End:   children[i-1].End,
				Kind:  children[runStart].Kind,
			}
			w.onCompound(header, w.widenBody(c), w.depth)
		}
		runStart = i + 1
	}
}

// widenBody moves the body start back over the indentation of its first line.
// A body that begins before the header's line break, as a match block does,
// first skips ahead to its first statement.
func (w *walker) widenBody(body Node) Node {
	if body.Start > len(w.src) {
		return body
	}
	lead := w.src[body.Start:min(body.End, len(w.src))]
	skipped := len(lead) - len(bytes.TrimLeft(lead, " \t\r\n"))
	if bytes.IndexByte(lead[:skipped], '\n') >= 0 {
		body.Start += skipped
	}
	lineStart := bytes.LastIndexByte(w.src[:body.Start], '\n') + 1
	if len(bytes.TrimSpace(w.src[lineStart:body.Start])) == 0 {
		body.Start = lineStart
	}
	return body
}

// Small is one reported small statement.
type Small struct {
	Start int
	End   int
	Depth int
}

// Compound is one reported header/body pair.
type Compound struct {
	Header Node
	Body   Node
	Depth  int
}

// Collection holds the emissions of one walk in report order.
type Collection struct {
	Smalls    []Small
	Compounds []Compound
}

// Collect walks tree and gathers every emission.
func Collect(tree *sitter.Tree, src []byte, g *Grammar) Collection {
	var c Collection
	Walk(tree, src, g,
		func(start, end, depth int) {
			c.Smalls = append(c.Smalls, Small{Start: start, End: end, Depth: depth})
		},
		func(header, body Node, depth int) {
			c.Compounds = append(c.Compounds, Compound{Header: header, Body: body, Depth: depth})
		},
	)
	return c
}

// Innermost returns the smallest statement containing pos: a compound
// statement's whole span (header through body) or a small statement.
func (c Collection) Innermost(pos int) (start, end int, ok bool) {
	consider := func(s, e int) {
		if pos < s || pos > e {
			return
		}
		if !ok || e-s < end-start {
			start, end, ok = s, e, true
		}
	}
	for _, s := range c.Smalls {
		consider(s.Start, s.End)
	}
	for _, cp := range c.Compounds {
		consider(cp.Header.Start, cp.Body.End)
	}
	return start, end, ok
}

package view

import "sort"

// Element is a rectangle drawn on a layer. X is a screen column and Y a
// document row.
type Element struct {
	X, Y, W, H int
	Class      string // Theme style name
	Active     bool
	Glyph      rune // Drawn in every cell; 0 keeps the text and only restyles it

	// Draggable elements take part in hit testing.
	Draggable   bool
	OnDragStart func()
	OnDragEnd   func()
}

// Contains reports whether the cell at column x, document row y is inside e.
func (e Element) Contains(x, y int) bool {
	return x >= e.X && x < e.X+e.W && y >= e.Y && y < e.Y+e.H
}

// Layer is a set of elements drawn together. Layers with a negative Z are
// drawn under the text, the rest over it.
type Layer struct {
	Name     string
	Z        int
	height   int
	elements []Element
}

// SetHeight sizes the layer, usually to the content height.
func (l *Layer) SetHeight(rows int) { l.height = rows }

// Height returns the layer height in rows.
func (l *Layer) Height() int { return l.height }

// SetElements replaces the layer's contents.
func (l *Layer) SetElements(els []Element) { l.elements = els }

// Elements returns the layer's contents in draw order.
func (l *Layer) Elements() []Element { return l.elements }

// Clear removes every element.
func (l *Layer) Clear() { l.elements = nil }

// AddLayer creates a layer and adds it to the view.
func (v *View) AddLayer(name string, z int) *Layer {
	l := &Layer{Name: name, Z: z, height: v.layout.ContentHeight()}
	v.layers = append(v.layers, l)
	sort.SliceStable(v.layers, func(i, j int) bool { return v.layers[i].Z < v.layers[j].Z })
	return l
}

// RemoveLayer detaches l from the view.
func (v *View) RemoveLayer(l *Layer) {
	for i, got := range v.layers {
		if got == l {
			v.layers = append(v.layers[:i:i], v.layers[i+1:]...)
			return
		}
	}
}

// Layers returns the layers in draw order.
func (v *View) Layers() []*Layer {
	return v.layers
}

// HitTest returns the topmost draggable element under screen cell (x, y).
func (v *View) HitTest(x, y int) (Element, bool) {
	row := y + v.scrollTop
	for i := len(v.layers) - 1; i >= 0; i-- {
		els := v.layers[i].elements
		for j := len(els) - 1; j >= 0; j-- {
			if els[j].Draggable && els[j].Contains(x, row) {
				return els[j], true
			}
		}
	}
	return Element{}, false
}

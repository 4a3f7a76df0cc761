package core

// Selection is a single cursor range in byte offsets. Head is where the
// cursor is drawn; Anchor equals Head for a plain cursor.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns a collapsed selection at pos.
func Cursor(pos int) *Selection {
	return &Selection{Anchor: pos, Head: pos}
}

// Empty reports whether the selection is a bare cursor.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

// From is the smaller end of the selection.
func (s Selection) From() int {
	return min(s.Anchor, s.Head)
}

// To is the larger end of the selection.
func (s Selection) To() int {
	return max(s.Anchor, s.Head)
}

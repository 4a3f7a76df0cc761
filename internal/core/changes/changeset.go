// Package changes describes document edits as position-mappable change sets.
package changes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrOverlappingChanges = errors.New("overlapping changes")
	ErrOutOfRange         = errors.New("change out of range")
	ErrLengthMismatch     = errors.New("change set length does not match document")
)

// Spec is a single replacement of [From, To) by Insert, in old-document offsets.
type Spec struct {
	From   int
	To     int
	Insert string
}

// Section covers Len bytes of the old document. Kept sections copy those
// bytes unchanged; other sections replace them with Ins.
type Section struct {
	Len  int
	Ins  string
	Kept bool
}

// ChangeSet maps a document of length LenBefore to one of length LenAfter.
// The zero value is an empty change set over an empty document.
type ChangeSet struct {
	sections []Section
}

// Empty returns a change set that keeps a document of length docLen unchanged.
func Empty(docLen int) ChangeSet {
	var b builder
	b.keep(docLen)
	return b.done()
}

// Of builds a change set from specs against a document of length docLen.
// Specs may be given in any order but must not overlap. Two pure inserts at
// the same offset are kept in the order given.
func Of(docLen int, specs ...Spec) (ChangeSet, error) {
	sorted := make([]Spec, len(specs))
	copy(sorted, specs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	var b builder
	pos := 0
	for _, s := range sorted {
		if s.From > s.To {
			s.From, s.To = s.To, s.From
		}
		if s.From < 0 || s.To > docLen {
			return ChangeSet{}, fmt.Errorf("change [%d,%d) in document of length %d: %w", s.From, s.To, docLen, ErrOutOfRange)
		}
		if s.From < pos {
			return ChangeSet{}, fmt.Errorf("change [%d,%d) starts before %d: %w", s.From, s.To, pos, ErrOverlappingChanges)
		}
		b.keep(s.From - pos)
		b.replace(s.To-s.From, s.Insert)
		pos = s.To
	}
	b.keep(docLen - pos)
	return b.done(), nil
}

// IsZero reports whether c is the zero value, which stands for "no changes"
// against whatever document it is dispatched to.
func (c ChangeSet) IsZero() bool {
	return len(c.sections) == 0
}

// Sections returns a copy of the underlying sections.
func (c ChangeSet) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// LenBefore is the length of the document the change set applies to.
func (c ChangeSet) LenBefore() int {
	n := 0
	for _, s := range c.sections {
		n += s.Len
	}
	return n
}

// LenAfter is the length of the document after applying the change set.
func (c ChangeSet) LenAfter() int {
	n := 0
	for _, s := range c.sections {
		if s.Kept {
			n += s.Len
		} else {
			n += len(s.Ins)
		}
	}
	return n
}

// IsEmpty reports whether the change set leaves every document unchanged.
func (c ChangeSet) IsEmpty() bool {
	for _, s := range c.sections {
		if !s.Kept {
			return false
		}
	}
	return true
}

// Iter calls fn for every changed range, in document order. fromA/toA are
// old-document offsets, fromB/toB new-document offsets.
func (c ChangeSet) Iter(fn func(fromA, toA, fromB, toB int, inserted string)) {
	posA, posB := 0, 0
	for _, s := range c.sections {
		if s.Kept {
			posA += s.Len
			posB += s.Len
			continue
		}
		fn(posA, posA+s.Len, posB, posB+len(s.Ins), s.Ins)
		posA += s.Len
		posB += len(s.Ins)
	}
}

// Specs returns the changed ranges as specs against the old document.
func (c ChangeSet) Specs() []Spec {
	var out []Spec
	c.Iter(func(fromA, toA, _, _ int, inserted string) {
		out = append(out, Spec{From: fromA, To: toA, Insert: inserted})
	})
	return out
}

// Apply returns doc with the change set applied.
func (c ChangeSet) Apply(doc string) (string, error) {
	if len(doc) != c.LenBefore() {
		return "", fmt.Errorf("apply to document of length %d, want %d: %w", len(doc), c.LenBefore(), ErrLengthMismatch)
	}
	var sb strings.Builder
	sb.Grow(c.LenAfter())
	pos := 0
	for _, s := range c.sections {
		if s.Kept {
			sb.WriteString(doc[pos : pos+s.Len])
		} else {
			sb.WriteString(s.Ins)
		}
		pos += s.Len
	}
	return sb.String(), nil
}

// Invert returns the change set that undoes c. doc must be the document c
// was built against.
func (c ChangeSet) Invert(doc string) (ChangeSet, error) {
	if len(doc) != c.LenBefore() {
		return ChangeSet{}, fmt.Errorf("invert against document of length %d, want %d: %w", len(doc), c.LenBefore(), ErrLengthMismatch)
	}
	var b builder
	pos := 0
	for _, s := range c.sections {
		if s.Kept {
			b.keep(s.Len)
		} else {
			b.replace(len(s.Ins), doc[pos:pos+s.Len])
		}
		pos += s.Len
	}
	return b.done(), nil
}

// MapPos maps an old-document offset into the new document. assoc < 0
// keeps the position before text inserted at it, otherwise after.
func (c ChangeSet) MapPos(pos int, assoc int) int {
	posA, posB := 0, 0
	for _, s := range c.sections {
		endA := posA + s.Len
		if s.Kept {
			if pos < endA {
				return posB + pos - posA
			}
			posA = endA
			posB += s.Len
			continue
		}
		insLen := len(s.Ins)
		switch {
		case s.Len == 0 && pos == posA:
			if assoc < 0 {
				return posB
			}
			return posB + insLen
		case pos > posA && pos < endA:
			if assoc < 0 {
				return posB
			}
			return posB + insLen
		case pos == posA && s.Len > 0:
			return posB
		case pos == endA:
			if assoc < 0 && insLen == 0 {
				return posB
			}
			// Position at the end of a replaced range may still be followed
			// by a kept section or an insert; keep scanning from there.
		}
		posA = endA
		posB += insLen
	}
	return posB + pos - posA
}

// piece is a fragment of a composed output: either a kept range of the
// original document or literal text.
type piece struct {
	from, to int
	lit      string
	kept     bool
}

func (p piece) len() int {
	if p.kept {
		return p.to - p.from
	}
	return len(p.lit)
}

// Compose returns a change set equivalent to applying c and then next.
// next must apply to the document c produces.
func (c ChangeSet) Compose(next ChangeSet) (ChangeSet, error) {
	if c.LenAfter() != next.LenBefore() {
		return ChangeSet{}, fmt.Errorf("compose %d-length output with %d-length input: %w", c.LenAfter(), next.LenBefore(), ErrLengthMismatch)
	}

	var pieces []piece
	pos := 0
	for _, s := range c.sections {
		if s.Kept {
			pieces = append(pieces, piece{from: pos, to: pos + s.Len, kept: true})
		} else if s.Ins != "" {
			pieces = append(pieces, piece{lit: s.Ins})
		}
		pos += s.Len
	}

	// Walk next over the output of c, slicing pieces as needed.
	var out []piece
	idx, off := 0, 0
	take := func(n int, keep bool) {
		for n > 0 {
			p := pieces[idx]
			avail := p.len() - off
			k := min(avail, n)
			if keep {
				if p.kept {
					out = append(out, piece{from: p.from + off, to: p.from + off + k, kept: true})
				} else {
					out = append(out, piece{lit: p.lit[off : off+k]})
				}
			}
			n -= k
			off += k
			if off == p.len() {
				idx++
				off = 0
			}
		}
	}
	for _, s := range next.sections {
		if s.Kept {
			take(s.Len, true)
			continue
		}
		take(s.Len, false)
		if s.Ins != "" {
			out = append(out, piece{lit: s.Ins})
		}
	}

	// Rebuild sections over c's input document.
	var b builder
	cursor := 0
	var pending strings.Builder
	for _, p := range out {
		if !p.kept {
			pending.WriteString(p.lit)
			continue
		}
		if p.from > cursor || pending.Len() > 0 {
			b.replace(p.from-cursor, pending.String())
			pending.Reset()
		}
		b.keep(p.to - p.from)
		cursor = p.to
	}
	total := c.LenBefore()
	if total > cursor || pending.Len() > 0 {
		b.replace(total-cursor, pending.String())
	}
	return b.done(), nil
}

// builder accumulates sections, merging neighbours of the same kind.
type builder struct {
	sections []Section
}

func (b *builder) keep(n int) {
	if n <= 0 {
		return
	}
	if last := len(b.sections) - 1; last >= 0 && b.sections[last].Kept {
		b.sections[last].Len += n
		return
	}
	b.sections = append(b.sections, Section{Len: n, Kept: true})
}

func (b *builder) replace(n int, ins string) {
	if n == 0 && ins == "" {
		return
	}
	if last := len(b.sections) - 1; last >= 0 && !b.sections[last].Kept {
		b.sections[last].Len += n
		b.sections[last].Ins += ins
		return
	}
	b.sections = append(b.sections, Section{Len: n, Ins: ins})
}

func (b *builder) done() ChangeSet {
	return ChangeSet{sections: b.sections}
}

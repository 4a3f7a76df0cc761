// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/xycoord/python-editor-next/internal/types"
)

// ErrOutOfRange is returned when an offset falls outside the buffer.
var ErrOutOfRange = errors.New("offset out of range")

// SliceBuffer stores the document as a slice of lines without their newlines.
type SliceBuffer struct {
	lines    [][]byte
	starts   []int // byte offset of each line start, rebuilt after every edit
	filePath string
	modified bool // Track if buffer has unsaved changes
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	sb := &SliceBuffer{
		// Start with a single empty line, common for new files
		lines: [][]byte{[]byte("")},
	}
	sb.reindex()
	return sb
}

// NewSliceBufferFromString creates a buffer holding text.
func NewSliceBufferFromString(text string) *SliceBuffer {
	sb := &SliceBuffer{}
	sb.setContent([]byte(text))
	return sb
}

// Load reads a file into the buffer. Replaces existing content.
// A missing file yields an empty buffer bound to that path.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.setContent(nil)
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}

	sb.setContent(content)
	sb.filePath = filePath
	return nil
}

// setContent splits content into lines. A trailing newline produces a final empty line.
func (sb *SliceBuffer) setContent(content []byte) {
	parts := bytes.Split(content, []byte("\n"))
	sb.lines = make([][]byte, len(parts))
	for i, part := range parts {
		lineCopy := make([]byte, len(part))
		copy(lineCopy, part)
		sb.lines[i] = lineCopy
	}
	sb.reindex()
}

func (sb *SliceBuffer) reindex() {
	if len(sb.lines) == 0 {
		sb.lines = [][]byte{[]byte("")}
	}
	sb.starts = make([]int, len(sb.lines))
	offset := 0
	for i, line := range sb.lines {
		sb.starts[i] = offset
		offset += len(line) + 1
	}
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

func (sb *SliceBuffer) Bytes() []byte {
	var buffer bytes.Buffer
	buffer.Grow(sb.Len())
	for i, line := range sb.lines {
		buffer.Write(line)
		if i < len(sb.lines)-1 {
			buffer.WriteByte('\n')
		}
	}
	return buffer.Bytes()
}

func (sb *SliceBuffer) String() string {
	return string(sb.Bytes())
}

// Len returns the document length in bytes.
func (sb *SliceBuffer) Len() int {
	last := len(sb.lines) - 1
	return sb.starts[last] + len(sb.lines[last])
}

// Save writes the buffer content to the stored filePath.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" { // Allow overriding path during save
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// --- Offset helpers ---

// lineIndexAt returns the index of the line containing offset (clamped).
func (sb *SliceBuffer) lineIndexAt(offset int) int {
	if offset <= 0 {
		return 0
	}
	// First line whose start is beyond offset, minus one.
	idx := sort.Search(len(sb.starts), func(i int) bool { return sb.starts[i] > offset }) - 1
	if idx < 0 {
		return 0
	}
	return idx
}

// LineAt returns the line containing offset. Offsets are clamped to the document.
func (sb *SliceBuffer) LineAt(offset int) Line {
	if offset > sb.Len() {
		offset = sb.Len()
	}
	idx := sb.lineIndexAt(offset)
	line, _ := sb.LineInfo(idx)
	return line
}

// LineInfo returns the line at index.
func (sb *SliceBuffer) LineInfo(index int) (Line, error) {
	if index < 0 || index >= len(sb.lines) {
		return Line{}, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	from := sb.starts[index]
	return Line{
		Index: index,
		From:  from,
		To:    from + len(sb.lines[index]),
		Text:  string(sb.lines[index]),
	}, nil
}

// OffsetToPosition converts a byte offset to a line/rune-column position.
func (sb *SliceBuffer) OffsetToPosition(offset int) types.Position {
	line := sb.LineAt(offset)
	if offset < line.From {
		offset = line.From
	}
	if offset > line.To {
		offset = line.To
	}
	col := utf8.RuneCount(sb.lines[line.Index][:offset-line.From])
	return types.Position{Line: line.Index, Col: col}
}

// PositionToOffset converts a line/rune-column position to a byte offset, clamping as needed.
func (sb *SliceBuffer) PositionToOffset(pos types.Position) int {
	validPos, byteOffset := sb.validatePosition(pos)
	return sb.starts[validPos.Line] + byteOffset
}

// --- Buffer Modification Methods ---

// Replace swaps the bytes in [from, to) for text and reports the edit for tree-sitter.
func (sb *SliceBuffer) Replace(from, to int, text []byte) (types.EditInfo, error) {
	if from > to {
		from, to = to, from
	}
	if from < 0 || to > sb.Len() {
		return types.EditInfo{}, fmt.Errorf("replace [%d,%d) in document of length %d: %w", from, to, sb.Len(), ErrOutOfRange)
	}

	startLine := sb.lineIndexAt(from)
	endLine := sb.lineIndexAt(to)
	startCol := from - sb.starts[startLine]
	endCol := to - sb.starts[endLine]

	edit := types.EditInfo{
		StartIndex:     uint32(from),
		OldEndIndex:    uint32(to),
		NewEndIndex:    uint32(from + len(text)),
		StartPosition:  sitter.Point{Row: uint32(startLine), Column: uint32(startCol)},
		OldEndPosition: sitter.Point{Row: uint32(endLine), Column: uint32(endCol)},
	}

	if from == to && len(text) == 0 {
		edit.NewEndPosition = edit.StartPosition
		return edit, nil
	}

	prefix := sb.lines[startLine][:startCol]
	suffix := sb.lines[endLine][endCol:]
	insertLines := bytes.Split(text, []byte("\n"))

	newLines := make([][]byte, len(insertLines))
	for i, part := range insertLines {
		var line []byte
		if i == 0 {
			line = append(line, prefix...)
		}
		line = append(line, part...)
		if i == len(insertLines)-1 {
			line = append(line, suffix...)
		}
		newLines[i] = line
	}

	lastInserted := insertLines[len(insertLines)-1]
	if len(insertLines) == 1 {
		edit.NewEndPosition = sitter.Point{Row: uint32(startLine), Column: uint32(startCol + len(lastInserted))}
	} else {
		edit.NewEndPosition = sitter.Point{Row: uint32(startLine + len(insertLines) - 1), Column: uint32(len(lastInserted))}
	}

	merged := make([][]byte, 0, len(sb.lines)-(endLine-startLine+1)+len(newLines))
	merged = append(merged, sb.lines[:startLine]...)
	merged = append(merged, newLines...)
	merged = append(merged, sb.lines[endLine+1:]...)
	sb.lines = merged
	sb.reindex()
	sb.modified = true

	return edit, nil
}

// Insert inserts text at a given position. Handles single/multiple lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	offset := sb.PositionToOffset(pos)
	return sb.Replace(offset, offset, text)
}

// Delete removes text within a given range (start inclusive, end exclusive).
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	if end.Less(start) {
		start, end = end, start
	}
	return sb.Replace(sb.PositionToOffset(start), sb.PositionToOffset(end), nil)
}

// validatePosition clamps pos into the buffer and returns the byte offset within its line.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	col, byteOffset := validatePositionOnLine(sb.lines[pos.Line], pos.Col)
	return types.Position{Line: pos.Line, Col: col}, byteOffset
}

// validatePositionOnLine is a helper to get byte offset for a rune column on a line.
func validatePositionOnLine(line []byte, col int) (validCol int, byteOffset int) {
	if col < 0 {
		col = 0
	}
	runeCount := 0
	for byteOffset < len(line) && runeCount < col {
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		runeCount++
	}
	return runeCount, byteOffset
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)

// internal/buffer/buffer.go
package buffer

import "github.com/xycoord/python-editor-next/internal/types"

// Line describes one document line by byte offsets. To excludes the newline.
type Line struct {
	Index int // 0-based line index
	From  int
	To    int
	Text  string
}

// Length returns the byte length of the line without its newline.
func (l Line) Length() int {
	return l.To - l.From
}

// Buffer defines the interface for text buffer operations.
// Offsets are byte offsets into the text as returned by Bytes, where lines
// are joined with a single '\n'.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Bytes() []byte
	String() string
	Len() int

	// Offset based access
	LineAt(offset int) Line
	LineInfo(index int) (Line, error)
	OffsetToPosition(offset int) types.Position
	PositionToOffset(pos types.Position) int

	// Modification
	Replace(from, to int, text []byte) (types.EditInfo, error)
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)

	FilePath() string
	IsModified() bool
}

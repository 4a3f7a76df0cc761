package core

import (
	"context"
	"fmt"

	"github.com/xycoord/python-editor-next/internal/event"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// Undo reverts the last historied transaction.
func (e *Editor) Undo() (bool, error) {
	if !e.Editable() {
		return false, ErrReadOnly
	}
	return e.history.Undo()
}

// Redo reapplies the last undone transaction.
func (e *Editor) Redo() (bool, error) {
	if !e.Editable() {
		return false, ErrReadOnly
	}
	return e.history.Redo()
}

// LoadFile replaces the buffer with the file at path and resets history.
func (e *Editor) LoadFile(path string) error {
	if err := e.buffer.Load(path); err != nil {
		return err
	}
	e.history.Clear()
	e.Cursor.Line, e.Cursor.Col = 0, 0
	if e.syntax != nil {
		if err := e.syntax.Parse(context.Background(), e.buffer.Bytes()); err != nil {
			logger.Warnf("Editor: parse of %s failed: %v", path, err)
		}
	}
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	}
	return nil
}

// SaveBuffer handles buffer saving, accepting an optional override path.
func (e *Editor) SaveBuffer(filePath ...string) error {
	savePath := ""
	if len(filePath) > 0 {
		savePath = filePath[0]
	}
	if err := e.buffer.Save(savePath); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buffer.FilePath()})
	}
	return nil
}

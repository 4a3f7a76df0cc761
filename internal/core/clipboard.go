package core

import (
	"github.com/atotto/clipboard"
	"github.com/xycoord/python-editor-next/internal/logger"
)

// CopyText puts text on the clipboard. With the system clipboard enabled it
// is written there too; a failure falls back to the internal register only.
func (e *Editor) CopyText(text string) (system bool) {
	e.clipboard = []byte(text)
	if !e.systemClipboard {
		return false
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warnf("Clipboard: system clipboard unavailable, kept %d bytes internally: %v", len(text), err)
		return false
	}
	logger.Debugf("Clipboard: copied %d bytes to system clipboard", len(text))
	return true
}

// ClipboardText returns the clipboard contents, preferring the system clipboard.
func (e *Editor) ClipboardText() string {
	if e.systemClipboard {
		if text, err := clipboard.ReadAll(); err == nil {
			return text
		}
	}
	return string(e.clipboard)
}

// Paste inserts the clipboard contents at the cursor.
func (e *Editor) Paste() (bool, error) {
	text := e.ClipboardText()
	if text == "" {
		return false, nil
	}
	if err := e.InsertText(text); err != nil {
		return false, err
	}
	return true, nil
}

// Package buffer holds the editor document as an ordered list of lines.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is returned when a line index falls outside the buffer.
	ErrOutOfRange = errors.New("line index out of range")
	// ErrEmbeddedNewline is returned when a line would contain a newline.
	ErrEmbeddedNewline = errors.New("line contains a newline")
)

// Buffer is an ordered, zero-indexed sequence of lines. The zero value is an
// empty buffer with no lines.
type Buffer struct {
	lines []string
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line i, or "" when i is out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// Lines returns a copy of every line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// ReplaceLine overwrites line i. The index must already exist.
func (b *Buffer) ReplaceLine(i int, text string) error {
	if i < 0 || i >= len(b.lines) {
		return fmt.Errorf("replace line %d of %d: %w", i, len(b.lines), ErrOutOfRange)
	}
	if strings.Contains(text, "\n") {
		return fmt.Errorf("replace line %d: %w", i, ErrEmbeddedNewline)
	}
	b.lines[i] = text
	return nil
}

// InsertLine inserts text before line i, shifting the following lines down.
// i == LineCount() appends.
func (b *Buffer) InsertLine(i int, text string) error {
	if i < 0 || i > len(b.lines) {
		return fmt.Errorf("insert line %d of %d: %w", i, len(b.lines), ErrOutOfRange)
	}
	if strings.Contains(text, "\n") {
		return fmt.Errorf("insert line %d: %w", i, ErrEmbeddedNewline)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = text
	return nil
}

// RemoveLine deletes line i, shifting the following lines up.
func (b *Buffer) RemoveLine(i int) error {
	if i < 0 || i >= len(b.lines) {
		return fmt.Errorf("remove line %d of %d: %w", i, len(b.lines), ErrOutOfRange)
	}
	copy(b.lines[i:], b.lines[i+1:])
	b.lines[len(b.lines)-1] = ""
	b.lines = b.lines[:len(b.lines)-1]
	return nil
}

// RemoveAll drops every line.
func (b *Buffer) RemoveAll() {
	b.lines = nil
}

// Load replaces the whole document with content split on newlines.
func (b *Buffer) Load(content string) {
	b.RemoveAll()
	for i, line := range Split(content) {
		// Split never yields a line containing "\n" and i == LineCount().
		_ = b.InsertLine(i, line)
	}
}

// String serializes the buffer, joining lines with a single newline.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// Split breaks content on every "\n". A trailing newline yields a trailing
// empty line, so Split and String round-trip exactly.
func Split(content string) []string {
	return strings.Split(content, "\n")
}

// Package selection provides the documents a command can read its
// selection from and write its result back into.
package selection

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// Buffer is an in-memory text document with a single selection range.
// Every mutation bumps the revision so stale selections can be detected.
type Buffer struct {
	mu       sync.Mutex
	text     string
	start    int
	end      int
	revision uint64
}

// NewBuffer creates a buffer holding text with an empty selection.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// Select selects the byte range [start, end).
func (b *Buffer) Select(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if start < 0 || end < start || end > len(b.text) {
		return fmt.Errorf("selection %d:%d is outside the document (0:%d)", start, end, len(b.text))
	}
	if !onRuneBoundary(b.text, start) || !onRuneBoundary(b.text, end) {
		return fmt.Errorf("selection %d:%d splits a UTF-8 character", start, end)
	}
	b.start, b.end = start, end
	return nil
}

// SelectLines selects the 1-based inclusive line range [from, to], without
// the newline that ends the last line.
func (b *Buffer) SelectLines(from, to int) error {
	b.mu.Lock()
	text := b.text
	b.mu.Unlock()

	lines := strings.SplitAfter(text, "\n")
	if strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	if from < 1 || to < from || to > len(lines) {
		return fmt.Errorf("lines %d:%d are outside the document (1:%d)", from, to, len(lines))
	}

	start := 0
	for _, line := range lines[:from-1] {
		start += len(line)
	}
	end := start
	for _, line := range lines[from-1 : to] {
		end += len(line)
	}
	if strings.HasSuffix(lines[to-1], "\n") {
		end--
	}
	return b.Select(start, end)
}

// SelectAll selects the whole document.
func (b *Buffer) SelectAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start, b.end = 0, len(b.text)
}

// Selection implements ports.SelectionEditor.
func (b *Buffer) Selection(context.Context) (domain.Selection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.Selection{
		Text:     b.text[b.start:b.end],
		Start:    b.start,
		End:      b.end,
		Revision: b.revision,
	}, nil
}

// Replace implements ports.SelectionEditor. The inserted text becomes the
// new selection.
func (b *Buffer) Replace(_ context.Context, sel domain.Selection, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sel.Revision != b.revision || sel.Start != b.start || sel.End != b.end || sel.Start == sel.End {
		return
	}
	b.text = b.text[:sel.Start] + text + b.text[sel.End:]
	b.end = sel.Start + len(text)
	b.revision++
}

// String returns the whole document.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Changed reports whether the document was modified.
func (b *Buffer) Changed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revision > 0
}

func onRuneBoundary(text string, i int) bool {
	return i == len(text) || utf8.RuneStart(text[i])
}

var _ ports.SelectionEditor = (*Buffer)(nil)

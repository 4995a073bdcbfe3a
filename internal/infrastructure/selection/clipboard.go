package selection

import (
	"context"

	"github.com/atotto/clipboard"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// Clipboard treats the system clipboard content as the selection.
type Clipboard struct {
	read  func() (string, error)
	write func(string) error
}

// NewClipboard builds the clipboard editor.
func NewClipboard() *Clipboard {
	return &Clipboard{read: clipboard.ReadAll, write: clipboard.WriteAll}
}

// Enabled reports whether a clipboard utility is available.
func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Selection implements ports.SelectionEditor.
func (c *Clipboard) Selection(context.Context) (domain.Selection, error) {
	text, err := c.read()
	if err != nil {
		return domain.Selection{}, err
	}
	return domain.Selection{Text: text, Start: 0, End: len(text)}, nil
}

// Replace implements ports.SelectionEditor. The clipboard is left alone
// when it changed since the selection was read.
func (c *Clipboard) Replace(_ context.Context, sel domain.Selection, text string) {
	current, err := c.read()
	if err != nil || current != sel.Text || sel.Text == "" {
		return
	}
	_ = c.write(text)
}

var _ ports.SelectionEditor = (*Clipboard)(nil)

package notify

import (
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/doeshing/leafllm-go/internal/ports"
)

// Terminal alerts the user on the terminal using pterm's error style.
type Terminal struct {
	printer pterm.PrefixPrinter
}

// NewTerminal builds a notifier writing to stderr so alerts never mix with
// text piped through stdout.
func NewTerminal() *Terminal {
	return NewTerminalWithWriter(os.Stderr)
}

// NewTerminalWithWriter builds a notifier writing to w.
func NewTerminalWithWriter(w io.Writer) *Terminal {
	return &Terminal{printer: *pterm.Error.WithWriter(w)}
}

// Notify implements ports.UserNotifier.
func (t *Terminal) Notify(message string) {
	t.printer.Println(message)
}

var _ ports.UserNotifier = (*Terminal)(nil)

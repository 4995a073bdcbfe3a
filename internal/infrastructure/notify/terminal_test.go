package notify

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestTerminalNotifyWritesAlert(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	NewTerminalWithWriter(&buf).Notify("Failed to execute the 'Ask' command.")

	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "Failed to execute the 'Ask' command.")
}

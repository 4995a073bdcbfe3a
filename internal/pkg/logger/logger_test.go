package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdLoggerQuietUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)

	log.Debug("debug", nil)
	log.Info("info", nil)
	log.Warn("warn", nil)
	assert.Empty(t, buf.String())

	log.Error("boom", errors.New("cause"), map[string]interface{}{"command": "Ask"})
	assert.Contains(t, buf.String(), "LeafLLM: ")
	assert.Contains(t, buf.String(), "[ERROR] boom cause")
	assert.Contains(t, buf.String(), "command:Ask")
}

func TestStdLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, true)

	log.Info("reconciled", map[string]interface{}{"changed": 2})
	assert.Contains(t, buf.String(), "[INFO] reconciled")
}

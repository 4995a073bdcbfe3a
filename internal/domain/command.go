// Package domain defines core business entities and value objects for LeafLLM.
//
// This file contains the command records persisted in the settings store and
// the behaviour that keeps them consistent with the host shortcut bindings.
// The domain layer is independent of infrastructure concerns.
package domain

import (
	"fmt"
	"strings"
)

// CommandKey identifies one of the user-invokable LLM operations.
type CommandKey string

const (
	CommandComplete CommandKey = "Complete"
	CommandImprove  CommandKey = "Improve"
	CommandAsk      CommandKey = "Ask"
)

// CommandKeys lists every known command in display order.
func CommandKeys() []CommandKey {
	return []CommandKey{CommandComplete, CommandImprove, CommandAsk}
}

// ParseCommandKey resolves a command name case-insensitively.
func ParseCommandKey(name string) (CommandKey, error) {
	for _, key := range CommandKeys() {
		if strings.EqualFold(string(key), strings.TrimSpace(name)) {
			return key, nil
		}
	}
	return "", fmt.Errorf("unknown command %q (expected Complete, Improve or Ask)", name)
}

// CommandStatus is the persisted enablement state of a command.
type CommandStatus string

const (
	StatusEnabled  CommandStatus = "enabled"
	StatusDisabled CommandStatus = "disabled"
	// StatusError marks a command the user wants enabled that has no shortcut bound.
	StatusError CommandStatus = "error"
)

// RecordTypeCommand discriminates command records from other settings values.
const RecordTypeCommand = "Command"

// Command is the settings record for one command.
type Command struct {
	Key      CommandKey    `json:"key"`
	Shortcut string        `json:"shortcut"`
	Status   CommandStatus `json:"status"`
	Type     string        `json:"type"`
}

// DefaultShortcut returns the key combination suggested at install time.
func DefaultShortcut(key CommandKey) string {
	switch key {
	case CommandComplete:
		return "Alt+C"
	case CommandImprove:
		return "Alt+I"
	case CommandAsk:
		return "Alt+A"
	default:
		return ""
	}
}

// DefaultCommand builds the record written at first install.
func DefaultCommand(key CommandKey) Command {
	return Command{
		Key:      key,
		Shortcut: DefaultShortcut(key),
		Status:   StatusEnabled,
		Type:     RecordTypeCommand,
	}
}

// StorageKey returns the settings key the record is stored under.
func (k CommandKey) StorageKey() string {
	return string(k)
}

// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// These interfaces form the contract between the application core (command
// registry, request building, dispatch) and the adapters that talk to the
// outside world: the settings database, the host shortcut bindings, the
// chat-completion API, the text buffers holding the selection and the
// terminal used to alert the user.
package ports

import (
	"context"

	"github.com/doeshing/leafllm-go/internal/domain"
)

// ConfigProvider loads the application configuration.
// Implementations typically read from ~/.leafllm/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SettingsStore is a key/value store with JSON-serialisable values.
// Individual operations are atomic per key; there are no cross-key transactions.
type SettingsStore interface {
	// Get decodes the value stored under key into dst and reports whether it existed.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

// ShortcutSource reports the key combinations the host has bound to each command.
// A command missing from the map is unbound.
type ShortcutSource interface {
	Shortcuts(ctx context.Context) (map[string]string, error)
}

// ChatClient performs a single chat-completion round trip and returns the generated text.
type ChatClient interface {
	Send(ctx context.Context, url string, payload domain.ChatRequest, apiKey string) (string, error)
}

// SelectionEditor reads and replaces the active selection of a document.
type SelectionEditor interface {
	Selection(ctx context.Context) (domain.Selection, error)
	// Replace swaps the selected text for text. It is a no-op when sel no
	// longer describes a live range of the document.
	Replace(ctx context.Context, sel domain.Selection, text string)
}

// UserNotifier surfaces a message to the user.
type UserNotifier interface {
	Notify(message string)
}

// CredentialStore keeps the API key.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, key string) error
	Remove(ctx context.Context) error
}

// HistoryRepository persists command invocations.
type HistoryRepository interface {
	Save(ctx context.Context, record domain.HistoryRecord) error
	Records(ctx context.Context, limit int) ([]domain.HistoryRecord, error)
	Clear(ctx context.Context) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

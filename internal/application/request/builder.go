// Package request turns a command invocation into a chat-completion body.
package request

import (
	"fmt"

	"github.com/doeshing/leafllm-go/internal/domain"
)

// Build merges the base template, the command's template and the user's
// text into a request body. cfg is never modified. The user message is
// always the last message.
func Build(key domain.CommandKey, userText string, cfg domain.RequestConfiguration) (domain.ChatRequest, error) {
	if cfg.Base == nil {
		return domain.ChatRequest{}, fmt.Errorf("%w: base template is missing", domain.ErrConfigMissing)
	}
	override := cfg.For(key)
	if override == nil {
		return domain.ChatRequest{}, fmt.Errorf("%w: %s template is missing", domain.ErrConfigMissing, key)
	}

	merged := cfg.Base.Overlay(*override)
	messages := append(merged.Messages, domain.PromptMessage{Role: domain.RoleUser, Content: userText})
	return merged.ChatRequest(messages), nil
}

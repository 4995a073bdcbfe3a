package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Overlay returns a new template where the fields set in top win over t.
// A non-empty message list in top replaces the one in t. Neither input is
// modified and the result shares no slices with them.
func (t RequestTemplate) Overlay(top RequestTemplate) RequestTemplate {
	merged := t.clone()
	if top.Model != nil {
		merged.Model = ptr(*top.Model)
	}
	if top.Temperature != nil {
		merged.Temperature = ptr(*top.Temperature)
	}
	if top.N != nil {
		merged.N = ptr(*top.N)
	}
	if top.MaxTokens != nil {
		merged.MaxTokens = ptr(*top.MaxTokens)
	}
	if top.TopP != nil {
		merged.TopP = ptr(*top.TopP)
	}
	if top.PresencePenalty != nil {
		merged.PresencePenalty = ptr(*top.PresencePenalty)
	}
	if top.FrequencyPenalty != nil {
		merged.FrequencyPenalty = ptr(*top.FrequencyPenalty)
	}
	if top.Stop != nil {
		merged.Stop = append([]string(nil), top.Stop...)
	}
	if top.Messages != nil {
		merged.Messages = append([]PromptMessage(nil), top.Messages...)
	}
	return merged
}

// ChatRequest converts the merged template into a request body carrying
// the given messages.
func (t RequestTemplate) ChatRequest(messages []PromptMessage) ChatRequest {
	req := ChatRequest{
		Temperature:      t.Temperature,
		N:                t.N,
		MaxTokens:        t.MaxTokens,
		TopP:             t.TopP,
		PresencePenalty:  t.PresencePenalty,
		FrequencyPenalty: t.FrequencyPenalty,
		Stop:             t.Stop,
		Messages:         messages,
	}
	if t.Model != nil {
		req.Model = *t.Model
	}
	return req
}

func (t RequestTemplate) clone() RequestTemplate {
	out := RequestTemplate{}
	if t.Model != nil {
		out.Model = ptr(*t.Model)
	}
	if t.Temperature != nil {
		out.Temperature = ptr(*t.Temperature)
	}
	if t.N != nil {
		out.N = ptr(*t.N)
	}
	if t.MaxTokens != nil {
		out.MaxTokens = ptr(*t.MaxTokens)
	}
	if t.TopP != nil {
		out.TopP = ptr(*t.TopP)
	}
	if t.PresencePenalty != nil {
		out.PresencePenalty = ptr(*t.PresencePenalty)
	}
	if t.FrequencyPenalty != nil {
		out.FrequencyPenalty = ptr(*t.FrequencyPenalty)
	}
	if t.Stop != nil {
		out.Stop = append([]string(nil), t.Stop...)
	}
	if t.Messages != nil {
		out.Messages = append([]PromptMessage(nil), t.Messages...)
	}
	return out
}

// Validate checks the configuration shape before it is persisted or used.
func (c *RequestConfiguration) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: configuration is empty", ErrConfigMissing)
	}
	if err := validateEndpoint(c.URL); err != nil {
		return err
	}
	if c.Base == nil {
		return fmt.Errorf("%w: base template is missing", ErrConfigMissing)
	}
	if err := c.Base.validate("base"); err != nil {
		return err
	}
	for _, key := range CommandKeys() {
		tmpl := c.For(key)
		if tmpl == nil {
			return fmt.Errorf("%w: %s template is missing", ErrConfigMissing, key)
		}
		if err := tmpl.validate(string(key)); err != nil {
			return err
		}
	}
	return nil
}

func validateEndpoint(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: url is empty", ErrConfigMissing)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url invalid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}

func (t *RequestTemplate) validate(section string) error {
	if t.Model != nil && strings.TrimSpace(*t.Model) == "" {
		return fmt.Errorf("%s.model must not be empty", section)
	}
	if t.Temperature != nil && (*t.Temperature < 0 || *t.Temperature > 2) {
		return fmt.Errorf("%s.temperature must be within 0..2, got %v", section, *t.Temperature)
	}
	if t.N != nil && *t.N < 1 {
		return fmt.Errorf("%s.n must be >= 1, got %d", section, *t.N)
	}
	if t.MaxTokens != nil && *t.MaxTokens < 1 {
		return fmt.Errorf("%s.max_tokens must be >= 1, got %d", section, *t.MaxTokens)
	}
	if t.TopP != nil && (*t.TopP < 0 || *t.TopP > 1) {
		return fmt.Errorf("%s.top_p must be within 0..1, got %v", section, *t.TopP)
	}
	for i, msg := range t.Messages {
		switch msg.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return fmt.Errorf("%s.messages[%d].role must be system|user|assistant, got %q", section, i, msg.Role)
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

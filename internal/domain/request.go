package domain

// RequestConfiguration is the persisted template controlling how chat
// requests are built. Per-command templates are merged over Base.
type RequestConfiguration struct {
	URL      string           `json:"url"`
	Base     *RequestTemplate `json:"base"`
	Complete *RequestTemplate `json:"Complete,omitempty"`
	Improve  *RequestTemplate `json:"Improve,omitempty"`
	Ask      *RequestTemplate `json:"Ask,omitempty"`
}

// RequestTemplate holds the optional request fields a template may set.
// Nil fields are left to the template merged underneath.
type RequestTemplate struct {
	Model            *string         `json:"model,omitempty"`
	Temperature      *float64        `json:"temperature,omitempty"`
	N                *int            `json:"n,omitempty"`
	MaxTokens        *int            `json:"max_tokens,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	Stop             []string        `json:"stop,omitempty"`
	Messages         []PromptMessage `json:"messages,omitempty"`
}

// PromptMessage follows the role/content pair required by chat APIs.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body POSTed to the chat-completion endpoint.
type ChatRequest struct {
	Model            string          `json:"model,omitempty"`
	Temperature      *float64        `json:"temperature,omitempty"`
	N                *int            `json:"n,omitempty"`
	MaxTokens        *int            `json:"max_tokens,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	Stop             []string        `json:"stop,omitempty"`
	Messages         []PromptMessage `json:"messages"`
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Defaults shipped as the out-of-the-box RequestConfiguration.
const (
	DefaultEndpoint    = "https://api.openai.com/v1/chat/completions"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.5
	DefaultSampleCount = 1
)

// For returns the command override template, or nil when absent.
func (c *RequestConfiguration) For(key CommandKey) *RequestTemplate {
	if c == nil {
		return nil
	}
	switch key {
	case CommandComplete:
		return c.Complete
	case CommandImprove:
		return c.Improve
	case CommandAsk:
		return c.Ask
	default:
		return nil
	}
}

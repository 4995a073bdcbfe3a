package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

const (
	// contentPath locates the generated text in a chat-completion response.
	contentPath = "choices.0.message.content"
	// contentPathDisplay is contentPath as users know it from the API docs.
	contentPathDisplay = "choices[0].message.content"
)

var errInvalidJSON = errors.New("response body is not valid JSON")

// Client talks to an OpenAI-compatible chat-completion endpoint.
// Each Send is a single attempt; retrying is up to the caller.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a Client. A zero timeout leaves requests unbounded
// except by the caller's context.
func NewClient(timeout time.Duration) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout})
}

// NewClientWithHTTP builds a Client around an existing http.Client.
func NewClientWithHTTP(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// Send POSTs payload to url and returns choices[0].message.content.
func (c *Client) Send(ctx context.Context, url string, payload domain.ChatRequest, apiKey string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	return extractContent(raw)
}

func extractContent(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", &domain.ParseError{Err: errInvalidJSON, Body: string(raw)}
	}
	content := gjson.GetBytes(raw, contentPath)
	if !content.Exists() || content.Type != gjson.String {
		return "", &domain.SchemaError{Path: contentPathDisplay, Body: string(raw)}
	}
	return content.String(), nil
}

var _ ports.ChatClient = (*Client)(nil)

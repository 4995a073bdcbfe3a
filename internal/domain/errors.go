package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnabled is returned when a command is invoked while not enabled.
	ErrNotEnabled = errors.New("command is not enabled")
	// ErrNoSelection is returned when nothing is selected.
	ErrNoSelection = errors.New("no text selected")
	// ErrConfigMissing is returned when the request configuration lacks a template.
	ErrConfigMissing = errors.New("request configuration missing")
	// ErrCredentialInvalid is returned when an API key fails validation.
	ErrCredentialInvalid = errors.New("invalid API key")
	// ErrCredentialMissing is returned when no API key is configured.
	ErrCredentialMissing = errors.New("API key is not set")
)

// NetworkError wraps a transport failure talking to the API.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError reports a non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("invalid status: %d", e.StatusCode)
	}
	return fmt.Sprintf("invalid status: %d - %s", e.StatusCode, e.Body)
}

// ParseError reports a 2xx response whose body is not valid JSON.
type ParseError struct {
	Err  error
	Body string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports valid JSON that lacks the generated text.
type SchemaError struct {
	Path string
	Body string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid response: missing %s", e.Path)
}

// IsRemoteFailure reports whether err came from the API round trip.
func IsRemoteFailure(err error) bool {
	var (
		netErr    *NetworkError
		httpErr   *HTTPError
		parseErr  *ParseError
		schemaErr *SchemaError
	)
	return errors.As(err, &netErr) || errors.As(err, &httpErr) ||
		errors.As(err, &parseErr) || errors.As(err, &schemaErr)
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeRequestConfiguration parses and validates a RequestConfiguration.
// Unknown fields and trailing data are rejected.
func DecodeRequestConfiguration(data []byte) (RequestConfiguration, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg RequestConfiguration
	if err := dec.Decode(&cfg); err != nil {
		return RequestConfiguration{}, fmt.Errorf("parse configuration: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return RequestConfiguration{}, fmt.Errorf("parse configuration: unexpected data after JSON object")
	}
	if err := cfg.Validate(); err != nil {
		return RequestConfiguration{}, err
	}
	return cfg, nil
}

// EncodeRequestConfiguration renders the configuration as indented JSON.
func EncodeRequestConfiguration(cfg RequestConfiguration) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

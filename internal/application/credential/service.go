// Package credential manages the API key used for chat requests.
package credential

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/doeshing/leafllm-go/internal/application/request"
	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// Service validates, tests and stores the API key.
type Service struct {
	Store    ports.CredentialStore
	Settings ports.SettingsStore
	Client   ports.ChatClient
	Logger   ports.Logger
	// Pattern is the shape a key must match; empty uses the default.
	Pattern string
	// Verify sends a probe request with the key before storing it.
	Verify bool
	// OnChange runs after the stored key was replaced or removed.
	OnChange func()
}

func (s *Service) validate() error {
	if s.Store == nil || s.Logger == nil {
		return errors.New("credential.Service dependencies not satisfied")
	}
	if s.Verify && (s.Settings == nil || s.Client == nil) {
		return errors.New("credential.Service verification needs settings and a chat client")
	}
	return nil
}

// Set checks key and stores it. Nothing is written when the key is
// rejected.
func (s *Service) Set(ctx context.Context, key string) error {
	if err := s.validate(); err != nil {
		return err
	}
	key = strings.TrimSpace(key)

	pattern := s.Pattern
	if pattern == "" {
		pattern = domain.DefaultCredentialPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("credential pattern invalid: %w", err)
	}
	if !re.MatchString(key) {
		return fmt.Errorf("%w: key does not match the expected format", domain.ErrCredentialInvalid)
	}

	if s.Verify {
		if err := s.probe(ctx, key); err != nil {
			return err
		}
	}

	if err := s.Store.Set(ctx, key); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	s.Logger.Info("credential updated", nil)
	s.changed()
	return nil
}

// Clear removes the stored key.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}
	if err := s.Store.Remove(ctx); err != nil {
		return fmt.Errorf("remove credential: %w", err)
	}
	s.Logger.Info("credential removed", nil)
	s.changed()
	return nil
}

// IsSet reports whether a key is available.
func (s *Service) IsSet(ctx context.Context) (bool, error) {
	if err := s.validate(); err != nil {
		return false, err
	}
	key, err := s.Store.Get(ctx)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(key) != "", nil
}

// probe runs the Ask command with a fixed prompt using key.
func (s *Service) probe(ctx context.Context, key string) error {
	var cfg domain.RequestConfiguration
	ok, err := s.Settings.Get(ctx, domain.RequestConfigurationKey, &cfg)
	if err != nil {
		return fmt.Errorf("load request configuration: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: nothing stored under %s", domain.ErrConfigMissing, domain.RequestConfigurationKey)
	}
	payload, err := request.Build(domain.CommandAsk, domain.CredentialProbePrompt, cfg)
	if err != nil {
		return err
	}
	if _, err := s.Client.Send(ctx, cfg.URL, payload, key); err != nil {
		s.Logger.Warn("credential probe failed", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("%w: test request failed: %v", domain.ErrCredentialInvalid, err)
	}
	return nil
}

func (s *Service) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

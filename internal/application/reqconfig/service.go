// Package reqconfig edits the stored RequestConfiguration.
package reqconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// Service reads, replaces and resets the request configuration.
type Service struct {
	Store    ports.SettingsStore
	Logger   ports.Logger
	Defaults domain.RequestConfiguration
}

func (s *Service) validate() error {
	if s.Store == nil || s.Logger == nil {
		return errors.New("reqconfig.Service dependencies not satisfied")
	}
	return nil
}

// Current returns the stored configuration, or the defaults when nothing
// is stored yet.
func (s *Service) Current(ctx context.Context) (domain.RequestConfiguration, error) {
	if err := s.validate(); err != nil {
		return domain.RequestConfiguration{}, err
	}
	var cfg domain.RequestConfiguration
	ok, err := s.Store.Get(ctx, domain.RequestConfigurationKey, &cfg)
	if err != nil {
		return domain.RequestConfiguration{}, fmt.Errorf("load request configuration: %w", err)
	}
	if !ok {
		return s.Defaults, nil
	}
	return cfg, nil
}

// SaveRaw parses raw JSON and stores it. Input that does not decode into a
// valid configuration is never written.
func (s *Service) SaveRaw(ctx context.Context, raw []byte) (domain.RequestConfiguration, error) {
	if err := s.validate(); err != nil {
		return domain.RequestConfiguration{}, err
	}
	cfg, err := domain.DecodeRequestConfiguration(raw)
	if err != nil {
		return domain.RequestConfiguration{}, err
	}
	if err := s.Store.Set(ctx, domain.RequestConfigurationKey, cfg); err != nil {
		return domain.RequestConfiguration{}, fmt.Errorf("save request configuration: %w", err)
	}
	s.Logger.Info("request configuration saved", map[string]interface{}{"url": cfg.URL})
	return cfg, nil
}

// Reset overwrites the stored configuration with the defaults.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}
	if err := s.Store.Set(ctx, domain.RequestConfigurationKey, s.Defaults); err != nil {
		return fmt.Errorf("reset request configuration: %w", err)
	}
	s.Logger.Info("request configuration reset", nil)
	return nil
}

// Diff describes how the stored configuration differs from the defaults.
// It returns "" when they are equal.
func (s *Service) Diff(ctx context.Context) (string, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	return cmp.Diff(s.Defaults, current), nil
}

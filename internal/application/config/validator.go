package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/doeshing/leafllm-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if strings.TrimSpace(cfg.Storage.Path) == "" {
		return fmt.Errorf("storage.path must be set")
	}
	if strings.TrimSpace(cfg.Shortcuts.File) == "" {
		return fmt.Errorf("shortcuts.file must be set")
	}
	if err := validateCredential(cfg.Credential); err != nil {
		return err
	}
	if _, err := RequestTimeout(cfg.HTTP); err != nil {
		return err
	}
	return nil
}

func validateCredential(cred domain.CredentialSettings) error {
	switch cred.Backend {
	case domain.CredentialBackendStore, domain.CredentialBackendKeyring:
	default:
		return fmt.Errorf("credential.backend must be store|keyring, got %s", cred.Backend)
	}
	if _, err := regexp.Compile(cred.Pattern); err != nil {
		return fmt.Errorf("credential.pattern invalid: %w", err)
	}
	return nil
}

// RequestTimeout parses http.timeout; zero means no timeout.
func RequestTimeout(settings domain.HTTPSettings) (time.Duration, error) {
	if settings.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(settings.Timeout)
	if err != nil {
		return 0, fmt.Errorf("http.timeout invalid: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("http.timeout must be >= 0")
	}
	return timeout, nil
}

// Package doctor diagnoses a LeafLLM installation without calling the API.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// CommandRegistry is the part of the registry the doctor inspects.
type CommandRegistry interface {
	Reconcile(ctx context.Context) ([]domain.CommandKey, error)
}

// RequestConfigSource returns the stored request configuration.
type RequestConfigSource interface {
	Current(ctx context.Context) (domain.RequestConfiguration, error)
}

// CredentialChecker reports whether an API key is available.
type CredentialChecker interface {
	IsSet(ctx context.Context) (bool, error)
}

// ClipboardProbe reports whether clipboard selections can be used.
type ClipboardProbe interface {
	Enabled() bool
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Registry       CommandRegistry
	RequestConfig  RequestConfigSource
	Credentials    CredentialChecker
	Clipboard      ClipboardProbe
}

// Run executes checks and returns a report. The error is non-nil when the
// configuration cannot be loaded or any check failed.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	if s.ConfigProvider == nil || s.Registry == nil || s.RequestConfig == nil || s.Credentials == nil {
		return domain.HealthReport{}, errors.New("doctor.Service dependencies not satisfied")
	}
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format %s, settings in %s", cfg.ConfigFormatVersion, cfg.Storage.Path)))

	checks = append(checks, s.requestCheck(ctx))
	checks = append(checks, s.shortcutCheck(ctx, cfg.Shortcuts.File))
	checks = append(checks, s.credentialCheck(ctx, cfg.Credential))

	if s.Clipboard != nil {
		if s.Clipboard.Enabled() {
			checks = append(checks, ok("Clipboard", "available for --clipboard"))
		} else {
			checks = append(checks, warn("Clipboard", "no clipboard utility found (install xclip, xsel or wl-clipboard)"))
		}
	}

	report := domain.HealthReport{Checks: checks}
	if report.Failed() {
		return report, errors.New("one or more checks failed")
	}
	return report, nil
}

func (s *Service) requestCheck(ctx context.Context) domain.HealthCheck {
	cfg, err := s.RequestConfig.Current(ctx)
	if err != nil {
		return fail("Request configuration", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return fail("Request configuration", err.Error())
	}
	endpoint, _ := url.Parse(cfg.URL)
	model := "-"
	if cfg.Base != nil && cfg.Base.Model != nil {
		model = *cfg.Base.Model
	}
	return ok("Request configuration", fmt.Sprintf("%s, model %s", endpoint.Host, model))
}

func (s *Service) shortcutCheck(ctx context.Context, file string) domain.HealthCheck {
	failures, err := s.Registry.Reconcile(ctx)
	if err != nil {
		return fail("Shortcuts", err.Error())
	}
	if len(failures) > 0 {
		names := make([]string, 0, len(failures))
		for _, key := range failures {
			names = append(names, string(key))
		}
		return warn("Shortcuts", fmt.Sprintf("unbound: %s (edit %s)", strings.Join(names, ", "), file))
	}
	return ok("Shortcuts", "all enabled commands bound")
}

func (s *Service) credentialCheck(ctx context.Context, settings domain.CredentialSettings) domain.HealthCheck {
	set, err := s.Credentials.IsSet(ctx)
	if err != nil {
		return fail("API key", err.Error())
	}
	if !set {
		hint := "run `leafllm key set`"
		if settings.EnvVar != "" {
			hint += " or export " + settings.EnvVar
		}
		return warn("API key", "not set; "+hint)
	}
	return ok("API key", fmt.Sprintf("available (%s backend)", settings.Backend))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}

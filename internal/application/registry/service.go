// Package registry keeps the command records consistent with the host
// shortcut bindings.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// Service is the command registry.
type Service struct {
	Store     ports.SettingsStore
	Shortcuts ports.ShortcutSource
	Logger    ports.Logger
	// Defaults is written as the RequestConfiguration at first install.
	Defaults domain.RequestConfiguration
}

func (s *Service) validate() error {
	if s.Store == nil || s.Shortcuts == nil || s.Logger == nil {
		return errors.New("registry.Service dependencies not satisfied")
	}
	return nil
}

// Command returns the stored record for key, or the install default when
// none is stored.
func (s *Service) Command(ctx context.Context, key domain.CommandKey) (domain.Command, error) {
	if err := s.validate(); err != nil {
		return domain.Command{}, err
	}
	var cmd domain.Command
	ok, err := s.Store.Get(ctx, key.StorageKey(), &cmd)
	if err != nil {
		return domain.Command{}, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return domain.DefaultCommand(key), nil
	}
	cmd.Key = key
	return cmd, nil
}

// Commands returns every command record in display order.
func (s *Service) Commands(ctx context.Context) ([]domain.Command, error) {
	commands := make([]domain.Command, 0, len(domain.CommandKeys()))
	for _, key := range domain.CommandKeys() {
		cmd, err := s.Command(ctx, key)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// Install seeds missing records with their defaults and reconciles them
// with the live bindings. Existing records are never overwritten.
func (s *Service) Install(ctx context.Context) ([]domain.CommandKey, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	for _, key := range domain.CommandKeys() {
		var existing domain.Command
		ok, err := s.Store.Get(ctx, key.StorageKey(), &existing)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if ok {
			continue
		}
		if err := s.Store.Set(ctx, key.StorageKey(), domain.DefaultCommand(key)); err != nil {
			return nil, fmt.Errorf("seed %s: %w", key, err)
		}
		s.Logger.Info("seeded command", map[string]interface{}{"command": key})
	}

	var existing domain.RequestConfiguration
	ok, err := s.Store.Get(ctx, domain.RequestConfigurationKey, &existing)
	if err != nil {
		s.Logger.Warn("stored request configuration unreadable", map[string]interface{}{"error": err.Error()})
	}
	if !ok && err == nil {
		if err := s.Store.Set(ctx, domain.RequestConfigurationKey, s.Defaults); err != nil {
			return nil, fmt.Errorf("seed request configuration: %w", err)
		}
		s.Logger.Info("seeded request configuration", nil)
	}

	return s.Reconcile(ctx)
}

// Reconcile aligns every record with the shortcut the host reports and
// returns the commands left in error status. Only changed records are
// written; write failures are logged and otherwise ignored.
func (s *Service) Reconcile(ctx context.Context) ([]domain.CommandKey, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	live, err := s.Shortcuts.Shortcuts(ctx)
	if err != nil {
		return nil, fmt.Errorf("read shortcuts: %w", err)
	}

	commands, err := s.Commands(ctx)
	if err != nil {
		return nil, err
	}

	reconciled := make([]domain.Command, 0, len(commands))
	for _, cmd := range commands {
		updated, changed := cmd.Reconcile(live[string(cmd.Key)])
		if changed {
			if err := s.Store.Set(ctx, cmd.Key.StorageKey(), updated); err != nil {
				s.Logger.Error("failed to persist command", err, map[string]interface{}{"command": cmd.Key})
			} else {
				s.Logger.Debug("command reconciled", map[string]interface{}{
					"command":  cmd.Key,
					"shortcut": updated.Shortcut,
					"status":   updated.Status,
				})
			}
		}
		reconciled = append(reconciled, updated)
	}

	return bindingFailures(reconciled), nil
}

// SetEnabled records the user's wish to enable or disable a command and
// reconciles afterwards.
func (s *Service) SetEnabled(ctx context.Context, key domain.CommandKey, enabled bool) (domain.Command, []domain.CommandKey, error) {
	cmd, err := s.Command(ctx, key)
	if err != nil {
		return domain.Command{}, nil, err
	}
	updated := cmd.WithEnabled(enabled)
	if err := s.Store.Set(ctx, key.StorageKey(), updated); err != nil {
		return domain.Command{}, nil, fmt.Errorf("save %s: %w", key, err)
	}
	failures, err := s.Reconcile(ctx)
	if err != nil {
		return updated, nil, err
	}
	latest, err := s.Command(ctx, key)
	return latest, failures, err
}

// FormatBindingFailures renders the message shown when commands could not
// be bound. It returns "" when there is nothing to report.
func FormatBindingFailures(failures []domain.CommandKey, shortcutsFile string) string {
	if len(failures) == 0 {
		return ""
	}
	names := lo.Map(failures, func(key domain.CommandKey, _ int) string { return string(key) })
	return fmt.Sprintf("Could not bind the following shortcuts:\n%s.\nYou can set them manually with `leafllm shortcuts bind <command> <keys>` or by editing %s.",
		strings.Join(names, ", "), shortcutsFile)
}

func bindingFailures(commands []domain.Command) []domain.CommandKey {
	return lo.FilterMap(commands, func(cmd domain.Command, _ int) (domain.CommandKey, bool) {
		return cmd.Key, cmd.Status == domain.StatusError
	})
}

// Package dispatch runs a command against the active selection: it checks
// the command is enabled, builds the chat request, calls the API and
// writes the answer back into the document.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/leafllm-go/internal/application/registry"
	"github.com/doeshing/leafllm-go/internal/application/request"
	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// Service is the command dispatcher.
type Service struct {
	Registry    *registry.Service
	Store       ports.SettingsStore
	Credentials ports.CredentialStore
	Client      ports.ChatClient
	Notifier    ports.UserNotifier
	Logger      ports.Logger
	// History is optional; nil disables invocation records.
	History ports.HistoryRepository
	Now     func() time.Time

	mu       sync.Mutex
	session  *Session
	inflight map[domain.CommandKey]int
}

func (s *Service) validate() error {
	if s.Registry == nil || s.Store == nil || s.Credentials == nil ||
		s.Client == nil || s.Notifier == nil || s.Logger == nil {
		return errors.New("dispatch.Service dependencies not satisfied")
	}
	return nil
}

// State reports whether an invocation of key is currently running.
func (s *Service) State(key domain.CommandKey) domain.DispatchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[key] > 0 {
		return domain.StateRunning
	}
	return domain.StateIdle
}

// Run executes one command invocation against editor.
//
// A command that is not enabled returns domain.ErrNotEnabled without
// alerting. An empty selection returns domain.ErrNoSelection and leaves the
// document alone. Any other failure is reported once through the notifier,
// logged, and returned; the document is not modified.
func (s *Service) Run(req domain.InvocationRequest, editor ports.SelectionEditor) (domain.InvocationResult, error) {
	if err := s.validate(); err != nil {
		return domain.InvocationResult{}, err
	}
	if editor == nil {
		return domain.InvocationResult{}, errors.New("dispatch: no selection editor")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	started := s.now()
	result := domain.InvocationResult{Command: req.Command}

	if _, err := s.Registry.Reconcile(ctx); err != nil {
		s.Logger.Warn("shortcut reconciliation skipped", map[string]interface{}{"error": err.Error()})
	}

	cmd, err := s.Registry.Command(ctx, req.Command)
	if err != nil {
		return result, err
	}
	if !cmd.IsRunnable() {
		s.Logger.Debug("command not enabled", map[string]interface{}{"command": req.Command, "status": cmd.Status})
		result.Outcome = domain.OutcomeRejected
		s.record(ctx, result, started, nil)
		return result, domain.ErrNotEnabled
	}

	sel, err := editor.Selection(ctx)
	if err != nil {
		return result, fmt.Errorf("read selection: %w", err)
	}
	if sel.IsEmpty() {
		result.Outcome = domain.OutcomeSkipped
		s.record(ctx, result, started, nil)
		return result, domain.ErrNoSelection
	}
	result.Selected = sel.Text

	s.begin(req.Command)
	defer s.end(req.Command)

	output, model, err := s.call(ctx, req.Command, sel.Text)
	result.Model = model
	if err != nil {
		s.fail(req.Command, err)
		result.Outcome = domain.OutcomeFailed
		s.record(ctx, result, started, err)
		return result, err
	}

	result.Inserted = req.Command.Compose(sel.Text, output)
	editor.Replace(ctx, sel, result.Inserted)
	result.Outcome = domain.OutcomeSuccess
	s.Logger.Info("command completed", map[string]interface{}{
		"command": req.Command,
		"model":   model,
	})
	s.record(ctx, result, started, nil)
	return result, nil
}

func (s *Service) call(ctx context.Context, key domain.CommandKey, text string) (string, string, error) {
	session, err := s.currentSession(ctx)
	if err != nil {
		return "", "", err
	}

	cfg, err := s.requestConfiguration(ctx)
	if err != nil {
		return "", "", err
	}
	payload, err := request.Build(key, text, cfg)
	if err != nil {
		return "", "", err
	}

	s.Logger.Debug("calling chat API", map[string]interface{}{
		"command":  key,
		"url":      cfg.URL,
		"model":    payload.Model,
		"messages": len(payload.Messages),
	})
	output, err := s.Client.Send(ctx, cfg.URL, payload, session.apiKey)
	return output, payload.Model, err
}

func (s *Service) requestConfiguration(ctx context.Context) (domain.RequestConfiguration, error) {
	var cfg domain.RequestConfiguration
	ok, err := s.Store.Get(ctx, domain.RequestConfigurationKey, &cfg)
	if err != nil {
		return domain.RequestConfiguration{}, fmt.Errorf("load request configuration: %w", err)
	}
	if !ok {
		return domain.RequestConfiguration{}, fmt.Errorf("%w: nothing stored under %s", domain.ErrConfigMissing, domain.RequestConfigurationKey)
	}
	return cfg, nil
}

func (s *Service) fail(key domain.CommandKey, err error) {
	s.Notifier.Notify(fmt.Sprintf("Failed to execute the '%s' command. Error message: %v", key, err))
	s.Logger.Error("command failed", err, map[string]interface{}{"command": key})
}

func (s *Service) record(ctx context.Context, result domain.InvocationResult, started time.Time, cause error) {
	if s.History == nil {
		return
	}
	rec := domain.HistoryRecord{
		ID:         uuid.NewString(),
		Timestamp:  started,
		Command:    result.Command,
		Model:      result.Model,
		Outcome:    result.Outcome,
		DurationMS: s.now().Sub(started).Milliseconds(),
	}
	if cause != nil {
		rec.Error = cause.Error()
	}
	if err := s.History.Save(ctx, rec); err != nil {
		s.Logger.Warn("failed to save history", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) begin(key domain.CommandKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == nil {
		s.inflight = make(map[domain.CommandKey]int)
	}
	s.inflight[key]++
}

func (s *Service) end(key domain.CommandKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[key]--
	if s.inflight[key] <= 0 {
		delete(s.inflight, key)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

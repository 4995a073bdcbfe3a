package registry

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/leafllm-go/assets"
	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/pkg/logger"
)

type memoryStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	writes   int
	failKeys map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}, failKeys: map[string]bool{}}
}

func (m *memoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryStore) Set(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failKeys[key] {
		return errors.New("disk full")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	m.writes++
	return nil
}

func (m *memoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryStore) put(t *testing.T, cmd domain.Command) {
	t.Helper()
	require.NoError(t, m.Set(context.Background(), string(cmd.Key), cmd))
	m.writes = 0
}

type stubShortcuts struct {
	bindings map[string]string
	err      error
}

func (s *stubShortcuts) Shortcuts(context.Context) (map[string]string, error) {
	return s.bindings, s.err
}

func newService(t *testing.T, store *memoryStore, bindings map[string]string) *Service {
	t.Helper()
	defaults, err := domain.DecodeRequestConfiguration(assets.DefaultRequestConfigurationJSON)
	require.NoError(t, err)
	return &Service{
		Store:     store,
		Shortcuts: &stubShortcuts{bindings: bindings},
		Logger:    logger.NewStd(false),
		Defaults:  defaults,
	}
}

func command(key domain.CommandKey, shortcut string, status domain.CommandStatus) domain.Command {
	return domain.Command{Key: key, Shortcut: shortcut, Status: status, Type: domain.RecordTypeCommand}
}

func TestReconcileMarksUnboundEnabledCommandsAsError(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.put(t, command(domain.CommandComplete, "Alt+C", domain.StatusEnabled))
	store.put(t, command(domain.CommandImprove, "Alt+I", domain.StatusEnabled))
	store.put(t, command(domain.CommandAsk, "Alt+A", domain.StatusEnabled))

	svc := newService(t, store, map[string]string{"Complete": "Alt+C"})
	failures, err := svc.Reconcile(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.CommandKey{domain.CommandImprove, domain.CommandAsk}, failures)
	assert.Equal(t, 2, store.writes, "only changed records are persisted")

	improve, err := svc.Command(ctx, domain.CommandImprove)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, improve.Status)
	assert.Empty(t, improve.Shortcut)
}

func TestReconcileNeverPromotesDisabledCommands(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.put(t, command(domain.CommandAsk, "Alt+A", domain.StatusDisabled))

	svc := newService(t, store, map[string]string{"Complete": "Alt+C", "Improve": "Alt+I"})
	failures, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, failures)

	ask, err := svc.Command(ctx, domain.CommandAsk)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisabled, ask.Status)
	assert.Empty(t, ask.Shortcut, "the shortcut still follows the host")
}

func TestReconcileRestoresEnabledOnceBound(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.put(t, command(domain.CommandImprove, "", domain.StatusError))

	svc := newService(t, store, map[string]string{"Complete": "Alt+C", "Improve": "Ctrl+Shift+I", "Ask": "Alt+A"})
	failures, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, failures)

	improve, err := svc.Command(ctx, domain.CommandImprove)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnabled, improve.Status)
	assert.Equal(t, "Ctrl+Shift+I", improve.Shortcut)
}

func TestReconcileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newService(t, store, map[string]string{"Complete": "Alt+K"})

	_, err := svc.Install(ctx)
	require.NoError(t, err)
	writesAfterFirst := store.writes

	failures, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, writesAfterFirst, store.writes, "second reconcile must not write")
	assert.Equal(t, []domain.CommandKey{domain.CommandImprove, domain.CommandAsk}, failures)
}

func TestReconcileSwallowsWriteFailures(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.put(t, command(domain.CommandAsk, "Alt+A", domain.StatusEnabled))
	store.failKeys["Ask"] = true

	svc := newService(t, store, map[string]string{})
	failures, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Contains(t, failures, domain.CommandAsk)
}

func TestReconcileReportsShortcutSourceErrors(t *testing.T) {
	svc := newService(t, newMemoryStore(), nil)
	svc.Shortcuts = &stubShortcuts{err: errors.New("permission denied")}

	_, err := svc.Reconcile(context.Background())
	assert.ErrorContains(t, err, "permission denied")
}

func TestInstallSeedsDefaultsWithoutOverwriting(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.put(t, command(domain.CommandAsk, "Alt+A", domain.StatusDisabled))
	require.NoError(t, store.Set(ctx, domain.RequestConfigurationKey, map[string]string{"url": "https://custom.test"}))

	svc := newService(t, store, map[string]string{"Complete": "Alt+C", "Improve": "Alt+I", "Ask": "Alt+A"})
	failures, err := svc.Install(ctx)
	require.NoError(t, err)
	assert.Empty(t, failures)

	commands, err := svc.Commands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Command{
		command(domain.CommandComplete, "Alt+C", domain.StatusEnabled),
		command(domain.CommandImprove, "Alt+I", domain.StatusEnabled),
		command(domain.CommandAsk, "Alt+A", domain.StatusDisabled),
	}, commands)

	var raw map[string]any
	_, err = store.Get(ctx, domain.RequestConfigurationKey, &raw)
	require.NoError(t, err)
	assert.Equal(t, "https://custom.test", raw["url"])
}

func TestInstallSeedsRequestConfiguration(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newService(t, store, map[string]string{})

	_, err := svc.Install(ctx)
	require.NoError(t, err)

	var cfg domain.RequestConfiguration
	ok, err := store.Get(ctx, domain.RequestConfigurationKey, &cfg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.DefaultEndpoint, cfg.URL)
}

func TestSetEnabled(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newService(t, store, map[string]string{"Complete": "Alt+C"})
	_, err := svc.Install(ctx)
	require.NoError(t, err)

	cmd, failures, err := svc.SetEnabled(ctx, domain.CommandAsk, false)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisabled, cmd.Status)
	assert.Equal(t, []domain.CommandKey{domain.CommandImprove}, failures)

	cmd, failures, err = svc.SetEnabled(ctx, domain.CommandAsk, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, cmd.Status, "re-enabling an unbound command reports the binding problem")
	assert.Equal(t, []domain.CommandKey{domain.CommandImprove, domain.CommandAsk}, failures)
}

func TestFormatBindingFailures(t *testing.T) {
	assert.Empty(t, FormatBindingFailures(nil, "/tmp/shortcuts.yaml"))

	msg := FormatBindingFailures([]domain.CommandKey{domain.CommandImprove, domain.CommandAsk}, "/tmp/shortcuts.yaml")
	assert.Contains(t, msg, "Could not bind the following shortcuts:\nImprove, Ask.")
	assert.Contains(t, msg, "/tmp/shortcuts.yaml")
}

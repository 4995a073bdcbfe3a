package reqconfig

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/leafllm-go/assets"
	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/pkg/logger"
)

type memorySettings struct {
	values map[string][]byte
	writes int
}

func (m *memorySettings) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}
func (m *memorySettings) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	m.writes++
	return nil
}
func (m *memorySettings) Remove(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func newService(t *testing.T) (*Service, *memorySettings) {
	t.Helper()
	defaults, err := domain.DecodeRequestConfiguration(assets.DefaultRequestConfigurationJSON)
	require.NoError(t, err)
	store := &memorySettings{values: map[string][]byte{}}
	return &Service{Store: store, Logger: logger.NewStd(false), Defaults: defaults}, store
}

const customConfig = `{
  "url": "http://localhost:8080/v1/chat/completions",
  "base": {"model": "llama3", "temperature": 0.2},
  "Complete": {"max_tokens": 64},
  "Improve": {},
  "Ask": {"messages": [{"role": "system", "content": "LaTeX only."}]}
}`

func TestCurrentFallsBackToDefaults(t *testing.T) {
	svc, _ := newService(t)
	cfg, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, svc.Defaults, cfg)

	diff, err := svc.Diff(context.Background())
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestSaveRawStoresValidConfiguration(t *testing.T) {
	svc, store := newService(t)

	saved, err := svc.SaveRaw(context.Background(), []byte(customConfig))
	require.NoError(t, err)
	assert.Equal(t, 1, store.writes)

	cfg, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, cfg)
	assert.Equal(t, "llama3", *cfg.Base.Model)

	diff, err := svc.Diff(context.Background())
	require.NoError(t, err)
	assert.Contains(t, diff, "llama3")
}

func TestSaveRawNeverWritesInvalidInput(t *testing.T) {
	svc, store := newService(t)

	cases := map[string]string{
		"not json":         `{"url":`,
		"unknown field":    `{"url":"https://x.test","base":{},"Complete":{},"Improve":{},"Ask":{},"extra":1}`,
		"missing template": `{"url":"https://x.test","base":{},"Complete":{},"Improve":{}}`,
		"bad scheme":       `{"url":"ftp://x.test","base":{},"Complete":{},"Improve":{},"Ask":{}}`,
		"bad temperature":  `{"url":"https://x.test","base":{"temperature":3},"Complete":{},"Improve":{},"Ask":{}}`,
		"trailing data":    `{"url":"https://x.test","base":{},"Complete":{},"Improve":{},"Ask":{}} {}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SaveRaw(context.Background(), []byte(raw))
			assert.Error(t, err)
		})
	}
	assert.Zero(t, store.writes)
}

func TestResetRestoresDefaults(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.SaveRaw(context.Background(), []byte(customConfig))
	require.NoError(t, err)

	require.NoError(t, svc.Reset(context.Background()))
	diff, err := svc.Diff(context.Background())
	require.NoError(t, err)
	assert.Empty(t, diff)
}

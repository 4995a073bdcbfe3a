package credential

import (
	"context"
	"os"

	"github.com/doeshing/leafllm-go/internal/ports"
)

// EnvFallback reads the key from an environment variable when the wrapped
// store holds none. Writes always go to the wrapped store.
type EnvFallback struct {
	ports.CredentialStore
	envVar string
}

// WithEnvFallback wraps store; an empty envVar disables the fallback.
func WithEnvFallback(store ports.CredentialStore, envVar string) *EnvFallback {
	return &EnvFallback{CredentialStore: store, envVar: envVar}
}

func (s *EnvFallback) Get(ctx context.Context) (string, error) {
	key, err := s.CredentialStore.Get(ctx)
	if err != nil || key != "" || s.envVar == "" {
		return key, err
	}
	return os.Getenv(s.envVar), nil
}

package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/ports"
)

// Session holds the credential used for API calls. It is built lazily on
// the first invocation and dropped whenever the credential changes.
type Session struct {
	apiKey string
}

func newSession(ctx context.Context, store ports.CredentialStore) (*Session, error) {
	key, err := store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrCredentialMissing
	}
	return &Session{apiKey: key}, nil
}

func (s *Service) currentSession(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return s.session, nil
	}
	session, err := newSession(ctx, s.Credentials)
	if err != nil {
		return nil, err
	}
	s.session = session
	return session, nil
}

// ResetSession discards the cached credential so the next invocation
// reads it again.
func (s *Service) ResetSession() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

package shortcuts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/pkg/filesystem"
	"github.com/doeshing/leafllm-go/internal/ports"
)

var modifiers = []string{"Ctrl", "Alt", "Shift", "Command", "MacCtrl", "Meta"}

// bindingsFile mirrors ~/.leafllm/shortcuts.yaml, which editor integrations
// read to map keys to leafllm invocations.
type bindingsFile struct {
	Bindings map[string]string `yaml:"bindings"`
}

// FileSource is the host shortcut system backed by a YAML bindings file.
// A missing file means nothing is bound.
type FileSource struct {
	path string
	mu   sync.Mutex
}

// NewFileSource builds a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the bindings file location.
func (s *FileSource) Path() string {
	return s.path
}

// Shortcuts implements ports.ShortcutSource.
func (s *FileSource) Shortcuts(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := s.read()
	if err != nil {
		return nil, err
	}
	return lo.PickBy(file.Bindings, func(_ string, combo string) bool {
		return combo != ""
	}), nil
}

// EnsureDefaults writes the suggested bindings when no bindings file exists.
// A suggested combination already claimed by an earlier command is left
// unbound. It reports whether the file was created.
func (s *FileSource) EnsureDefaults(ctx context.Context, suggested []lo.Entry[string, string]) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	file := bindingsFile{Bindings: map[string]string{}}
	claimed := map[string]bool{}
	for _, entry := range suggested {
		combo := normalize(entry.Value)
		if combo == "" || claimed[strings.ToLower(combo)] {
			file.Bindings[entry.Key] = ""
			continue
		}
		claimed[strings.ToLower(combo)] = true
		file.Bindings[entry.Key] = combo
	}
	return true, s.write(file)
}

// Bind assigns combo to name. Combinations already bound to another
// command are refused.
func (s *FileSource) Bind(ctx context.Context, name, combo string) error {
	combo = normalize(combo)
	if err := Validate(combo); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := s.read()
	if err != nil {
		return err
	}
	for other, existing := range file.Bindings {
		if other != name && strings.EqualFold(existing, combo) {
			return fmt.Errorf("shortcut %s is already bound to %s", combo, other)
		}
	}
	file.Bindings[name] = combo
	return s.write(file)
}

// Unbind clears the binding for name.
func (s *FileSource) Unbind(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := s.read()
	if err != nil {
		return err
	}
	file.Bindings[name] = ""
	return s.write(file)
}

// Validate checks that combo is one or more modifiers followed by a key.
func Validate(combo string) error {
	parts := strings.Split(combo, "+")
	if len(parts) < 2 {
		return fmt.Errorf("shortcut %q must combine a modifier and a key (e.g. Alt+C)", combo)
	}
	key := parts[len(parts)-1]
	if key == "" {
		return fmt.Errorf("shortcut %q has no key", combo)
	}
	for _, mod := range parts[:len(parts)-1] {
		if !lo.Contains(modifiers, mod) {
			return fmt.Errorf("shortcut %q uses unknown modifier %q (expected one of %s)", combo, mod, strings.Join(modifiers, ", "))
		}
	}
	return nil
}

func normalize(combo string) string {
	parts := strings.Split(strings.TrimSpace(combo), "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == len(parts)-1 && len(part) == 1 {
			part = strings.ToUpper(part)
		} else if mod, ok := lo.Find(modifiers, func(m string) bool { return strings.EqualFold(m, part) }); ok {
			part = mod
		}
		parts[i] = part
	}
	return strings.Join(parts, "+")
}

func (s *FileSource) read() (bindingsFile, error) {
	file := bindingsFile{Bindings: map[string]string{}}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return file, nil
	}
	if err != nil {
		return file, fmt.Errorf("read shortcuts: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse shortcuts %s: %w", s.path, err)
	}
	if file.Bindings == nil {
		file.Bindings = map[string]string{}
	}
	return file, nil
}

func (s *FileSource) write(file bindingsFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	raw, err := yaml.Marshal(file)
	if err != nil {
		return err
	}
	return filesystem.WriteFileAtomic(s.path, raw, domain.SecureFilePermissions)
}

var _ ports.ShortcutSource = (*FileSource)(nil)

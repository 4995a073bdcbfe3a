package selection

import (
	"fmt"
	"os"

	"github.com/doeshing/leafllm-go/internal/pkg/filesystem"
)

// FileDocument is a Buffer loaded from a file on disk.
type FileDocument struct {
	*Buffer
	path string
	mode os.FileMode
}

// OpenFile loads path into a buffer.
func OpenFile(path string) (*FileDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &FileDocument{
		Buffer: NewBuffer(string(data)),
		path:   path,
		mode:   info.Mode().Perm(),
	}, nil
}

// Path returns the file location.
func (d *FileDocument) Path() string {
	return d.path
}

// Save writes the buffer back when it changed and reports whether it did.
func (d *FileDocument) Save() (bool, error) {
	if !d.Changed() {
		return false, nil
	}
	if err := filesystem.WriteFileAtomic(d.path, []byte(d.String()), d.mode); err != nil {
		return false, err
	}
	return true, nil
}

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mypad/internal/domain"
)

const noteExt = ".note"

var (
	// ErrNoteNotFound is returned by LoadSealed for an unknown name.
	ErrNoteNotFound = errors.New("note not found")
	// ErrBadNoteName rejects names that reduce to nothing usable.
	ErrBadNoteName = errors.New("invalid note name")
)

// NoteFileStore persists sealed notes under dir.
type NoteFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewNoteFileStore returns a NoteFileStore rooted at dir.
func NewNoteFileStore(dir string) *NoteFileStore {
	return &NoteFileStore{dir: dir}
}

// SaveSealed writes blob as note name, replacing any previous version.
func (s *NoteFileStore) SaveSealed(name, blob string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return replaceFile(path, []byte(blob+"\n"), 0o600)
}

// LoadSealed returns the stored envelope text for name.
func (s *NoteFileStore) LoadSealed(name string) (string, error) {
	path, err := s.path(name)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoteNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// List returns the stored note names in directory order.
func (s *NoteFileStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), noteExt) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), noteExt))
	}
	return out, nil
}

// path confines name to a single file inside dir.
func (s *NoteFileStore) path(name string) (string, error) {
	base := filepath.Base(strings.TrimSuffix(name, noteExt))
	if base == "." || base == ".." || base == string(filepath.Separator) || base == "" {
		return "", ErrBadNoteName
	}
	return filepath.Join(s.dir, base+noteExt), nil
}

// Compile-time assertion that NoteFileStore implements domain.NoteStore.
var _ domain.NoteStore = (*NoteFileStore)(nil)

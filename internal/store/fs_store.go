package store

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ListFilename is the cache file name inside the shared data directory.
const ListFilename = "bg-list.txt"

const maxLineBytes = 1 << 20

// FSStore keeps the game list as a newline-delimited text file.
type FSStore struct {
	path string
}

// NewFSStore constructs a store whose list lives at {dir}/bg-list.txt.
func NewFSStore(dir string) *FSStore {
	return &FSStore{path: filepath.Join(dir, ListFilename)}
}

// Path returns the list file location.
func (s *FSStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Exists reports whether the list file is present.
func (s *FSStore) Exists() (bool, error) {
	if s == nil {
		return false, errors.New("store not configured")
	}
	_, err := os.Stat(s.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, newError("stat", s.path, err)
	}
}

// Write replaces the list file with names, one per line.
// Any previous file is removed first and the new content is renamed into place,
// so readers see either no file or a complete list.
func (s *FSStore) Write(names []string) error {
	if s == nil {
		return errors.New("store not configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return newError("write", s.path, err)
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return newError("remove", s.path, err)
	}

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		_ = os.Remove(tmp)
		return newError("write", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return newError("write", s.path, err)
	}
	return nil
}

// ReadAll returns every line of the list file in order.
// A missing file yields an error matching fs.ErrNotExist.
func (s *FSStore) ReadAll() ([]string, error) {
	if s == nil {
		return nil, errors.New("store not configured")
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, newError("read", s.path, err)
	}
	defer f.Close()

	names := []string{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		names = append(names, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, newError("read", s.path, err)
	}
	return names, nil
}

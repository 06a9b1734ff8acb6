// Package content measures item content for the selection statistics.
package content

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"filepick/internal/errors"

	"github.com/gabriel-vasile/mimetype"
)

// Reader returns the length of the content behind an item id.
type Reader interface {
	Length(id string) (int, error)
}

// FileReader reads files relative to Root. Text files are measured in
// characters, anything else in bytes.
type FileReader struct {
	Root string
}

// NewFileReader creates a FileReader rooted at root.
func NewFileReader(root string) *FileReader {
	return &FileReader{Root: root}
}

// Resolve maps an item id to a filesystem path.
func (r *FileReader) Resolve(id string) string {
	if filepath.IsAbs(id) || r.Root == "" {
		return id
	}
	return filepath.Join(r.Root, filepath.FromSlash(id))
}

// Length implements Reader.
func (r *FileReader) Length(id string) (int, error) {
	data, err := os.ReadFile(r.Resolve(id))
	if err != nil {
		return 0, readError(id, err)
	}
	if IsText(data) {
		return utf8.RuneCount(data), nil
	}
	return len(data), nil
}

// IsText reports whether data sniffs as text/plain or one of its children.
func IsText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func readError(id string, err error) error {
	kind := errors.FileReadFailed
	switch {
	case os.IsNotExist(err):
		kind = errors.FileNotFound
	case os.IsPermission(err):
		kind = errors.FileAccessDenied
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return errors.NewFileError("cannot read content", id, kind, err)
}

// StaticReader serves fixed lengths and errors keyed by id, and counts
// reads. Ids in neither map read as not found.
type StaticReader struct {
	Lengths map[string]int
	Errors  map[string]error

	mu    sync.Mutex
	reads map[string]int
}

// Length implements Reader.
func (s *StaticReader) Length(id string) (int, error) {
	s.mu.Lock()
	if s.reads == nil {
		s.reads = make(map[string]int)
	}
	s.reads[id]++
	s.mu.Unlock()

	if err, ok := s.Errors[id]; ok {
		return 0, readError(id, err)
	}
	n, ok := s.Lengths[id]
	if !ok {
		return 0, readError(id, os.ErrNotExist)
	}
	return n, nil
}

// Reads returns how many times id has been read.
func (s *StaticReader) Reads(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[id]
}

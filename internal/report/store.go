// Package report persists the generated newsletter to disk. The report file
// is the only state a run leaves behind.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store writes timestamped newsletter reports under a fixed directory.
type Store struct {
	dir string
}

// NewStore builds a store rooted at dir; the directory is created on first
// save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the report as a Markdown file named after the generation time
// and returns the full path.
func (s *Store) Save(report string, at time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", s.dir, err)
	}

	name := fmt.Sprintf("newsletter-%s.md", at.Format("20060102-150405"))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}

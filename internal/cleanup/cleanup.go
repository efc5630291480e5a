// Package cleanup removes temporary output files left behind by an
// interrupted or failed run.
package cleanup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var logger = slog.Default()

// SetLogger overrides the cleanup logger (useful for CLI configured logging).
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Tracker remembers temporary files until they are committed or removed.
type Tracker struct {
	files map[string]struct{}
	mu    sync.Mutex
}

// NewTracker creates a new cleanup tracker
func NewTracker() *Tracker {
	return &Tracker{
		files: make(map[string]struct{}),
	}
}

// CreateTemp creates a temporary file next to target and registers it.
func (t *Tracker) CreateTemp(target string) (*os.File, error) {
	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	t.Register(f.Name())
	return f, nil
}

// Commit renames a registered temporary file to target and stops tracking it.
func (t *Tracker) Commit(tmp, target string) error {
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", target, err)
	}
	t.Unregister(tmp)
	return nil
}

// Register adds a file path to the cleanup list
func (t *Tracker) Register(path string) {
	if path == "" || path == "-" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files[path] = struct{}{}
}

// Unregister removes a file path from the cleanup list
func (t *Tracker) Unregister(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.files, path)
}

// Pending returns the files still registered, in no particular order.
func (t *Tracker) Pending() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	files := make([]string, 0, len(t.files))
	for path := range t.files {
		files = append(files, path)
	}
	return files
}

// Cleanup removes all registered files
func (t *Tracker) Cleanup() {
	t.mu.Lock()
	files := make([]string, 0, len(t.files))
	for path := range t.files {
		files = append(files, path)
	}
	t.files = make(map[string]struct{})
	t.mu.Unlock()

	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			// Best effort
			logger.Warn("cleanup_failed", "file", path, "error", err)
		}
	}
}

// Package storage persists finished report artifacts. The executor only
// sees the Store interface so tests can inject write failures.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Store interface {
	// Save writes the artifact under a collision-resistant name derived
	// from the process token and returns its location.
	Save(processID string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	Exists(path string) bool
}

// Local writes artifacts to a directory on disk (default tmp/reports).
type Local struct {
	Dir string
}

func NewLocal(dir string) *Local {
	if dir == "" {
		dir = filepath.Join("tmp", "reports")
	}
	return &Local{Dir: dir}
}

func (s *Local) Save(processID string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	// Timestamp suffix keeps names unique across attempts for the same token.
	name := fmt.Sprintf("report_%s_%d.csv", processID, time.Now().Unix())
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return path, nil
}

func (s *Local) Read(path string) ([]byte, error) { return os.ReadFile(path) }

func (s *Local) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Package snapshots captures and restores the state of the host Python
// environment around dependency installs.
//
// A snapshot is a pip-freeze format text file on disk plus an index row
// in the store. Restoring re-installs the pinned versions, with
// host-critical packages filtered out the same way installs filter them.
package snapshots

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blackwell-systems/pylaunch/internal/store"
)

// Pip is the subset of the pip runner the snapshot manager needs.
type Pip interface {
	Freeze() ([]byte, error)
	InstallFromFile(path string) (string, error)
}

// Manager manages snapshot creation, restoration and listing.
type Manager struct {
	store       *store.Store
	pip         Pip
	snapshotDir string
}

// New creates a snapshot Manager writing files under snapshotDir.
func New(st *store.Store, p Pip, snapshotDir string) *Manager {
	return &Manager{store: st, pip: p, snapshotDir: snapshotDir}
}

// Create captures the current environment and returns the snapshot ID.
func (m *Manager) Create(reason string) (int64, error) {
	if m.store == nil {
		return 0, fmt.Errorf("snapshot store unavailable")
	}

	if err := os.MkdirAll(m.snapshotDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	frozen, err := m.pip.Freeze()
	if err != nil {
		return 0, fmt.Errorf("failed to capture environment: %w", err)
	}

	// Nanosecond timestamps keep filenames unique even when two installs
	// land in the same second.
	filename := fmt.Sprintf("%s-%d.txt", time.Now().Format("2006-01-02-150405"), time.Now().Nanosecond())
	path := filepath.Join(m.snapshotDir, filename)

	if err := os.WriteFile(path, frozen, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write snapshot file: %w", err)
	}

	id, err := m.store.InsertSnapshot(reason, countPins(frozen), path)
	if err != nil {
		// Keep the index consistent with the filesystem.
		os.Remove(path)
		return 0, fmt.Errorf("failed to index snapshot: %w", err)
	}

	return id, nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]*store.Snapshot, error) {
	if m.store == nil {
		return nil, fmt.Errorf("snapshot store unavailable")
	}
	snapshots, err := m.store.ListSnapshots()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// countPins counts the package lines in pip-freeze output.
func countPins(frozen []byte) int {
	count := 0
	sc := bufio.NewScanner(bytes.NewReader(frozen))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		count++
	}
	return count
}

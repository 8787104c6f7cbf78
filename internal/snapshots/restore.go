package snapshots

import (
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/pylaunch/internal/reqs"
)

// Restore re-installs the package versions recorded in the snapshot with
// the given ID. Host-critical packages in the snapshot are skipped, so a
// restore can never downgrade the packages the launcher itself depends
// on. The skipped lines are returned for reporting.
func (m *Manager) Restore(id int64) ([]string, error) {
	if m.store == nil {
		return nil, fmt.Errorf("snapshot store unavailable")
	}

	snapshot, err := m.store.GetSnapshot(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if _, err := os.Stat(snapshot.Path); err != nil {
		return nil, fmt.Errorf("snapshot file missing: %w", err)
	}

	safePath, skipped, err := reqs.Filter(snapshot.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare restore list: %w", err)
	}
	defer os.Remove(safePath)

	if out, err := m.pip.InstallFromFile(safePath); err != nil {
		if out = strings.TrimSpace(out); out != "" {
			return skipped, fmt.Errorf("failed to restore packages: %w (output: %s)", err, out)
		}
		return skipped, fmt.Errorf("failed to restore packages: %w", err)
	}

	return skipped, nil
}

package launcher

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/pylaunch/internal/reqs"
	"github.com/blackwell-systems/pylaunch/internal/scanner"
	"github.com/blackwell-systems/pylaunch/internal/store"
)

// InstallDeps installs app's declared dependencies, with host-critical
// packages filtered out of the request. On success the cache entry for
// the application root is refreshed; on failure the cache is left
// untouched so the next launch retries the install.
//
// A snapshot of the environment is taken first when a Snapshotter is
// configured. Snapshot failure is reported but never blocks the install.
func (l *Launcher) InstallDeps(app *scanner.App) error {
	if !app.HasRequirements() {
		return nil
	}

	if l.Snapshots != nil {
		if _, err := l.Snapshots.Create("pre-install " + app.Name); err != nil {
			l.status("snapshot failed, continuing: %v", err)
		}
	}

	safePath, skipped, err := reqs.Filter(app.RequirementsFile)
	if err != nil {
		return fmt.Errorf("preparing install list: %w", err)
	}
	defer os.Remove(safePath)

	if len(skipped) > 0 {
		l.status("skipped protected packages: %s", strings.Join(skipped, ", "))
	}

	l.status("installing requirements for %s", app.Name)
	if out, err := l.Pip.InstallFromFile(safePath); err != nil {
		if out = strings.TrimSpace(out); out != "" {
			return fmt.Errorf("installing requirements: %w (output: %s)", err, out)
		}
		return fmt.Errorf("installing requirements: %w", err)
	}

	// Fingerprint the original file, not the filtered copy: the cache
	// must match what a later reconcile will hash.
	fingerprint, err := reqs.Fingerprint(app.RequirementsFile)
	if err != nil {
		return fmt.Errorf("fingerprinting dependency file: %w", err)
	}

	if l.Store != nil {
		entry := &store.CacheEntry{
			RootPath:        app.Root,
			Fingerprint:     fingerprint,
			InstalledAt:     time.Now(),
			SkippedPackages: skipped,
		}
		if err := l.Store.PutEntry(entry); err != nil {
			return fmt.Errorf("recording install in cache: %w", err)
		}
	}

	l.status("requirements installed successfully (skipped %d protected packages)", len(skipped))
	return nil
}

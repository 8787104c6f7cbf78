package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/pylaunch/internal/config"
	"github.com/blackwell-systems/pylaunch/internal/launcher"
	"github.com/blackwell-systems/pylaunch/internal/pip"
	"github.com/blackwell-systems/pylaunch/internal/scanner"
	"github.com/blackwell-systems/pylaunch/internal/snapshots"
	"github.com/blackwell-systems/pylaunch/internal/store"
)

// loadSettings reads the user settings, falling back to defaults with a
// warning when the file is malformed. Settings problems must never make
// the launcher unusable.
func loadSettings() *config.Settings {
	dir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot locate config directory: %v\n", err)
		return &config.Settings{CustomNames: make(map[string]string)}
	}
	settings, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring settings: %v\n", err)
		return &config.Settings{CustomNames: make(map[string]string)}
	}
	return settings
}

// resolvePython picks the interpreter: flag beats settings beats PATH.
func resolvePython(settings *config.Settings) string {
	if pythonFlag != "" {
		return pythonFlag
	}
	if settings.Python != "" {
		return settings.Python
	}
	return pip.DefaultPython()
}

// openCache opens the cache database, returning nil when it cannot be
// opened or initialized. A nil store degrades to cache misses rather
// than blocking launches.
func openCache() *store.Store {
	path, err := getDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cache unavailable: %v\n", err)
		return nil
	}
	st, err := store.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cache unavailable: %v\n", err)
		return nil
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		fmt.Fprintf(os.Stderr, "Warning: cache unavailable: %v\n", err)
		return nil
	}
	return st
}

// buildRegistry scans the managed directory plus any configured external
// roots and applies display-name overrides.
func buildRegistry(settings *config.Settings) *scanner.Registry {
	reg := scanner.Scan(appsDir, settings.ExternalRoots)
	for _, app := range reg.Apps() {
		app.DisplayName = settings.DisplayName(app.Identity, app.Name)
	}
	return reg
}

// newLauncher wires a launcher from the shared pieces. The snapshot
// manager is attached only when both the store and snapshot dir resolve.
func newLauncher(st *store.Store, settings *config.Settings) *launcher.Launcher {
	python := resolvePython(settings)
	runner := pip.NewRunner(python)

	l := launcher.New(st, runner, python)
	l.Status = func(msg string) { fmt.Println(msg) }

	if st != nil {
		if snapDir, err := getSnapshotDir(); err == nil {
			l.Snapshots = snapshots.New(st, runner, snapDir)
		}
	}
	return l
}

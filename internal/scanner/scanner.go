// Package scanner discovers launchable Python sub-applications on disk and
// builds the in-memory application registry.
//
// Discovery is a full rebuild every time: the registry is never patched
// incrementally, so identities from a previous pass are discarded and
// recomputed. A missing or unreadable directory is skipped, never fatal;
// the scan returns whatever subset is discoverable.
package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry is one immutable snapshot of discovered applications.
type Registry struct {
	apps map[string]*App
}

// Get returns the app with the given identity, if present.
func (r *Registry) Get(identity string) (*App, bool) {
	app, ok := r.apps[identity]
	return app, ok
}

// Apps returns all discovered apps sorted by identity.
func (r *Registry) Apps() []*App {
	apps := make([]*App, 0, len(r.apps))
	for _, app := range r.apps {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].Identity < apps[j].Identity
	})
	return apps
}

// Identities returns the sorted identity set of the registry.
func (r *Registry) Identities() []string {
	ids := make([]string, 0, len(r.apps))
	for id := range r.apps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of discovered apps.
func (r *Registry) Len() int {
	return len(r.apps)
}

// Scan builds a fresh registry from the primary applications root and any
// externally configured roots.
//
// The primary root is created if absent; its immediate subdirectories
// qualify when they contain the entry-point file, skipping hidden entries.
// An external root qualifies only when it itself contains the entry-point
// file; otherwise it is silently skipped. Scan never fails.
func Scan(primaryRoot string, externalRoots []string) *Registry {
	reg := &Registry{apps: make(map[string]*App)}

	if err := os.MkdirAll(primaryRoot, 0755); err == nil {
		entries, err := os.ReadDir(primaryRoot)
		if err == nil {
			for _, entry := range entries {
				if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
					continue
				}
				if app := newApp(filepath.Join(primaryRoot, entry.Name()), OriginPrimary); app != nil {
					reg.apps[app.Identity] = app
				}
			}
		}
	}

	for _, root := range externalRoots {
		if app := newApp(root, OriginExternal); app != nil {
			reg.apps[app.Identity] = app
		}
	}

	return reg
}

// newApp builds an application record for dir, or nil when dir does not
// qualify (missing, unreadable, or no entry point).
func newApp(dir string, origin Origin) *App {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	entryPoint := filepath.Join(root, EntryPointName)
	if fi, err := os.Stat(entryPoint); err != nil || fi.IsDir() {
		return nil
	}

	name := filepath.Base(root)
	app := &App{
		Identity:         name,
		Name:             name,
		DisplayName:      name,
		Root:             root,
		EntryPoint:       entryPoint,
		RequirementsFile: filepath.Join(root, RequirementsName),
		ReadmeFile:       filepath.Join(root, ReadmeName),
		Origin:           origin,
	}

	// External apps get a path-derived suffix so a same-named primary app
	// cannot collide with them. The digest of the canonical absolute path
	// is stable across rescans and across process restarts.
	if origin == OriginExternal {
		app.Identity = fmt.Sprintf("%s-%s", name, shortPathDigest(root))
	}

	return app
}

// shortPathDigest returns the first 8 hex characters of the SHA-256 digest
// of the canonical absolute path.
func shortPathDigest(path string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(path)))
	return hex.EncodeToString(sum[:])[:8]
}

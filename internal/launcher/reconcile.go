package launcher

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/pylaunch/internal/reqs"
	"github.com/blackwell-systems/pylaunch/internal/scanner"
	"github.com/blackwell-systems/pylaunch/internal/store"
)

// Decision is the outcome of reconciling one application's declared
// dependencies against the cache and the installed environment.
type Decision struct {
	Install bool   // whether an install pass is required
	Reason  string // human-readable justification for the decision
}

// NeedsInstall decides whether app requires a dependency install before it
// can be launched. The checks run in a fixed order and the first
// conclusive one wins:
//
//  1. no requirements file        → no install ("no dependency file")
//  2. unreadable requirements     → no install, launch proceeds anyway
//  3. fingerprint differs / no cache entry → install
//  4. any declared package absent from the environment → install
//
// A cache hit alone is never sufficient: packages can disappear from the
// interpreter between launches, so step 4 always verifies presence. An
// error from the environment query is conclusive and aborts the launch,
// since installing blindly could mutate an environment we cannot see.
func (l *Launcher) NeedsInstall(app *scanner.App) (Decision, error) {
	if !app.HasRequirements() {
		return Decision{Install: false, Reason: "no dependency file"}, nil
	}

	fingerprint, err := reqs.Fingerprint(app.RequirementsFile)
	if err != nil {
		// Fail open: an unreadable file must not block the launch.
		return Decision{Install: false, Reason: "could not read dependency file"}, nil
	}

	if l.cachedFingerprint(app.Root) != fingerprint {
		return Decision{Install: true, Reason: "dependency file changed"}, nil
	}

	requirements, err := reqs.Parse(app.RequirementsFile)
	if err != nil {
		return Decision{Install: false, Reason: "could not read dependency file"}, nil
	}

	installed, err := l.Pip.ListInstalled()
	if err != nil {
		return Decision{}, fmt.Errorf("querying installed packages: %w", err)
	}

	for _, r := range requirements {
		if reqs.ProtectedPackages[r.Canonical] {
			continue
		}
		if _, ok := installed[r.Canonical]; !ok {
			return Decision{Install: true, Reason: fmt.Sprintf("package %s not installed", r.Name)}, nil
		}
	}

	return Decision{Install: false, Reason: "all requirements satisfied"}, nil
}

// cachedFingerprint returns the stored fingerprint for root, or "" when
// the cache has no entry or is unavailable.
func (l *Launcher) cachedFingerprint(root string) string {
	if l.Store == nil {
		return ""
	}
	entry, err := l.Store.GetEntry(root)
	if err != nil {
		if !errors.Is(err, store.ErrNoEntry) {
			l.status("cache read failed, assuming stale: %v", err)
		}
		return ""
	}
	return entry.Fingerprint
}

// Package launcher orchestrates dependency reconciliation, conditional
// installation and process spawn for discovered applications.
//
// One launch is a strictly sequential flow: reconcile → install (only if
// needed) → spawn. The launched application is fire-and-forget: it is
// started as a detached child and never awaited. No phase is retried
// automatically; every failure is terminal for that single attempt.
package launcher

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/pylaunch/internal/pip"
	"github.com/blackwell-systems/pylaunch/internal/store"
)

// ErrUnknownApp is returned when a launch is requested for an identity
// that is absent from the current registry.
var ErrUnknownApp = errors.New("unknown application")

// Pip is the subset of the pip runner the launcher depends on.
type Pip interface {
	InstallFromFile(path string) (string, error)
	ListInstalled() (map[string]string, error)
}

// Snapshotter captures the environment before an install mutates it.
type Snapshotter interface {
	Create(reason string) (int64, error)
}

// Launcher runs the reconcile → install → spawn sequence for one
// application at a time.
//
// Store may be nil when the cache database is unavailable; the launcher
// then behaves as if the cache were empty. Snapshots is optional.
// Status, when set, receives a human-readable message at each phase
// transition; it is an observability surface, not a control surface.
type Launcher struct {
	Store     *store.Store
	Pip       Pip
	Python    string // interpreter used to spawn entry points
	Snapshots Snapshotter
	Status    func(msg string)
}

// New creates a Launcher. An empty python selects the default interpreter
// from PATH at spawn time.
func New(st *store.Store, p Pip, python string) *Launcher {
	return &Launcher{Store: st, Pip: p, Python: python}
}

func (l *Launcher) status(format string, args ...interface{}) {
	if l.Status != nil {
		l.Status(fmt.Sprintf(format, args...))
	}
}

// python returns the interpreter to spawn with.
func (l *Launcher) python() string {
	if l.Python != "" {
		return l.Python
	}
	return pip.DefaultPython()
}

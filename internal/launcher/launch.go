package launcher

import (
	"fmt"
	"os/exec"

	"github.com/blackwell-systems/pylaunch/internal/scanner"
)

// Outcome summarizes one completed launch.
type Outcome struct {
	Identity  string
	Installed bool   // whether an install pass ran before the spawn
	Reason    string // reconcile decision that led here
	PID       int
}

// Launch runs the full sequence for the application with the given
// identity: reconcile, install when required, then spawn the entry point
// as a detached process. The child is released immediately; its lifetime
// and exit status are its own business.
func (l *Launcher) Launch(reg *scanner.Registry, identity string) (Outcome, error) {
	app, ok := reg.Get(identity)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownApp, identity)
	}

	decision, err := l.NeedsInstall(app)
	if err != nil {
		return Outcome{}, fmt.Errorf("reconciling %s: %w", app.Name, err)
	}
	l.status("%s: %s", app.Name, decision.Reason)

	if decision.Install {
		if err := l.InstallDeps(app); err != nil {
			return Outcome{}, fmt.Errorf("installing dependencies for %s: %w", app.Name, err)
		}
	}

	pid, err := l.spawn(app)
	if err != nil {
		return Outcome{}, fmt.Errorf("starting %s: %w", app.Name, err)
	}

	l.status("started %s (pid %d)", app.Name, pid)
	return Outcome{
		Identity:  app.Identity,
		Installed: decision.Install,
		Reason:    decision.Reason,
		PID:       pid,
	}, nil
}

// spawn starts the entry point in the application root and detaches.
func (l *Launcher) spawn(app *scanner.App) (int, error) {
	cmd := exec.Command(l.python(), scanner.EntryPointName)
	cmd.Dir = app.Root
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("detaching process: %w", err)
	}
	return pid, nil
}

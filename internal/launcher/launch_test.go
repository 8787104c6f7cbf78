package launcher

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/pylaunch/internal/scanner"
)

// registryFor wraps a single app in a registry scanned from its parent.
func registryFor(t *testing.T, app *scanner.App) *scanner.Registry {
	t.Helper()
	return scanner.Scan(filepath.Dir(app.Root), nil)
}

func TestLaunchUnknownIdentity(t *testing.T) {
	app := newTestApp(t, "only", "")
	l := New(newTestStore(t), &fakePip{}, "true")

	_, err := l.Launch(registryFor(t, app), "no-such-app")
	if !errors.Is(err, ErrUnknownApp) {
		t.Errorf("err = %v, want ErrUnknownApp", err)
	}
}

func TestLaunchSpawnsDetached(t *testing.T) {
	app := newTestApp(t, "hello", "")
	// "true" accepts and ignores the entry point argument, which makes
	// it a safe stand-in for a real interpreter.
	l := New(newTestStore(t), &fakePip{}, "true")

	out, err := l.Launch(registryFor(t, app), app.Identity)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if out.PID <= 0 {
		t.Errorf("PID = %d, want > 0", out.PID)
	}
	if out.Installed {
		t.Error("no install expected for app without requirements")
	}
	if out.Reason != "no dependency file" {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestLaunchRunsInstallWhenNeeded(t *testing.T) {
	app := newTestApp(t, "needy", "requests\n")
	p := &fakePip{installed: map[string]string{}}
	l := New(newTestStore(t), p, "true")

	out, err := l.Launch(registryFor(t, app), app.Identity)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if !out.Installed {
		t.Error("expected an install pass before the spawn")
	}
	if len(p.installedFiles) != 1 {
		t.Errorf("InstallFromFile called %d times, want 1", len(p.installedFiles))
	}
}

func TestLaunchInstallFailureAbortsSpawn(t *testing.T) {
	app := newTestApp(t, "doomed", "requests\n")
	p := &fakePip{installErr: errors.New("exit status 1")}
	l := New(newTestStore(t), p, "true")

	if _, err := l.Launch(registryFor(t, app), app.Identity); err == nil {
		t.Error("expected launch to fail when install fails")
	}
}

func TestLaunchMissingInterpreter(t *testing.T) {
	app := newTestApp(t, "lost", "")
	l := New(newTestStore(t), &fakePip{}, filepath.Join(t.TempDir(), "no-python"))

	if _, err := l.Launch(registryFor(t, app), app.Identity); err == nil {
		t.Error("expected spawn failure for nonexistent interpreter")
	}
}

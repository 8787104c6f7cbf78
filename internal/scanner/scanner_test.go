package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// makeApp creates an application directory under root with an entry point
// and returns its path. Extra files are written relative to the app dir.
func makeApp(t *testing.T, root, name string, extra ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create app dir: %v", err)
	}
	files := append([]string{EntryPointName}, extra...)
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("print('hi')\n"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", f, err)
		}
	}
	return dir
}

func TestScanPrimaryRoot(t *testing.T) {
	primary := filepath.Join(t.TempDir(), "apps")
	makeApp(t, primary, "alpha", RequirementsName)
	makeApp(t, primary, "beta")

	// Does not qualify: no entry point.
	if err := os.MkdirAll(filepath.Join(primary, "garbage"), 0755); err != nil {
		t.Fatal(err)
	}
	// Hidden directories are skipped even with an entry point.
	makeApp(t, primary, ".hidden")
	// Plain files in the root are not applications.
	if err := os.WriteFile(filepath.Join(primary, "stray.py"), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	reg := Scan(primary, nil)

	want := []string{"alpha", "beta"}
	if got := reg.Identities(); !reflect.DeepEqual(got, want) {
		t.Errorf("identities = %v, want %v", got, want)
	}

	alpha, ok := reg.Get("alpha")
	if !ok {
		t.Fatal("alpha not found")
	}
	if alpha.Origin != OriginPrimary {
		t.Errorf("alpha origin = %s, want %s", alpha.Origin, OriginPrimary)
	}
	if !alpha.HasRequirements() {
		t.Error("alpha should report a requirements file")
	}
	if _, err := os.Stat(alpha.EntryPoint); err != nil {
		t.Errorf("entry point should exist: %v", err)
	}

	beta, _ := reg.Get("beta")
	if beta.HasRequirements() {
		t.Error("beta should not report a requirements file")
	}
}

func TestScanCreatesMissingPrimaryRoot(t *testing.T) {
	primary := filepath.Join(t.TempDir(), "does-not-exist-yet")

	reg := Scan(primary, nil)

	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d apps", reg.Len())
	}
	if fi, err := os.Stat(primary); err != nil || !fi.IsDir() {
		t.Errorf("primary root should have been created: %v", err)
	}
}

func TestScanExternalRoots(t *testing.T) {
	base := t.TempDir()
	primary := filepath.Join(base, "apps")
	external := makeApp(t, base, "tool")

	// An external root without an entry point is silently skipped.
	emptyExternal := filepath.Join(base, "empty")
	if err := os.MkdirAll(emptyExternal, 0755); err != nil {
		t.Fatal(err)
	}
	// So is a configured root that does not exist at all.
	missing := filepath.Join(base, "missing")

	reg := Scan(primary, []string{external, emptyExternal, missing})

	if reg.Len() != 1 {
		t.Fatalf("expected 1 app, got %d (%v)", reg.Len(), reg.Identities())
	}

	app := reg.Apps()[0]
	if app.Origin != OriginExternal {
		t.Errorf("origin = %s, want %s", app.Origin, OriginExternal)
	}
	if app.Name != "tool" {
		t.Errorf("name = %q, want %q", app.Name, "tool")
	}
	if app.Identity == "tool" {
		t.Error("external identity should carry a path-derived suffix")
	}
}

func TestScanDuplicateNamesAcrossOrigins(t *testing.T) {
	base := t.TempDir()
	primary := filepath.Join(base, "apps")
	makeApp(t, primary, "editor")
	external := makeApp(t, filepath.Join(base, "elsewhere"), "editor")

	reg := Scan(primary, []string{external})

	if reg.Len() != 2 {
		t.Fatalf("expected both same-named apps, got %d (%v)", reg.Len(), reg.Identities())
	}
	if _, ok := reg.Get("editor"); !ok {
		t.Error("primary app should keep its bare name as identity")
	}
}

// TestScanDeterministic verifies that two scans over an unchanged tree
// produce identical identity sets and entry points, including the
// path-derived external identities.
func TestScanDeterministic(t *testing.T) {
	base := t.TempDir()
	primary := filepath.Join(base, "apps")
	makeApp(t, primary, "alpha")
	external := makeApp(t, base, "tool")

	first := Scan(primary, []string{external})
	second := Scan(primary, []string{external})

	if !reflect.DeepEqual(first.Identities(), second.Identities()) {
		t.Errorf("identity sets differ: %v vs %v", first.Identities(), second.Identities())
	}
	for _, id := range first.Identities() {
		a, _ := first.Get(id)
		b, ok := second.Get(id)
		if !ok {
			t.Errorf("identity %s missing from second scan", id)
			continue
		}
		if a.EntryPoint != b.EntryPoint {
			t.Errorf("entry point for %s differs: %s vs %s", id, a.EntryPoint, b.EntryPoint)
		}
	}
}

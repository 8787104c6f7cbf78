package reqs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeRequirements writes content to a requirements.txt within a fresh
// temp dir and returns its path.
func writeRequirements(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write requirements file: %v", err)
	}
	return path
}

func TestFilterRemovesProtectedPackages(t *testing.T) {
	path := writeRequirements(t, "pyqt5==5.15\nrequests>=2.0\n# comment\n")

	safePath, skipped, err := Filter(path)
	if err != nil {
		t.Fatalf("Filter() failed: %v", err)
	}
	defer os.Remove(safePath)

	data, err := os.ReadFile(safePath)
	if err != nil {
		t.Fatalf("failed to read safe file: %v", err)
	}

	if string(data) != "requests>=2.0\n# comment\n" {
		t.Errorf("safe file content = %q, want %q", string(data), "requests>=2.0\n# comment\n")
	}

	if len(skipped) != 1 || skipped[0] != "pyqt5==5.15" {
		t.Errorf("skipped = %v, want [pyqt5==5.15]", skipped)
	}

	if filepath.Dir(safePath) != filepath.Dir(path) {
		t.Errorf("safe file should be a sibling of the original, got %s", safePath)
	}
	if filepath.Base(safePath) == filepath.Base(path) {
		t.Error("safe file must not overwrite the original")
	}
}

func TestFilterCaseInsensitiveProtection(t *testing.T) {
	path := writeRequirements(t, "PyQt5>=5.0\nSetupTools\nrequests\n")

	safePath, skipped, err := Filter(path)
	if err != nil {
		t.Fatalf("Filter() failed: %v", err)
	}
	defer os.Remove(safePath)

	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped entries, got %v", skipped)
	}
	if skipped[0] != "PyQt5>=5.0" {
		t.Errorf("skipped entries must keep their original spelling, got %q", skipped[0])
	}
}

func TestFilterPreservesBlankLines(t *testing.T) {
	path := writeRequirements(t, "requests\n\nflask\n")

	safePath, _, err := Filter(path)
	if err != nil {
		t.Fatalf("Filter() failed: %v", err)
	}
	defer os.Remove(safePath)

	data, _ := os.ReadFile(safePath)
	if string(data) != "requests\n\nflask\n" {
		t.Errorf("blank lines should pass through, got %q", string(data))
	}
}

// TestFilterPartition verifies that safe lines plus skipped entries cover
// every non-comment line of the original exactly once, and that re-parsing
// the safe file never yields a protected package name.
func TestFilterPartition(t *testing.T) {
	content := "pyqt5==5.15\nrequests>=2.0\nimportlib_metadata\nnumpy\npip>=23\n# keep\nflask!=2.0\n"
	path := writeRequirements(t, content)

	safePath, skipped, err := Filter(path)
	if err != nil {
		t.Fatalf("Filter() failed: %v", err)
	}
	defer os.Remove(safePath)

	original, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse(original) failed: %v", err)
	}
	safe, err := Parse(safePath)
	if err != nil {
		t.Fatalf("Parse(safe) failed: %v", err)
	}

	for _, req := range safe {
		if ProtectedPackages[req.Canonical] {
			t.Errorf("protected package %q survived filtering", req.Name)
		}
	}

	seen := make(map[string]int)
	for _, req := range safe {
		seen[req.Line]++
	}
	for _, line := range skipped {
		seen[line]++
	}

	if total := len(safe) + len(skipped); total != len(original) {
		t.Errorf("safe (%d) + skipped (%d) != original non-comment lines (%d)",
			len(safe), len(skipped), len(original))
	}
	for _, req := range original {
		if seen[req.Line] != 1 {
			t.Errorf("line %q covered %d times, want exactly once", req.Line, seen[req.Line])
		}
	}
}

func TestFilterMissingFile(t *testing.T) {
	_, _, err := Filter(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("Filter() should fail for a missing file")
	}
	if !strings.Contains(err.Error(), "requirements") {
		t.Errorf("error should name the requirements file, got: %v", err)
	}
}

package reqs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPackageName(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{
			name:     "bare name",
			line:     "requests",
			expected: "requests",
		},
		{
			name:     "pinned version",
			line:     "requests==2.31.0",
			expected: "requests",
		},
		{
			name:     "minimum version",
			line:     "numpy>=1.20",
			expected: "numpy",
		},
		{
			name:     "maximum version",
			line:     "pandas<=2.0",
			expected: "pandas",
		},
		{
			name:     "exclusive bounds",
			line:     "scipy>1.0",
			expected: "scipy",
		},
		{
			name:     "not equal",
			line:     "flask!=2.0.0",
			expected: "flask",
		},
		{
			name:     "spaces around comparator",
			line:     "requests >= 2.0",
			expected: "requests",
		},
		{
			name:     "surrounding whitespace",
			line:     "  requests==2.0  ",
			expected: "requests",
		},
		{
			name:     "less-than before double comparator",
			line:     "django<4,>=3.2",
			expected: "django",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PackageName(tt.line)
			if got != tt.expected {
				t.Errorf("PackageName(%q) = %q, want %q", tt.line, got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already normalized",
			input:    "requests",
			expected: "requests",
		},
		{
			name:     "mixed case",
			input:    "PyQt5",
			expected: "pyqt5",
		},
		{
			name:     "underscores",
			input:    "typing_extensions",
			expected: "typing-extensions",
		},
		{
			name:     "dots",
			input:    "zope.interface",
			expected: "zope-interface",
		},
		{
			name:     "separator runs collapse",
			input:    "a.-_b",
			expected: "a-b",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	content := "# web\nrequests>=2.0\n\nNumPy==1.26\n  # trailing comment\nflask\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write requirements file: %v", err)
	}

	reqs, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}

	// Declaration order must be preserved.
	wantNames := []string{"requests", "NumPy", "flask"}
	wantCanonical := []string{"requests", "numpy", "flask"}
	for i, req := range reqs {
		if req.Name != wantNames[i] {
			t.Errorf("requirement %d: Name = %q, want %q", i, req.Name, wantNames[i])
		}
		if req.Canonical != wantCanonical[i] {
			t.Errorf("requirement %d: Canonical = %q, want %q", i, req.Canonical, wantCanonical[i])
		}
	}

	if reqs[0].Line != "requests>=2.0" {
		t.Errorf("requirement 0: Line = %q, want %q", reqs[0].Line, "requests>=2.0")
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("Parse() should fail for a missing file")
	}
}

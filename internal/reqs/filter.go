package reqs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProtectedPackages are the launcher host's own critical dependencies:
// its GUI toolkit bindings, its packaging tools and its metadata library.
// The launcher and the sub-applications share one package environment, so
// installing an unconstrained requirements list must never downgrade or
// remove any of these. Names are PEP 503-normalized.
var ProtectedPackages = map[string]bool{
	"pyqt5":              true,
	"pyqt5-qt5":          true,
	"pyqt5-sip":          true,
	"pyqt5-tools":        true,
	"importlib-metadata": true,
	"setuptools":         true,
	"pip":                true,
}

// FilteredName is the name of the temporary safe requirements file written
// next to the original. The installer removes it after pip exits.
const FilteredName = "temp_requirements.txt"

// Filter reads the requirements file at path, removes requirement lines
// naming a protected package, and writes the surviving lines to a sibling
// file. Comment and blank lines pass through unchanged; surviving
// requirement lines keep their version specifiers. Returns the safe file
// path and the withheld requirement lines in their original spelling.
func Filter(path string) (safePath string, skipped []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read requirements file: %w", err)
	}

	var safe []string
	for _, raw := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			safe = append(safe, raw)
			continue
		}

		if ProtectedPackages[Normalize(PackageName(line))] {
			skipped = append(skipped, line)
			continue
		}

		safe = append(safe, raw)
	}

	safePath = filepath.Join(filepath.Dir(path), FilteredName)
	out := strings.Join(safe, "\n") + "\n"
	if err := os.WriteFile(safePath, []byte(out), 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write filtered requirements: %w", err)
	}

	return safePath, skipped, nil
}

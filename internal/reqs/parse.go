package reqs

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// comparators are the version specifier tokens recognized in requirement
// lines. A package name ends at the first occurrence of any of them.
var comparators = []string{"==", ">=", "<=", "!=", ">", "<"}

// Requirement is one parsed non-comment line of a requirements file.
type Requirement struct {
	Line      string // full requirement line as written, trimmed
	Name      string // package name as written
	Canonical string // PEP 503-normalized package name
}

// PackageName extracts the bare package name from a requirement line by
// truncating at the first version comparator. The name is returned in its
// original spelling; use Normalize for lookups.
func PackageName(line string) string {
	name := strings.TrimSpace(line)
	cut := len(name)
	for _, op := range comparators {
		if i := strings.Index(name, op); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(name[:cut])
}

// Normalize lowercases a distribution name and collapses runs of "-", "_"
// and "." into a single "-", following PEP 503 name normalization. pip
// treats "Typing_Extensions" and "typing-extensions" as the same
// distribution, so every membership check goes through this.
func Normalize(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r == '-' || r == '_' || r == '.' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('-')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// Parse reads the requirements file at path and returns its requirement
// lines in declaration order. Blank lines and comments are skipped.
func Parse(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open requirements file: %w", err)
	}
	defer f.Close()

	var reqs []Requirement
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name := PackageName(line)
		if name == "" {
			continue // malformed line, e.g. a bare comparator
		}

		reqs = append(reqs, Requirement{
			Line:      line,
			Name:      name,
			Canonical: Normalize(name),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements file: %w", err)
	}

	return reqs, nil
}

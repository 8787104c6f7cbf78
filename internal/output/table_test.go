package output

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/pylaunch/internal/scanner"
	"github.com/blackwell-systems/pylaunch/internal/store"
)

func TestRenderAppTableEmpty(t *testing.T) {
	got := RenderAppTable(nil)
	if got != "No applications found.\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderAppTableSortsByName(t *testing.T) {
	apps := []*scanner.App{
		{Name: "zeta", DisplayName: "Zeta", Identity: "zeta", Root: "/apps/zeta", Origin: scanner.OriginPrimary},
		{Name: "alpha", DisplayName: "Alpha", Identity: "alpha", Root: "/apps/alpha", Origin: scanner.OriginPrimary},
	}
	got := RenderAppTable(apps)

	alphaIdx := strings.Index(got, "Alpha")
	zetaIdx := strings.Index(got, "Zeta")
	if alphaIdx < 0 || zetaIdx < 0 {
		t.Fatalf("missing rows in output:\n%s", got)
	}
	if alphaIdx > zetaIdx {
		t.Errorf("rows not sorted by name:\n%s", got)
	}
}

func TestRenderAppTableDepsColumn(t *testing.T) {
	apps := []*scanner.App{
		{Name: "plain", DisplayName: "plain", Identity: "plain", Root: "/apps/plain", Origin: scanner.OriginPrimary},
		{Name: "rich", DisplayName: "rich", Identity: "rich", Root: "/apps/rich",
			RequirementsFile: "/apps/rich/requirements.txt", Origin: scanner.OriginExternal},
	}
	got := RenderAppTable(apps)
	lines := strings.Split(got, "\n")

	for _, line := range lines {
		if strings.HasPrefix(line, "plain") && !strings.Contains(line, " no ") {
			t.Errorf("plain row missing deps=no: %q", line)
		}
		if strings.HasPrefix(line, "rich") && !strings.Contains(line, " yes ") {
			t.Errorf("rich row missing deps=yes: %q", line)
		}
	}
}

func TestRenderCheckTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	results := []CheckResult{
		{Name: "ok_app", Reason: "all requirements satisfied"},
		{Name: "stale_app", Reason: "dependency file changed", Install: true},
		{Name: "broken_app", Err: errors.New("pip unavailable")},
	}
	got := RenderCheckTable(results)

	for _, want := range []string{
		"all requirements satisfied",
		"install",
		"dependency file changed",
		"error",
		"pip unavailable",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderCheckTableEmpty(t *testing.T) {
	if got := RenderCheckTable(nil); got != "No applications to check.\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSnapshotTableNewestFirst(t *testing.T) {
	now := time.Now()
	snaps := []*store.Snapshot{
		{ID: 1, CreatedAt: now.Add(-48 * time.Hour), Reason: "older", PackageCount: 3},
		{ID: 2, CreatedAt: now.Add(-time.Hour), Reason: "newer", PackageCount: 5},
	}
	got := RenderSnapshotTable(snaps)

	newerIdx := strings.Index(got, "newer")
	olderIdx := strings.Index(got, "older")
	if newerIdx < 0 || olderIdx < 0 {
		t.Fatalf("missing rows:\n%s", got)
	}
	if newerIdx > olderIdx {
		t.Errorf("snapshots not newest first:\n%s", got)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "never"},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"one hour", now.Add(-90 * time.Minute), "1 hour ago"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"weeks", now.Add(-2 * 7 * 24 * time.Hour), "2 weeks ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.t); got != tt.want {
				t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly_ten", 11, "exactly_ten"},
		{"a_rather_long_name", 10, "a_rathe..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}

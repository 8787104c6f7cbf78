// Package output provides terminal output utilities for pylaunch.
//
// This package includes:
//   - Table rendering for discovered applications, dependency checks and snapshots
//   - A progress bar for multi-application operations
//   - A spinner for indeterminate operations such as installs
//
// Tables use ASCII characters and ANSI color codes. Progress indicators
// are thread-safe.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/pylaunch/internal/scanner"
	"github.com/blackwell-systems/pylaunch/internal/store"
)

// ANSI color codes for status display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderAppTable renders a table of discovered applications.
func RenderAppTable(apps []*scanner.App) string {
	if len(apps) == 0 {
		return "No applications found.\n"
	}

	sorted := make([]*scanner.App, len(apps))
	copy(sorted, apps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-26s %-10s %-6s %s\n",
		"Name", "Identity", "Origin", "Deps", "Path"))
	sb.WriteString(strings.Repeat("─", 100))
	sb.WriteString("\n")

	for _, app := range sorted {
		deps := "no"
		if app.HasRequirements() {
			deps = "yes"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-26s %-10s %-6s %s\n",
			truncate(app.DisplayName, 24),
			truncate(app.Identity, 26),
			string(app.Origin),
			deps,
			app.Root))
	}

	return sb.String()
}

// CheckResult is one application's dependency reconcile outcome, ready
// for display.
type CheckResult struct {
	Name    string
	Reason  string
	Install bool // whether a launch would trigger an install
	Err     error
}

// RenderCheckTable renders dependency check results, one row per
// application. Rows with errors are colored red, rows needing an
// install yellow, satisfied rows green.
func RenderCheckTable(results []CheckResult) string {
	if len(results) == 0 {
		return "No applications to check.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-10s %s\n", "Name", "Action", "Reason"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, r := range results {
		var action, reason, color string
		switch {
		case r.Err != nil:
			action, reason, color = "error", r.Err.Error(), colorRed
		case r.Install:
			action, reason, color = "install", r.Reason, colorYellow
		default:
			action, reason, color = "none", r.Reason, colorGreen
		}
		sb.WriteString(fmt.Sprintf("%-24s %s %s\n",
			truncate(r.Name, 24),
			colorize(color, fmt.Sprintf("%-10s", action)),
			truncate(reason, 48)))
	}

	return sb.String()
}

// RenderSnapshotTable renders environment snapshots, newest first.
func RenderSnapshotTable(snapshots []*store.Snapshot) string {
	if len(snapshots) == 0 {
		return "No snapshots found.\n"
	}

	sorted := make([]*store.Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-17s %-10s %s\n",
		"ID", "Created", "Packages", "Reason"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, snap := range sorted {
		sb.WriteString(fmt.Sprintf("%-5d %-17s %-10d %s\n",
			snap.ID,
			formatRelativeTime(snap.CreatedAt),
			snap.PackageCount,
			truncate(snap.Reason, 40)))
	}

	return sb.String()
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

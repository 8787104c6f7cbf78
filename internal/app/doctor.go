package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/pylaunch/internal/config"
	"github.com/blackwell-systems/pylaunch/internal/pip"
	"github.com/blackwell-systems/pylaunch/internal/store"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common issues and check system health",
	Long: `Runs diagnostic checks on your pylaunch setup.

Checks:
  • Python interpreter and pip are usable
  • Application directory exists and contains apps
  • Cache database opens
  • Settings file parses`,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("Running pylaunch diagnostics...")
	fmt.Println()

	// Interpreter problems make every launch fail, so they are critical.
	// A missing cache or an empty apps dir only degrades behavior.
	criticalIssues := 0
	warningIssues := 0

	// Check 1: settings parse
	settings := &config.Settings{CustomNames: make(map[string]string)}
	if dir, err := config.Dir(); err != nil {
		fmt.Println("⚠ Cannot locate config directory:", err)
		warningIssues++
	} else if s, err := config.Load(dir); err != nil {
		fmt.Println("⚠ Settings file is malformed:", err)
		fmt.Println("  Action: fix or delete", dir+"/"+config.SettingsName)
		warningIssues++
	} else {
		settings = s
		fmt.Println("✓ Settings loaded")
	}

	// Check 2: interpreter responds
	python := resolvePython(settings)
	runner := pip.NewRunner(python)
	if version, err := runner.Version(); err != nil {
		fmt.Println("✗ pip is not usable via", python)
		fmt.Println("  Action: install Python 3 with pip, or set \"python\" in settings")
		criticalIssues++
	} else {
		fmt.Println("✓", version)
	}

	// Check 3: environment is listable
	if installed, err := runner.ListInstalled(); err != nil {
		fmt.Println("✗ Cannot list installed packages:", err)
		criticalIssues++
	} else {
		fmt.Printf("✓ %d packages visible in the environment\n", len(installed))
	}

	// Check 4: application directory
	if fi, err := os.Stat(appsDir); err != nil {
		fmt.Println("⚠ Application directory missing:", appsDir)
		fmt.Println("  It will be created on the first 'pylaunch list'")
		warningIssues++
	} else if !fi.IsDir() {
		fmt.Println("✗ Application path is not a directory:", appsDir)
		criticalIssues++
	} else {
		reg := buildRegistry(settings)
		if reg.Len() == 0 {
			fmt.Println("⚠ No applications found under", appsDir)
			fmt.Println("  An application is a directory containing main.py")
			warningIssues++
		} else {
			fmt.Printf("✓ %d application(s) discovered\n", reg.Len())
		}
	}

	// Check 5: cache database, plus pruning of entries whose application
	// directory no longer exists
	if path, err := getDBPath(); err != nil {
		fmt.Println("⚠ Cache path error:", err)
		warningIssues++
	} else if st, err := store.New(path); err != nil {
		fmt.Println("⚠ Cache database cannot be opened:", err)
		fmt.Println("  Launches still work, every launch re-reconciles from scratch")
		warningIssues++
	} else {
		fmt.Println("✓ Cache database opens:", path)
		if pruned, err := pruneStaleEntries(st); err != nil {
			fmt.Println("⚠ Cannot read cache entries:", err)
			warningIssues++
		} else if pruned > 0 {
			fmt.Printf("✓ Pruned %d cache entries for removed applications\n", pruned)
		}
		st.Close()
	}

	fmt.Println()
	return summarize(criticalIssues, warningIssues)
}

// pruneStaleEntries deletes cache entries whose application root is gone.
// The fingerprint of a moved or deleted directory can never match again,
// so the entries are dead weight.
func pruneStaleEntries(st *store.Store) (int, error) {
	entries, err := st.ListEntries()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, entry := range entries {
		if _, err := os.Stat(entry.RootPath); os.IsNotExist(err) {
			if err := st.DeleteEntry(entry.RootPath); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}

func summarize(criticalIssues, warningIssues int) error {
	switch {
	case criticalIssues > 0:
		return fmt.Errorf("%d critical issue(s) found", criticalIssues)
	case warningIssues > 0:
		fmt.Printf("%d warning(s), nothing blocking.\n", warningIssues)
	default:
		fmt.Println("All checks passed.")
	}
	return nil
}

package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	appsDir    string
	pythonFlag string

	// RootCmd is the root command for pylaunch
	RootCmd = &cobra.Command{
		Use:   "pylaunch",
		Short: "Discover and launch local Python applications",
		Long: `pylaunch discovers Python applications on disk, keeps their declared
dependencies installed, and starts them as independent processes.

An application is any directory containing a main.py entry point. Apps
under the managed directory are found automatically; directories
elsewhere can be added via the settings file.

Before each launch the app's requirements.txt is reconciled against the
environment: unchanged and satisfied requirements skip the install
entirely, anything else triggers a pip install with host-critical
packages filtered out.

Examples:
  # Show everything pylaunch can see
  pylaunch list

  # Start an app, installing dependencies if needed
  pylaunch launch image_resizer

  # See what a launch would do, without doing it
  pylaunch check --all

  # Roll the environment back to before the last install
  pylaunch snapshot list
  pylaunch snapshot restore 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("pylaunch: discover and launch local Python applications")
			fmt.Println()
			fmt.Println("Run 'pylaunch list' to see discovered applications.")
			fmt.Println("Run 'pylaunch --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "cache database path (default: ~/.pylaunch/pylaunch.db)")
	RootCmd.PersistentFlags().StringVar(&appsDir, "apps-dir", "apps", "managed application directory")
	RootCmd.PersistentFlags().StringVar(&pythonFlag, "python", "", "python interpreter (default: settings, then PATH lookup)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(launchCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(installCmd)
	// Note: watch, snapshot and doctor register themselves in their own init
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the cache database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	// Create .pylaunch directory if it doesn't exist
	stateDir := filepath.Join(home, ".pylaunch")
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create pylaunch directory: %w", err)
	}

	return filepath.Join(stateDir, "pylaunch.db"), nil
}

// getSnapshotDir returns the directory snapshot files are written to
func getSnapshotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".pylaunch", "snapshots"), nil
}

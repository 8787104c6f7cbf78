package app

import (
	"fmt"

	"github.com/blackwell-systems/pylaunch/internal/output"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <app>",
	Short: "Install an application's dependencies without launching it",
	Long: `Run the dependency install for one application and record it in the
cache, exactly as a launch would, but do not start the process.

Useful for preparing applications ahead of time, or for retrying after
a failed install without spawning anything.`,
	Example: `  # Pre-install dependencies
  pylaunch install image_resizer`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	settings := loadSettings()
	reg := buildRegistry(settings)

	app, err := resolveApp(reg, args[0])
	if err != nil {
		return err
	}
	if !app.HasRequirements() {
		fmt.Printf("%s declares no dependencies, nothing to install.\n", app.DisplayName)
		return nil
	}

	st := openCache()
	if st != nil {
		defer st.Close()
	}
	l := newLauncher(st, settings)

	spinner := output.NewSpinner(fmt.Sprintf("Installing requirements for %s", app.DisplayName))
	spinner.Start()
	err = l.InstallDeps(app)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithMessage(fmt.Sprintf("✓ %s is ready", app.DisplayName))
	return nil
}

package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/pylaunch/internal/scanner"
	"github.com/spf13/cobra"
)

var launchCmd = &cobra.Command{
	Use:   "launch <app>",
	Short: "Launch an application, installing dependencies if needed",
	Long: `Launch the named application as a detached process.

Before the process starts, the app's requirements.txt is reconciled:
if it changed since the last successful install, or any declared
package is missing from the environment, pip install runs first.
Host-critical packages are never touched by that install.

The launched process outlives pylaunch; closing the terminal does not
stop it.`,
	Example: `  # Launch by directory name
  pylaunch launch image_resizer

  # Launch with a specific interpreter
  pylaunch launch image_resizer --python /usr/bin/python3.12`,
	Args: cobra.ExactArgs(1),
	RunE: runLaunch,
}

func runLaunch(cmd *cobra.Command, args []string) error {
	settings := loadSettings()
	reg := buildRegistry(settings)

	app, err := resolveApp(reg, args[0])
	if err != nil {
		return err
	}

	st := openCache()
	if st != nil {
		defer st.Close()
	}

	l := newLauncher(st, settings)
	outcome, err := l.Launch(reg, app.Identity)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s running (pid %d)\n", app.DisplayName, outcome.PID)
	return nil
}

// resolveApp finds an application by identity first, then by unique
// directory name. Ambiguous names list the matching identities.
func resolveApp(reg *scanner.Registry, arg string) (*scanner.App, error) {
	if app, ok := reg.Get(arg); ok {
		return app, nil
	}

	var matches []*scanner.App
	for _, app := range reg.Apps() {
		if app.Name == arg {
			matches = append(matches, app)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no application named %q; run 'pylaunch list'", arg)
	default:
		ids := make([]string, len(matches))
		for i, app := range matches {
			ids[i] = app.Identity
		}
		return nil, fmt.Errorf("name %q is ambiguous, use one of: %s", arg, strings.Join(ids, ", "))
	}
}

package app

import (
	"fmt"

	"github.com/blackwell-systems/pylaunch/internal/output"
	"github.com/blackwell-systems/pylaunch/internal/scanner"
	"github.com/spf13/cobra"
)

var (
	checkAll bool

	checkCmd = &cobra.Command{
		Use:   "check [app]",
		Short: "Show what a launch would do, without launching",
		Long: `Reconcile one or all applications against the dependency cache and
the current environment, and report whether a launch would trigger an
install. Nothing is installed and nothing is started.`,
		Example: `  # Check a single application
  pylaunch check image_resizer

  # Check every discovered application
  pylaunch check --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().BoolVar(&checkAll, "all", false, "check every discovered application")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !checkAll {
		return fmt.Errorf("name an application or pass --all")
	}

	settings := loadSettings()
	reg := buildRegistry(settings)

	st := openCache()
	if st != nil {
		defer st.Close()
	}
	l := newLauncher(st, settings)
	l.Status = nil // reconcile only, keep output to the table

	apps := reg.Apps()
	if len(args) == 1 {
		app, err := resolveApp(reg, args[0])
		if err != nil {
			return err
		}
		apps = []*scanner.App{app}
	}

	bar := output.NewProgress(len(apps), "checking applications")
	results := make([]output.CheckResult, 0, len(apps))
	for _, app := range apps {
		decision, err := l.NeedsInstall(app)
		results = append(results, output.CheckResult{
			Name:    app.DisplayName,
			Reason:  decision.Reason,
			Install: decision.Install,
			Err:     err,
		})
		bar.Step()
	}
	bar.Finish()

	fmt.Print(output.RenderCheckTable(results))
	return nil
}

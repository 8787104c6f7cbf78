package app

import (
	"fmt"

	"github.com/blackwell-systems/pylaunch/internal/output"
	"github.com/spf13/cobra"
)

var (
	listQuiet bool

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List discovered applications",
		Long: `Scan the managed application directory and any configured external
paths, and list every application found.

An application is a directory with a main.py file. Hidden directories
are skipped. External paths come from the settings file and must point
directly at an application directory.`,
		Example: `  # List applications under the default directory
  pylaunch list

  # Identities only, for scripting
  pylaunch list --quiet

  # List applications under a different directory
  pylaunch list --apps-dir ~/projects/tools`,
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().BoolVar(&listQuiet, "quiet", false, "print identities only, one per line")
}

func runList(cmd *cobra.Command, args []string) error {
	settings := loadSettings()
	reg := buildRegistry(settings)

	if listQuiet {
		for _, identity := range reg.Identities() {
			fmt.Println(identity)
		}
		return nil
	}

	fmt.Print(output.RenderAppTable(reg.Apps()))
	if reg.Len() > 0 {
		fmt.Printf("\n%d application(s). Launch one with 'pylaunch launch <name>'.\n", reg.Len())
	}
	return nil
}

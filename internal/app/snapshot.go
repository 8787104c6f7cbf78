package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/pylaunch/internal/output"
	"github.com/blackwell-systems/pylaunch/internal/pip"
	"github.com/blackwell-systems/pylaunch/internal/snapshots"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage environment snapshots",
	Long: `Environment snapshots are taken automatically before every dependency
install. They record the exact package versions present at that moment,
so a bad install can be rolled back.`,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List environment snapshots",
	RunE:  runSnapshotList,
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore the environment from a snapshot",
	Long: `Re-install the package versions recorded in a snapshot. Host-critical
packages are skipped, so restoring can never break the launcher itself.`,
	Example: `  pylaunch snapshot restore 3`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSnapshotRestore,
}

func init() {
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
	RootCmd.AddCommand(snapshotCmd)
}

// newSnapshotManager wires a manager from the shared pieces, or errors
// when the store is unavailable. Snapshot commands, unlike launches,
// are useless without the index.
func newSnapshotManager() (*snapshots.Manager, func(), error) {
	st := openCache()
	if st == nil {
		return nil, nil, fmt.Errorf("snapshot index unavailable")
	}

	snapDir, err := getSnapshotDir()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	settings := loadSettings()
	runner := pip.NewRunner(resolvePython(settings))
	return snapshots.New(st, runner, snapDir), func() { st.Close() }, nil
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	mgr, cleanup, err := newSnapshotManager()
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := mgr.List()
	if err != nil {
		return err
	}
	fmt.Print(output.RenderSnapshotTable(list))
	return nil
}

func runSnapshotRestore(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid snapshot id %q", args[0])
	}

	mgr, cleanup, err := newSnapshotManager()
	if err != nil {
		return err
	}
	defer cleanup()

	spinner := output.NewSpinner(fmt.Sprintf("Restoring snapshot %d", id))
	spinner.Start()
	skipped, err := mgr.Restore(id)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithMessage(fmt.Sprintf("✓ Snapshot %d restored", id))

	if len(skipped) > 0 {
		fmt.Printf("Skipped host-critical packages: %s\n", strings.Join(skipped, ", "))
	}
	return nil
}

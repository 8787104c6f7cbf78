package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackwell-systems/pylaunch/internal/scanner"
	"github.com/blackwell-systems/pylaunch/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchDebounce time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Watch application directories and report changes",
		Long: `Watch the managed application directory and configured external paths,
and report applications appearing, disappearing or changing their
dependencies. Runs in the foreground until interrupted.`,
		Example: `  # Watch with the default half-second debounce
  pylaunch watch

  # Calmer reporting
  pylaunch watch --debounce 2s`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before reporting a change")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings := loadSettings()
	reg := buildRegistry(settings)

	roots := append([]string{appsDir}, settings.ExternalRoots...)
	w, err := watcher.New(roots, watchDebounce)
	if err != nil {
		return err
	}

	w.SetOnChange(func(paths []string) {
		fresh := buildRegistry(settings)
		reportRegistryDiff(reg, fresh)
		reg = fresh
	})

	if err := w.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()

	fmt.Printf("Watching %d application(s) across %d root(s). Ctrl-C to stop.\n",
		reg.Len(), len(w.WatchedRoots()))

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)
	return nil
}

// reportRegistryDiff prints applications added or removed between scans,
// and a generic change line when the set is unchanged but something
// inside an app was touched.
func reportRegistryDiff(old, fresh *scanner.Registry) {
	changed := false
	for _, app := range fresh.Apps() {
		if _, ok := old.Get(app.Identity); !ok {
			fmt.Printf("+ %s (%s)\n", app.DisplayName, app.Root)
			changed = true
		}
	}
	for _, app := range old.Apps() {
		if _, ok := fresh.Get(app.Identity); !ok {
			fmt.Printf("- %s (%s)\n", app.DisplayName, app.Root)
			changed = true
		}
	}
	if !changed {
		fmt.Println("~ application files changed, dependencies will be rechecked on next launch")
	}
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/output"
	"github.com/blackwell-systems/envoic/internal/scanner"
	"github.com/blackwell-systems/envoic/internal/watcher"
)

// watchDebounce is how long the tree must be quiet before the list is
// reprinted.
const watchDebounce = 500 * time.Millisecond

var (
	watchDepth     int
	watchStaleDays int
	watchExclude   []string

	watchCmd = &cobra.Command{
		Use:   "watch [path]",
		Short: "Reprint the environment list as projects change",
		Long: `Print the node_modules list for a directory tree, then keep watching it and
print the list again whenever a node_modules directory, package.json or lock
file is created, removed or changed.

Watching uses inotify, FSEvents or ReadDirectoryChangesW depending on the
platform; one watch is registered per directory up to --depth. Press Ctrl+C
to stop.`,
		Example: `  envoic watch ~/code
  envoic watch ~/code --depth 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().IntVarP(&watchDepth, "depth", "d", 5, "maximum directory depth (root is 1)")
	watchCmd.Flags().IntVar(&watchStaleDays, "stale-days", 90, "days without modification before an environment is stale")
	watchCmd.Flags().StringSliceVar(&watchExclude, "exclude", nil, "glob of paths to skip, relative to the scan root (repeatable)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd, &watchDepth, &watchStaleDays, &watchExclude); err != nil {
		return err
	}
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	opts := scanner.Options{
		Root:      root,
		Depth:     watchDepth,
		StaleDays: watchStaleDays,
		Exclude:   watchExclude,
	}
	// Validate options before registering any watches.
	s, err := scanner.New(opts)
	if err != nil {
		return err
	}

	report := func() {
		opts.Now = now()
		result, err := scanner.Scan(opts)
		if err != nil {
			log.Warn().Err(err).Msg("rescan failed")
			return
		}
		fmt.Fprintf(out, "\n[%s] %s\n", output.FormatTimestamp(result.Timestamp), result.ScanPath)
		fmt.Fprintln(out, output.RenderList(result.Environments, result.ScanPath, result.Timestamp))
	}

	w, err := watcher.New(root, watchDepth, watchDebounce)
	if err != nil {
		return err
	}
	w.Skip(s.Excluded)

	report()
	if err := w.Start(report); err != nil {
		w.Stop()
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	log.Debug().Int("dirs", len(w.WatchedDirs())).Str("root", root).Msg("watching")
	fmt.Fprintln(out, "\nWatching for changes. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	fmt.Fprintln(out, "\nStopping watcher...")
	return w.Stop()
}

package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/cleaner"
	"github.com/blackwell-systems/envoic/internal/config"
	"github.com/blackwell-systems/envoic/internal/output"
	"github.com/blackwell-systems/envoic/internal/scanner"
	"github.com/blackwell-systems/envoic/internal/tui"
)

// isInteractive reports whether prompts can use the terminal UI. Tests
// replace it.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// now is the clock used for staleness and history. Tests replace it.
var now = time.Now

func currentConfig() *config.Config {
	if appConfig == nil {
		return &config.Config{
			Depth:     config.DefaultDepth,
			StaleDays: config.DefaultStaleDays,
			Exclude:   []string{},
			History:   true,
		}
	}
	return appConfig
}

// resolveRoot returns the absolute scan root from the optional path
// argument, defaulting to the working directory.
func resolveRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %s", path)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", path)
	}
	return abs, nil
}

func requirePositive(flag string, v int) error {
	if v < 1 {
		return fmt.Errorf("%s must be a positive integer, got %d", flag, v)
	}
	return nil
}

// applyConfig fills in flags the user did not set from the config file and
// validates the numeric ones. Pass nil for flags a command does not have.
func applyConfig(cmd *cobra.Command, depth, staleDays *int, exclude *[]string) error {
	cfg := currentConfig()

	if depth != nil {
		if !cmd.Flags().Changed("depth") {
			*depth = cfg.Depth
		}
		if err := requirePositive("--depth", *depth); err != nil {
			return err
		}
	}
	if staleDays != nil {
		if !cmd.Flags().Changed("stale-days") {
			*staleDays = cfg.StaleDays
		}
		if err := requirePositive("--stale-days", *staleDays); err != nil {
			return err
		}
	}
	if exclude != nil && !cmd.Flags().Changed("exclude") {
		*exclude = cfg.Exclude
	}

	return nil
}

// runScanner runs a scan, showing a spinner with the current directory on
// interactive terminals.
func runScanner(opts scanner.Options) (*scanner.Result, error) {
	opts.Now = now()
	if host, err := os.Hostname(); err == nil {
		opts.Hostname = host
	} else {
		log.Debug().Err(err).Msg("hostname unavailable")
	}

	var spinner *output.Spinner
	if isInteractive() {
		spinner = output.NewSpinner("Scanning")
		spinner.SetWriter(os.Stderr)
		opts.Progress = func(dir string) {
			spinner.UpdateMessage("Scanning " + output.ShortenPath(dir, 50))
		}
		spinner.Start()
	}

	result, err := scanner.Scan(opts)
	if err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return nil, err
	}
	if spinner != nil {
		spinner.StopWithMessage(fmt.Sprintf("Scanned %s in %.2fs: %d environments, %d artifacts",
			output.ShortenPath(result.ScanPath, 40), result.DurationSeconds,
			len(result.Environments), len(result.Artifacts)))
	}
	log.Debug().
		Str("root", result.ScanPath).
		Int("environments", len(result.Environments)).
		Int("artifacts", len(result.Artifacts)).
		Float64("seconds", result.DurationSeconds).
		Msg("scan complete")

	return result, nil
}

// confirmAndDelete previews items, asks for the typed confirmation unless
// yes is set, deletes them and prints the summary. In dry-run mode nothing
// is asked and nothing is removed.
func confirmAndDelete(cmd *cobra.Command, items []cleaner.Item, root string, initialTotal int, dryRun, yes bool) error {
	out := cmd.OutOrStdout()
	display := func(p string) string { return output.DisplayPath(p, root) }

	fmt.Fprint(out, output.RenderSelection(items, root))

	if dryRun {
		fmt.Fprintln(out, "\nDRY RUN — no files will be deleted.")
		summary := cleaner.Delete(items, root, cleaner.Options{
			DryRun:  true,
			Echo:    out,
			Display: display,
		})
		fmt.Fprintln(out, output.RenderDeletionReport(summary, initialTotal))
		return nil
	}

	if !yes {
		ok, err := tui.ConfirmTyped(cmd.InOrStdin(), out, "delete")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "Deletion cancelled.")
			return nil
		}
	}

	history := openHistory(root)
	defer history.close()

	opts := cleaner.Options{Display: display}
	var progress *output.ProgressBar
	if isInteractive() {
		progress = output.NewProgress(len(items), "Deleting")
		progress.SetWriter(out)
	} else {
		opts.Echo = out
	}
	opts.Observer = func(item cleaner.Item, outcome cleaner.Outcome, size int64, err error) {
		if progress != nil {
			progress.Increment()
		}
		history.record(item, outcome, size, err)
	}

	summary := cleaner.Delete(items, root, opts)
	if progress != nil {
		progress.Finish()
	}
	history.finish(summary)

	fmt.Fprintln(out, output.RenderDeletionReport(summary, initialTotal))
	return nil
}

var errNotNodeModules = errors.New("not a recognized node_modules path")

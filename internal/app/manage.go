package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/artifacts"
	"github.com/blackwell-systems/envoic/internal/cleaner"
	"github.com/blackwell-systems/envoic/internal/npm"
	"github.com/blackwell-systems/envoic/internal/output"
	"github.com/blackwell-systems/envoic/internal/scanner"
	"github.com/blackwell-systems/envoic/internal/tui"
)

var (
	manageDepth     int
	manageStaleDays int
	manageExclude   []string
	manageStaleOnly bool
	manageDryRun    bool
	manageYes       bool
	manageDeep      bool
	manageArtifacts bool

	manageCmd = &cobra.Command{
		Use:   "manage [path]",
		Short: "Choose environments to delete",
		Long: `Scan a directory tree, then pick which node_modules directories to delete.

On a terminal a checkbox list is shown; otherwise the environments are
numbered and a comma-separated list of numbers is read from stdin. Deletion
is confined to the scanned directory and must be confirmed by typing
"delete" unless --yes is given.

With --artifacts, build artifact groups (.next, dist, coverage, ...) are
offered as well. Groups marked careful need a second confirmation.`,
		Example: `  # Pick from everything under ~/code
  envoic manage ~/code

  # Pre-select stale environments and measure sizes
  envoic manage ~/code --stale-only --deep

  # Preview without deleting
  envoic manage ~/code --dry-run

  # Include build artifacts
  envoic manage ~/code --artifacts`,
		Args: cobra.MaximumNArgs(1),
		RunE: runManage,
	}
)

func init() {
	manageCmd.Flags().IntVarP(&manageDepth, "depth", "d", 5, "maximum directory depth (root is 1)")
	manageCmd.Flags().IntVar(&manageStaleDays, "stale-days", 90, "days without modification before an environment is stale")
	manageCmd.Flags().StringSliceVar(&manageExclude, "exclude", nil, "glob of paths to skip, relative to the scan root (repeatable)")
	manageCmd.Flags().BoolVar(&manageStaleOnly, "stale-only", false, "pre-select stale environments")
	manageCmd.Flags().BoolVar(&manageDryRun, "dry-run", false, "show what would be deleted without deleting")
	manageCmd.Flags().BoolVarP(&manageYes, "yes", "y", false, "skip the typed confirmation")
	manageCmd.Flags().BoolVar(&manageDeep, "deep", false, "measure sizes before selection")
	manageCmd.Flags().BoolVar(&manageArtifacts, "artifacts", false, "offer build artifact groups for deletion")
}

func runManage(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd, &manageDepth, &manageStaleDays, &manageExclude); err != nil {
		return err
	}
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	result, err := runScanner(scanner.Options{
		Root:             root,
		Depth:            manageDepth,
		Deep:             manageDeep,
		StaleDays:        manageStaleDays,
		IncludeArtifacts: manageArtifacts,
		Exclude:          manageExclude,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	envs := result.Environments
	groups := result.ArtifactSummary
	if len(envs) == 0 && len(groups) == 0 {
		fmt.Fprintln(out, "No environments found.")
		return nil
	}

	options := make([]tui.Option, 0, len(envs)+len(groups))
	for _, env := range envs {
		options = append(options, tui.Option{
			Label:    output.EnvironmentLabel(env, result.ScanPath, result.Timestamp),
			Selected: manageStaleOnly && env.IsStale,
		})
	}
	for _, g := range groups {
		options = append(options, tui.Option{Label: output.ArtifactGroupLabel(g)})
	}

	selector := tui.NewSelector(isInteractive(), cmd.InOrStdin(), out)

	var items []cleaner.Item
	for {
		chosen, err := selector.Select(options)
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(out, "Selection cancelled.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
		if len(chosen) == 0 {
			fmt.Fprintln(out, "Nothing selected.")
			return nil
		}

		var careful []string
		items, careful = selectedItems(envs, groups, chosen)
		if len(careful) == 0 {
			break
		}

		ok, err := tui.ConfirmCareful(isInteractive(), cmd.InOrStdin(), out, careful)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if ok {
			break
		}

		// Offer the selection again with careful groups unchecked.
		picked := make(map[int]bool, len(chosen))
		for _, i := range chosen {
			picked[i] = true
		}
		for i := range options {
			options[i].Selected = picked[i] && !isCarefulOption(i, envs, groups)
		}
	}

	return confirmAndDelete(cmd, items, result.ScanPath, len(envs), manageDryRun, manageYes)
}

// selectedItems maps chosen option indexes back to deletion items.
// Environments come first in the option list, then artifact groups. The
// patterns of chosen careful groups are returned separately.
func selectedItems(envs []npm.Environment, groups []artifacts.Summary, chosen []int) ([]cleaner.Item, []string) {
	var items []cleaner.Item
	var picked []artifacts.Summary
	var careful []string
	for _, i := range chosen {
		if i < len(envs) {
			items = append(items, cleaner.FromEnvironment(envs[i]))
			continue
		}
		g := groups[i-len(envs)]
		picked = append(picked, g)
		if g.Safety == artifacts.Careful {
			careful = append(careful, g.Pattern)
		}
	}
	items = append(items, cleaner.FromArtifacts(artifacts.Flatten(picked))...)
	return items, careful
}

func isCarefulOption(i int, envs []npm.Environment, groups []artifacts.Summary) bool {
	return i >= len(envs) && groups[i-len(envs)].Safety == artifacts.Careful
}

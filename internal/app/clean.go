package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/cleaner"
	"github.com/blackwell-systems/envoic/internal/npm"
	"github.com/blackwell-systems/envoic/internal/scanner"
)

var (
	cleanDepth     int
	cleanStaleDays int
	cleanExclude   []string
	cleanDeep      bool
	cleanDryRun    bool
	cleanYes       bool

	cleanCmd = &cobra.Command{
		Use:   "clean [path]",
		Short: "Delete every stale node_modules directory",
		Long: `Scan a directory tree and delete every node_modules directory that has not
been modified within --stale-days. The list is shown first and must be
confirmed by typing "delete" unless --yes is given.

Sizes are measured by default so the report shows how much was freed; pass
--deep=false for a faster scan.`,
		Example: `  # Preview
  envoic clean ~/code --dry-run

  # Delete environments untouched for six months, no prompt
  envoic clean ~/code --stale-days 180 --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClean,
	}
)

func init() {
	cleanCmd.Flags().IntVarP(&cleanDepth, "depth", "d", 5, "maximum directory depth (root is 1)")
	cleanCmd.Flags().IntVar(&cleanStaleDays, "stale-days", 90, "days without modification before an environment is stale")
	cleanCmd.Flags().StringSliceVar(&cleanExclude, "exclude", nil, "glob of paths to skip, relative to the scan root (repeatable)")
	cleanCmd.Flags().BoolVar(&cleanDeep, "deep", true, "measure sizes before deleting")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "show what would be deleted without deleting")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the typed confirmation")
}

func runClean(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd, &cleanDepth, &cleanStaleDays, &cleanExclude); err != nil {
		return err
	}
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	result, err := runScanner(scanner.Options{
		Root:      root,
		Depth:     cleanDepth,
		Deep:      cleanDeep,
		StaleDays: cleanStaleDays,
		Exclude:   cleanExclude,
	})
	if err != nil {
		return err
	}

	var stale []npm.Environment
	for _, env := range result.Environments {
		if env.IsStale {
			stale = append(stale, env)
		}
	}
	if len(stale) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stale environments found.")
		return nil
	}

	return confirmAndDelete(cmd, cleaner.FromEnvironments(stale), result.ScanPath, len(result.Environments), cleanDryRun, cleanYes)
}

package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/output"
	"github.com/blackwell-systems/envoic/internal/scanner"
)

var (
	scanDepth       int
	scanDeep        bool
	scanJSON        bool
	scanStaleDays   int
	scanNoArtifacts bool
	scanExclude     []string

	scanCmd = &cobra.Command{
		Use:   "scan [path]",
		Short: "Report node_modules directories and build artifacts",
		Long: `Walk a directory tree and report every node_modules directory and JavaScript
build artifact found in it.

Each environment is profiled for its package manager, last modification time,
staleness and whether package.json changed after the last install. With --deep,
sizes and package counts are measured as well, which reads every file under
each match and can take a while on large trees.

Artifacts are grouped by pattern (.next, dist, coverage, .eslintcache, ...) and
tagged with how safe they are to delete.`,
		Example: `  # Scan the current directory
  envoic scan

  # Measure sizes, three levels deep
  envoic scan ~/code --deep --depth 3

  # Machine-readable output
  envoic scan ~/code --deep --json

  # Ignore vendored and archived trees
  envoic scan ~/code --exclude vendor --exclude 'archive/*'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
)

func init() {
	scanCmd.Flags().IntVarP(&scanDepth, "depth", "d", 5, "maximum directory depth (root is 1)")
	scanCmd.Flags().BoolVar(&scanDeep, "deep", false, "measure sizes and package counts")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the result as JSON")
	scanCmd.Flags().IntVar(&scanStaleDays, "stale-days", 90, "days without modification before an environment is stale")
	scanCmd.Flags().BoolVar(&scanNoArtifacts, "no-artifacts", false, "skip build artifact detection")
	scanCmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "glob of paths to skip, relative to the scan root (repeatable)")
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd, &scanDepth, &scanStaleDays, &scanExclude); err != nil {
		return err
	}
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	result, err := runScanner(scanner.Options{
		Root:             root,
		Depth:            scanDepth,
		Deep:             scanDeep,
		StaleDays:        scanStaleDays,
		IncludeArtifacts: !scanNoArtifacts,
		Exclude:          scanExclude,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scanJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, output.RenderReport(result, scanDeep))
	return nil
}

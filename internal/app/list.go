package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/output"
	"github.com/blackwell-systems/envoic/internal/scanner"
)

var (
	listDepth     int
	listDeep      bool
	listStaleDays int
	listExclude   []string

	listCmd = &cobra.Command{
		Use:   "list [path]",
		Short: "List node_modules directories as a table",
		Long: `List every node_modules directory under a path, one row per environment,
with its package manager, age and staleness. Build artifacts are not shown.`,
		Example: `  envoic list
  envoic list ~/code --deep`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().IntVarP(&listDepth, "depth", "d", 5, "maximum directory depth (root is 1)")
	listCmd.Flags().BoolVar(&listDeep, "deep", false, "measure sizes and package counts")
	listCmd.Flags().IntVar(&listStaleDays, "stale-days", 90, "days without modification before an environment is stale")
	listCmd.Flags().StringSliceVar(&listExclude, "exclude", nil, "glob of paths to skip, relative to the scan root (repeatable)")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd, &listDepth, &listStaleDays, &listExclude); err != nil {
		return err
	}
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	result, err := runScanner(scanner.Options{
		Root:      root,
		Depth:     listDepth,
		Deep:      listDeep,
		StaleDays: listStaleDays,
		Exclude:   listExclude,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.RenderList(result.Environments, result.ScanPath, result.Timestamp))
	return nil
}

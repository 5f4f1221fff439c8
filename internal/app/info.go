package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/npm"
	"github.com/blackwell-systems/envoic/internal/output"
	"github.com/blackwell-systems/envoic/internal/scanner"
)

var (
	infoStaleDays int

	infoCmd = &cobra.Command{
		Use:   "info <node_modules>",
		Short: "Show details for one node_modules directory",
		Long: `Show the package manager, package count, size, modification time, staleness
and the ten largest packages of a single node_modules directory, along with
the command that reinstalls it.`,
		Example: `  envoic info ./node_modules
  envoic info ~/code/app/node_modules`,
		Args: cobra.ExactArgs(1),
		RunE: runInfo,
	}
)

func init() {
	infoCmd.Flags().IntVar(&infoStaleDays, "stale-days", 90, "days without modification before an environment is stale")
}

func runInfo(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd, nil, &infoStaleDays, nil); err != nil {
		return err
	}

	target, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}
	if filepath.Base(target) != npm.DirName {
		return fmt.Errorf("%w: %s", errNotNodeModules, args[0])
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", args[0])
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", errNotNodeModules, args[0])
	}

	result, err := runScanner(scanner.Options{
		Root:      filepath.Dir(target),
		Depth:     2,
		Deep:      true,
		StaleDays: infoStaleDays,
	})
	if err != nil {
		return err
	}

	var env *npm.Environment
	for i := range result.Environments {
		if result.Environments[i].Path == target {
			env = &result.Environments[i]
			break
		}
	}
	if env == nil {
		return fmt.Errorf("no environment found at %s", args[0])
	}

	top, err := npm.TopPackages(target, 10)
	if err != nil {
		return fmt.Errorf("failed to measure packages: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.RenderInfo(*env, top, npm.InstallHint(env.PackageManager)))
	return nil
}

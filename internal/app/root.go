package app

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/config"
	"github.com/blackwell-systems/envoic/internal/output"
)

var (
	verbose   bool
	noColor   bool
	cfgFile   string
	dbPath    string
	noHistory bool

	// appConfig is loaded before every command runs.
	appConfig *config.Config

	// RootCmd is the root command for envoic
	RootCmd = &cobra.Command{
		Use:   "envoic",
		Short: "Find and clean up node_modules and JavaScript build artifacts",
		Long: `envoic walks a directory tree looking for node_modules directories and
JavaScript build byproducts (.next, dist, coverage, .eslintcache, ...), reports
how much space they take and how stale they are, and deletes the ones you pick.

Deletion is always confined to the scanned directory and always asks for
confirmation unless --yes is given.

Examples:
  # Report everything under the current directory
  envoic scan --deep

  # Just list environments
  envoic list ~/code

  # Inspect one environment
  envoic info ~/code/app/node_modules

  # Pick environments to delete
  envoic manage ~/code --stale-only

  # Delete every stale environment, previewing first
  envoic clean ~/code --dry-run`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/envoic/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "deletion history database (default: ~/.config/envoic/history.db)")
	RootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record deletions")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(scanCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(manageCmd)
	RootCmd.AddCommand(cleanCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// setup configures logging and colour, then loads the config file.
func setup(cmd *cobra.Command, args []string) error {
	if verbose {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    noColor,
		})
	} else {
		log.Logger = zerolog.Nop()
	}

	output.Init(!noColor && output.IsColorEnabled())

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg
	log.Debug().Int("depth", cfg.Depth).Int("stale_days", cfg.StaleDays).Strs("exclude", cfg.Exclude).Msg("config loaded")

	return nil
}

// getDBPath returns the history database path from the flag, the config
// file, or the default location, creating its directory.
func getDBPath() (string, error) {
	path := dbPath
	if path == "" {
		var err error
		if path, err = currentConfig().DatabasePath(); err != nil {
			return "", fmt.Errorf("failed to locate history database: %w", err)
		}
	}
	return path, nil
}

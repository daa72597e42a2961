// =============================================================================
// CAPPS Converter - Root Command
// =============================================================================
//
// Defines the base command all subcommands attach to:
//
//   capps
//   ├── convert   (capps convert purchases.csv serials.csv)
//   ├── cache     (capps cache list|remove|set|clear)
//   ├── upload    (capps upload output/capps_....xml)
//   └── version
//
// The root command owns the global flags (--config, --verbose) and the
// shared configuration/logger setup.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/storeops/capps-converter/internal/config"
	"github.com/storeops/capps-converter/internal/logger"
)

// cfgFile is the configuration file path, overridable with --config.
var cfgFile string

// verbose raises the log level to debug.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "capps",
	Short: "Convert AIMsi POS exports to CAPPS bulk-upload XML",
	Long: `capps converts AIMsi point-of-sale CSV exports (purchases + serials)
into the CAPPS secondhand-dealer bulk-upload XML format required by SB 1317
reporting, resolving item brands through a cached classifier chain and
mapping store categories onto the CAPPS article vocabulary.

Example Usage:
  capps convert purchases.csv LUCASSERIALS.CSV --license 12345678
  capps cache list
  capps upload output/capps_20251110_093000.xml`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
}

// loadConfig loads the configuration file and builds the logger the
// subcommands share. --verbose overrides the configured log level.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	return cfg, logger.New(level), nil
}

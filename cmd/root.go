// =============================================================================
// Inventory Price Adjuster - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// ('process', 'round', 'version') are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (adjuster)
//   ├── processCmd (adjuster process <file>)
//   ├── roundCmd   (adjuster round <price>...)
//   └── versionCmd (adjuster version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads config.yaml (or --config) plus ADJUSTER_* environment overrides
//   2. Builds the zap logger; --verbose forces the debug level
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/config"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig and logger are set by initApp before a subcommand runs.
var (
	appConfig *config.Config
	logger    = zap.NewNop()
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "adjuster",
	Short: "Inventory Price Adjuster - Filter, mark up and round spreadsheet price lists",
	Long: `Inventory Price Adjuster reads a price list workbook (or a CSV export of
one), keeps the items sold by the configured unit, applies the markup to
every section except the exempt one, rounds the prices and writes a new
workbook with code, name and adjusted price.

Default rules:
  - Only rows whose unit indicator equals 1 are kept
  - Prices are multiplied by 1.075 unless the section is 52
  - Prices are raised to the next half step (10.2 -> 10.5, 10.7 -> 11)

Example Usage:
  adjuster process prices.xlsx            # Adjust and export
  adjuster process prices.xlsx --dry-run  # Show the result without writing files
  adjuster round 10.2 10.49 10.7          # Show how prices are rounded`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.SilenceErrors = true

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
		"Enable verbose output for debugging",
	)
}

// initApp loads the configuration and builds the logger. The default config
// file is optional; a file named with --config must exist.
func initApp(cmd *cobra.Command) error {
	optional := !cmd.Flags().Changed("config")

	cfg, err := config.Load(cfgFile, optional)
	if err != nil {
		return err
	}

	logCfg := cfg.LoggingConfig()
	if verbose {
		logCfg.Level = "debug"
	}

	l, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appConfig = cfg
	logger = l
	logger.Debug("configuration loaded", zap.String("config", cfgFile), zap.Bool("default_config", optional))
	return nil
}

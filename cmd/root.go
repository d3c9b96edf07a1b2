// =============================================================================
// Ledger Cleaner - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every dataset has
// its own subcommand attached here.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ledgerclean)
//   ├── bulkOrdersCmd (ledgerclean bulk-orders <input_file> [output_file])
//   ├── itemsCmd      (ledgerclean items <input_file> [output_file])
//   ├── salesCmd      (ledgerclean sales <input_file> [output_file])
//   ├── processCmd    (ledgerclean process <dataset> <input_file>...)
//   └── versionCmd    (ledgerclean version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --year, ...)
//   2. Loading the optional configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ledgerclean/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// yearOverride replaces year resolution when non-zero.
var yearOverride int

// diagnosticsPath is where the full diagnostics log is written, if set.
var diagnosticsPath string

// sheetName selects the worksheet of a workbook input.
var sheetName string

// appConfig is the loaded configuration, set before any subcommand runs.
var appConfig = config.Default()

// logger is shared by every run of this process.
var logger = logrus.New()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgerclean",
	Short: "Ledger Cleaner - Turn hand-kept ledger exports into clean CSV",
	Long: `Ledger Cleaner reads spreadsheet exports of hand-maintained business
ledgers (bulk orders, items by category, sales by day) and writes normalized,
aggregated CSV files for downstream import.

Rows that cannot be used are dropped and reported; they never stop a run.

Example Usage:
  ledgerclean bulk-orders orders_2024.csv
  ledgerclean bulk-orders orders_2024.csv --summary monthly
  ledgerclean items items.xlsx items_clean.csv --sheet "2024"
  ledgerclean sales sales.csv --daily --diagnostics sales.log`,

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRun(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().IntVar(
		&yearOverride,
		"year",
		0,
		"Calendar year of the export (skips detection from the file name and content)",
	)

	rootCmd.PersistentFlags().StringVar(
		&diagnosticsPath,
		"diagnostics",
		"",
		"Write every warning and error to this file",
	)

	rootCmd.PersistentFlags().StringVar(
		&sheetName,
		"sheet",
		"",
		"Worksheet to read when the input is a workbook (default is the first sheet)",
	)
}

// initRun loads the configuration and sets up logging. A missing config
// file is only an error when --config was given explicitly.
func initRun(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if sheetName != "" {
		cfg.Sheet = sheetName
	}

	if yearOverride != 0 && (yearOverride < 1900 || yearOverride > 2099) {
		return fmt.Errorf("--year must be between 1900 and 2099, got %d", yearOverride)
	}

	appConfig = cfg
	logger = newLogger(cfg.LogLevel, verbose, cmd.ErrOrStderr())
	return nil
}

// newLogger builds the process logger. --verbose wins over log_level.
func newLogger(level string, verbose bool, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}

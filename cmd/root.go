// =============================================================================
// Transmittal Updater - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('update', 'normalize', 'version')
// are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (transmittal)
//   ├── updateCmd (transmittal update)
//   ├── normalizeCmd (transmittal normalize)
//   └── versionCmd (transmittal version)
//
// The root command owns the global flags (--config, --verbose); everything
// else lives on the subcommands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "transmittal",

	Short: "Transmittal Updater - Stamp spreadsheet rows with transmittal dates and codes",

	Long: `Transmittal Updater is a CLI tool that batch-updates spreadsheet registers:
it matches a list of identifier codes against one column of each input file
and stamps every matching row with an issue date and a transmittal reference,
then exports the updated file.

Key Features:
  - XLSX and delimited-text inputs, exported in the same format
  - Per-job YAML configuration: columns, codes, and file patterns
  - Case-insensitive, whitespace-tolerant code matching
  - Canonical date formatting with an optional normalization pass
  - Concurrent processing with per-file error isolation
  - Automatic archival of processed files

Example Usage:
  transmittal update                    # Stamp all files in the input directory
  transmittal update --config ./my.yaml # Use a custom configuration file
  transmittal normalize                 # Only normalize date columns`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// Transmittal Updater - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Transmittal Updater CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   transmittal update      - Stamp all spreadsheets in the input directory
//   transmittal normalize   - Rewrite date columns to the canonical format
//   transmittal version     - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//   - jobs/          : Contains per-job YAML configurations
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/transmittal-updater/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}

// =============================================================================
// Transmittal Updater - Normalize Command
// =============================================================================
//
// This file defines the 'normalize' command, which runs only the date
// normalization pass: every column of each input file that parses entirely
// as dates is rewritten to the canonical format, and the file is exported.
// No codes are matched and nothing is stamped.
//
// COMMAND USAGE:
//   transmittal normalize [flags]
//
// FLAGS:
//   --file : Normalize a single file instead of the input directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/transmittal-updater/internal/config"
	"github.com/ginjaninja78/transmittal-updater/internal/csvio"
	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
	"github.com/ginjaninja78/transmittal-updater/internal/stamper"
	"github.com/ginjaninja78/transmittal-updater/internal/xlsxio"
	"github.com/ginjaninja78/transmittal-updater/pkg/utils"
)

// normalizeFile is the single file to normalize (empty means the whole
// input directory).
var normalizeFile string

// normalizeCmd represents the 'normalize' command.
var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite date-valued columns to the canonical format",
	Long: `The normalize command scans each input file for columns whose values all
parse as dates and rewrites them to the canonical format ("11-May-25", or
"11-MAY-25" with date_style: upper). Columns with any non-date content are
left untouched. Nothing is stamped; use 'update' for that.

The pass is idempotent: normalizing an already-normalized file changes
nothing.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runNormalize()
	},
}

// init registers the normalize command and its flags.
func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringVar(
		&normalizeFile,
		"file",
		"",
		"Normalize a single file instead of the input directory",
	)
}

// runNormalize runs the normalization pass over the selected files.
func runNormalize() error {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	var files []string
	if normalizeFile != "" {
		if !utils.FileExists(normalizeFile) {
			return fmt.Errorf("file not found: %s", normalizeFile)
		}
		files = []string{normalizeFile}
	} else {
		fm := utils.NewFileManager(
			mainConfig.InputDir,
			mainConfig.OutputDir,
			mainConfig.InputArchiveDir,
			mainConfig.OutputArchiveDir,
		)
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
		files, err = fm.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	if len(files) == 0 {
		fmt.Println("No spreadsheet files found in the input directory.")
		return nil
	}

	// Delimited inputs outside an update job have no job CSV settings;
	// plain comma-separated with one header row is assumed.
	csvSettings := config.CSVSettings{Delimiter: ",", HeaderRows: 1, DataStartRow: 2}

	for _, file := range files {
		ds, err := loadFile(file, csvSettings)
		if err != nil {
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(file), err)
			if !mainConfig.ContinueOnError {
				return err
			}
			continue
		}

		normalized := stamper.NormalizeDates(ds, mainConfig.Style())

		outputPath, err := writeNormalized(file, normalized, mainConfig, csvSettings)
		if err != nil {
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(file), err)
			if !mainConfig.ContinueOnError {
				return err
			}
			continue
		}

		fmt.Printf("  ✓ %s -> %s\n", filepath.Base(file), filepath.Base(outputPath))
	}

	return nil
}

// loadFile reads one input file into a dataset, picking the reader by
// extension.
func loadFile(path string, csvSettings config.CSVSettings) (*dataset.Dataset, error) {
	if utils.IsDelimitedText(path) {
		return csvio.ReadFile(path, csvSettings)
	}
	return xlsxio.ReadFile(path)
}

// writeNormalized writes the normalized dataset to the output directory
// under a generated name.
func writeNormalized(inputPath string, ds *dataset.Dataset, mainConfig *config.MainConfig, csvSettings config.CSVSettings) (string, error) {
	if err := os.MkdirAll(mainConfig.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	if !utils.IsDelimitedText(base) {
		ext = ".xlsx"
	}

	name := utils.GenerateOutputFileName(mainConfig.OutputNameFormat, map[string]string{
		"job":  "normalize",
		"name": strings.TrimSuffix(base, filepath.Ext(base)),
	}, ext)
	outputPath := filepath.Join(mainConfig.OutputDir, name)

	if utils.IsDelimitedText(inputPath) {
		if err := csvio.WriteFile(outputPath, ds, csvSettings); err != nil {
			return "", err
		}
		return outputPath, nil
	}

	if err := xlsxio.WriteFile(outputPath, ds); err != nil {
		return "", err
	}
	return outputPath, nil
}

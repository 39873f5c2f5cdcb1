// =============================================================================
// Transmittal Updater - Update Command
// =============================================================================
//
// This file defines the 'update' command, the main command for stamping
// input files. It orchestrates the whole run.
//
// COMMAND USAGE:
//   transmittal update [flags]
//
// FLAGS:
//   --dry-run : Simulate processing without writing output files
//   --single  : Process only a single file (specify with --file)
//   --file    : Path to a specific file to process (used with --single)
//   --job     : Process only files belonging to a specific job
//   --codes   : Override the job's code list with an inline blob
//
// PROCESSING PIPELINE:
//   1. Load the main configuration and all job configurations
//   2. Discover spreadsheet files in the input directory
//   3. Match each file to a job by filename pattern
//   4. For each file (concurrently): load, stamp, normalize, export, archive
//   5. Write an error log if anything failed
//   6. Print and write the run summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/transmittal-updater/internal/config"
	"github.com/ginjaninja78/transmittal-updater/internal/runner"
	"github.com/ginjaninja78/transmittal-updater/internal/stamper"
	"github.com/ginjaninja78/transmittal-updater/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun simulates processing without writing output files.
var dryRun bool

// singleFile indicates whether to process only a single file.
var singleFile bool

// filePath is the path to a specific file to process (used with --single).
var filePath string

// jobFilter restricts processing to a specific job code.
var jobFilter string

// codesOverride replaces the job's configured code list for this run.
var codesOverride string

// =============================================================================
// UPDATE COMMAND DEFINITION
// =============================================================================

// updateCmd represents the 'update' command.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Match codes and stamp transmittal data onto spreadsheet rows",
	Long: `The update command scans the input directory for spreadsheet files, matches
them to the appropriate job configuration, and stamps every row whose code
column matches one of the job's codes with the job's date and transmittal
reference.

Processing is done concurrently. Each file is processed independently, and
errors in one file do not affect the processing of others.

On successful processing:
  - The updated spreadsheet is placed in the output directory
  - The original file is moved to the input archive
  - A run summary is written

On error:
  - An error log is created in the output directory
  - The original file remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate()
	},
}

// init registers the update command and its flags.
func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Simulate processing without writing output files",
	)

	updateCmd.Flags().BoolVar(
		&singleFile,
		"single",
		false,
		"Process only a single file (use with --file)",
	)

	updateCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific file to process (used with --single)",
	)

	updateCmd.Flags().StringVar(
		&jobFilter,
		"job",
		"",
		"Process only files belonging to a specific job code",
	)

	updateCmd.Flags().StringVar(
		&codesOverride,
		"codes",
		"",
		"Override the job's code list (newline- or comma-separated)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runUpdate orchestrates one stamping run.
func runUpdate() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== Transmittal Updater ===")
	fmt.Println("Loading configuration...")

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	if closeLog, err := setupLogOutput(mainConfig.LogFile); err != nil {
		fmt.Printf("Warning: %v\n", err)
	} else if closeLog != nil {
		defer closeLog()
	}

	jobs, err := config.LoadJobConfigs(mainConfig.JobsDir)
	if err != nil {
		return fmt.Errorf("failed to load job configs: %w", err)
	}

	if jobFilter != "" {
		job, ok := jobs[jobFilter]
		if !ok {
			return fmt.Errorf("unknown job code %q", jobFilter)
		}
		jobs = map[string]*config.JobConfig{jobFilter: job}
	}

	if codesOverride != "" {
		for _, job := range jobs {
			job.Codes = codesOverride
			job.CodesFile = ""
		}
	}

	fmt.Printf("Loaded %d job configuration(s)\n", len(jobs))

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	fmt.Println("Discovering input files...")

	inputFiles, err := discoverInputFiles(mainConfig)
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(inputFiles) == 0 {
		fmt.Println("No spreadsheet files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES
	// =========================================================================

	fmt.Println("Processing files...")

	results := processFiles(inputFiles, jobs, mainConfig)

	// =========================================================================
	// STEP 4: COLLECT RESULTS
	// =========================================================================

	summary := utils.RunSummary{StartTime: startTime}
	var errorEntries []utils.ErrorLogEntry

	for _, result := range results {
		summary.TotalFiles++
		summary.TotalRows += result.Stats.Rows
		summary.TotalRowsUpdated += result.Stats.RowsUpdated

		if result.Success {
			summary.SuccessfulFiles++
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   result.FilePath,
				OutputFile:  result.OutputFile,
				Rows:        result.Stats.Rows,
				RowsUpdated: result.Stats.RowsUpdated,
				Outcome:     result.Stats.Outcome.String(),
				ProcessTime: result.Stats.ProcessingTime,
			})
			fmt.Printf("  ✓ %s: %s\n", filepath.Base(result.FilePath), describeOutcome(result))
		} else {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: result.Error.Error(),
			})
			errorEntries = append(errorEntries, utils.ErrorLogEntry{
				Timestamp:    time.Now(),
				FileName:     filepath.Base(result.FilePath),
				ErrorMessage: result.Error.Error(),
			})
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	summary.EndTime = time.Now()

	// =========================================================================
	// STEP 5: WRITE LOGS AND PRINT SUMMARY
	// =========================================================================

	if len(errorEntries) > 0 && !dryRun {
		if logPath, err := utils.WriteErrorLog(errorEntries, mainConfig.OutputDir); err == nil {
			fmt.Printf("\nErrors have been logged to %s\n", logPath)
		}
	}

	if !dryRun {
		if _, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir); err != nil {
			fmt.Printf("Warning: failed to write run summary: %v\n", err)
		}
	}

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", summary.TotalFiles)
	fmt.Printf("Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Printf("Errors:          %d\n", summary.FailedFiles)
	fmt.Printf("Rows updated:    %d\n", summary.TotalRowsUpdated)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// processFiles runs one runner per input file. With continue_on_error (the
// default) files are processed concurrently, bounded by max_concurrency, and
// a failure never affects the other files. With continue_on_error: false the
// files run one at a time and the first failure stops the rest, leaving them
// in the input directory for the next run.
func processFiles(inputFiles []string, jobs map[string]*config.JobConfig, mainConfig *config.MainConfig) []runner.Result {
	if !mainConfig.ContinueOnError {
		var results []runner.Result
		for _, file := range inputFiles {
			result := processFile(file, jobs, mainConfig)
			results = append(results, result)
			if !result.Success {
				break
			}
		}
		return results
	}

	var wg sync.WaitGroup
	resultChan := make(chan runner.Result, len(inputFiles))
	sem := make(chan struct{}, mainConfig.MaxConcurrency)

	for _, file := range inputFiles {
		wg.Add(1)

		go func(filePath string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			resultChan <- processFile(filePath, jobs, mainConfig)
		}(file)
	}

	wg.Wait()
	close(resultChan)

	results := make([]runner.Result, 0, len(inputFiles))
	for result := range resultChan {
		results = append(results, result)
	}
	return results
}

// processFile matches one input file to its job and runs the stamping
// pipeline on it.
func processFile(filePath string, jobs map[string]*config.JobConfig, mainConfig *config.MainConfig) runner.Result {
	job := findMatchingJob(filePath, jobs)
	if job == nil {
		return runner.Result{
			FilePath: filePath,
			Success:  false,
			Error:    fmt.Errorf("no matching job configuration found"),
		}
	}

	r := runner.New(filePath, job, mainConfig)
	r.SetDryRun(dryRun)
	r.SetLogger(consoleLogger{debug: verbose || mainConfig.LogLevel == "debug"})
	return r.Run()
}

// setupLogOutput tees the standard logger into the configured log file, so
// the run's progress survives the console session. Returns a close func when
// a file was opened.
func setupLogOutput(logFile string) (func(), error) {
	if logFile == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return func() { f.Close() }, nil
}

// consoleLogger routes runner progress through the standard logger. Debug
// lines only appear with --verbose or log_level: debug.
type consoleLogger struct {
	debug bool
}

func (l consoleLogger) Debug(msg string, args ...interface{}) {
	if l.debug {
		log.Printf("[DEBUG] "+msg, args...)
	}
}

func (l consoleLogger) Info(msg string, args ...interface{}) {
	log.Printf("[INFO] "+msg, args...)
}

func (l consoleLogger) Warn(msg string, args ...interface{}) {
	log.Printf("[WARN] "+msg, args...)
}

func (l consoleLogger) Error(msg string, args ...interface{}) {
	log.Printf("[ERROR] "+msg, args...)
}

// describeOutcome renders one successful result for the console.
func describeOutcome(result runner.Result) string {
	switch result.Stats.Outcome {
	case stamper.OutcomeUpdated:
		if result.OutputFile == "" {
			return fmt.Sprintf("updated %d rows (dry run)", result.Stats.RowsUpdated)
		}
		return fmt.Sprintf("updated %d rows -> %s", result.Stats.RowsUpdated, filepath.Base(result.OutputFile))
	case stamper.OutcomeNoMatches:
		return "no matching codes found in the code column"
	case stamper.OutcomeEmptyCodeList:
		return "no codes configured; nothing to do"
	default:
		return "done"
	}
}

// discoverInputFiles lists the files this run will process: either the one
// named by --single/--file or everything in the input directory.
func discoverInputFiles(mainConfig *config.MainConfig) ([]string, error) {
	if singleFile {
		if filePath == "" {
			return nil, fmt.Errorf("--single requires --file")
		}
		if !utils.FileExists(filePath) {
			return nil, fmt.Errorf("file not found: %s", filePath)
		}
		return []string{filePath}, nil
	}

	fm := utils.NewFileManager(
		mainConfig.InputDir,
		mainConfig.OutputDir,
		mainConfig.InputArchiveDir,
		mainConfig.OutputArchiveDir,
	)
	if err := fm.EnsureDirectories(); err != nil {
		return nil, err
	}

	return fm.DiscoverInputFiles()
}

// findMatchingJob finds the job configuration whose filename patterns match
// the given file.
func findMatchingJob(filePath string, jobs map[string]*config.JobConfig) *config.JobConfig {
	fileName := filepath.Base(filePath)

	for _, job := range jobs {
		for _, pattern := range job.FileMatchingPatterns {
			matched, err := filepath.Match(pattern, fileName)
			if err != nil {
				// Invalid pattern, skip it.
				continue
			}
			if matched {
				return job
			}
		}
	}

	return nil
}

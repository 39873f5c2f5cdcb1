// =============================================================================
// Transmittal Updater - Per-File Runner
// =============================================================================
//
// This module orchestrates the stamping pipeline for a single input file:
//
//   1. Load the spreadsheet (XLSX workbook or delimited text) into a dataset
//   2. Prepare the code list from the job configuration
//   3. Match the codes and stamp the date/transmittal columns
//   4. Optionally normalize date-valued columns to the canonical format
//   5. Write the updated file to the output directory
//   6. Archive the source file
//
// Each input file gets its own Runner; the update command runs several of
// them concurrently and collects their Results.
//
// =============================================================================

package runner

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/transmittal-updater/internal/config"
	"github.com/ginjaninja78/transmittal-updater/internal/csvio"
	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
	"github.com/ginjaninja78/transmittal-updater/internal/stamper"
	"github.com/ginjaninja78/transmittal-updater/internal/xlsxio"
	"github.com/ginjaninja78/transmittal-updater/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the updated file. Empty if processing
	// failed or was skipped by --dry-run.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about one file's run.
type Stats struct {
	// Rows is the number of data rows in the file.
	Rows int

	// RowsUpdated is the accumulated matched-row count (per code).
	RowsUpdated int

	// Codes is the number of usable codes after preparation.
	Codes int

	// Outcome classifies the stamping result for reporting.
	Outcome stamper.Outcome

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// RUNNER STRUCTURE
// =============================================================================

// Runner handles the stamping of a single input file.
type Runner struct {
	// filePath is the path to the input file.
	filePath string

	// job is the job configuration matched to this file.
	job *config.JobConfig

	// mainConfig is the main application configuration.
	mainConfig *config.MainConfig

	// files handles output placement and archival.
	files *utils.FileManager

	// dryRun skips the output write and archival steps.
	dryRun bool

	// logger is used for progress logging.
	logger Logger
}

// Logger is the minimal logging surface the runner needs. The default
// implementation writes to the standard logger; tests substitute their own.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a Runner for one input file.
func New(filePath string, job *config.JobConfig, mainConfig *config.MainConfig) *Runner {
	return &Runner{
		filePath:   filePath,
		job:        job,
		mainConfig: mainConfig,
		files: utils.NewFileManager(
			mainConfig.InputDir,
			mainConfig.OutputDir,
			mainConfig.InputArchiveDir,
			mainConfig.OutputArchiveDir,
		),
		logger: &defaultLogger{},
	}
}

// SetDryRun makes the runner simulate processing without writing output or
// archiving the source file.
func (r *Runner) SetDryRun(dryRun bool) {
	r.dryRun = dryRun
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger Logger) {
	r.logger = logger
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the stamping pipeline for the file.
func (r *Runner) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: r.filePath,
		Success:  false,
	}

	// =========================================================================
	// STEP 1: LOAD THE SPREADSHEET
	// =========================================================================

	r.logger.Info("Processing file: %s", r.filePath)

	ds, err := r.loadDataset()
	if err != nil {
		result.Error = fmt.Errorf("failed to load file: %w", err)
		return result
	}

	result.Stats.Rows = ds.NumRows()
	r.logger.Debug("Loaded %d rows, %d columns", ds.NumRows(), ds.NumColumns())

	// =========================================================================
	// STEP 2: PREPARE THE CODE LIST
	// =========================================================================

	codes, err := r.prepareCodes()
	if err != nil {
		result.Error = fmt.Errorf("failed to prepare codes: %w", err)
		return result
	}

	result.Stats.Codes = len(codes)
	r.logger.Debug("Prepared %d codes", len(codes))

	// =========================================================================
	// STEP 3: MATCH AND STAMP
	// =========================================================================

	stampDate, err := r.job.StampDate(time.Now())
	if err != nil {
		result.Error = err
		return result
	}

	update, err := stamper.Update(ds, stamper.Request{
		Codes:             codes,
		Date:              stampDate,
		Transmittal:       r.job.Transmittal,
		Style:             r.mainConfig.Style(),
		CodeColumn:        r.job.CodeColumn,
		DateColumn:        r.job.DateColumn,
		TransmittalColumn: r.job.TransmittalColumn,
	})
	if err != nil {
		result.Error = fmt.Errorf("failed to update: %w", err)
		return result
	}

	result.Stats.RowsUpdated = update.Updated
	result.Stats.Outcome = update.Outcome

	switch update.Outcome {
	case stamper.OutcomeUpdated:
		r.logger.Info("Updated %d rows", update.Updated)
	case stamper.OutcomeNoMatches:
		r.logger.Warn("No rows matched any of the %d codes", len(codes))
	case stamper.OutcomeEmptyCodeList:
		r.logger.Warn("No usable codes; file passed through unchanged")
	}

	updated := update.Dataset

	// =========================================================================
	// STEP 4: NORMALIZE DATE COLUMNS (OPTIONAL)
	// =========================================================================

	if r.job.NormalizeDates {
		updated = stamper.NormalizeDates(updated, r.mainConfig.Style())
		r.logger.Debug("Normalized date columns")
	}

	// =========================================================================
	// STEP 5: WRITE THE OUTPUT FILE
	// =========================================================================

	if r.dryRun {
		r.logger.Info("Dry run: skipping output for %s", r.filePath)
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	outputPath, err := r.writeOutput(updated)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	r.logger.Info("Wrote output to: %s", outputPath)

	// =========================================================================
	// STEP 6: ARCHIVE FILES
	// =========================================================================

	if err := r.archiveFiles(outputPath); err != nil {
		// Archival problems are logged, not fatal: the output exists.
		r.logger.Warn("Failed to archive files: %v", err)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadDataset reads the input file into a dataset, picking the reader by
// file extension.
func (r *Runner) loadDataset() (*dataset.Dataset, error) {
	if utils.IsDelimitedText(r.filePath) {
		return csvio.ReadFile(r.filePath, r.job.CSVSettings)
	}
	return xlsxio.ReadFile(r.filePath)
}

// prepareCodes assembles the job's code list from the inline blob and the
// codes file, in that order.
func (r *Runner) prepareCodes() ([]string, error) {
	codes := stamper.ParseCodes(r.job.Codes)

	if r.job.CodesFile != "" {
		data, err := os.ReadFile(r.job.CodesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read codes file: %w", err)
		}
		codes = append(codes, stamper.ParseCodes(string(data))...)
	}

	return codes, nil
}

// writeOutput serializes the updated dataset next to a generated name in
// the output directory, keeping the source file's format.
func (r *Runner) writeOutput(ds *dataset.Dataset) (string, error) {
	if err := os.MkdirAll(r.mainConfig.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Base(r.filePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if !utils.IsDelimitedText(base) {
		// Workbooks are always written back as .xlsx; excelize does not
		// save the legacy .xls format.
		ext = ".xlsx"
	}
	outputName := utils.GenerateOutputFileName(r.mainConfig.OutputNameFormat, map[string]string{
		"job":  r.job.JobCode,
		"name": name,
	}, ext)

	outputPath := filepath.Join(r.mainConfig.OutputDir, outputName)

	if utils.IsDelimitedText(r.filePath) {
		if err := csvio.WriteFile(outputPath, ds, r.job.CSVSettings); err != nil {
			return "", err
		}
		return outputPath, nil
	}

	if err := xlsxio.WriteFile(outputPath, ds); err != nil {
		return "", err
	}
	return outputPath, nil
}

// archiveFiles moves the source file to the input archive and copies the
// output to the output archive.
func (r *Runner) archiveFiles(outputPath string) error {
	if _, err := r.files.ArchiveInputFile(r.filePath); err != nil {
		return err
	}

	if _, err := r.files.ArchiveOutputFile(outputPath); err != nil {
		return err
	}

	return nil
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// defaultLogger writes through the standard library logger.
type defaultLogger struct{}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	log.Printf("[DEBUG] "+msg, args...)
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	log.Printf("[INFO] "+msg, args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	log.Printf("[WARN] "+msg, args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	log.Printf("[ERROR] "+msg, args...)
}

// =============================================================================
// Transmittal Updater - Configuration Module
// =============================================================================
//
// This module loads and manages all configuration files:
//   1. Main Config (config.yaml): Global application settings
//   2. Job Configs (jobs/*.yaml): Per-job stamping rules
//
// A "job" pairs a set of input-file matching patterns with the stamping
// parameters for those files: which column carries the identifier codes,
// which columns receive the date and transmittal values, and where the code
// list comes from. New jobs are added by dropping a YAML file into the jobs
// directory; no code changes are required.
//
// All configurations get defaults applied and are validated on load, so the
// rest of the program can assume a well-formed configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/transmittal-updater/internal/stamper"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration, loaded from the
// main config.yaml file.
type MainConfig struct {
	// InputDir is the directory scanned for spreadsheets to stamp.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory updated spreadsheets are written to.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is where source files are moved after successful
	// processing. Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir is where generated files are archived for long-term
	// storage. Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// JobsDir is the directory containing per-job YAML configurations.
	// Default: "./jobs"
	JobsDir string `yaml:"jobs_dir"`

	// LogFile is the path to the application log file.
	// Default: "./logs/transmittal.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// OutputNameFormat defines generated file names. Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {job}       - Job code
	//   {name}      - Source file name without extension
	// The source file's extension is appended automatically.
	// Default: "{name}_updated_{timestamp}"
	OutputNameFormat string `yaml:"output_name_format"`

	// DateStyle selects the letter case of the canonical date format:
	// "title" for "11-May-25", "upper" for "11-MAY-25".
	// Default: "title"
	DateStyle string `yaml:"date_style"`

	// MaxConcurrency is the maximum number of files processed at once.
	// Set to 1 for sequential processing. Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError determines whether remaining files are processed
	// when one file fails. Default: true
	ContinueOnError bool `yaml:"continue_on_error"`
}

// Style returns the parsed date style. Validation guarantees it parses.
func (c *MainConfig) Style() stamper.DateStyle {
	style, _ := stamper.ParseDateStyle(c.DateStyle)
	return style
}

// =============================================================================
// JOB CONFIGURATION STRUCTURE
// =============================================================================

// JobConfig holds the stamping rules for one job. Each YAML file in the jobs
// directory defines one job.
type JobConfig struct {
	// JobName is the human-readable name used in logs and reports.
	JobName string `yaml:"job_name"`

	// JobCode is a short code usable in output file names.
	JobCode string `yaml:"job_code"`

	// FileMatchingPatterns is a list of glob patterns; an input file
	// belongs to this job when its name matches any of them.
	// Examples: "transmittals_*.xlsx", "*_register.csv"
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`

	// CodeColumn is the lookup column the codes are matched against.
	CodeColumn string `yaml:"code_column"`

	// DateColumn receives the stamped date on matched rows.
	DateColumn string `yaml:"date_column"`

	// TransmittalColumn receives the transmittal code on matched rows.
	TransmittalColumn string `yaml:"transmittal_column"`

	// Transmittal is the transmittal reference stamped verbatim.
	Transmittal string `yaml:"transmittal"`

	// Date is the stamp date in ISO form (YYYY-MM-DD). Empty means the
	// day the job runs.
	Date string `yaml:"date"`

	// Codes is an inline code blob: newline- or comma-separated, exactly
	// as a user would paste it.
	Codes string `yaml:"codes"`

	// CodesFile is a path to a text file holding the code blob. When both
	// Codes and CodesFile are set, the lists are concatenated.
	CodesFile string `yaml:"codes_file"`

	// NormalizeDates enables the date-normalization pass after stamping:
	// every column that parses entirely as dates is rewritten to the
	// canonical format. Default: false
	NormalizeDates bool `yaml:"normalize_dates"`

	// CSVSettings configures parsing of delimited-text inputs for this
	// job. Ignored for XLSX inputs.
	CSVSettings CSVSettings `yaml:"csv_settings"`
}

// CSVSettings contains settings for parsing delimited-text files.
type CSVSettings struct {
	// Delimiter separates fields. Common values: "," "|" "\t" ";".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRows is the number of header rows. Multi-row headers are
	// merged column-wise. Default: 1
	HeaderRows int `yaml:"header_rows"`

	// DataStartRow is the 1-indexed row where data begins.
	// Default: directly after the header rows
	DataStartRow int `yaml:"data_start_row"`
}

// StampDate resolves the job's stamp date. An empty Date means "today".
func (j *JobConfig) StampDate(now time.Time) (time.Time, error) {
	if j.Date == "" {
		return now, nil
	}
	t, err := time.Parse("2006-01-02", j.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", j.Date, err)
	}
	return t, nil
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file, applies
// defaults, and validates it.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// continue_on_error defaults to true. Booleans cannot be defaulted in
	// applyMainConfigDefaults: after unmarshal an explicit false is
	// indistinguishable from an unset field, so the default is applied
	// before decoding and an explicit value overrides it.
	config := MainConfig{ContinueOnError: true}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.JobsDir == "" {
		config.JobsDir = "./jobs"
	}
	if config.LogFile == "" {
		config.LogFile = "./logs/transmittal.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{name}_updated_{timestamp}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validateMainConfig validates the main configuration and creates any
// missing working directories.
func validateMainConfig(config *MainConfig) error {
	if _, err := stamper.ParseDateStyle(config.DateStyle); err != nil {
		return err
	}

	// Defaults only rescue the zero value; a negative setting would panic
	// at the worker semaphore make.
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.JobsDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}

// LoadJobConfigs loads all job configurations from a directory, keyed by
// job code (falling back to the file name when no code is set).
func LoadJobConfigs(jobsDir string) (map[string]*JobConfig, error) {
	configs := make(map[string]*JobConfig)

	files, err := filepath.Glob(filepath.Join(jobsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list job configs: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(jobsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list job configs: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		config, err := loadJobConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		key := config.JobCode
		if key == "" {
			key = filepath.Base(file)
		}

		configs[key] = config
	}

	return configs, nil
}

// loadJobConfig loads and validates a single job configuration file.
func loadJobConfig(filePath string) (*JobConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config JobConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	applyJobConfigDefaults(&config)

	if err := validateJobConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyJobConfigDefaults sets default values for a job configuration.
func applyJobConfigDefaults(config *JobConfig) {
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.HeaderRows == 0 {
		config.CSVSettings.HeaderRows = 1
	}
	if config.CSVSettings.DataStartRow == 0 {
		config.CSVSettings.DataStartRow = config.CSVSettings.HeaderRows + 1
	}
}

// validateJobConfig checks the parts of a job the stamper cannot default.
func validateJobConfig(config *JobConfig) error {
	if config.CodeColumn == "" {
		return fmt.Errorf("job %q: code_column is required", config.JobName)
	}
	if config.DateColumn == "" {
		return fmt.Errorf("job %q: date_column is required", config.JobName)
	}
	if config.TransmittalColumn == "" {
		return fmt.Errorf("job %q: transmittal_column is required", config.JobName)
	}
	if _, err := config.StampDate(time.Now()); err != nil {
		return fmt.Errorf("job %q: %w", config.JobName, err)
	}
	return nil
}

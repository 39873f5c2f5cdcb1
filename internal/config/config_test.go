package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/transmittal-updater/internal/stamper"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadMainConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	// Point every directory setting inside the temp dir so validation
	// creates them there.
	writeFile(t, filepath.Join(dir, "config.yaml"), `
input_dir: `+filepath.Join(dir, "in")+`
output_dir: `+filepath.Join(dir, "out")+`
jobs_dir: `+filepath.Join(dir, "jobs")+`
`)

	cfg, err := LoadMainConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "{name}_updated_{timestamp}", cfg.OutputNameFormat)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, stamper.StyleTitle, cfg.Style())

	// Validation creates the working directories.
	for _, d := range []string{"in", "out", "jobs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoadMainConfigDateStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	writeFile(t, path, `
input_dir: `+filepath.Join(dir, "in")+`
output_dir: `+filepath.Join(dir, "out")+`
jobs_dir: `+filepath.Join(dir, "jobs")+`
date_style: upper
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, stamper.StyleUpper, cfg.Style())

	writeFile(t, path, `
input_dir: `+filepath.Join(dir, "in")+`
output_dir: `+filepath.Join(dir, "out")+`
jobs_dir: `+filepath.Join(dir, "jobs")+`
date_style: shouting
`)

	_, err = LoadMainConfig(path)
	assert.Error(t, err)
}

func TestLoadMainConfigContinueOnErrorDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	dirSettings := `
input_dir: ` + filepath.Join(dir, "in") + `
output_dir: ` + filepath.Join(dir, "out") + `
jobs_dir: ` + filepath.Join(dir, "jobs") + `
`

	// Unset means true: one bad file must not abort the batch.
	writeFile(t, path, dirSettings)
	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.ContinueOnError)

	// An explicit false still wins over the default.
	writeFile(t, path, dirSettings+"continue_on_error: false\n")
	cfg, err = LoadMainConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.ContinueOnError)
}

func TestLoadMainConfigRejectsNegativeConcurrency(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	writeFile(t, path, `
input_dir: `+filepath.Join(dir, "in")+`
output_dir: `+filepath.Join(dir, "out")+`
jobs_dir: `+filepath.Join(dir, "jobs")+`
max_concurrency: -2
`)

	_, err := LoadMainConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrency")
}

func TestLoadMainConfigMissingFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadJobConfigs(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "drawings.yaml"), `
job_name: Drawing Register
job_code: DRW
file_matching_patterns:
  - "drawings_*.xlsx"
code_column: Drawing Number
date_column: Issue Date
transmittal_column: Transmittal
transmittal: TR-07
date: "2025-05-11"
codes: |
  A1
  A2
`)
	writeFile(t, filepath.Join(dir, "registers.yml"), `
job_name: Legacy Register
code_column: Code
date_column: Date
transmittal_column: Transmittal
csv_settings:
  delimiter: "|"
  header_rows: 2
`)

	jobs, err := LoadJobConfigs(dir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	drw, ok := jobs["DRW"]
	require.True(t, ok, "job keyed by job_code")
	assert.Equal(t, "Drawing Register", drw.JobName)
	assert.Equal(t, []string{"drawings_*.xlsx"}, drw.FileMatchingPatterns)
	assert.Equal(t, ",", drw.CSVSettings.Delimiter)
	assert.Equal(t, 1, drw.CSVSettings.HeaderRows)
	assert.Equal(t, 2, drw.CSVSettings.DataStartRow)

	legacy, ok := jobs["registers.yml"]
	require.True(t, ok, "job without job_code keyed by file name")
	assert.Equal(t, "|", legacy.CSVSettings.Delimiter)
	assert.Equal(t, 2, legacy.CSVSettings.HeaderRows)
	// Data starts right after the headers unless configured otherwise.
	assert.Equal(t, 3, legacy.CSVSettings.DataStartRow)
}

func TestLoadJobConfigsValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing code_column",
			content: `
job_name: Broken
date_column: Date
transmittal_column: Transmittal
`,
		},
		{
			name: "missing date_column",
			content: `
job_name: Broken
code_column: Code
transmittal_column: Transmittal
`,
		},
		{
			name: "missing transmittal_column",
			content: `
job_name: Broken
code_column: Code
date_column: Date
`,
		},
		{
			name: "unparseable date",
			content: `
job_name: Broken
code_column: Code
date_column: Date
transmittal_column: Transmittal
date: "11/05/2025"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "job.yaml"), tt.content)

			_, err := LoadJobConfigs(dir)
			assert.Error(t, err)
		})
	}
}

func TestStampDate(t *testing.T) {
	now := time.Date(2025, time.May, 11, 9, 30, 0, 0, time.UTC)

	var job JobConfig
	got, err := job.StampDate(now)
	require.NoError(t, err)
	assert.True(t, got.Equal(now), "empty date means the run day")

	job.Date = "2024-12-31"
	got, err = job.StampDate(now)
	require.NoError(t, err)
	assert.Equal(t, "31-Dec-24", stamper.FormatDate(got, stamper.StyleTitle))

	job.Date = "31-12-2024"
	_, err = job.StampDate(now)
	assert.Error(t, err)
}

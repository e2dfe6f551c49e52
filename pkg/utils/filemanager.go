// =============================================================================
// Inventory Price Adjuster - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the adjuster, including:
//   - Directory management
//   - Export file naming
//   - Summary and warning log generation
//
// LOG FILES:
//   - processing_summary_<timestamp>.txt is written when write_summary is on
//   - warnings_<timestamp>.txt is written when rows were skipped
//   Both are created in the output directory next to the export workbook.
//   Existing files are never overwritten; a numeric suffix is added instead.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

// TimestampLayout is the layout of the {timestamp} placeholder.
const TimestampLayout = "2006-01-02T15-04-05"

// ExportExtension is the extension every export file name ends with.
const ExportExtension = ".xlsx"

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// CreateUnique creates name inside dir without replacing an existing file.
// When name is taken, "_2", "_3", ... is added before the extension.
//
// RETURNS:
//   - The open file; the caller must Close it.
//   - The path that was created.
//   - An error if no free name is found or the file cannot be created.
func CreateUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 1; n <= maxNameAttempts; n++ {
		candidate := name
		if n > 1 {
			candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
		}
		path := filepath.Join(dir, candidate)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return file, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
		}
	}

	return nil, "", fmt.Errorf("no free file name for %s in %s", name, dir)
}

const maxNameAttempts = 1000

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates the export file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYY-MM-DDTHH-MM-SS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {prefix}    - Export file prefix
//               {source}    - Input file name (without extension)
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{prefix}_{timestamp}"
//   params: {"prefix": "items"}
//   output: "items_2024-01-15T14-30-22.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateOutputFileName(format, params, time.Now())
}

func generateOutputFileName(format string, params map[string]string, now time.Time) string {
	replacements := map[string]string{
		"{timestamp}": now.Format(TimestampLayout),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	for key, value := range params {
		replacements["{"+key+"}"] = sanitizeFileName(value)
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ExportExtension) {
		result += ExportExtension
	}

	return result
}

// sanitizeFileName keeps placeholder values from introducing directories.
func sanitizeFileName(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, value)
}

// =============================================================================
// WARNING LOG GENERATION
// =============================================================================

// WarningLogEntry represents a skipped row.
type WarningLogEntry struct {
	Timestamp time.Time
	FileName  string
	RowNumber int
	Message   string
}

// WarningEntries converts row warnings into log entries for fileName.
func WarningEntries(fileName string, warnings []types.RowWarning, at time.Time) []WarningLogEntry {
	entries := make([]WarningLogEntry, 0, len(warnings))
	for _, w := range warnings {
		msg := ""
		if w.Err != nil {
			msg = w.Err.Error()
		}
		entries = append(entries, WarningLogEntry{
			Timestamp: at,
			FileName:  fileName,
			RowNumber: w.Row,
			Message:   msg,
		})
	}
	return entries
}

// WriteWarningLog writes warning entries to a log file.
//
// PARAMETERS:
//   - entries: The warning entries to write.
//   - outputDir: The directory to write the log file.
//
// RETURNS:
//   - The path to the warning log, or "" when there is nothing to write.
//   - An error if writing fails.
func WriteWarningLog(entries []WarningLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	file, logPath, err := CreateUnique(outputDir, fmt.Sprintf("warnings_%s.txt", time.Now().Format(TimestampLayout)))
	if err != nil {
		return "", fmt.Errorf("failed to create warning log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Inventory Price Adjuster - Skipped Rows\n"+
		"Generated: %s\n"+
		"Total Warnings: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Warning #%d\n"+
			"  Timestamp:  %s\n"+
			"  File:       %s\n"+
			"  Row Number: %d\n"+
			"  Message:    %s\n\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.RowNumber,
			entry.Message)
	}

	writer.WriteString("================================================================================\n" +
		"End of Warning Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush warning log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// RunSummary contains summary information about a processing run.
type RunSummary struct {
	RunID      string
	InputFile  string
	OutputFile string
	StartTime  time.Time
	EndTime    time.Time
	Stats      types.RunStatistics
}

// WriteSummaryLog writes a processing summary to a log file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	file, summaryPath, err := CreateUnique(outputDir, fmt.Sprintf("processing_summary_%s.txt", time.Now().Format(TimestampLayout)))
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Inventory Price Adjuster - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Input:          %s\n"+
		"  Output:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Original Rows:    %d\n"+
		"  Removed Rows:     %d\n"+
		"  Shown Rows:       %d\n"+
		"  Marked-up Prices: %d\n"+
		"  Failed Rows:      %d\n\n",
		summary.RunID,
		summary.InputFile,
		summary.OutputFile,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.Stats.OriginalTotal,
		summary.Stats.Removed,
		summary.Stats.Total,
		summary.Stats.PriceIncreased,
		summary.Stats.Failed)

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

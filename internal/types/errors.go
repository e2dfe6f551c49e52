package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================
// File-level and precondition errors abort the whole run and are surfaced to
// the caller as a single failure. Row-level problems never abort the batch;
// they become RowWarning values collected in Result.Warnings.

var (
	// ErrUnsupportedFileType is returned when the input is not a workbook or CSV
	// file this tool can read.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileRead is returned when the input file cannot be opened or parsed.
	ErrFileRead = errors.New("failed to read file")

	// ErrInsufficientData is returned when the input has fewer than two rows
	// (a header plus at least one data row).
	ErrInsufficientData = errors.New("insufficient data: need a header row and at least one data row")

	// ErrNothingToExport is returned when an export is requested for an empty
	// item list.
	ErrNothingToExport = errors.New("no data to export")
)

// RowWarning records a row that was skipped because it could not be processed.
type RowWarning struct {
	// Row is the 1-based spreadsheet row number (the header is row 1).
	Row int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (w RowWarning) Error() string {
	return fmt.Sprintf("row %d: %v", w.Row, w.Err)
}

// Unwrap returns the underlying cause.
func (w RowWarning) Unwrap() error {
	return w.Err
}

// =============================================================================
// Inventory Price Adjuster - Workbook Reader
// =============================================================================
//
// This module reads the first sheet of an Office Open XML workbook into raw
// rows for the pricing transformer.
//
// CELL TYPES:
//   Every cell is returned with the most specific type the workbook records:
//   - Numbers      -> float64
//   - Booleans     -> bool
//   - Empty cells  -> nil
//   - Everything else (shared strings, inline strings, formula text) -> string
//
//   Numbers stored as text stay strings; the transformer compares them loosely.
//
// ROW NUMBERING:
//   rows[0] is spreadsheet row 1. Empty rows between data rows are kept as
//   empty RawRows so row numbers in warnings match the sheet.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// ReadRows opens the workbook at path and returns its first sheet.
//
// RETURNS:
//   - All rows of the first sheet, header included.
//   - An error wrapping types.ErrFileRead if the file cannot be opened or read.
func ReadRows(path string) ([]types.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", types.ErrFileRead, err)
	}
	defer f.Close()

	return readFirstSheet(f)
}

// ReadRowsFrom reads a workbook from r and returns its first sheet.
func ReadRowsFrom(r io.Reader) ([]types.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", types.ErrFileRead, err)
	}
	defer f.Close()

	return readFirstSheet(f)
}

// FirstSheetName returns the name of the sheet that ReadRows would read.
func FirstSheetName(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", types.ErrFileRead)
	}
	return sheets[0], nil
}

// readFirstSheet converts the first sheet of an open workbook to raw rows.
func readFirstSheet(f *excelize.File) ([]types.RawRow, error) {
	sheet, err := FirstSheetName(f)
	if err != nil {
		return nil, err
	}

	// RawCellValue keeps numbers unformatted so "1,250.00" style number
	// formats do not leak into the values.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read rows: %v", types.ErrFileRead, err)
	}

	result := make([]types.RawRow, len(rows))
	for r, row := range rows {
		raw := make(types.RawRow, len(row))
		for c, value := range row {
			if value == "" {
				continue
			}

			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", types.ErrFileRead, err)
			}

			cellType, err := f.GetCellType(sheet, cellName)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %s: %v", types.ErrFileRead, cellName, err)
			}

			raw[c] = typedCell(value, cellType)
		}
		result[r] = raw
	}

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// typedCell converts a raw cell value to the type recorded in the workbook.
// Cells without a type attribute are numbers in Office Open XML.
func typedCell(value string, cellType excelize.CellType) any {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
		return value
	case excelize.CellTypeBool:
		return value == "1" || strings.EqualFold(value, "true")
	default:
		return value
	}
}

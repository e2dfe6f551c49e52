// =============================================================================
// Inventory Price Adjuster - Export Workbook Writer
// =============================================================================
//
// This module rebuilds a workbook from processed items.
//
// OUTPUT STRUCTURE:
//   A single sheet named by Labels.SheetName:
//
//   | Column A        | Column B        | Column C         |
//   |-----------------|-----------------|------------------|
//   | ItemCode label  | ItemName label  | UnitPrice label  |
//   | A1              | Item A          | 100              |
//   | A2              | Item B          | 107.5            |
//
//   Prices are written as numbers, limited to one decimal digit.
//
// =============================================================================

package exporter

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

// Labels are the opaque texts written into the export workbook.
type Labels struct {
	SheetName string
	ItemCode  string
	ItemName  string
	UnitPrice string
}

// =============================================================================
// PRICE FORMATTING
// =============================================================================

// ExportPrice limits a price to one decimal digit for export.
func ExportPrice(price float64) float64 {
	return decimal.NewFromFloat(price).Round(1).InexactFloat64()
}

// FormatPrice renders a price for display: whole prices without decimals
// ("100"), others with one decimal ("107.5").
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).Round(1).String()
}

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// BuildWorkbook creates the export workbook in memory.
//
// RETURNS:
//   - The workbook; the caller must Close it.
//   - types.ErrNothingToExport when items is empty.
func BuildWorkbook(items []types.ProcessedItem, labels Labels) (*excelize.File, error) {
	if len(items) == 0 {
		return nil, types.ErrNothingToExport
	}

	f := excelize.NewFile()

	sheet := labels.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("invalid sheet name %q: %w", sheet, err)
	}

	header := []any{labels.ItemCode, labels.ItemName, labels.UnitPrice}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{item.ItemCode, item.ItemName, ExportPrice(item.NewPrice)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// Width only; the values are unaffected.
	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "C", 14)

	return f, nil
}

// Write builds the export workbook and streams it to w.
func Write(items []types.ProcessedItem, labels Labels, w io.Writer) error {
	f, err := BuildWorkbook(items, labels)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile builds the export workbook and saves it to path, replacing any
// existing file.
func WriteFile(items []types.ProcessedItem, labels Labels, path string) error {
	f, err := BuildWorkbook(items, labels)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

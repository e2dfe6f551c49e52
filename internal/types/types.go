// =============================================================================
// Inventory Price Adjuster - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - pricing     (produces Result)
//   - xlsxparser  (produces RawRow)
//   - csvparser   (produces RawRow)
//   - exporter    (consumes ProcessedItem)
//   - processor   (carries Result to the caller)
//
// =============================================================================

package types

// =============================================================================
// INPUT TYPES
// =============================================================================

// RawRow is one line of the source spreadsheet's first sheet.
//
// Cells are positional. A cell is nil when empty, otherwise a string,
// a float64 (or any Go integer type) or a bool. Readers never emit other
// types; the transformer reports anything else as a row warning.
type RawRow []any

// Cell returns the value at index, or nil when the row is shorter.
func (r RawRow) Cell(index int) any {
	if index < 0 || index >= len(r) {
		return nil
	}
	return r[index]
}

// =============================================================================
// OUTPUT TYPES
// =============================================================================

// ProcessedItem is one retained row after filtering, markup and rounding.
type ProcessedItem struct {
	// ItemCode is the opaque item identifier, "" when the cell was empty.
	ItemCode string

	// ItemName is the item label, "" when the cell was empty.
	ItemName string

	// OriginalPrice is the unit price as parsed from the row (0 on fallback).
	OriginalPrice float64

	// NewPrice is OriginalPrice after optional markup and custom rounding.
	NewPrice float64

	// PriceIncreased is true iff the markup was applied.
	PriceIncreased bool

	// Section is the raw section cell, passed through unvalidated.
	Section any
}

// RunStatistics aggregates one transformation pass.
//
// Total + Removed + Failed == OriginalTotal always holds.
type RunStatistics struct {
	// OriginalTotal is the number of input rows minus the header.
	OriginalTotal int

	// Removed counts rows excluded by the unit indicator filter.
	Removed int

	// Total counts retained rows (len(Result.Items)).
	Total int

	// PriceIncreased counts retained rows that received the markup.
	PriceIncreased int

	// Failed counts rows skipped because of a RowWarning.
	Failed int
}

// Result is the full outcome of one transformation pass.
type Result struct {
	Items    []ProcessedItem
	Stats    RunStatistics
	Warnings []RowWarning
}

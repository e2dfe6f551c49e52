// =============================================================================
// Inventory Price Adjuster - Pricing Transformer
// =============================================================================
//
// The transformer is the core of the tool. It takes the raw rows of a price
// list and produces the adjusted items plus run statistics in one synchronous
// pass.
//
// PROCESSING ORDER:
//   1. Reject input with fewer than two rows (header + data)
//   2. Discard the first row unconditionally (header, never inspected)
//   3. For each remaining row, in order:
//      a. Extract code, name, price, unit indicator and section
//      b. Parse the price (non-numeric -> 0)
//      c. Drop the row unless the unit indicator equals 1
//      d. Apply the markup unless the section equals 52
//      e. Apply custom rounding
//      f. Emit the item
//
// ERROR ISOLATION:
//   A row that cannot be processed becomes a RowWarning. It is counted under
//   Stats.Failed and the pass continues with the next row.
//
// =============================================================================

package pricing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer applies a Policy to raw rows. It holds no state between calls.
type Transformer struct {
	policy Policy
	logger *zap.Logger
}

// NewTransformer creates a Transformer. A nil logger discards log output.
func NewTransformer(policy Policy, logger *zap.Logger) *Transformer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{
		policy: policy,
		logger: logger,
	}
}

// Policy returns the rules this transformer applies.
func (t *Transformer) Policy() Policy {
	return t.policy
}

// Transform runs the default policy over rows.
func Transform(rows []types.RawRow) (*types.Result, error) {
	return NewTransformer(DefaultPolicy(), nil).Transform(rows)
}

// Transform processes rows and returns the retained items and statistics.
//
// RETURNS:
//   - The result, with items in input order.
//   - types.ErrInsufficientData when rows has fewer than two entries; no
//     partial result is returned in that case.
func (t *Transformer) Transform(rows []types.RawRow) (*types.Result, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w (got %d row(s))", types.ErrInsufficientData, len(rows))
	}

	dataRows := rows[1:]
	result := &types.Result{
		Items: make([]types.ProcessedItem, 0, len(dataRows)),
	}
	result.Stats.OriginalTotal = len(dataRows)

	for i, row := range dataRows {
		// Spreadsheet row numbers are 1-based and the header is row 1.
		rowNumber := i + 2

		item, retained, err := t.processRow(row)
		if err != nil {
			warning := types.RowWarning{Row: rowNumber, Err: err}
			result.Warnings = append(result.Warnings, warning)
			result.Stats.Failed++
			t.logger.Warn("skipping row",
				zap.Int("row", rowNumber),
				zap.Error(err))
			continue
		}

		if !retained {
			result.Stats.Removed++
			t.logger.Debug("row removed by unit filter", zap.Int("row", rowNumber))
			continue
		}

		result.Items = append(result.Items, item)
		if item.PriceIncreased {
			result.Stats.PriceIncreased++
		}
	}

	result.Stats.Total = len(result.Items)

	t.logger.Debug("transformation complete",
		zap.Int("original_total", result.Stats.OriginalTotal),
		zap.Int("removed", result.Stats.Removed),
		zap.Int("total", result.Stats.Total),
		zap.Int("price_increased", result.Stats.PriceIncreased),
		zap.Int("failed", result.Stats.Failed))

	return result, nil
}

// processRow handles a single data row.
//
// RETURNS:
//   - The processed item (meaningful only when retained is true).
//   - retained: false when the unit filter drops the row.
//   - An error when the row cannot be processed at all.
func (t *Transformer) processRow(row types.RawRow) (item types.ProcessedItem, retained bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			item, retained = types.ProcessedItem{}, false
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	cols := t.policy.Columns

	// =========================================================================
	// STEP 1: EXTRACT
	// =========================================================================

	code := row.Cell(cols.ItemCode)
	name := row.Cell(cols.ItemName)
	rawPrice := row.Cell(cols.UnitPrice)
	unit := row.Cell(cols.Unit)
	section := row.Cell(cols.Section)

	for _, c := range []struct {
		index int
		value any
	}{
		{cols.ItemCode, code},
		{cols.ItemName, name},
		{cols.UnitPrice, rawPrice},
		{cols.Unit, unit},
		{cols.Section, section},
	} {
		if err := checkCell(c.value); err != nil {
			return types.ProcessedItem{}, false, fmt.Errorf("column %d: %w", c.index, err)
		}
	}

	// =========================================================================
	// STEP 2: PARSE PRICE
	// =========================================================================

	price := ParsePrice(rawPrice)

	// =========================================================================
	// STEP 3: FILTER
	// =========================================================================

	if !t.policy.Retains(unit) {
		return types.ProcessedItem{}, false, nil
	}

	// =========================================================================
	// STEP 4-5: MARKUP AND ROUNDING
	// =========================================================================

	newPrice := price
	increased := false
	if t.policy.MarksUp(section) {
		newPrice = price * t.policy.MarkupFactor
		increased = true
	}
	newPrice = CustomRound(newPrice)

	// =========================================================================
	// STEP 6: EMIT
	// =========================================================================

	return types.ProcessedItem{
		ItemCode:       ToText(code),
		ItemName:       ToText(name),
		OriginalPrice:  price,
		NewPrice:       newPrice,
		PriceIncreased: increased,
		Section:        section,
	}, true, nil
}

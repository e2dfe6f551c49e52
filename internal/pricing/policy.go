// =============================================================================
// Inventory Price Adjuster - Pricing Policy
// =============================================================================
//
// The policy holds the business constants of the transformation:
//   - which column holds which field
//   - which unit indicator value keeps a row
//   - which section is exempt from markup
//   - the markup factor
//
// DefaultPolicy reproduces the rules of the price list exactly. A config file
// may override them, but the package-level Transform always uses the defaults.
//
// =============================================================================

package pricing

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// ColumnLayout maps each field to its 0-based column index in a raw row.
type ColumnLayout struct {
	ItemCode  int
	ItemName  int
	UnitPrice int
	Unit      int
	Section   int
}

// DefaultColumnLayout returns the layout of the source price list:
// A=code, B=name, C=unit price, D=unit, I=section.
func DefaultColumnLayout() ColumnLayout {
	return ColumnLayout{
		ItemCode:  0, // Column A
		ItemName:  1, // Column B
		UnitPrice: 2, // Column C
		Unit:      3, // Column D
		Section:   8, // Column I
	}
}

// =============================================================================
// POLICY
// =============================================================================

const (
	// DefaultMarkupFactor is the 7.5% increase applied to non-exempt sections.
	DefaultMarkupFactor = 1.075

	// DefaultExemptSection is the section code that never receives markup.
	DefaultExemptSection = 52

	// DefaultRequiredUnit is the only unit indicator value that keeps a row.
	DefaultRequiredUnit = 1
)

// Policy is the full set of rules applied by a Transformer.
type Policy struct {
	// MarkupFactor multiplies the unit price of non-exempt rows.
	MarkupFactor float64

	// ExemptSection is compared loosely against the section cell.
	ExemptSection float64

	// RequiredUnit is compared loosely against the unit indicator cell.
	RequiredUnit float64

	// Columns locates the fields in each raw row.
	Columns ColumnLayout
}

// DefaultPolicy returns the standard pricing rules.
func DefaultPolicy() Policy {
	return Policy{
		MarkupFactor:  DefaultMarkupFactor,
		ExemptSection: DefaultExemptSection,
		RequiredUnit:  DefaultRequiredUnit,
		Columns:       DefaultColumnLayout(),
	}
}

// Retains reports whether a row with the given unit indicator is kept.
func (p Policy) Retains(unit any) bool {
	return LooseEquals(unit, p.RequiredUnit)
}

// MarksUp reports whether a row in the given section receives the markup.
func (p Policy) MarksUp(section any) bool {
	return !LooseEquals(section, p.ExemptSection)
}

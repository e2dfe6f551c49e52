package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// =============================================================================
// CELL NORMALIZATION
// =============================================================================
// Spreadsheet cells arrive as strings, numbers, booleans or nothing at all.
// Comparisons against the unit indicator and the section code are "loose":
// the cell is first converted to a number when it can be, and a cell that is
// not numeric never matches.

// ToNumber converts a cell to a finite float64.
//
// CONVERSION RULES:
//   - nil               : not a number
//   - numeric types     : the value itself
//   - bool              : 1 for true, 0 for false
//   - string            : trimmed, then parsed; "" and unparsable text fail
//   - NaN, +Inf, -Inf   : not a number
func ToNumber(cell any) (float64, bool) {
	var v float64

	switch c := cell.(type) {
	case nil:
		return 0, false
	case float64:
		v = c
	case float32:
		v = float64(c)
	case int:
		v = float64(c)
	case int32:
		v = float64(c)
	case int64:
		v = float64(c)
	case uint:
		v = float64(c)
	case uint32:
		v = float64(c)
	case uint64:
		v = float64(c)
	case bool:
		if c {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(c)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// LooseEquals reports whether cell, read as a number, equals target.
// "1", 1, " 1 " and "1.0" all equal 1; "", nil and "abc" equal nothing.
func LooseEquals(cell any, target float64) bool {
	v, ok := ToNumber(cell)
	return ok && v == target
}

// ParsePrice reads a unit price cell. Anything that is not a number becomes 0;
// this is a documented default, not an error.
//
// PARSING RULES:
//   - numeric types     : the value itself (NaN and infinities become 0)
//   - string            : the leading decimal literal after leading spaces,
//                         so "15 SAR" is 15, "1,250" is 1 and "abc" is 0
//   - bool, nil, other  : 0
func ParsePrice(cell any) float64 {
	switch c := cell.(type) {
	case nil, bool:
		return 0
	case string:
		v, ok := leadingNumber(c)
		if !ok {
			return 0
		}
		return v
	}

	v, ok := ToNumber(cell)
	if !ok {
		return 0
	}
	return v
}

// leadingNumber parses the longest [+-]digits[.digits][e[+-]digits] prefix of s
// after leading white space. The literal needs at least one mantissa digit.
func leadingNumber(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intStart := i
	i = skipDigits(s, i)
	digits := i - intStart

	if i < len(s) && s[i] == '.' {
		end := skipDigits(s, i+1)
		if digits > 0 || end > i+1 {
			digits += end - i - 1
			i = end
		}
	}
	if digits == 0 {
		return 0, false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if end := skipDigits(s, j); end > j {
			i = end
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// ToText renders a code or name cell as a string. Empty cells, a numeric 0,
// NaN and false all become "", like any other blank label.
func ToText(cell any) string {
	switch c := cell.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		if !c {
			return ""
		}
		return strconv.FormatBool(c)
	case float64:
		if c == 0 || math.IsNaN(c) {
			return ""
		}
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		if c == 0 || math.IsNaN(float64(c)) {
			return ""
		}
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	}

	if v, ok := ToNumber(cell); ok && v == 0 {
		return ""
	}
	return fmt.Sprint(cell)
}

// checkCell rejects cell values that no reader produces.
func checkCell(cell any) error {
	switch cell.(type) {
	case nil, string, bool,
		float64, float32,
		int, int32, int64,
		uint, uint32, uint64:
		return nil
	default:
		return fmt.Errorf("unsupported cell type %T", cell)
	}
}

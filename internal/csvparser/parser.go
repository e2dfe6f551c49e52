// =============================================================================
// Inventory Price Adjuster - CSV Reader
// =============================================================================
//
// This module reads delimited text exports of the price list into raw rows,
// so a sheet saved as CSV goes through the same transformer as a workbook.
//
// FEATURES:
//   - Different delimiters (comma, semicolon, pipe, tab)
//   - Legacy encodings (e.g. windows-1256 exports from older POS systems)
//   - UTF-8 / UTF-16 byte order marks are stripped
//   - Rows of different lengths are allowed
//   - Blank lines between records are kept as empty rows; trailing blank
//     lines are dropped, as a workbook has no rows after its last value
//
// CELL TYPES:
//   Every non-empty field is returned as a string and every empty field as
//   nil. Numeric interpretation is left to the transformer.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

// Settings controls how a CSV file is decoded.
type Settings struct {
	// Delimiter is a single character or one of the aliases
	// "tab", "pipe", "semicolon". Default: ","
	Delimiter string

	// Encoding is a WHATWG encoding label such as "utf-8" or "windows-1256".
	// Default: "utf-8"
	Encoding string
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// ReadRows reads the CSV file at path.
//
// RETURNS:
//   - All rows, header included.
//   - An error wrapping types.ErrFileRead if the file cannot be opened,
//     decoded or parsed.
func ReadRows(path string, settings Settings) ([]types.RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open file: %v", types.ErrFileRead, err)
	}
	defer file.Close()

	return ReadRowsFrom(file, settings)
}

// ReadRowsFrom reads CSV data from r.
func ReadRowsFrom(r io.Reader, settings Settings) ([]types.RawRow, error) {
	enc, err := lookupEncoding(settings.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFileRead, err)
	}

	// BOMOverride switches to the encoding named by a byte order mark and
	// drops the mark; without one the configured encoding is used.
	decoded := transform.NewReader(bufio.NewReader(r), unicode.BOMOverride(enc.NewDecoder()))

	csvReader := csv.NewReader(decoded)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFileRead, err)
	}

	var rows []types.RawRow
	nextLine := 1
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read CSV: %v", types.ErrFileRead, err)
		}

		// encoding/csv skips blank lines; put them back as empty rows so row
		// numbers and totals match the same sheet read from a workbook.
		startLine, _ := csvReader.FieldPos(0)
		for ; nextLine < startLine; nextLine++ {
			rows = append(rows, types.RawRow{})
		}

		last := len(record) - 1
		endLine, _ := csvReader.FieldPos(last)
		nextLine = endLine + strings.Count(record[last], "\n") + 1

		row := make(types.RawRow, len(record))
		for j, field := range record {
			if field != "" {
				row[j] = field
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings Settings) error {
	switch strings.ToLower(settings.Delimiter) {
	case "", ",", "comma":
		reader.Comma = ','
	case "\\t", "\t", "tab":
		reader.Comma = '\t'
	case "|", "pipe":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		runes := []rune(settings.Delimiter)
		if len(runes) != 1 {
			return fmt.Errorf("invalid delimiter %q", settings.Delimiter)
		}
		reader.Comma = runes[0]
	}

	// Price lists are hand-edited; tolerate ragged rows and stray quotes.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return nil
}

// lookupEncoding resolves an encoding label. An empty label means UTF-8.
func lookupEncoding(label string) (encoding.Encoding, error) {
	if label == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", label)
	}
	return enc, nil
}

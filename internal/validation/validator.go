// =============================================================================
// Inventory Price Adjuster - Input File Validation
// =============================================================================
//
// This module checks an input file before any reader touches it:
//   - The path exists, is a regular file and is not empty
//   - The extension is one the tool can read
//   - Workbook files really are zip containers (Office Open XML)
//
// Legacy binary .xls workbooks are recognised by their OLE2 signature and
// rejected with a hint to re-save them as .xlsx.
//
// =============================================================================

package validation

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

// =============================================================================
// FILE KINDS
// =============================================================================

// FileKind identifies which reader handles a file.
type FileKind int

const (
	// KindUnknown is never returned together with a nil error.
	KindUnknown FileKind = iota

	// KindWorkbook is an Office Open XML workbook read by xlsxparser.
	KindWorkbook

	// KindCSV is a delimited text file read by csvparser.
	KindCSV
)

// String returns a short name for log output.
func (k FileKind) String() string {
	switch k {
	case KindWorkbook:
		return "workbook"
	case KindCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// supportedExtensions maps lower-case extensions to their reader.
var supportedExtensions = map[string]FileKind{
	".xlsx": KindWorkbook,
	".xlsm": KindWorkbook,
	".xltx": KindWorkbook,
	".xltm": KindWorkbook,
	".csv":  KindCSV,
}

var (
	zipSignature = []byte("PK\x03\x04")
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateFile checks that path is an existing, non-empty regular file.
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: file %s does not exist", types.ErrFileRead, path)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to stat file %s: %v", types.ErrFileRead, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory, not a file", types.ErrFileRead, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: file %s is empty", types.ErrFileRead, path)
	}
	return nil
}

// ValidateFileType decides which reader handles path.
//
// RETURNS:
//   - The file kind.
//   - An error wrapping types.ErrUnsupportedFileType when the extension is not
//     supported or the content does not match it.
func ValidateFileType(path string) (FileKind, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".xls" {
		return KindUnknown, fmt.Errorf("%w: legacy .xls workbooks are not supported, save the file as .xlsx", types.ErrUnsupportedFileType)
	}

	kind, ok := supportedExtensions[ext]
	if !ok {
		return KindUnknown, fmt.Errorf("%w: %q (expected .xlsx, .xlsm or .csv)", types.ErrUnsupportedFileType, ext)
	}

	if kind != KindWorkbook {
		return kind, nil
	}

	header, err := readHeader(path, len(oleSignature))
	if err != nil {
		return KindUnknown, fmt.Errorf("%w: %v", types.ErrFileRead, err)
	}

	switch {
	case bytes.HasPrefix(header, zipSignature):
		return kind, nil
	case bytes.HasPrefix(header, oleSignature):
		// Either a renamed .xls or a password-protected workbook; both are
		// outside what the reader handles.
		return KindUnknown, fmt.Errorf("%w: %s is a legacy or encrypted workbook", types.ErrUnsupportedFileType, filepath.Base(path))
	default:
		return KindUnknown, fmt.Errorf("%w: %s is not a valid workbook", types.ErrUnsupportedFileType, filepath.Base(path))
	}
}

// readHeader returns up to n leading bytes of the file.
func readHeader(path string, n int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:read], nil
}

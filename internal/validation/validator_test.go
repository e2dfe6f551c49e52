package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "regular file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "prices.csv")
				require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))
				return path
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.xlsx")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
		{
			name: "empty file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "empty.xlsx")
				require.NoError(t, os.WriteFile(path, nil, 0644))
				return path
			},
			wantErr:       true,
			errorContains: "is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.setupFunc(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, types.ErrFileRead)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFileType(t *testing.T) {
	dir := t.TempDir()

	workbook := filepath.Join(dir, "prices.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(workbook))
	require.NoError(t, f.Close())

	upper := filepath.Join(dir, "PRICES.XLSX")
	data, err := os.ReadFile(workbook)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(upper, data, 0644))

	csvFile := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("a,b\n"), 0644))

	fakeWorkbook := filepath.Join(dir, "fake.xlsx")
	require.NoError(t, os.WriteFile(fakeWorkbook, []byte("just some text"), 0644))

	renamedXLS := filepath.Join(dir, "renamed.xlsx")
	require.NoError(t, os.WriteFile(renamedXLS, append(append([]byte{}, oleSignature...), 0, 0, 0), 0644))

	tests := []struct {
		name     string
		path     string
		wantKind FileKind
		wantErr  error
	}{
		{name: "workbook", path: workbook, wantKind: KindWorkbook},
		{name: "upper-case extension", path: upper, wantKind: KindWorkbook},
		{name: "csv", path: csvFile, wantKind: KindCSV},
		{name: "legacy xls extension", path: filepath.Join(dir, "old.xls"), wantErr: types.ErrUnsupportedFileType},
		{name: "text file", path: filepath.Join(dir, "notes.txt"), wantErr: types.ErrUnsupportedFileType},
		{name: "not a zip", path: fakeWorkbook, wantErr: types.ErrUnsupportedFileType},
		{name: "ole container", path: renamedXLS, wantErr: types.ErrUnsupportedFileType},
		{name: "missing workbook", path: filepath.Join(dir, "missing.xlsx"), wantErr: types.ErrFileRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ValidateFileType(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, KindUnknown, kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestFileKind_String(t *testing.T) {
	assert.Equal(t, "workbook", KindWorkbook.String())
	assert.Equal(t, "csv", KindCSV.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

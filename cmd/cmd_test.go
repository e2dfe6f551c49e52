package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/config"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

func TestNotification(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: fmt.Errorf("%w: .txt", types.ErrUnsupportedFileType), want: "Invalid file type"},
		{err: fmt.Errorf("%w (got 1 row(s))", types.ErrInsufficientData), want: "not contain enough data"},
		{err: fmt.Errorf("%w: broken", types.ErrFileRead), want: "could not be read"},
		{err: types.ErrNothingToExport, want: "No items to export"},
		{err: fmt.Errorf("disk full"), want: "Processing failed"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Contains(t, notification(tt.err), tt.want)
		})
	}
}

func TestRunRound(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runRound(&out, []string{"10.2", "10.49", "10.7", "10"}))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[0]), "10.5")
	assert.Contains(t, string(lines[1]), "10.5")
	assert.Contains(t, string(lines[2]), "11")

	assert.Error(t, runRound(&out, []string{"ten"}))
}

func TestRootCommand_Round(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"round", "3.6"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Regexp(t, `3\.6\s+→\s+4\n`, out.String())
	assert.NotNil(t, appConfig)
}

func TestRootCommand_VersionShowsPolicy(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	t.Setenv("ADJUSTER_PRICING_MARKUP_FACTOR", "1.1")

	require.NoError(t, rootCmd.Execute())
	text := out.String()
	assert.Contains(t, text, "Version:    "+Version)
	assert.Contains(t, text, "Markup factor:  1.1\n")
	assert.Contains(t, text, "Exempt section: 52\n")
	assert.Contains(t, text, "code A, name B, price C, unit D, section I")
}

func writePriceList(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"code", "name", "price", "unit", nil, nil, nil, nil, "section"},
		{"A1", "Item A", 100, 1, nil, nil, nil, nil, 52},
		{"A2", "Item B", 100, 1, nil, nil, nil, nil, 10},
		{"A3", "Item C", 50, 2, nil, nil, nil, nil, 10},
	}
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func setProcessFlags(t *testing.T, dry bool, dir string) {
	t.Helper()
	appConfig = config.Default()
	dryRun, noTable, outputDir = dry, false, dir
	t.Cleanup(func() {
		dryRun, noTable, outputDir = false, false, ""
	})
}

func TestRunProcess_DryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	setProcessFlags(t, true, dir)

	var out bytes.Buffer
	require.NoError(t, runProcess(&out, writePriceList(t)))

	text := out.String()
	assert.Contains(t, text, "Processed 2 item(s)")
	assert.Contains(t, text, "107.5")
	assert.Contains(t, text, "Dry run")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "dry run writes nothing")
}

func TestRunProcess_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	setProcessFlags(t, false, dir)

	var out bytes.Buffer
	require.NoError(t, runProcess(&out, writePriceList(t)))
	assert.Contains(t, out.String(), "Exported to: "+dir)

	exports, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, exports, 1)
}

func TestRunProcess_UnsupportedFile(t *testing.T) {
	setProcessFlags(t, true, "")

	path := filepath.Join(t.TempDir(), "prices.txt")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	var out bytes.Buffer
	err := runProcess(&out, path)
	assert.ErrorIs(t, err, types.ErrUnsupportedFileType)
	assert.Contains(t, out.String(), "Invalid file type")
}

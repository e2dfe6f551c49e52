package processor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/config"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/validation"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/xlsxparser"
)

var priceRows = [][]any{
	{"code", "name", "price", "unit", nil, nil, nil, nil, "section"},
	{"A1", "Item A", 100, 1, nil, nil, nil, nil, 52},
	{"A2", "Item B", 100, 1, nil, nil, nil, nil, 10},
	{"A3", "Item C", 50, 2, nil, nil, nil, nil, 10},
}

func writeWorkbook(t *testing.T, dir string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	path := filepath.Join(dir, "prices.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	return cfg
}

func TestLoad_Workbook(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), priceRows)

	outcome, err := New(testConfig(t), nil).Load(path)
	require.NoError(t, err)

	assert.NotEmpty(t, outcome.RunID)
	assert.Equal(t, path, outcome.Source)
	assert.Equal(t, validation.KindWorkbook, outcome.Kind)
	assert.Equal(t, types.RunStatistics{OriginalTotal: 3, Removed: 1, Total: 2, PriceIncreased: 1}, outcome.Result.Stats)

	require.Len(t, outcome.Result.Items, 2)
	assert.Equal(t, "A1", outcome.Result.Items[0].ItemCode)
	assert.Equal(t, 100.0, outcome.Result.Items[0].NewPrice)
	assert.False(t, outcome.Result.Items[0].PriceIncreased)
	assert.Equal(t, "A2", outcome.Result.Items[1].ItemCode)
	assert.Equal(t, 107.5, outcome.Result.Items[1].NewPrice)
	assert.True(t, outcome.Result.Items[1].PriceIncreased)
}

func TestLoad_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	content := "code;name;price;unit;;;;;section\n" +
		"A1;Item A;100;1;;;;;52\n" +
		"A2;Item B;100;1;;;;;10\n" +
		"A3;Item C;50;2;;;;;10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := testConfig(t)
	cfg.CSV.Delimiter = "semicolon"

	outcome, err := New(cfg, nil).Load(path)
	require.NoError(t, err)

	assert.Equal(t, validation.KindCSV, outcome.Kind)
	assert.Equal(t, types.RunStatistics{OriginalTotal: 3, Removed: 1, Total: 2, PriceIncreased: 1}, outcome.Result.Stats)
	assert.Equal(t, 107.5, outcome.Result.Items[1].NewPrice)
}

func TestLoad_CSVBlankLinesCountAsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gaps.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,name,price,unit\n\nA1,Item,5,1\n"), 0644))

	outcome, err := New(testConfig(t), nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.RunStatistics{OriginalTotal: 2, Removed: 1, Total: 1, PriceIncreased: 1}, outcome.Result.Stats)
}

func TestLoad_OutcomesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	first := writeWorkbook(t, dir, priceRows)
	p := New(testConfig(t), nil)

	a, err := p.Load(first)
	require.NoError(t, err)

	secondDir := t.TempDir()
	second := writeWorkbook(t, secondDir, [][]any{
		{"code", "name", "price", "unit"},
		{"B1", "Other", 3, 1},
	})
	b, err := p.Load(second)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, 2, a.Result.Stats.Total)
	assert.Equal(t, 1, b.Result.Stats.Total)
	assert.Equal(t, "A1", a.Result.Items[0].ItemCode)
}

func TestLoad_ConfiguredPolicy(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), priceRows)

	cfg := testConfig(t)
	cfg.Pricing.MarkupFactor = 2
	cfg.Pricing.ExemptSection = 10

	outcome, err := New(cfg, nil).Load(path)
	require.NoError(t, err)

	require.Len(t, outcome.Result.Items, 2)
	assert.Equal(t, 200.0, outcome.Result.Items[0].NewPrice, "section 52 is no longer exempt")
	assert.Equal(t, 100.0, outcome.Result.Items[1].NewPrice)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	textFile := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("hello"), 0644))

	fakeWorkbook := filepath.Join(dir, "fake.xlsx")
	require.NoError(t, os.WriteFile(fakeWorkbook, []byte("not a zip"), 0644))

	headerOnly := filepath.Join(dir, "header.csv")
	require.NoError(t, os.WriteFile(headerOnly, []byte("code,name,price\n"), 0644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.xlsx"), want: types.ErrFileRead},
		{name: "unsupported extension", path: textFile, want: types.ErrUnsupportedFileType},
		{name: "invalid workbook", path: fakeWorkbook, want: types.ErrUnsupportedFileType},
		{name: "header only", path: headerOnly, want: types.ErrInsufficientData},
	}

	p := New(testConfig(t), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := p.Load(tt.path)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, outcome)
		})
	}
}

func TestLoad_LogsRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	path := writeWorkbook(t, t.TempDir(), priceRows)

	_, err := New(testConfig(t), zap.New(core)).Load(path)
	require.NoError(t, err)

	processed := logs.FilterMessage("file processed").All()
	require.Len(t, processed, 1)
	fields := processed[0].ContextMap()
	assert.NotEmpty(t, fields["run_id"])
	assert.EqualValues(t, 2, fields["total"])
}

func TestExport(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), priceRows)
	cfg := testConfig(t)
	cfg.WriteSummary = true
	cfg.OutputFileFormat = "{source}_{prefix}"
	cfg.Export.FilePrefix = "adjusted"
	p := New(cfg, nil)

	outcome, err := p.Load(path)
	require.NoError(t, err)

	outputPath, err := p.Export(outcome)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "prices_adjusted.xlsx"), outputPath)

	rows, err := xlsxparser.ReadRows(outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, cfg.Export.ItemCodeLabel, rows[0].Cell(0))
	assert.Equal(t, "A2", rows[2].Cell(0))
	assert.Equal(t, 107.5, rows[2].Cell(2))

	summaries, err := filepath.Glob(filepath.Join(cfg.OutputDir, "processing_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	warnings, err := filepath.Glob(filepath.Join(cfg.OutputDir, "warnings_*.txt"))
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestExport_KeepsEarlierExports(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), priceRows)
	cfg := testConfig(t)
	cfg.OutputFileFormat = "{source}"
	p := New(cfg, nil)

	outcome, err := p.Load(path)
	require.NoError(t, err)

	first, err := p.Export(outcome)
	require.NoError(t, err)
	second, err := p.Export(outcome)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.OutputDir, "prices.xlsx"), first)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "prices_2.xlsx"), second)

	for _, exported := range []string{first, second} {
		rows, err := xlsxparser.ReadRows(exported)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	}
}

func TestExport_WritesWarningLog(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, nil)

	outcome := &Outcome{
		RunID:     "run-1",
		Source:    "prices.xlsx",
		StartedAt: time.Now(),
		Result: &types.Result{
			Items:    []types.ProcessedItem{{ItemCode: "A1", ItemName: "Item A", NewPrice: 100}},
			Stats:    types.RunStatistics{OriginalTotal: 2, Total: 1, Failed: 1},
			Warnings: []types.RowWarning{{Row: 3, Err: errors.New("unsupported cell type []int")}},
		},
	}

	_, err := p.Export(outcome)
	require.NoError(t, err)

	warnings, err := filepath.Glob(filepath.Join(cfg.OutputDir, "warnings_*.txt"))
	require.NoError(t, err)
	require.Len(t, warnings, 1)

	data, err := os.ReadFile(warnings[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Row Number: 3")
}

func TestExport_NothingToExport(t *testing.T) {
	p := New(testConfig(t), nil)

	_, err := p.Export(nil)
	assert.ErrorIs(t, err, types.ErrNothingToExport)

	_, err = p.Export(&Outcome{Result: &types.Result{}})
	assert.ErrorIs(t, err, types.ErrNothingToExport)
}

// =============================================================================
// Inventory Price Adjuster - Processor Module
// =============================================================================
//
// This module orchestrates the pipeline for a single input file, from file
// validation to the export workbook.
//
// PROCESSING PIPELINE:
//   1. Validate the file (exists, non-empty, supported type)
//   2. Read the first sheet (workbook) or the whole file (CSV) into rows
//   3. Run the pricing transformer over the rows
//   4. On request, write the export workbook and the run logs
//
// OWNERSHIP:
//   Load returns a fresh Outcome for every file. The processor keeps no
//   state between calls, so loading a second file never merges with or
//   overwrites the result of the first.
//
// =============================================================================

package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/config"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/csvparser"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/exporter"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/pricing"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/validation"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/xlsxparser"
	"github.com/ginjaninja78/xlsx-price-adjuster/pkg/utils"
)

// =============================================================================
// OUTCOME STRUCTURE
// =============================================================================

// Outcome is the result of loading and transforming one file.
type Outcome struct {
	// RunID identifies the run in logs and in the summary file.
	RunID string

	// Source is the path of the input file.
	Source string

	// Kind is the detected input format.
	Kind validation.FileKind

	// Result holds the processed items, statistics and row warnings.
	Result *types.Result

	// StartedAt is when Load began.
	StartedAt time.Time

	// Duration is the time spent in Load.
	Duration time.Duration
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// Processor runs the pipeline with a fixed configuration.
type Processor struct {
	config *config.Config
	policy pricing.Policy
	logger *zap.Logger
}

// New creates a Processor. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		config: cfg,
		policy: cfg.Policy(),
		logger: logger,
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load validates, reads and transforms the file at path.
//
// RETURNS:
//   - The Outcome of the run.
//   - types.ErrFileRead, types.ErrUnsupportedFileType or
//     types.ErrInsufficientData (wrapped) when the file cannot be processed.
//     No partial Outcome is returned in that case.
func (p *Processor) Load(path string) (*Outcome, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID), zap.String("file", path))

	logger.Info("processing file")

	// =========================================================================
	// STEP 1: VALIDATE FILE
	// =========================================================================

	if err := validation.ValidateFile(path); err != nil {
		logger.Error("file validation failed", zap.Error(err))
		return nil, err
	}

	kind, err := validation.ValidateFileType(path)
	if err != nil {
		logger.Error("unsupported file", zap.Error(err))
		return nil, err
	}

	// =========================================================================
	// STEP 2: READ ROWS
	// =========================================================================

	rows, err := p.readRows(path, kind)
	if err != nil {
		logger.Error("failed to read file", zap.Error(err))
		return nil, err
	}
	logger.Debug("rows read", zap.Stringer("kind", kind), zap.Int("rows", len(rows)))

	// =========================================================================
	// STEP 3: TRANSFORM
	// =========================================================================

	result, err := pricing.NewTransformer(p.policy, logger).Transform(rows)
	if err != nil {
		logger.Error("transformation failed", zap.Error(err))
		return nil, err
	}

	outcome := &Outcome{
		RunID:     runID,
		Source:    path,
		Kind:      kind,
		Result:    result,
		StartedAt: start,
		Duration:  time.Since(start),
	}

	logger.Info("file processed",
		zap.Int("original_total", result.Stats.OriginalTotal),
		zap.Int("removed", result.Stats.Removed),
		zap.Int("total", result.Stats.Total),
		zap.Int("price_increased", result.Stats.PriceIncreased),
		zap.Int("failed", result.Stats.Failed),
		zap.Duration("duration", outcome.Duration),
	)

	return outcome, nil
}

func (p *Processor) readRows(path string, kind validation.FileKind) ([]types.RawRow, error) {
	switch kind {
	case validation.KindWorkbook:
		return xlsxparser.ReadRows(path)
	case validation.KindCSV:
		return csvparser.ReadRows(path, csvparser.Settings{
			Delimiter: p.config.CSV.Delimiter,
			Encoding:  p.config.CSV.Encoding,
		})
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFileType, filepath.Ext(path))
	}
}

// =============================================================================
// EXPORT
// =============================================================================

// Labels returns the export labels of the configuration.
func (p *Processor) Labels() exporter.Labels {
	return exporter.Labels{
		SheetName: p.config.Export.SheetName,
		ItemCode:  p.config.Export.ItemCodeLabel,
		ItemName:  p.config.Export.ItemNameLabel,
		UnitPrice: p.config.Export.UnitPriceLabel,
	}
}

// Export writes the export workbook of outcome into the output directory.
// An existing file with the generated name is kept; the new export gets a
// numeric suffix.
//
// A warning log is written when rows were skipped, and a summary log when
// write_summary is enabled.
//
// RETURNS:
//   - The path of the export workbook.
//   - types.ErrNothingToExport when the outcome has no items.
func (p *Processor) Export(outcome *Outcome) (string, error) {
	if outcome == nil || outcome.Result == nil || len(outcome.Result.Items) == 0 {
		return "", types.ErrNothingToExport
	}
	logger := p.logger.With(zap.String("run_id", outcome.RunID))

	outputDir := p.config.OutputDir
	if err := utils.EnsureDir(outputDir); err != nil {
		return "", err
	}

	source := filepath.Base(outcome.Source)
	fileName := utils.GenerateOutputFileName(p.config.OutputFileFormat, map[string]string{
		"prefix": p.config.Export.FilePrefix,
		"source": strings.TrimSuffix(source, filepath.Ext(source)),
	})
	file, outputPath, err := utils.CreateUnique(outputDir, fileName)
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		return "", err
	}

	err = exporter.Write(outcome.Result.Items, p.Labels(), file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", outputPath, closeErr)
	}
	if err != nil {
		os.Remove(outputPath)
		logger.Error("export failed", zap.Error(err))
		return "", err
	}
	logger.Info("export written", zap.String("output", outputPath), zap.Int("items", len(outcome.Result.Items)))

	if len(outcome.Result.Warnings) > 0 {
		entries := utils.WarningEntries(source, outcome.Result.Warnings, outcome.StartedAt)
		if logPath, err := utils.WriteWarningLog(entries, outputDir); err != nil {
			logger.Warn("failed to write warning log", zap.Error(err))
		} else {
			logger.Info("warning log written", zap.String("path", logPath))
		}
	}

	if p.config.WriteSummary {
		summary := utils.RunSummary{
			RunID:      outcome.RunID,
			InputFile:  outcome.Source,
			OutputFile: outputPath,
			StartTime:  outcome.StartedAt,
			EndTime:    time.Now(),
			Stats:      outcome.Result.Stats,
		}
		if summaryPath, err := utils.WriteSummaryLog(summary, outputDir); err != nil {
			logger.Warn("failed to write summary", zap.Error(err))
		} else {
			logger.Debug("summary written", zap.String("path", summaryPath))
		}
	}

	return outputPath, nil
}

// =============================================================================
// Inventory Price Adjuster - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command of the tool.
//
// COMMAND USAGE:
//   adjuster process <file> [flags]
//
// FLAGS:
//   --dry-run     : Show the result without writing output files
//   --no-table    : Do not print the item table
//   --output-dir  : Override the configured output directory
//
// PROCESSING PIPELINE:
//   1. Validate and read the file (.xlsx/.xlsm or .csv)
//   2. Filter, mark up and round every row
//   3. Print the notification, the statistics and the item table
//   4. Write the export workbook (and logs) into the output directory
//
// EXIT CODE:
//   Non-zero when the file cannot be processed. Skipped rows are reported
//   but never change the exit code.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/exporter"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/processor"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun skips writing output files.
var dryRun bool

// noTable suppresses the item table.
var noTable bool

// outputDir overrides the configured output directory when set.
var outputDir string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Adjust the prices of a price list and export the result",
	Long: `The process command reads the first sheet of the given workbook (or the
given CSV file), skipping the header row. Each remaining row is:

  - removed when its unit indicator is not the configured unit
  - marked up when its section is not the exempt section
  - rounded with the custom half-step rounding

The result is printed as a table and exported as a new workbook containing
item code, item name and unit price.

Rows that cannot be processed are skipped, logged and counted as failed;
they never stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Show the result without writing output files",
	)

	processCmd.Flags().BoolVar(
		&noTable,
		"no-table",
		false,
		"Do not print the item table",
	)

	processCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Directory for the export workbook (overrides output_dir)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(out io.Writer, path string) error {
	cfg := *appConfig
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	p := processor.New(&cfg, logger)

	outcome, err := p.Load(path)
	if err != nil {
		fmt.Fprintln(out, notification(err))
		return err
	}

	stats := outcome.Result.Stats
	fmt.Fprintf(out, "Processed %d item(s) from %s\n\n", stats.Total, path)

	if err := exporter.WriteStats(out, stats); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if !noTable && stats.Total > 0 {
		if err := exporter.WriteTable(out, outcome.Result.Items, p.Labels()); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if dryRun {
		fmt.Fprintln(out, "Dry run: no files written")
		return nil
	}

	outputPath, err := p.Export(outcome)
	if errors.Is(err, types.ErrNothingToExport) {
		// An empty result is a valid outcome of the filter.
		fmt.Fprintln(out, notification(err))
		return nil
	}
	if err != nil {
		fmt.Fprintln(out, notification(err))
		return err
	}

	fmt.Fprintf(out, "Exported to: %s\n", outputPath)
	return nil
}

// notification maps a processing error to the line shown to the user.
func notification(err error) string {
	switch {
	case errors.Is(err, types.ErrUnsupportedFileType):
		return "Invalid file type: choose an Excel workbook (.xlsx) or a CSV file"
	case errors.Is(err, types.ErrInsufficientData):
		return "The file does not contain enough data"
	case errors.Is(err, types.ErrFileRead):
		return "The file could not be read"
	case errors.Is(err, types.ErrNothingToExport):
		return "No items to export"
	default:
		return "Processing failed"
	}
}

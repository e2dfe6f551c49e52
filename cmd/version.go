// =============================================================================
// Inventory Price Adjuster - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and build information.
//
// COMMAND USAGE:
//   adjuster version
//
// OUTPUT:
//   Inventory Price Adjuster
//   Version:    1.1.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.11
//
//   Pricing policy:
//     Markup factor:  1.075
//     Exempt section: 52
//     Required unit:  1
//     Columns:        code A, name B, price C, unit D, section I
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/pricing"
)

// =============================================================================
// VERSION INFORMATION
// =============================================================================
// These variables are set at build time using ldflags:
//   go build -ldflags "-X 'github.com/ginjaninja78/xlsx-price-adjuster/cmd.Version=1.1.0'"

// Version is the application version.
// Set at build time using ldflags.
var Version = "1.1.0"

// BuildDate is the date the application was built.
// Set at build time using ldflags.
var BuildDate = "unknown"

// =============================================================================
// VERSION COMMAND DEFINITION
// =============================================================================

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version and build information, followed by the pricing policy in effect for the current configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Inventory Price Adjuster")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())

		policy := pricing.DefaultPolicy()
		if appConfig != nil {
			policy = appConfig.Policy()
		}
		writePolicy(out, policy)
	},
}

func writePolicy(out io.Writer, policy pricing.Policy) {
	cols := policy.Columns
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Pricing policy:")
	fmt.Fprintf(out, "  Markup factor:  %s\n", strconv.FormatFloat(policy.MarkupFactor, 'f', -1, 64))
	fmt.Fprintf(out, "  Exempt section: %s\n", strconv.FormatFloat(policy.ExemptSection, 'f', -1, 64))
	fmt.Fprintf(out, "  Required unit:  %s\n", strconv.FormatFloat(policy.RequiredUnit, 'f', -1, 64))
	fmt.Fprintf(out, "  Columns:        code %s, name %s, price %s, unit %s, section %s\n",
		columnName(cols.ItemCode), columnName(cols.ItemName), columnName(cols.UnitPrice),
		columnName(cols.Unit), columnName(cols.Section))
}

// columnName turns a 0-based index into a sheet column letter.
func columnName(index int) string {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return strconv.Itoa(index)
	}
	return name
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the version command with the root command.
func init() {
	rootCmd.AddCommand(versionCmd)
}

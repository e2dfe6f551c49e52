package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/pricing"
)

// roundCmd prints how prices are rounded, without touching any file.
var roundCmd = &cobra.Command{
	Use:   "round <price>...",
	Short: "Show how prices are rounded",
	Long: `Show the result of the custom rounding for each price.

Whole and half prices are kept. Fractions up to 0.49 become .5 and any
other fraction rounds up to the next whole number.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRound(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(roundCmd)
}

func runRound(out io.Writer, args []string) error {
	prices := make([]float64, len(args))
	for i, arg := range args {
		price, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", arg)
		}
		prices[i] = price
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, price := range prices {
		fmt.Fprintf(tw, "%s\t→\t%s\n", args[i], strconv.FormatFloat(pricing.CustomRound(price), 'f', -1, 64))
	}
	return tw.Flush()
}

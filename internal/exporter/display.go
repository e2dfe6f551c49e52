package exporter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/types"
)

// MarkupMarker flags rows whose price received the markup in the table.
const MarkupMarker = "+"

// WriteTable prints items as an aligned text table.
func WriteTable(w io.Writer, items []types.ProcessedItem, labels Labels) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\t\n", labels.ItemCode, labels.ItemName, labels.UnitPrice)
	for _, item := range items {
		marker := ""
		if item.PriceIncreased {
			marker = MarkupMarker
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ItemCode, item.ItemName, FormatPrice(item.NewPrice), marker)
	}

	return tw.Flush()
}

// WriteStats prints the run statistics, one per line.
func WriteStats(w io.Writer, stats types.RunStatistics) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Original rows:\t%d\n", stats.OriginalTotal)
	fmt.Fprintf(tw, "Removed rows:\t%d\n", stats.Removed)
	fmt.Fprintf(tw, "Shown rows:\t%d\n", stats.Total)
	fmt.Fprintf(tw, "Marked-up prices:\t%d\n", stats.PriceIncreased)
	if stats.Failed > 0 {
		fmt.Fprintf(tw, "Failed rows:\t%d\n", stats.Failed)
	}

	return tw.Flush()
}

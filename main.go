// =============================================================================
// Inventory Price Adjuster - Main Entry Point
// =============================================================================
//
// This is the main entry point for the adjuster CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   adjuster process <file>   - Adjust a price list and export the result
//   adjuster round <price>... - Show how prices are rounded
//   adjuster version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (pricing, readers, exporter, processor)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/xlsx-price-adjuster/cmd"
)

func main() {
	cmd.Execute()
}

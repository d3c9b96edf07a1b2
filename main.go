// =============================================================================
// Ledger Cleaner - Main Entry Point
// =============================================================================
//
// USAGE:
//   ledgerclean bulk-orders <input_file> [output_file]
//   ledgerclean items       <input_file> [output_file]
//   ledgerclean sales       <input_file> [output_file]
//   ledgerclean process     <dataset> <input_file>...
//   ledgerclean version
//
// ARCHITECTURE:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : Parsing, scanning, normalization, aggregation, output
//   - pkg/      : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/ledgerclean/cmd"
)

func main() {
	cmd.Execute()
}

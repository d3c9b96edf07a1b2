// =============================================================================
// Ledger Cleaner - Process Command
// =============================================================================
//
// This file defines the 'process' command, which cleans several exports of
// the same dataset in one invocation.
//
// COMMAND USAGE:
//   ledgerclean process <dataset> <input_file>... [flags]
//
// FLAGS:
//   --summary : Bulk-orders layout (monthly or customer)
//   --daily   : Sales per day instead of per month
//
// Each file gets its own converter and is cleaned in its own goroutine;
// output names are always derived from the input names. A failure in one
// file does not affect the others.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ledgerclean/internal/converter"
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process <dataset> <input_file>...",
	Short: "Clean several exports of one dataset concurrently",
	Long: `The process command cleans every listed file as the given dataset
(bulk-orders, items or sales). Files are processed concurrently and
independently; the command fails if any file fails.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.OutOrStdout(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&summaryMode,
		"summary",
		"",
		"Bulk-orders layout: monthly or customer",
	)

	processCmd.Flags().BoolVar(
		&salesDaily,
		"daily",
		false,
		"Write sales per day instead of per month",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// newDataset returns a fresh dataset for name.
func newDataset(name string) (converter.Dataset, error) {
	switch name {
	case "bulk-orders", "bulk":
		mode, err := converter.ParseSummaryMode(summaryMode)
		if err != nil {
			return nil, err
		}
		return converter.NewBulkOrders(mode), nil
	case "items":
		return converter.NewItems(), nil
	case "sales":
		return converter.NewSales(salesDaily, appConfig.SubtotalWarnings()), nil
	}
	return nil, fmt.Errorf("unknown dataset %q (want bulk-orders, items or sales)", name)
}

// runProcess cleans every input concurrently and prints one summary per
// file, in argument order.
func runProcess(out io.Writer, dataset string, inputs []string) error {
	// Validate the dataset name before starting any work.
	if _, err := newDataset(dataset); err != nil {
		return err
	}

	type indexed struct {
		index  int
		result converter.Result
	}

	var wg sync.WaitGroup
	results := make(chan indexed, len(inputs))

	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()

			ds, _ := newDataset(dataset)
			results <- indexed{index: i, result: converter.New(ds, converterOptions(input, "")).Run()}
		}(i, input)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var collected []indexed
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	failed := 0
	for _, r := range collected {
		printSummary(out, r.result, appConfig.PreviewLimit)
		fmt.Fprintln(out)
		if r.result.Error != nil {
			failed++
			fmt.Fprintf(out, "  ✗ %s: %v\n\n", r.result.FilePath, r.result.Error)
		}
	}

	fmt.Fprintf(out, "=== Processing Complete ===\n")
	fmt.Fprintf(out, "Total files:     %d\n", len(inputs))
	fmt.Fprintf(out, "Successful:      %d\n", len(inputs)-failed)
	fmt.Fprintf(out, "Failed:          %d\n", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs))
	}
	return nil
}

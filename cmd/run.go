// =============================================================================
// Ledger Cleaner - Run Helpers
// =============================================================================
//
// Shared by the dataset commands and the process command: building the
// converter options from configuration and flags, printing the run summary
// and writing the optional diagnostics log.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/ledgerclean/internal/converter"
	"github.com/ginjaninja78/ledgerclean/internal/csvparser"
	"github.com/ginjaninja78/ledgerclean/internal/csvwriter"
	"github.com/ginjaninja78/ledgerclean/internal/diagnostics"
	"github.com/ginjaninja78/ledgerclean/pkg/utils"
)

// converterOptions builds the run options from the loaded configuration
// and the global flags.
func converterOptions(input, output string) converter.Options {
	return converter.Options{
		InputPath:    input,
		OutputPath:   output,
		OutputSuffix: appConfig.OutputSuffix,
		Year:         yearOverride,
		Settings: csvparser.Settings{
			Comma: appConfig.Comma(),
			Quote: appConfig.Quote(),
			Sheet: appConfig.Sheet,
		},
		Output: csvwriter.Options{
			Comma: appConfig.Comma(),
			Quote: appConfig.Quote(),
		},
		Logger: logger,
	}
}

// runDataset cleans one file with ds and prints the run summary.
//
// PARAMETERS:
//   - out: Where the summary is printed.
//   - ds: A fresh dataset.
//   - args: <input_file> [output_file]
//
// RETURNS:
//   - The run's fatal error, if any. Warnings never fail a run.
func runDataset(out io.Writer, ds converter.Dataset, args []string) error {
	input, output := args[0], ""
	if len(args) > 1 {
		output = args[1]
	}

	result := converter.New(ds, converterOptions(input, output)).Run()
	printSummary(out, result, appConfig.PreviewLimit)

	if diagnosticsPath != "" {
		if err := writeDiagnostics(diagnosticsPath, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "Diagnostics log: %s\n", diagnosticsPath)
	}

	return result.Error
}

func writeDiagnostics(path string, result converter.Result) error {
	err := utils.WriteDiagnosticsLog(path, utils.DiagnosticsLog{
		Source:    result.FilePath,
		RunID:     result.RunID,
		Generated: time.Now(),
		Entries:   result.Diagnostics.All(),
	})
	if err != nil {
		return fmt.Errorf("failed to write diagnostics log: %w", err)
	}
	return nil
}

// printSummary prints the human-readable run summary with at most limit
// diagnostics; the rest are counted.
func printSummary(out io.Writer, result converter.Result, limit int) {
	fmt.Fprintf(out, "=== Ledger Cleaner: %s ===\n", result.Dataset)
	fmt.Fprintf(out, "Input:           %s\n", filepath.Base(result.FilePath))

	if result.Success {
		fmt.Fprintf(out, "Output:          %s\n", result.OutputFile)
	} else {
		fmt.Fprintf(out, "Output:          (not written)\n")
	}
	if result.Year != 0 {
		fmt.Fprintf(out, "Year:            %d (%s)\n", result.Year, result.YearSource)
	}

	fmt.Fprintf(out, "Lines read:      %d\n", result.Stats.LinesRead)
	fmt.Fprintf(out, "Records kept:    %d\n", result.Stats.RecordsKept)
	fmt.Fprintf(out, "Rows written:    %d\n", result.Stats.RowsWritten)

	diags := result.Diagnostics
	if diags == nil {
		diags = diagnostics.New()
	}
	fmt.Fprintf(out, "Warnings:        %d\n", diags.Count(diagnostics.Warning))
	fmt.Fprintf(out, "Errors:          %d\n", diags.Count(diagnostics.Error))
	fmt.Fprintf(out, "Time elapsed:    %s\n", result.Stats.ProcessingTime.Round(time.Millisecond))

	if diags.Len() > 0 {
		preview, rest := diags.Preview(limit)
		fmt.Fprintln(out, "\nDiagnostics:")
		for _, d := range preview {
			fmt.Fprintf(out, "  %s\n", d)
		}
		if rest > 0 {
			fmt.Fprintf(out, "  ... and %d more\n", rest)
		}
	}
}

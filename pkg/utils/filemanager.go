// =============================================================================
// Ledger Cleaner - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a cleaning run:
//   - Default output file naming
//   - Atomic output writes
//   - The full diagnostics log
//
// WRITE STRATEGY:
//   Output is written to a temporary file in the destination directory,
//   flushed, synced and renamed over the destination. A failed run never
//   leaves a truncated output file behind, and the temporary file is removed
//   on every failure path.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/ledgerclean/internal/diagnostics"
)

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// DefaultOutputPath derives the output path from the input path by inserting
// suffix before the extension.
//
// EXAMPLE:
//   DefaultOutputPath("data/orders.csv", "_cleaned")  -> "data/orders_cleaned.csv"
//   DefaultOutputPath("data/sales.xlsx", "_cleaned")  -> "data/sales_cleaned.csv"
//   DefaultOutputPath("data/items", "_cleaned")       -> "data/items_cleaned"
func DefaultOutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)

	switch strings.ToLower(ext) {
	case ".xlsx", ".xlsm":
		ext = ".csv"
	}
	return base + suffix + ext
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic writes the file at path through fn.
//
// PARAMETERS:
//   - path: The destination file.
//   - fn: Writes the content. An error from fn aborts the write.
//
// RETURNS:
//   - An error if the file cannot be created, written, synced or renamed.
//     The destination is untouched in that case.
func WriteFileAtomic(path string, fn func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	writer := bufio.NewWriter(tmp)
	if err = fn(writer); err != nil {
		return err
	}
	if err = writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// =============================================================================
// DIAGNOSTICS LOG
// =============================================================================

// DiagnosticsLog describes one run for the diagnostics log file.
type DiagnosticsLog struct {
	Source    string
	RunID     string
	Generated time.Time
	Entries   []diagnostics.Diagnostic
}

// WriteDiagnosticsLog writes every diagnostic of a run to path. The console
// summary only previews the first few; this file has all of them.
//
// PARAMETERS:
//   - path: The log file to create or replace.
//   - log: The run description and its diagnostics.
//
// RETURNS:
//   - An error if writing fails.
func WriteDiagnosticsLog(path string, log DiagnosticsLog) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		warnings, errors := 0, 0
		for _, d := range log.Entries {
			if d.Severity == diagnostics.Error {
				errors++
			} else {
				warnings++
			}
		}

		header := fmt.Sprintf("Ledger Cleaner - Diagnostics Log\n"+
			"Source:    %s\n"+
			"Run ID:    %s\n"+
			"Generated: %s\n"+
			"Warnings:  %d\n"+
			"Errors:    %d\n"+
			"================================================================================\n",
			log.Source,
			log.RunID,
			log.Generated.Format("2006-01-02 15:04:05"),
			warnings,
			errors)
		if _, err := io.WriteString(w, header); err != nil {
			return fmt.Errorf("failed to write diagnostics log: %w", err)
		}

		for _, d := range log.Entries {
			if _, err := io.WriteString(w, d.String()+"\n"); err != nil {
				return fmt.Errorf("failed to write diagnostics log: %w", err)
			}
		}

		footer := "================================================================================\n" +
			"End of Diagnostics Log\n"
		if _, err := io.WriteString(w, footer); err != nil {
			return fmt.Errorf("failed to write diagnostics log: %w", err)
		}
		return nil
	})
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

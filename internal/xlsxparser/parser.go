// =============================================================================
// Ledger Cleaner - XLSX Source Reader
// =============================================================================
//
// Ledger exports often arrive as the workbook they are maintained in rather
// than as delimited text. This module renders one worksheet as delimited
// lines, so the rest of the pipeline sees exactly what a "Save as CSV" of
// the same sheet would have produced.
//
// ROW MAPPING:
//   - One worksheet row becomes one line; row 1 is line 1
//   - Empty rows stay as empty lines so line numbers match the sheet
//   - Cells holding the delimiter, the quote or a line break are quoted
//   - Line breaks inside a cell are folded to a space
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/ledgerclean/internal/types"
	"github.com/xuri/excelize/v2"
)

// Options controls how a worksheet is rendered.
type Options struct {
	// Sheet is the worksheet name. Empty selects the first sheet.
	Sheet string

	// Comma is the delimiter placed between cells.
	// Default: ','
	Comma rune

	// Quote wraps cells that need quoting.
	// Default: '"'
	Quote rune
}

// ReadLines opens a workbook and renders one worksheet as numbered lines.
//
// PARAMETERS:
//   - path: The path to the workbook.
//   - opts: Sheet selection and delimiter settings.
//
// RETURNS:
//   - The rendered lines.
//   - The lines joined with "\n", used for year detection.
//   - An error if the workbook or sheet cannot be read.
func ReadLines(path string, opts Options) ([]types.RawLine, string, error) {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, "", fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		return nil, "", fmt.Errorf("sheet %q not found in workbook", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read rows: %w", err)
	}

	lines := make([]types.RawLine, len(rows))
	texts := make([]string, len(rows))
	for i, row := range rows {
		text := renderRow(row, opts)
		lines[i] = types.RawLine{Text: text, Number: i + 1}
		texts[i] = text
	}

	return lines, strings.Join(texts, "\n"), nil
}

// renderRow joins the cells of one row into a delimited line.
func renderRow(row []string, opts Options) string {
	var b strings.Builder
	quote := string(opts.Quote)

	for i, cell := range row {
		if i > 0 {
			b.WriteRune(opts.Comma)
		}

		cell = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(cell)

		if strings.ContainsRune(cell, opts.Comma) || strings.Contains(cell, quote) {
			b.WriteString(quote)
			b.WriteString(strings.ReplaceAll(cell, quote, quote+quote))
			b.WriteString(quote)
			continue
		}
		b.WriteString(cell)
	}

	return b.String()
}

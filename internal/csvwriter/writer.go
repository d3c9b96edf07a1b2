// =============================================================================
// Ledger Cleaner - Output Writer
// =============================================================================
//
// This module serializes cleaned records and aggregates as delimited text.
//
// OUTPUT FORMAT:
//   customer_name,bulk_orders_amount,model_no,month_start
//   "ACME",1000.00,"M1","2024-01-01"
//
//   - The header row carries bare column names
//   - String cells are quoted; an inner quote is doubled
//   - Numeric cells are written bare, amounts with two decimals
//   - Placeholder cells (filled by a later enrichment step) are empty
//   - Every line ends with "\n"
//
// Column order is fixed per table and is part of the output contract.
//
// =============================================================================

package csvwriter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/ledgerclean/internal/aggregate"
	"github.com/ginjaninja78/ledgerclean/internal/types"
)

// =============================================================================
// CELLS AND TABLES
// =============================================================================

// CellKind decides how a cell is rendered.
type CellKind int

const (
	// Text cells are quoted.
	Text CellKind = iota

	// Number cells are written bare.
	Number

	// Placeholder cells are written empty.
	Placeholder
)

// Cell is one output value.
type Cell struct {
	Kind  CellKind
	Value string
}

// String returns a quoted text cell.
func String(s string) Cell {
	return Cell{Kind: Text, Value: s}
}

// Amount returns a number cell with two decimals.
func Amount(d decimal.Decimal) Cell {
	return Cell{Kind: Number, Value: d.StringFixed(2)}
}

// Int returns a number cell.
func Int(n int) Cell {
	return Cell{Kind: Number, Value: strconv.Itoa(n)}
}

// Empty returns a placeholder cell.
func Empty() Cell {
	return Cell{Kind: Placeholder}
}

// Table is a header plus rows of cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// =============================================================================
// WRITE OPTIONS
// =============================================================================

// Options controls the output dialect.
type Options struct {
	// Comma separates cells.
	// Default: ','
	Comma rune

	// Quote wraps text cells.
	// Default: '"'
	Quote rune
}

// DefaultOptions returns comma-separated, double-quoted output.
func DefaultOptions() Options {
	return Options{Comma: ',', Quote: '"'}
}

// =============================================================================
// WRITING
// =============================================================================

// Write renders table to w.
//
// PARAMETERS:
//   - w: The destination.
//   - table: The header and rows to write.
//   - opts: The output dialect.
//
// RETURNS:
//   - An error if a row does not match the header width or w fails.
func Write(w io.Writer, table Table, opts Options) error {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}

	bw := bufio.NewWriter(w)
	sep := string(opts.Comma)

	if _, err := bw.WriteString(strings.Join(table.Columns, sep) + "\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(table.Columns))
		}

		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = render(c, opts.Quote)
		}
		if _, err := bw.WriteString(strings.Join(cells, sep) + "\n"); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func render(c Cell, quote rune) string {
	switch c.Kind {
	case Number:
		return c.Value
	case Placeholder:
		return ""
	default:
		q := string(quote)
		return q + strings.ReplaceAll(c.Value, q, q+q) + q
	}
}

// =============================================================================
// TABLE BUILDERS
// =============================================================================

// BulkOrdersTable renders one row per cleaned bulk order.
func BulkOrdersTable(records []types.BulkOrderRecord) Table {
	t := Table{Columns: []string{"customer_name", "bulk_orders_amount", "model_no", "month_start"}}
	for _, r := range records {
		t.Rows = append(t.Rows, []Cell{
			String(r.CustomerName),
			Amount(r.OrderAmount),
			String(r.ModelNo),
			String(r.Context.MonthStart()),
		})
	}
	return t
}

// BulkMonthlyTable renders one row per month.
func BulkMonthlyTable(aggs []aggregate.MonthlyAggregate) Table {
	t := Table{Columns: []string{"month_start", "bulk_orders_count", "bulk_orders_amount"}}
	for _, a := range aggs {
		t.Rows = append(t.Rows, []Cell{
			String(a.Context.MonthStart()),
			Int(a.Count),
			Amount(a.Total),
		})
	}
	return t
}

// BulkCustomerTable renders one row per (month, customer).
func BulkCustomerTable(aggs []aggregate.MonthlyAggregate) Table {
	t := Table{Columns: []string{
		"month_start", "customer_name", "bulk_orders_count",
		"bulk_orders_amount", "average_bulk_order_value", "model_no",
	}}
	for _, a := range aggs {
		t.Rows = append(t.Rows, []Cell{
			String(a.Context.MonthStart()),
			String(a.Customer),
			Int(a.Count),
			Amount(a.Total),
			Amount(a.Average()),
			String(strings.Join(a.Models, ", ")),
		})
	}
	return t
}

// ItemsTable renders one row per (month, model).
func ItemsTable(records []types.ItemRecord) Table {
	t := Table{Columns: []string{"month_start", "model_no", "category_name"}}
	for _, r := range records {
		t.Rows = append(t.Rows, []Cell{
			String(r.Context.MonthStart()),
			String(r.ModelNo),
			String(r.CategoryName),
		})
	}
	return t
}

// SalesMonthlyTable renders monthly revenue. Only month_start and
// total_revenue are known here; the other columns stay empty.
func SalesMonthlyTable(aggs []aggregate.MonthlyAggregate) Table {
	t := Table{Columns: []string{
		"month_start", "total_revenue", "total_orders",
		"total_units", "avg_order_value", "new_customers",
	}}
	for _, a := range aggs {
		t.Rows = append(t.Rows, []Cell{
			String(a.Context.MonthStart()),
			Amount(a.Total),
			Empty(),
			Empty(),
			Empty(),
			Empty(),
		})
	}
	return t
}

// SalesDailyTable renders revenue per calendar day.
func SalesDailyTable(days []aggregate.DailyTotal) Table {
	t := Table{Columns: []string{"sale_date", "total_revenue", "entries"}}
	for _, d := range days {
		t.Rows = append(t.Rows, []Cell{
			String(d.Date()),
			Amount(d.Total),
			Int(d.Count),
		})
	}
	return t
}

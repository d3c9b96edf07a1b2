package converter

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/ledgerclean/internal/aggregate"
	"github.com/ginjaninja78/ledgerclean/internal/csvwriter"
	"github.com/ginjaninja78/ledgerclean/internal/diagnostics"
	"github.com/ginjaninja78/ledgerclean/internal/scanner"
	"github.com/ginjaninja78/ledgerclean/internal/types"
	"github.com/ginjaninja78/ledgerclean/internal/validation"
)

// SummaryMode selects the bulk-orders output layout.
type SummaryMode int

const (
	// PerOrder writes one row per cleaned order.
	PerOrder SummaryMode = iota

	// Monthly writes one row per month.
	Monthly

	// PerCustomer writes one row per (month, customer).
	PerCustomer
)

func (m SummaryMode) String() string {
	switch m {
	case Monthly:
		return "monthly"
	case PerCustomer:
		return "customer"
	default:
		return "orders"
	}
}

// ParseSummaryMode reads a --summary flag value. The empty string means
// PerOrder.
func ParseSummaryMode(s string) (SummaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "orders", "order", "none":
		return PerOrder, nil
	case "monthly", "month":
		return Monthly, nil
	case "customer", "customers", "customer-month":
		return PerCustomer, nil
	}
	return PerOrder, fmt.Errorf("unknown summary mode %q (want monthly or customer)", s)
}

// BulkOrders cleans the bulk-orders export: month header lines, a
// "Customer Name, Order Amount, Model No" schema line, then order rows.
type BulkOrders struct {
	Mode SummaryMode

	records []types.BulkOrderRecord
}

// NewBulkOrders returns a bulk-orders dataset writing the given layout.
func NewBulkOrders(mode SummaryMode) *BulkOrders {
	return &BulkOrders{Mode: mode}
}

func (b *BulkOrders) Name() string { return "bulk-orders" }

func (b *BulkOrders) Classifier() scanner.Classifier {
	return scanner.Classifier{
		Required:   []string{"CUSTOMER NAME", "ORDER AMOUNT", "MODEL NO"},
		Standalone: true,
	}
}

func (b *BulkOrders) Schema() scanner.Schema {
	return scanner.Schema{
		{Role: types.RoleCustomer, Match: []string{"CUSTOMER NAME", "CUSTOMER"}, Position: 0},
		{Role: types.RoleAmount, Match: []string{"ORDER AMOUNT", "AMOUNT"}, Position: 1},
		{Role: types.RoleModel, Match: []string{"MODEL NO", "MODEL"}, Position: 2},
	}
}

func (b *BulkOrders) Embedded() bool { return false }
func (b *BulkOrders) SkipLines() int { return 0 }
func (b *BulkOrders) Records() int { return len(b.records) }
func (b *BulkOrders) StartSection(types.MonthContext) {}
func (b *BulkOrders) Finish(*diagnostics.Collector) {}

// Handle validates one order row. Checks run customer, amount, model; the
// first failure drops the row with a single warning.
func (b *BulkOrders) Handle(row scanner.Row, diags *diagnostics.Collector) {
	line := row.LineNumber()

	if row.Short() {
		diags.Warn(line, "expected %d fields, found %d; row dropped", row.Expected(), len(row.Fields))
		return
	}

	customerCell, _ := row.Get(types.RoleCustomer)
	customer := validation.CleanName(customerCell, true)
	if customer == "" {
		diags.Warn(line, "customer name is empty; row dropped")
		return
	}

	amountCell, _ := row.Get(types.RoleAmount)
	amount := validation.RequirePositive(validation.RoundCents(validation.ParseAmount(amountCell)))
	if !amount.OK() {
		diags.Warn(line, "%s; row dropped", amountProblem("order amount", amount))
		return
	}

	modelCell, _ := row.Get(types.RoleModel)
	model := validation.CleanName(modelCell, true)
	if model == "" {
		diags.Warn(line, "model number is empty; row dropped")
		return
	}

	b.records = append(b.records, types.BulkOrderRecord{
		CustomerName: customer,
		OrderAmount:  amount.Value,
		ModelNo:      model,
		Context:      row.Context,
		SourceLine:   line,
	})
}

// Orders returns the cleaned records in output order.
func (b *BulkOrders) Orders() []types.BulkOrderRecord {
	out := make([]types.BulkOrderRecord, len(b.records))
	copy(out, b.records)
	aggregate.SortBulkOrders(out)
	return out
}

func (b *BulkOrders) Table() csvwriter.Table {
	switch b.Mode {
	case Monthly:
		return csvwriter.BulkMonthlyTable(aggregate.BulkByMonth(b.records))
	case PerCustomer:
		return csvwriter.BulkCustomerTable(aggregate.BulkByCustomerMonth(b.records))
	default:
		return csvwriter.BulkOrdersTable(b.Orders())
	}
}

// amountProblem phrases a failed amount result for a diagnostic.
func amountProblem[T any](field string, r validation.Result[T]) string {
	if r.Status == validation.Missing {
		return field + " is empty"
	}
	return field + ": " + r.Reason
}

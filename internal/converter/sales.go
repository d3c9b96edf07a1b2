package converter

import (
	"github.com/ginjaninja78/ledgerclean/internal/aggregate"
	"github.com/ginjaninja78/ledgerclean/internal/csvwriter"
	"github.com/ginjaninja78/ledgerclean/internal/diagnostics"
	"github.com/ginjaninja78/ledgerclean/internal/scanner"
	"github.com/ginjaninja78/ledgerclean/internal/types"
	"github.com/ginjaninja78/ledgerclean/internal/validation"
)

// Sales cleans the sales-by-day export. The first line is a title, the
// second is the "Date, Total Amount, Company" schema line, and month
// changes are announced by "MONTH OF <name> <year>" in the date column.
type Sales struct {
	// Daily writes one row per calendar day instead of per month.
	Daily bool

	// ReportSubtotals records a warning for every row skipped because it
	// has no company.
	ReportSubtotals bool

	days    scanner.DayTracker
	records []types.SalesDayRecord
}

// NewSales returns a sales dataset.
func NewSales(daily, reportSubtotals bool) *Sales {
	return &Sales{Daily: daily, ReportSubtotals: reportSubtotals}
}

func (s *Sales) Name() string { return "sales" }

func (s *Sales) Classifier() scanner.Classifier {
	return scanner.Classifier{Required: []string{"DATE", "TOTAL AMOUNT"}}
}

func (s *Sales) Schema() scanner.Schema {
	return scanner.Schema{
		{Role: types.RoleDate, Match: []string{"DATE"}, Position: 0},
		{Role: types.RoleAmount, Match: []string{"TOTAL AMOUNT", "AMOUNT"}, Position: 1},
		{Role: types.RoleCompany, Match: []string{"COMPANY", "CUSTOMER"}, Position: 2, Optional: true},
	}
}

func (s *Sales) Embedded() bool { return true }
func (s *Sales) SkipLines() int { return 1 }
func (s *Sales) Records() int { return len(s.records) }
func (s *Sales) Finish(*diagnostics.Collector) {}

// StartSection forgets the last seen day.
func (s *Sales) StartSection(types.MonthContext) {
	s.days.Reset()
}

// Handle validates one sales row.
//
// A row without a company is a subtotal already present in the export and
// is skipped before its date is read, so it never feeds day inheritance.
// Amounts may be zero or negative (refunds) but must parse.
func (s *Sales) Handle(row scanner.Row, diags *diagnostics.Collector) {
	line := row.LineNumber()

	if row.Short() {
		diags.Warn(line, "expected %d fields, found %d; row dropped", row.Expected(), len(row.Fields))
		return
	}

	companyCell, _ := row.Get(types.RoleCompany)
	company := validation.CleanName(companyCell, true)
	if company == "" {
		if s.ReportSubtotals {
			diags.Warn(line, "row has no company; treated as a subtotal and skipped")
		}
		return
	}

	dateCell, _ := row.Get(types.RoleDate)
	day, inherited := s.days.Resolve(dateCell, row.Context)
	if !day.OK() {
		diags.Warn(line, "%s; row dropped", day.Reason)
		return
	}

	amountCell, _ := row.Get(types.RoleAmount)
	amount := validation.RoundCents(validation.ParseAmount(amountCell))
	if !amount.OK() {
		diags.Warn(line, "%s; row dropped", amountProblem("total amount", amount))
		return
	}

	s.records = append(s.records, types.SalesDayRecord{
		Day:        day.Value,
		Inherited:  inherited,
		Amount:     amount.Value,
		Company:    company,
		Context:    row.Context,
		SourceLine: line,
	})
}

// Entries returns the cleaned records in source order.
func (s *Sales) Entries() []types.SalesDayRecord {
	out := make([]types.SalesDayRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Sales) Table() csvwriter.Table {
	if s.Daily {
		return csvwriter.SalesDailyTable(aggregate.SalesByDay(s.records))
	}
	return csvwriter.SalesMonthlyTable(aggregate.SalesByMonth(s.records))
}

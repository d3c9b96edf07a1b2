// =============================================================================
// Ledger Cleaner - Shared Types
// =============================================================================
//
// This package contains the data model shared by the scanner, the dataset
// normalizers, the aggregator and the output writer. Keeping it separate
// avoids import cycles between those packages.
//
// LIFECYCLE:
//   RawLine -> FieldRow -> record (or a diagnostic) -> aggregate -> output row
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SOURCE LINES
// =============================================================================

// RawLine is one line of the source content.
type RawLine struct {
	// Text is the line without its line terminator.
	Text string

	// Number is the 1-based line number in the source.
	Number int
}

// FieldRow is a RawLine split into ordered field values.
// It carries no semantic meaning yet.
type FieldRow struct {
	Fields []string
	Line   RawLine
}

// =============================================================================
// MONTHS
// =============================================================================

// monthAbbreviations maps the short forms used by the sales export's
// embedded "MONTH OF" markers. Full names are resolved through time.Month.
var monthAbbreviations = map[string]time.Month{
	"JAN":  time.January,
	"FEB":  time.February,
	"MAR":  time.March,
	"APR":  time.April,
	"JUN":  time.June,
	"JUL":  time.July,
	"AUG":  time.August,
	"SEP":  time.September,
	"SEPT": time.September,
	"OCT":  time.October,
	"NOV":  time.November,
	"DEC":  time.December,
}

// MonthNames returns the twelve upper-cased full month names in calendar order.
func MonthNames() []string {
	names := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		names = append(names, strings.ToUpper(m.String()))
	}
	return names
}

// ParseMonthName resolves a full month name (any case).
func ParseMonthName(name string) (time.Month, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for m := time.January; m <= time.December; m++ {
		if strings.ToUpper(m.String()) == name {
			return m, true
		}
	}
	return 0, false
}

// ParseMonthAbbrev resolves a full month name or one of its common
// abbreviations (JAN, SEPT, ...).
func ParseMonthAbbrev(name string) (time.Month, bool) {
	if m, ok := ParseMonthName(name); ok {
		return m, true
	}
	m, ok := monthAbbreviations[strings.ToUpper(strings.TrimSpace(name))]
	return m, ok
}

// =============================================================================
// MONTH CONTEXT
// =============================================================================

// MonthContext is the month and year active while a section is scanned.
// The zero value means no section header has been seen yet.
type MonthContext struct {
	Month time.Month
	Year  int
}

// IsSet reports whether a section header has established the context.
func (c MonthContext) IsSet() bool {
	return c.Month >= time.January && c.Month <= time.December && c.Year > 0
}

// MonthStart renders the context as the first day of the month, YYYY-MM-01.
func (c MonthContext) MonthStart() string {
	return fmt.Sprintf("%04d-%02d-01", c.Year, int(c.Month))
}

// MonthName returns the upper-cased full month name.
func (c MonthContext) MonthName() string {
	if !c.IsSet() {
		return ""
	}
	return strings.ToUpper(c.Month.String())
}

// Before orders contexts chronologically.
func (c MonthContext) Before(other MonthContext) bool {
	if c.Year != other.Year {
		return c.Year < other.Year
	}
	return c.Month < other.Month
}

func (c MonthContext) String() string {
	if !c.IsSet() {
		return "<unset>"
	}
	return fmt.Sprintf("%s %d", c.MonthName(), c.Year)
}

// =============================================================================
// COLUMN ROLES
// =============================================================================

// Role identifies what a column means for a dataset.
type Role int

const (
	RoleCustomer Role = iota
	RoleAmount
	RoleModel
	RoleCategory
	RoleDate
	RoleCompany
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer name"
	case RoleAmount:
		return "amount"
	case RoleModel:
		return "model number"
	case RoleCategory:
		return "category"
	case RoleDate:
		return "date"
	case RoleCompany:
		return "company"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// =============================================================================
// NORMALIZED RECORDS
// =============================================================================

// BulkOrderRecord is one cleaned row of the bulk-orders export.
type BulkOrderRecord struct {
	CustomerName string
	OrderAmount  decimal.Decimal
	ModelNo      string
	Context      MonthContext
	SourceLine   int
}

// ItemRecord is one cleaned row of the items-by-category export.
type ItemRecord struct {
	ModelNo      string
	CategoryName string
	Context      MonthContext
	SourceLine   int
}

// SalesDayRecord is one cleaned row of the sales-by-day export.
type SalesDayRecord struct {
	// Day is the day of month, either explicit or inherited.
	Day int

	// Inherited is true when Day was taken from an earlier row.
	Inherited bool

	Amount     decimal.Decimal
	Company    string
	Context    MonthContext
	SourceLine int
}

// Date returns the calendar date of the sale.
func (r SalesDayRecord) Date() time.Time {
	return time.Date(r.Context.Year, r.Context.Month, r.Day, 0, 0, 0, 0, time.UTC)
}

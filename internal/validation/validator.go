// =============================================================================
// Ledger Cleaner - Field Normalization Primitives
// =============================================================================
//
// This module provides the cleaning and parsing rules shared by the dataset
// normalizers:
//   - Name cleaning (trim, whitespace collapse, optional upper-casing)
//   - Amount parsing (currency symbols, thousands separators, quotes,
//     negative-in-parentheses)
//   - Day-of-month parsing
//
// RESULT TYPE:
//   Parsers never panic and never return Go errors for bad input. They return
//   a Result that is Parsed, Invalid (with a reason) or Missing, and the
//   normalizer decides which diagnostic, if any, to record.
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT TYPE
// =============================================================================

// Status is the outcome of parsing one field.
type Status int

const (
	// Parsed means Value holds a usable value.
	Parsed Status = iota

	// Invalid means the field had content that could not be interpreted.
	Invalid

	// Missing means the field was empty.
	Missing
)

func (s Status) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Invalid:
		return "invalid"
	case Missing:
		return "missing"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of parsing a field into a T.
type Result[T any] struct {
	Value  T
	Status Status
	Reason string
}

// OK reports whether the result holds a parsed value.
func (r Result[T]) OK() bool {
	return r.Status == Parsed
}

func parsedResult[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: Parsed}
}

func invalidResult[T any](format string, args ...any) Result[T] {
	return Result[T]{Status: Invalid, Reason: fmt.Sprintf(format, args...)}
}

func missingResult[T any]() Result[T] {
	return Result[T]{Status: Missing, Reason: "value is empty"}
}

// =============================================================================
// NAME CLEANING
// =============================================================================

// CleanName trims a name and collapses internal whitespace runs to one
// space. When upper is true the result is upper-cased.
func CleanName(s string, upper bool) string {
	s = strings.Join(strings.Fields(s), " ")
	if upper {
		s = strings.ToUpper(s)
	}
	return s
}

// =============================================================================
// AMOUNT PARSING
// =============================================================================

// currencyCodes are stripped when they prefix or suffix an amount.
var currencyCodes = []string{"USD", "EUR", "GBP", "NGN", "INR", "JPY", "CNY", "KES", "GHS", "ZAR", "CAD", "AUD"}

// amountNoise is removed wherever it appears in an amount cell.
var amountNoise = strings.NewReplacer(
	",", "",
	"\"", "",
	"'", "",
	" ", "",
	"\u00a0", "",
	"$", "",
	"€", "",
	"£", "",
	"₦", "",
	"¥", "",
	"₹", "",
)

var decimalPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount converts a ledger amount cell to a decimal.
//
// ACCEPTED FORMS:
//   - "1000", "1,000.50", "$1,000", "NGN 2,500", "\"1,000\""
//   - "(123.45)" and "-123.45" are both negative
//
// RETURNS:
//   - Missing for an empty cell
//   - Invalid when the residue is not a plain decimal number
func ParseAmount(s string) Result[decimal.Decimal] {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return missingResult[decimal.Decimal]()
	}

	v := stripCurrencyCodes(strings.ToUpper(amountNoise.Replace(raw)))

	negative := false
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		negative = true
		v = strings.TrimSuffix(strings.TrimPrefix(v, "("), ")")
		v = stripCurrencyCodes(v)
	}

	switch {
	case strings.HasPrefix(v, "-"):
		negative = !negative
		v = stripCurrencyCodes(v[1:])
	case strings.HasPrefix(v, "+"):
		v = stripCurrencyCodes(v[1:])
	}

	if v == "" {
		return invalidResult[decimal.Decimal]("amount %q has no digits", raw)
	}
	if !decimalPattern.MatchString(v) {
		return invalidResult[decimal.Decimal]("amount %q is not a number", raw)
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return invalidResult[decimal.Decimal]("amount %q is not a number: %v", raw, err)
	}
	if negative {
		d = d.Neg()
	}

	return parsedResult(d)
}

// stripCurrencyCodes removes one known ISO currency code from either end.
func stripCurrencyCodes(v string) string {
	for _, code := range currencyCodes {
		if strings.HasPrefix(v, code) {
			return strings.TrimPrefix(v, code)
		}
		if strings.HasSuffix(v, code) {
			return strings.TrimSuffix(v, code)
		}
	}
	return v
}

// RoundCents rounds a parsed amount half away from zero to two decimal
// places, the precision every output is written with. Other results pass
// through unchanged.
func RoundCents(r Result[decimal.Decimal]) Result[decimal.Decimal] {
	if !r.OK() {
		return r
	}
	return parsedResult(r.Value.Round(2))
}

// RequirePositive turns a parsed amount that is zero or negative into an
// Invalid result. Other results pass through unchanged.
func RequirePositive(r Result[decimal.Decimal]) Result[decimal.Decimal] {
	if !r.OK() {
		return r
	}
	if !r.Value.IsPositive() {
		return invalidResult[decimal.Decimal]("amount %s must be greater than zero", r.Value.String())
	}
	return r
}

// =============================================================================
// DAY PARSING
// =============================================================================

var (
	plainDayPattern = regexp.MustCompile(`^(\d{1,2})(?:ST|ND|RD|TH)?\.?$`)
	isoDatePattern  = regexp.MustCompile(`^\d{4}[-/.]\d{1,2}[-/.](\d{1,2})$`)
	dmyDatePattern  = regexp.MustCompile(`^(\d{1,2})[-/.]\d{1,2}[-/.](?:\d{2}|\d{4})$`)
)

// ParseDay reads a day of month from a date cell.
//
// ACCEPTED FORMS:
//   - "5", "05", "5th"
//   - "2024-01-05" (ISO, day is the last component)
//   - "05/01/2024", "5-1-24" (day first)
//
// RETURNS:
//   - Missing for an empty cell
//   - Invalid when no day can be read or the day is outside 1..31
func ParseDay(s string) Result[int] {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return missingResult[int]()
	}

	var digits string
	switch {
	case plainDayPattern.MatchString(v):
		digits = plainDayPattern.FindStringSubmatch(v)[1]
	case isoDatePattern.MatchString(v):
		digits = isoDatePattern.FindStringSubmatch(v)[1]
	case dmyDatePattern.MatchString(v):
		digits = dmyDatePattern.FindStringSubmatch(v)[1]
	default:
		return invalidResult[int]("date %q is not a day of month", strings.TrimSpace(s))
	}

	day, err := strconv.Atoi(digits)
	if err != nil || day < 1 || day > 31 {
		return invalidResult[int]("day %q is outside 1..31", strings.TrimSpace(s))
	}

	return parsedResult(day)
}

// DaysIn returns the number of days in month of year.
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

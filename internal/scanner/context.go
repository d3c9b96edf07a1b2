package scanner

import (
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/ginjaninja78/ledgerclean/internal/types"
)

// YearSource tells where ResolveYear found the year.
type YearSource int

const (
	YearFromIdentifier YearSource = iota
	YearFromContent
	YearFromClock
	YearFromOverride
)

func (s YearSource) String() string {
	switch s {
	case YearFromIdentifier:
		return "file name"
	case YearFromContent:
		return "content"
	case YearFromClock:
		return "current date"
	case YearFromOverride:
		return "override"
	default:
		return "unknown"
	}
}

// yearPattern matches a 19xx/20xx run that is not part of a longer number,
// so amounts like 12500 and dates like 20240105 are not read as years.
var yearPattern = regexp.MustCompile(`(?:^|\D)((?:19|20)\d{2})(?:\D|$)`)

// embeddedMonthPattern matches "MONTH OF JAN. 2024", "Month of September 2023"
// or "MONTH OF MARCH".
var embeddedMonthPattern = regexp.MustCompile(`(?i)\bMONTH\s+OF\s+([A-Z]+)\.?,?(?:\s*(\d{4}))?`)

// ResolveYear derives the calendar year for a run: first from the base name
// of identifier, then from content, then from now.
func ResolveYear(identifier, content string, now time.Time) (int, YearSource) {
	if y, ok := FindYear(filepath.Base(identifier)); ok {
		return y, YearFromIdentifier
	}
	if y, ok := FindYear(content); ok {
		return y, YearFromContent
	}
	return now.Year(), YearFromClock
}

// FindYear returns the first year-like 4-digit run in s.
func FindYear(s string) (int, bool) {
	m := yearPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}

// EmbeddedMonth is a "MONTH OF <name> <year>" marker found in a cell.
type EmbeddedMonth struct {
	Month   time.Month
	Year    int
	HasYear bool
}

// MatchEmbeddedMonth looks for a month marker in cell. Abbreviated month
// names are accepted here.
func MatchEmbeddedMonth(cell string) (EmbeddedMonth, bool) {
	m := embeddedMonthPattern.FindStringSubmatch(cell)
	if m == nil {
		return EmbeddedMonth{}, false
	}

	month, ok := types.ParseMonthAbbrev(m[1])
	if !ok {
		return EmbeddedMonth{}, false
	}

	out := EmbeddedMonth{Month: month}
	if m[2] != "" {
		if y, err := strconv.Atoi(m[2]); err == nil {
			out.Year = y
			out.HasYear = true
		}
	}
	return out, true
}

// Apply returns the context the marker establishes. Without an explicit
// year the marker keeps the year of current.
func (e EmbeddedMonth) Apply(current types.MonthContext) types.MonthContext {
	year := current.Year
	if e.HasYear {
		year = e.Year
	}
	return types.MonthContext{Month: e.Month, Year: year}
}

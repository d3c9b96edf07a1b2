// =============================================================================
// Ledger Cleaner - Line Classifier
// =============================================================================
//
// Every line of an export is one of:
//   - Blank:         nothing but whitespace or bare delimiters
//   - SectionHeader: a month name opening a new block of rows
//   - SchemaHeader:  the column-name row that precedes the data
//   - Data:          everything else
//
// Schema headers are recognized by substring containment so that extra
// spaces or trailing punctuation ("Model No.") still match.
//
// =============================================================================

package scanner

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ginjaninja78/ledgerclean/internal/csvparser"
	"github.com/ginjaninja78/ledgerclean/internal/types"
)

// Kind is the label assigned to a line.
type Kind int

const (
	Blank Kind = iota
	SectionHeader
	SchemaHeader
	Data
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case SectionHeader:
		return "section-header"
	case SchemaHeader:
		return "schema-header"
	case Data:
		return "data"
	default:
		return "unknown"
	}
}

// Classification is the result of classifying one line.
type Classification struct {
	Kind Kind

	// Month is set for SectionHeader lines.
	Month time.Month
}

// Classifier labels lines for one dataset.
type Classifier struct {
	// Required lists the column-name substrings that must all be present
	// for a line to count as the schema header. Compared upper-cased.
	Required []string

	// Standalone enables month-name lines as section headers. Datasets whose
	// sections are embedded in a cell turn this off.
	Standalone bool
}

// Classify labels one line given its parsed fields.
func (c Classifier) Classify(line string, fields []string) Classification {
	if strings.TrimSpace(line) == "" || csvparser.IsRowEmpty(fields) {
		return Classification{Kind: Blank}
	}

	if c.Standalone {
		if m, ok := sectionMonth(fields); ok {
			return Classification{Kind: SectionHeader, Month: m}
		}
	}

	if c.isSchemaHeader(line) {
		return Classification{Kind: SchemaHeader}
	}

	return Classification{Kind: Data}
}

// isSchemaHeader reports whether every required substring occurs in line.
func (c Classifier) isSchemaHeader(line string) bool {
	if len(c.Required) == 0 {
		return false
	}
	normalized := NormalizeHeader(line)
	for _, want := range c.Required {
		if !strings.Contains(normalized, NormalizeHeader(want)) {
			return false
		}
	}
	return true
}

// NormalizeHeader upper-cases s and collapses whitespace runs.
func NormalizeHeader(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// sectionMonth detects a standalone month header. The first field must equal
// or start with a full month name followed by a non-letter ("MARCH",
// "MARCH 2024", "MARCH:"), and every other field must be empty, so a data
// row such as "MAYFAIR LTD,500,M1" is never mistaken for a header.
func sectionMonth(fields []string) (time.Month, bool) {
	if len(fields) == 0 {
		return 0, false
	}
	for _, other := range fields[1:] {
		if strings.TrimSpace(other) != "" {
			return 0, false
		}
	}

	first := NormalizeHeader(fields[0])
	for i, name := range types.MonthNames() {
		if !strings.HasPrefix(first, name) {
			continue
		}
		rest := first[len(name):]
		if rest == "" {
			return time.Month(i + 1), true
		}
		r, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsLetter(r) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

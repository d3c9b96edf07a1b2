package scanner

import (
	"strings"

	"github.com/ginjaninja78/ledgerclean/internal/types"
)

// Column declares one expected column of a dataset.
type Column struct {
	Role types.Role

	// Match lists header substrings that identify the column, most
	// specific first.
	Match []string

	// Position is used when no header field matches.
	Position int

	// Optional columns do not count towards the expected row width.
	Optional bool
}

// Schema is the ordered list of columns a dataset expects.
type Schema []Column

// Binding maps roles to field positions for the rows following one schema
// header.
type Binding struct {
	positions map[types.Role]int
	width     int
}

// Bind resolves the schema against the fields of a schema header. When
// header is nil the declared positions are used.
func (s Schema) Bind(header []string) *Binding {
	b := &Binding{positions: make(map[types.Role]int, len(s))}
	taken := make(map[int]bool, len(s))

	for _, col := range s {
		pos := findColumn(header, col.Match, taken)
		if pos < 0 {
			pos = col.Position
		}
		taken[pos] = true
		b.positions[col.Role] = pos

		if !col.Optional && pos+1 > b.width {
			b.width = pos + 1
		}
	}
	return b
}

// findColumn tries the match names in order, so a more specific name wins
// over a generic one listed after it.
func findColumn(header []string, match []string, taken map[int]bool) int {
	for _, m := range match {
		want := NormalizeHeader(m)
		for i, field := range header {
			if !taken[i] && strings.Contains(NormalizeHeader(field), want) {
				return i
			}
		}
	}
	return -1
}

// Position returns the field index bound to role.
func (b *Binding) Position(role types.Role) (int, bool) {
	pos, ok := b.positions[role]
	return pos, ok
}

// Width is the number of fields a row needs to carry every required column.
func (b *Binding) Width() int {
	return b.width
}

// Row is a data row with typed access to its columns.
type Row struct {
	types.FieldRow
	Context types.MonthContext

	binding *Binding
}

// NewRow binds fields to b. It is mostly useful in tests.
func NewRow(fr types.FieldRow, ctx types.MonthContext, b *Binding) Row {
	return Row{FieldRow: fr, Context: ctx, binding: b}
}

// Get returns the trimmed value of the column bound to role. The second
// result is false when the role is not bound or the row is too short to
// have that column; an empty cell that exists returns ("", true).
func (r Row) Get(role types.Role) (string, bool) {
	if r.binding == nil {
		return "", false
	}
	pos, ok := r.binding.Position(role)
	if !ok || pos >= len(r.Fields) {
		return "", false
	}
	return strings.TrimSpace(r.Fields[pos]), true
}

// Short reports whether the row has fewer fields than the schema expects.
func (r Row) Short() bool {
	return r.binding != nil && len(r.Fields) < r.binding.Width()
}

// Expected returns the schema's row width.
func (r Row) Expected() int {
	if r.binding == nil {
		return 0
	}
	return r.binding.Width()
}

// LineNumber returns the source line number of the row.
func (r Row) LineNumber() int {
	return r.Line.Number
}

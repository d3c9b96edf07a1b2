package scanner

import (
	"fmt"

	"github.com/ginjaninja78/ledgerclean/internal/types"
	"github.com/ginjaninja78/ledgerclean/internal/validation"
)

// DayTracker supplies a day of month for rows that leave their date cell
// empty, using the last explicit day seen in the same month context.
type DayTracker struct {
	ctx  types.MonthContext
	last int
}

// Reset forgets the last seen day.
func (t *DayTracker) Reset() {
	t.last = 0
}

// Last returns the last explicit day, or 0 when none has been seen.
func (t *DayTracker) Last() int {
	return t.last
}

// Resolve reads the day for one row. The second return value is true when
// the day was inherited from an earlier row.
func (t *DayTracker) Resolve(cell string, ctx types.MonthContext) (validation.Result[int], bool) {
	if ctx != t.ctx {
		t.ctx = ctx
		t.Reset()
	}

	r := validation.ParseDay(cell)
	switch r.Status {
	case validation.Missing:
		if t.last == 0 {
			return validation.Result[int]{
				Status: validation.Invalid,
				Reason: fmt.Sprintf("date is empty and no earlier day was seen in %s", ctx),
			}, false
		}
		return validation.Result[int]{Value: t.last, Status: validation.Parsed}, true

	case validation.Parsed:
		if ctx.IsSet() && r.Value > validation.DaysIn(ctx.Month, ctx.Year) {
			return validation.Result[int]{
				Status: validation.Invalid,
				Reason: fmt.Sprintf("day %d does not exist in %s", r.Value, ctx),
			}, false
		}
		t.last = r.Value
		return r, false
	}

	return r, false
}

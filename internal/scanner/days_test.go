package scanner

import (
	"testing"
	"time"

	"github.com/ginjaninja78/ledgerclean/internal/types"
	"github.com/ginjaninja78/ledgerclean/internal/validation"
)

func TestDayTrackerInheritance(t *testing.T) {
	jan := types.MonthContext{Month: time.January, Year: 2024}
	feb := types.MonthContext{Month: time.February, Year: 2024}

	steps := []struct {
		cell      string
		ctx       types.MonthContext
		day       int
		status    validation.Status
		inherited bool
	}{
		{"", jan, 0, validation.Invalid, false},
		{"5", jan, 5, validation.Parsed, false},
		{"", jan, 5, validation.Parsed, true},
		{"  ", jan, 5, validation.Parsed, true},
		{"abc", jan, 0, validation.Invalid, false},
		{"", jan, 5, validation.Parsed, true},
		{"2024-01-07", jan, 7, validation.Parsed, false},
		{"", feb, 0, validation.Invalid, false},
		{"30", feb, 0, validation.Invalid, false},
		{"29", feb, 29, validation.Parsed, false},
		{"", feb, 29, validation.Parsed, true},
	}

	var tr DayTracker
	for i, st := range steps {
		r, inherited := tr.Resolve(st.cell, st.ctx)
		if r.Status != st.status {
			t.Fatalf("step %d: Resolve(%q) status = %v, want %v (%s)", i, st.cell, r.Status, st.status, r.Reason)
		}
		if r.Status == validation.Parsed && r.Value != st.day {
			t.Errorf("step %d: Resolve(%q) = %d, want %d", i, st.cell, r.Value, st.day)
		}
		if inherited != st.inherited {
			t.Errorf("step %d: inherited = %v, want %v", i, inherited, st.inherited)
		}
	}
}

func TestDayTrackerReset(t *testing.T) {
	ctx := types.MonthContext{Month: time.May, Year: 2024}

	var tr DayTracker
	tr.Resolve("12", ctx)
	if tr.Last() != 12 {
		t.Fatalf("Last() = %d, want 12", tr.Last())
	}

	tr.Reset()
	r, _ := tr.Resolve("", ctx)
	if r.Status != validation.Invalid {
		t.Errorf("after Reset, empty cell status = %v, want invalid", r.Status)
	}
}

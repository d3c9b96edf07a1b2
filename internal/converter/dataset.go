package converter

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/ledgerclean/internal/csvwriter"
	"github.com/ginjaninja78/ledgerclean/internal/diagnostics"
	"github.com/ginjaninja78/ledgerclean/internal/scanner"
	"github.com/ginjaninja78/ledgerclean/internal/types"
)

// Dataset is one export layout and its cleaning rules.
//
// A Dataset collects records across a single run and must not be reused.
type Dataset interface {
	// Name identifies the dataset in logs and summaries.
	Name() string

	// Classifier recognizes the dataset's schema header and, for standalone
	// layouts, its month headers.
	Classifier() scanner.Classifier

	// Schema lists the expected columns.
	Schema() scanner.Schema

	// Embedded reports whether month markers live inside a cell.
	Embedded() bool

	// SkipLines is the number of leading lines that are never data.
	SkipLines() int

	// StartSection is called whenever the month context changes.
	StartSection(ctx types.MonthContext)

	// Handle normalizes one data row, recording either a record or a
	// diagnostic.
	Handle(row scanner.Row, diags *diagnostics.Collector)

	// Finish runs once after the last row.
	Finish(diags *diagnostics.Collector)

	// Records is the number of usable records collected.
	Records() int

	// Table renders the collected records in the dataset's output layout.
	Table() csvwriter.Table
}

// sink adapts a Dataset to the scanner's Handler and turns a panic inside
// a row handler into an error diagnostic for that row.
type sink struct {
	ds    Dataset
	diags *diagnostics.Collector
	log   logrus.FieldLogger
}

func (s *sink) StartSection(ctx types.MonthContext, line int) {
	s.ds.StartSection(ctx)
}

func (s *sink) HandleRow(row scanner.Row) {
	defer func() {
		if r := recover(); r != nil {
			s.diags.Error(row.LineNumber(), "row could not be processed: %v", r)
			s.log.WithFields(logrus.Fields{
				"line":  row.LineNumber(),
				"panic": fmt.Sprint(r),
			}).Debugf("Recovered row handler panic\n%s", debug.Stack())
		}
	}()
	s.ds.Handle(row, s.diags)
}

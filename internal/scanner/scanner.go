// =============================================================================
// Ledger Cleaner - Section Scanner
// =============================================================================
//
// The scanner walks the lines of one source in a single pass and decides
// which lines are data rows, and under which month they belong.
//
// STATES:
//   SeekingSection -> SeekingSchema -> InData
//
//   - A section header always returns the machine to SeekingSchema with the
//     new month context, whatever state it was in.
//   - A schema header moves SeekingSchema to InData. A repeated schema header
//     inside InData rebinds the columns and is otherwise consumed.
//   - Data rows reach the handler only in InData with a month context.
//     Everything else is pre-section noise and is dropped silently.
//
// EMBEDDED SECTIONS:
//   Some exports carry their month markers inside a cell ("MONTH OF JAN.
//   2024") instead of on a line of their own. In embedded mode the machine
//   starts in SeekingSchema and a marker row re-seeds the context without
//   leaving InData.
//
// A Scanner holds all of its state and belongs to one run.
//
// =============================================================================

package scanner

import (
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/ledgerclean/internal/csvparser"
	"github.com/ginjaninja78/ledgerclean/internal/types"
)

// State is the scanner's position in the section grammar.
type State int

const (
	SeekingSection State = iota
	SeekingSchema
	InData
)

func (s State) String() string {
	switch s {
	case SeekingSection:
		return "seeking-section"
	case SeekingSchema:
		return "seeking-schema"
	case InData:
		return "in-data"
	default:
		return "unknown"
	}
}

// Handler receives the scanner's events.
type Handler interface {
	// StartSection is called whenever the month context changes.
	StartSection(ctx types.MonthContext, line int)

	// HandleRow is called for every data row inside a section.
	HandleRow(row Row)
}

// Options configures a Scanner for one dataset.
type Options struct {
	Classifier Classifier
	Schema     Schema

	// SkipLines leading lines are never classified. In embedded mode they
	// are still searched for a month marker, since title lines often carry
	// the first one.
	SkipLines int

	// Embedded turns on in-cell month markers.
	Embedded bool

	// MarkerRole is the column searched for embedded month markers.
	MarkerRole types.Role

	Settings csvparser.Settings

	// Year is the run's resolved year, used for section headers and for
	// markers without an explicit year.
	Year int

	Logger logrus.FieldLogger
}

// Stats counts what the scanner saw.
type Stats struct {
	Lines    int
	Skipped  int
	Blank    int
	Sections int
	Schemas  int
	Rows     int
	Ignored  int
}

// Scanner is the section state machine.
type Scanner struct {
	opts    Options
	handler Handler
	log     logrus.FieldLogger

	state   State
	ctx     types.MonthContext
	binding *Binding
	stats   Stats
}

// New creates a Scanner that reports to h.
func New(opts Options, h Handler) *Scanner {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}

	s := &Scanner{
		opts:    opts,
		handler: h,
		log:     log,
		state:   SeekingSection,
	}
	if opts.Embedded {
		s.state = SeekingSchema
	}
	return s
}

// State returns the current state.
func (s *Scanner) State() State {
	return s.state
}

// Context returns the current month context.
func (s *Scanner) Context() types.MonthContext {
	return s.ctx
}

// Stats returns the counters gathered so far.
func (s *Scanner) Stats() Stats {
	return s.stats
}

// Scan feeds every line to the machine and returns the final counters.
func (s *Scanner) Scan(lines []types.RawLine) Stats {
	for _, line := range lines {
		s.Feed(line)
	}
	return s.stats
}

// Feed advances the machine by one line.
func (s *Scanner) Feed(line types.RawLine) {
	s.stats.Lines++

	if s.stats.Lines <= s.opts.SkipLines {
		s.stats.Skipped++
		if s.opts.Embedded {
			if m, ok := MatchEmbeddedMonth(line.Text); ok {
				s.enterContext(m.Apply(s.baseContext()), line.Number)
			}
		}
		return
	}

	fr := csvparser.ParseRow(line, s.opts.Settings)
	class := s.opts.Classifier.Classify(line.Text, fr.Fields)

	switch class.Kind {
	case Blank:
		s.stats.Blank++

	case SectionHeader:
		s.stats.Sections++
		s.enterContext(types.MonthContext{Month: class.Month, Year: s.opts.Year}, line.Number)
		s.transition(SeekingSchema, line.Number)

	case SchemaHeader:
		s.stats.Schemas++
		s.binding = s.opts.Schema.Bind(fr.Fields)
		if s.state == SeekingSchema {
			s.transition(InData, line.Number)
		}

	case Data:
		s.data(fr)
	}
}

func (s *Scanner) data(fr types.FieldRow) {
	if s.opts.Embedded && s.marker(fr) {
		return
	}

	if s.state != InData || !s.ctx.IsSet() {
		s.stats.Ignored++
		return
	}

	s.stats.Rows++
	s.handler.HandleRow(Row{FieldRow: fr, Context: s.ctx, binding: s.binding})
}

// marker re-seeds the context when the row carries an embedded month marker.
func (s *Scanner) marker(fr types.FieldRow) bool {
	cell := fr.Line.Text
	if s.binding != nil {
		r := Row{FieldRow: fr, binding: s.binding}
		v, ok := r.Get(s.opts.MarkerRole)
		if !ok {
			return false
		}
		cell = v
	}

	m, ok := MatchEmbeddedMonth(cell)
	if !ok {
		return false
	}
	s.stats.Sections++
	s.enterContext(m.Apply(s.baseContext()), fr.Line.Number)
	return true
}

func (s *Scanner) baseContext() types.MonthContext {
	if s.ctx.IsSet() {
		return s.ctx
	}
	return types.MonthContext{Year: s.opts.Year}
}

func (s *Scanner) enterContext(ctx types.MonthContext, line int) {
	s.log.WithFields(logrus.Fields{
		"line":  line,
		"month": ctx.String(),
	}).Debug("Section started")

	s.ctx = ctx
	s.handler.StartSection(ctx, line)
}

func (s *Scanner) transition(next State, line int) {
	if next == s.state {
		return
	}
	s.log.WithFields(logrus.Fields{
		"line": line,
		"from": s.state.String(),
		"to":   next.String(),
	}).Debug("Scanner state changed")
	s.state = next
}

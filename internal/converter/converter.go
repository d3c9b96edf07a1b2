// =============================================================================
// Ledger Cleaner - Converter Module
// =============================================================================
//
// This module orchestrates the cleaning pipeline for a single file, from
// reading the source to writing the cleaned output.
//
// PIPELINE:
//   1. Read the source fully into memory
//   2. Resolve the calendar year
//   3. Scan the lines, normalizing data rows into records
//   4. Aggregate the records into the dataset's output layout
//   5. Write the output file
//
// FAILURES:
//   Only the read and the write can fail a run, plus a source that yields no
//   usable record at all. Everything wrong with individual rows becomes a
//   diagnostic and the row is dropped.
//
// CONCURRENCY:
//   A Converter holds all of its run state. Separate Converters may run in
//   parallel; a single Converter must not.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/ledgerclean/internal/csvparser"
	"github.com/ginjaninja78/ledgerclean/internal/csvwriter"
	"github.com/ginjaninja78/ledgerclean/internal/diagnostics"
	"github.com/ginjaninja78/ledgerclean/internal/scanner"
	"github.com/ginjaninja78/ledgerclean/internal/types"
	"github.com/ginjaninja78/ledgerclean/pkg/utils"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrReadSource is returned when the input cannot be read.
	ErrReadSource = errors.New("source could not be read")

	// ErrNoRecords is returned when the input produced no usable record.
	// No output is written in that case.
	ErrNoRecords = errors.New("no usable records found")

	// ErrWriteOutput is returned when the output cannot be written.
	ErrWriteOutput = errors.New("output could not be written")
)

// markerRole is the column searched for embedded month markers.
const markerRole = types.RoleDate

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of cleaning a single file.
type Result struct {
	// FilePath is the path to the input file.
	FilePath string

	// OutputFile is the path of the written output.
	// This is empty if the run failed.
	OutputFile string

	// Dataset names the layout that was cleaned.
	Dataset string

	// RunID identifies the run in logs and the diagnostics log.
	RunID string

	// Success indicates whether output was written.
	Success bool

	// Error is the fatal error, if any.
	Error error

	// Year is the calendar year used for month headers.
	Year int

	// YearSource tells where Year came from.
	YearSource scanner.YearSource

	// Diagnostics holds every row-level warning and error.
	Diagnostics *diagnostics.Collector

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about one run.
type ProcessingStats struct {
	// LinesRead is the number of source lines.
	LinesRead int

	// Sections is the number of month sections seen.
	Sections int

	// RowsScanned is the number of data rows inside a section.
	RowsScanned int

	// RowsIgnored is the number of data-like lines outside any section.
	RowsIgnored int

	// RecordsKept is the number of records that passed validation.
	RecordsKept int

	// RowsWritten is the number of output rows, after aggregation.
	RowsWritten int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options configures one run.
type Options struct {
	// InputPath is the source file.
	InputPath string

	// OutputPath is the destination. When empty it is derived from
	// InputPath and OutputSuffix.
	OutputPath string

	// OutputSuffix is inserted before the extension of a derived output path.
	// Default: "_cleaned"
	OutputSuffix string

	// Year overrides year resolution when non-zero.
	Year int

	// Settings controls how source lines are split.
	Settings csvparser.Settings

	// Output controls the output dialect.
	Output csvwriter.Options

	// RunID is attached to every log entry. A new one is generated when empty.
	RunID string

	// Logger receives progress logs. Defaults to a logger that only reports
	// warnings.
	Logger logrus.FieldLogger

	// Now supplies the clock for the year fallback.
	Now func() time.Time
}

// Converter cleans a single file into one dataset layout.
type Converter struct {
	ds   Dataset
	opts Options
	log  logrus.FieldLogger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a Converter for the dataset ds.
//
// PARAMETERS:
//   - ds: A fresh dataset; it collects the run's records.
//   - opts: The run options.
//
// RETURNS:
//   - A new Converter instance.
func New(ds Dataset, opts Options) *Converter {
	if opts.RunID == "" {
		opts.RunID = uuid.New().String()
	}
	if opts.OutputSuffix == "" {
		opts.OutputSuffix = "_cleaned"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		opts.Logger = l
	}

	return &Converter{
		ds:   ds,
		opts: opts,
		log: opts.Logger.WithFields(logrus.Fields{
			"run_id":  opts.RunID,
			"dataset": ds.Name(),
		}),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the file.
//
// RETURNS:
//   - A Result with the outcome, the statistics and every diagnostic.
//     Result.Error wraps ErrReadSource, ErrNoRecords or ErrWriteOutput on
//     failure.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		FilePath:    c.opts.InputPath,
		Dataset:     c.ds.Name(),
		RunID:       c.opts.RunID,
		Diagnostics: diagnostics.New(),
	}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	log := c.log.WithField("input", c.opts.InputPath)
	log.Info("Processing file")

	// =========================================================================
	// STEP 1: READ SOURCE
	// =========================================================================

	if !utils.FileExists(c.opts.InputPath) {
		result.Error = fmt.Errorf("%w: input file not found: %s", ErrReadSource, c.opts.InputPath)
		return result
	}

	src, err := csvparser.ReadSource(c.opts.InputPath, c.opts.Settings)
	if err != nil {
		result.Error = fmt.Errorf("%w: %w", ErrReadSource, err)
		return result
	}
	log.WithField("lines", len(src.Lines)).Debug("Read source")

	// =========================================================================
	// STEPS 2-4: RESOLVE YEAR, SCAN, AGGREGATE
	// =========================================================================

	table := c.clean(src, &result)

	if c.ds.Records() == 0 {
		result.Error = fmt.Errorf("%w in %s", ErrNoRecords, c.opts.InputPath)
		return result
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	outputPath := c.opts.OutputPath
	if outputPath == "" {
		outputPath = utils.DefaultOutputPath(c.opts.InputPath, c.opts.OutputSuffix)
	}

	err = utils.WriteFileAtomic(outputPath, func(w io.Writer) error {
		return csvwriter.Write(w, table, c.opts.Output)
	})
	if err != nil {
		result.Error = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		return result
	}

	result.OutputFile = outputPath
	result.Stats.RowsWritten = table.Len()
	result.Success = true

	log.WithFields(logrus.Fields{
		"output":   outputPath,
		"records":  result.Stats.RecordsKept,
		"rows":     result.Stats.RowsWritten,
		"warnings": result.Diagnostics.Count(diagnostics.Warning),
		"errors":   result.Diagnostics.Count(diagnostics.Error),
	}).Info("Wrote output")

	return result
}

// clean runs the in-memory part of the pipeline and returns the output table.
func (c *Converter) clean(src *csvparser.Source, result *Result) csvwriter.Table {
	diags := result.Diagnostics

	year, source := c.opts.Year, scanner.YearFromOverride
	if year == 0 {
		year, source = scanner.ResolveYear(src.Identifier, src.Content, c.opts.Now())
	}
	result.Year, result.YearSource = year, source

	if source == scanner.YearFromClock {
		diags.Warn(0, "no year found in the file name or content; using %d", year)
	}
	c.log.WithFields(logrus.Fields{
		"year":   year,
		"source": source.String(),
	}).Debug("Resolved year")

	sc := scanner.New(scanner.Options{
		Classifier: c.ds.Classifier(),
		Schema:     c.ds.Schema(),
		SkipLines:  c.ds.SkipLines(),
		Embedded:   c.ds.Embedded(),
		MarkerRole: markerRole,
		Settings:   c.opts.Settings,
		Year:       year,
		Logger:     c.log,
	}, &sink{ds: c.ds, diags: diags, log: c.log})

	stats := sc.Scan(src.Lines)
	c.ds.Finish(diags)

	result.Stats.LinesRead = stats.Lines
	result.Stats.Sections = stats.Sections
	result.Stats.RowsScanned = stats.Rows
	result.Stats.RowsIgnored = stats.Ignored
	result.Stats.RecordsKept = c.ds.Records()

	for _, d := range diags.All() {
		c.log.WithField("line", d.Line).Debug(d.Message)
	}

	return c.ds.Table()
}

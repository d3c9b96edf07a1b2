package converter

import (
	"github.com/ginjaninja78/ledgerclean/internal/aggregate"
	"github.com/ginjaninja78/ledgerclean/internal/csvwriter"
	"github.com/ginjaninja78/ledgerclean/internal/diagnostics"
	"github.com/ginjaninja78/ledgerclean/internal/scanner"
	"github.com/ginjaninja78/ledgerclean/internal/types"
	"github.com/ginjaninja78/ledgerclean/internal/validation"
)

// Items cleans the items-by-category export: month header lines, a
// "Model No, Category" schema line, then model rows.
type Items struct {
	records []types.ItemRecord
	unique  []types.ItemRecord
}

// NewItems returns an items dataset.
func NewItems() *Items {
	return &Items{}
}

func (it *Items) Name() string { return "items" }

func (it *Items) Classifier() scanner.Classifier {
	return scanner.Classifier{
		Required:   []string{"MODEL NO", "CATEGORY"},
		Standalone: true,
	}
}

func (it *Items) Schema() scanner.Schema {
	return scanner.Schema{
		{Role: types.RoleModel, Match: []string{"MODEL NO", "MODEL"}, Position: 0},
		{Role: types.RoleCategory, Match: []string{"CATEGORY"}, Position: 1},
	}
}

func (it *Items) Embedded() bool { return false }
func (it *Items) SkipLines() int { return 0 }
func (it *Items) StartSection(types.MonthContext) {}

// Handle validates one model row. The model number is upper-cased; the
// category keeps its case.
func (it *Items) Handle(row scanner.Row, diags *diagnostics.Collector) {
	line := row.LineNumber()

	if row.Short() {
		diags.Warn(line, "expected %d fields, found %d; row dropped", row.Expected(), len(row.Fields))
		return
	}

	modelCell, _ := row.Get(types.RoleModel)
	model := validation.CleanName(modelCell, true)
	if model == "" {
		diags.Warn(line, "model number is empty; row dropped")
		return
	}

	categoryCell, _ := row.Get(types.RoleCategory)
	category := validation.CleanName(categoryCell, false)
	if category == "" {
		diags.Warn(line, "category is empty for model %s; row dropped", model)
		return
	}

	it.records = append(it.records, types.ItemRecord{
		ModelNo:      model,
		CategoryName: category,
		Context:      row.Context,
		SourceLine:   line,
	})
}

// Finish keeps the first category listed for each model in a month and
// warns about the repeats.
func (it *Items) Finish(diags *diagnostics.Collector) {
	unique, dups := aggregate.ItemsByMonth(it.records)
	for _, d := range dups {
		diags.Warn(d.Record.SourceLine, "model %s already listed in %s at line %d as %q; row dropped",
			d.Record.ModelNo, d.Record.Context, d.First.SourceLine, d.First.CategoryName)
	}
	it.unique = unique
}

func (it *Items) Records() int {
	return len(it.unique)
}

func (it *Items) Table() csvwriter.Table {
	return csvwriter.ItemsTable(it.unique)
}

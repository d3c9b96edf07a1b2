// Package aggregate reduces normalized ledger records into monthly and
// daily totals. All functions are pure and their output order depends only
// on the input values, so repeated runs over the same file agree.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/ledgerclean/internal/types"
)

// MonthlyAggregate is a running count and sum for one key.
type MonthlyAggregate struct {
	Context types.MonthContext

	// Customer is empty for month-only keys.
	Customer string

	Count int
	Total decimal.Decimal

	// Models holds the distinct model numbers, sorted.
	Models []string
}

// Average is Total divided by Count, rounded to two places.
func (a MonthlyAggregate) Average() decimal.Decimal {
	if a.Count == 0 {
		return decimal.Zero
	}
	return a.Total.DivRound(decimal.NewFromInt(int64(a.Count)), 2)
}

// DailyTotal is the sales total for one calendar day.
type DailyTotal struct {
	Context types.MonthContext
	Day     int
	Count   int
	Total   decimal.Decimal
}

// Date renders the day as YYYY-MM-DD.
func (d DailyTotal) Date() string {
	return types.SalesDayRecord{Context: d.Context, Day: d.Day}.Date().Format("2006-01-02")
}

type monthKey struct {
	year  int
	month int
}

type customerKey struct {
	monthKey
	customer string
}

func keyOf(ctx types.MonthContext) monthKey {
	return monthKey{year: ctx.Year, month: int(ctx.Month)}
}

// accumulator builds one aggregate, collecting models as a set.
type accumulator struct {
	agg    MonthlyAggregate
	models map[string]struct{}
}

func (a *accumulator) add(amount decimal.Decimal, model string) {
	a.agg.Count++
	a.agg.Total = a.agg.Total.Add(amount)
	if model == "" {
		return
	}
	if a.models == nil {
		a.models = make(map[string]struct{})
	}
	a.models[model] = struct{}{}
}

func (a *accumulator) result() MonthlyAggregate {
	out := a.agg
	if len(a.models) > 0 {
		out.Models = make([]string, 0, len(a.models))
		for m := range a.models {
			out.Models = append(out.Models, m)
		}
		sort.Strings(out.Models)
	}
	return out
}

// BulkByMonth totals bulk orders per (year, month).
func BulkByMonth(records []types.BulkOrderRecord) []MonthlyAggregate {
	acc := make(map[monthKey]*accumulator)
	for _, r := range records {
		k := keyOf(r.Context)
		a, ok := acc[k]
		if !ok {
			a = &accumulator{agg: MonthlyAggregate{Context: r.Context}}
			acc[k] = a
		}
		a.add(r.OrderAmount, r.ModelNo)
	}

	out := make([]MonthlyAggregate, 0, len(acc))
	for _, a := range acc {
		out = append(out, a.result())
	}
	sortAggregates(out)
	return out
}

// BulkByCustomerMonth totals bulk orders per (year, month, customer).
func BulkByCustomerMonth(records []types.BulkOrderRecord) []MonthlyAggregate {
	acc := make(map[customerKey]*accumulator)
	for _, r := range records {
		k := customerKey{monthKey: keyOf(r.Context), customer: r.CustomerName}
		a, ok := acc[k]
		if !ok {
			a = &accumulator{agg: MonthlyAggregate{Context: r.Context, Customer: r.CustomerName}}
			acc[k] = a
		}
		a.add(r.OrderAmount, r.ModelNo)
	}

	out := make([]MonthlyAggregate, 0, len(acc))
	for _, a := range acc {
		out = append(out, a.result())
	}
	sortAggregates(out)
	return out
}

// SalesByMonth totals sales per (year, month). Count is the number of
// entries that contributed.
func SalesByMonth(records []types.SalesDayRecord) []MonthlyAggregate {
	acc := make(map[monthKey]*accumulator)
	for _, r := range records {
		k := keyOf(r.Context)
		a, ok := acc[k]
		if !ok {
			a = &accumulator{agg: MonthlyAggregate{Context: r.Context}}
			acc[k] = a
		}
		a.add(r.Amount, "")
	}

	out := make([]MonthlyAggregate, 0, len(acc))
	for _, a := range acc {
		out = append(out, a.result())
	}
	sortAggregates(out)
	return out
}

// SalesByDay totals sales per calendar day.
func SalesByDay(records []types.SalesDayRecord) []DailyTotal {
	type dayKey struct {
		monthKey
		day int
	}

	acc := make(map[dayKey]*DailyTotal)
	for _, r := range records {
		k := dayKey{monthKey: keyOf(r.Context), day: r.Day}
		d, ok := acc[k]
		if !ok {
			d = &DailyTotal{Context: r.Context, Day: r.Day}
			acc[k] = d
		}
		d.Count++
		d.Total = d.Total.Add(r.Amount)
	}

	out := make([]DailyTotal, 0, len(acc))
	for _, d := range acc {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Context != out[j].Context {
			return out[i].Context.Before(out[j].Context)
		}
		return out[i].Day < out[j].Day
	})
	return out
}

// Duplicate is an item row that repeated a model already seen in its month.
type Duplicate struct {
	Record types.ItemRecord
	First  types.ItemRecord
}

// ItemsByMonth keeps one record per (year, month, model). The first record
// wins; later ones are returned as duplicates in input order.
func ItemsByMonth(records []types.ItemRecord) ([]types.ItemRecord, []Duplicate) {
	type itemKey struct {
		monthKey
		model string
	}

	seen := make(map[itemKey]int)
	var (
		out  []types.ItemRecord
		dups []Duplicate
	)
	for _, r := range records {
		k := itemKey{monthKey: keyOf(r.Context), model: r.ModelNo}
		if i, ok := seen[k]; ok {
			dups = append(dups, Duplicate{Record: r, First: out[i]})
			continue
		}
		seen[k] = len(out)
		out = append(out, r)
	}

	SortItems(out)
	return out, dups
}

// SortBulkOrders orders records by (year, month) and then customer name.
// Rows with equal keys keep their source order.
func SortBulkOrders(records []types.BulkOrderRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Context != b.Context {
			return a.Context.Before(b.Context)
		}
		return a.CustomerName < b.CustomerName
	})
}

// SortItems orders records by (year, month) and then model number.
func SortItems(records []types.ItemRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Context != b.Context {
			return a.Context.Before(b.Context)
		}
		return a.ModelNo < b.ModelNo
	})
}

func sortAggregates(out []MonthlyAggregate) {
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Context != b.Context {
			return a.Context.Before(b.Context)
		}
		return a.Customer < b.Customer
	})
}

package aggregate

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/ledgerclean/internal/types"
)

var (
	jan = types.MonthContext{Month: time.January, Year: 2024}
	feb = types.MonthContext{Month: time.February, Year: 2024}
	dec = types.MonthContext{Month: time.December, Year: 2023}
)

func bulk(ctx types.MonthContext, customer, amount, model string) types.BulkOrderRecord {
	return types.BulkOrderRecord{
		CustomerName: customer,
		OrderAmount:  decimal.RequireFromString(amount),
		ModelNo:      model,
		Context:      ctx,
	}
}

func TestBulkByMonthConservesTotals(t *testing.T) {
	records := []types.BulkOrderRecord{
		bulk(feb, "ACME", "10.50", "M1"),
		bulk(jan, "BETA", "100", "M2"),
		bulk(jan, "ACME", "1000", "M1"),
		bulk(dec, "ACME", "5", "M9"),
		bulk(feb, "GAMMA", "4.50", "M1"),
	}

	got := BulkByMonth(records)

	want := map[types.MonthContext]string{dec: "5", jan: "1100", feb: "15"}
	if len(got) != len(want) {
		t.Fatalf("got %d aggregates, want %d", len(got), len(want))
	}
	for _, a := range got {
		if !a.Total.Equal(decimal.RequireFromString(want[a.Context])) {
			t.Errorf("%v total = %s, want %s", a.Context, a.Total, want[a.Context])
		}
	}

	order := []types.MonthContext{got[0].Context, got[1].Context, got[2].Context}
	if diff := cmp.Diff([]types.MonthContext{dec, jan, feb}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	sum := decimal.Zero
	for _, r := range records {
		if r.Context == feb {
			sum = sum.Add(r.OrderAmount)
		}
	}
	if !sum.Equal(got[2].Total) {
		t.Errorf("per-order sum %s != monthly total %s", sum, got[2].Total)
	}
}

func TestBulkByCustomerMonth(t *testing.T) {
	records := []types.BulkOrderRecord{
		bulk(jan, "BETA", "100", "M2"),
		bulk(jan, "ACME", "10", "M3"),
		bulk(jan, "ACME", "20", "M1"),
		bulk(jan, "ACME", "5", "M1"),
	}

	got := BulkByCustomerMonth(records)
	if len(got) != 2 {
		t.Fatalf("got %d aggregates, want 2", len(got))
	}

	acme := got[0]
	if acme.Customer != "ACME" || acme.Count != 3 {
		t.Fatalf("first aggregate = %+v", acme)
	}
	if !acme.Total.Equal(decimal.NewFromInt(35)) {
		t.Errorf("total = %s, want 35", acme.Total)
	}
	if got := acme.Average().StringFixed(2); got != "11.67" {
		t.Errorf("average = %s, want 11.67", got)
	}
	if diff := cmp.Diff([]string{"M1", "M3"}, acme.Models); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
	if got[1].Customer != "BETA" {
		t.Errorf("second aggregate customer = %q, want BETA", got[1].Customer)
	}
}

func TestSalesByMonthAndDay(t *testing.T) {
	records := []types.SalesDayRecord{
		{Day: 5, Amount: decimal.NewFromInt(100), Company: "ACME", Context: jan},
		{Day: 5, Inherited: true, Amount: decimal.NewFromInt(50), Company: "BETA", Context: jan},
		{Day: 2, Amount: decimal.NewFromInt(-20), Company: "ACME", Context: jan},
		{Day: 1, Amount: decimal.NewFromInt(70), Company: "ACME", Context: feb},
	}

	months := SalesByMonth(records)
	if len(months) != 2 {
		t.Fatalf("got %d months, want 2", len(months))
	}
	if !months[0].Total.Equal(decimal.NewFromInt(130)) || months[0].Count != 3 {
		t.Errorf("january = %s over %d entries, want 130 over 3", months[0].Total, months[0].Count)
	}

	days := SalesByDay(records)
	var dates []string
	for _, d := range days {
		dates = append(dates, d.Date())
	}
	if diff := cmp.Diff([]string{"2024-01-02", "2024-01-05", "2024-02-01"}, dates); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}
	if !days[1].Total.Equal(decimal.NewFromInt(150)) || days[1].Count != 2 {
		t.Errorf("2024-01-05 = %s over %d entries, want 150 over 2", days[1].Total, days[1].Count)
	}
}

func TestItemsByMonthFirstCategoryWins(t *testing.T) {
	records := []types.ItemRecord{
		{ModelNo: "M2", CategoryName: "Fans", Context: jan, SourceLine: 3},
		{ModelNo: "M1", CategoryName: "Cookers", Context: jan, SourceLine: 4},
		{ModelNo: "M2", CategoryName: "Heaters", Context: jan, SourceLine: 5},
		{ModelNo: "M2", CategoryName: "Heaters", Context: feb, SourceLine: 8},
	}

	got, dups := ItemsByMonth(records)

	var models []string
	for _, r := range got {
		models = append(models, r.Context.MonthName()+"/"+r.ModelNo+"/"+r.CategoryName)
	}
	want := []string{"JANUARY/M1/Cookers", "JANUARY/M2/Fans", "FEBRUARY/M2/Heaters"}
	if diff := cmp.Diff(want, models); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	if len(dups) != 1 || dups[0].Record.SourceLine != 5 || dups[0].First.SourceLine != 3 {
		t.Errorf("duplicates = %+v", dups)
	}
}

func TestSortBulkOrdersIsStable(t *testing.T) {
	records := []types.BulkOrderRecord{
		bulk(jan, "BETA", "1", "M1"),
		bulk(jan, "ACME", "2", "M1"),
		bulk(dec, "ZED", "3", "M1"),
		bulk(jan, "ACME", "4", "M1"),
	}
	SortBulkOrders(records)

	var got []string
	for _, r := range records {
		got = append(got, r.CustomerName+":"+r.OrderAmount.String())
	}
	if diff := cmp.Diff([]string{"ZED:3", "ACME:2", "ACME:4", "BETA:1"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

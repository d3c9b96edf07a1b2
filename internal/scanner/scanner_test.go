package scanner

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ginjaninja78/ledgerclean/internal/csvparser"
	"github.com/ginjaninja78/ledgerclean/internal/types"
)

type recorder struct {
	sections []types.MonthContext
	rows     []Row
}

func (r *recorder) StartSection(ctx types.MonthContext, line int) {
	r.sections = append(r.sections, ctx)
}

func (r *recorder) HandleRow(row Row) {
	r.rows = append(r.rows, row)
}

func bulkOptions() Options {
	return Options{
		Classifier: Classifier{
			Required:   []string{"CUSTOMER NAME", "ORDER AMOUNT", "MODEL NO"},
			Standalone: true,
		},
		Schema: Schema{
			{Role: types.RoleCustomer, Match: []string{"CUSTOMER"}, Position: 0},
			{Role: types.RoleAmount, Match: []string{"AMOUNT"}, Position: 1},
			{Role: types.RoleModel, Match: []string{"MODEL"}, Position: 2},
		},
		Settings: csvparser.DefaultSettings(),
		Year:     2024,
	}
}

func salesOptions() Options {
	return Options{
		Classifier: Classifier{Required: []string{"DATE", "TOTAL AMOUNT"}},
		Schema: Schema{
			{Role: types.RoleDate, Match: []string{"DATE"}, Position: 0},
			{Role: types.RoleAmount, Match: []string{"TOTAL AMOUNT"}, Position: 1},
			{Role: types.RoleCompany, Match: []string{"COMPANY", "CUSTOMER"}, Position: 2, Optional: true},
		},
		SkipLines:  1,
		Embedded:   true,
		MarkerRole: types.RoleDate,
		Settings:   csvparser.DefaultSettings(),
		Year:       2024,
	}
}

func scan(opts Options, content string) (*recorder, Stats) {
	rec := &recorder{}
	s := New(opts, rec)
	stats := s.Scan(csvparser.SplitLines(content))
	return rec, stats
}

func TestClassify(t *testing.T) {
	c := Classifier{Required: []string{"CUSTOMER NAME", "ORDER AMOUNT", "MODEL NO"}, Standalone: true}

	tests := []struct {
		line  string
		kind  Kind
		month time.Month
	}{
		{"", Blank, 0},
		{"   ", Blank, 0},
		{",,,", Blank, 0},
		{"JANUARY", SectionHeader, time.January},
		{"february", SectionHeader, time.February},
		{"MARCH 2024,,", SectionHeader, time.March},
		{"April:", SectionHeader, time.April},
		{"MAYFAIR LTD,500,M1", Data, 0},
		{"MAY,500,M1", Data, 0},
		{"JAN", Data, 0},
		{"Customer Name,Order Amount,Model No.", SchemaHeader, 0},
		{"customer  name , order amount, model no", SchemaHeader, 0},
		{"Customer Name,Amount,Model No", Data, 0},
		{"ACME,1000,M1", Data, 0},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := c.Classify(tt.line, csvparser.ParseLine(tt.line, csvparser.DefaultSettings()))
			if got.Kind != tt.kind {
				t.Fatalf("Classify(%q) kind = %v, want %v", tt.line, got.Kind, tt.kind)
			}
			if got.Month != tt.month {
				t.Errorf("Classify(%q) month = %v, want %v", tt.line, got.Month, tt.month)
			}
		})
	}
}

func TestClassifyWithoutStandaloneSections(t *testing.T) {
	c := Classifier{Required: []string{"DATE", "TOTAL AMOUNT"}}
	got := c.Classify("JANUARY", []string{"JANUARY"})
	if got.Kind != Data {
		t.Errorf("kind = %v, want data", got.Kind)
	}
}

func TestResolveYear(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		identifier string
		content    string
		want       int
		source     YearSource
	}{
		{"from file name", "/data/2019/bulk_orders_2023.csv", "JANUARY 2021", 2023, YearFromIdentifier},
		{"from content", "bulk_orders.csv", "TITLE\nJANUARY 2021\n", 2021, YearFromContent},
		{"longer digit runs ignored", "orders_20240105.csv", "ACME,12500,M1", 2026, YearFromClock},
		{"runs outside 19xx and 20xx ignored", "ledger_2150.csv", "BRANCH 1875\nJANUARY 2022\n", 2022, YearFromContent},
		{"clock fallback", "orders.csv", "ACME,100,M1", 2026, YearFromClock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := ResolveYear(tt.identifier, tt.content, now)
			if got != tt.want || source != tt.source {
				t.Errorf("ResolveYear() = %d (%v), want %d (%v)", got, source, tt.want, tt.source)
			}
		})
	}
}

func TestMatchEmbeddedMonth(t *testing.T) {
	tests := []struct {
		cell string
		want EmbeddedMonth
		ok   bool
	}{
		{"MONTH OF JANUARY 2024", EmbeddedMonth{Month: time.January, Year: 2024, HasYear: true}, true},
		{"month of Sept. 2023", EmbeddedMonth{Month: time.September, Year: 2023, HasYear: true}, true},
		{"SALES FOR THE MONTH OF FEB., 2025", EmbeddedMonth{Month: time.February, Year: 2025, HasYear: true}, true},
		{"MONTH OF MARCH", EmbeddedMonth{Month: time.March}, true},
		{"MONTH OF SMARCH 2024", EmbeddedMonth{}, false},
		{"5", EmbeddedMonth{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, ok := MatchEmbeddedMonth(tt.cell)
			if ok != tt.ok {
				t.Fatalf("MatchEmbeddedMonth(%q) ok = %v, want %v", tt.cell, ok, tt.ok)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MatchEmbeddedMonth(%q) mismatch (-want +got):\n%s", tt.cell, diff)
			}
		})
	}
}

func TestScannerBulkSections(t *testing.T) {
	content := "REPORT TITLE\n" +
		"ACME,1,M0\n" +
		"JANUARY\n" +
		"ACME,2,M1\n" +
		"Customer Name,Order Amount,Model No.\n" +
		"ACME,\"1,000\",M1\n" +
		"\n" +
		"BETA,20,M2\n" +
		"Customer Name,Order Amount,Model No.\n" +
		"GAMMA,30,M3\n" +
		"FEBRUARY\n" +
		"Customer Name,Order Amount,Model No.\n" +
		"DELTA,40,M4\n"

	rec, stats := scan(bulkOptions(), content)

	wantSections := []types.MonthContext{
		{Month: time.January, Year: 2024},
		{Month: time.February, Year: 2024},
	}
	if diff := cmp.Diff(wantSections, rec.sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}

	var got []int
	for _, r := range rec.rows {
		got = append(got, r.LineNumber())
	}
	if diff := cmp.Diff([]int{6, 8, 10, 13}, got); diff != "" {
		t.Errorf("row lines mismatch (-want +got):\n%s", diff)
	}

	if stats.Ignored != 3 {
		t.Errorf("Ignored = %d, want 3", stats.Ignored)
	}
	if stats.Blank != 1 {
		t.Errorf("Blank = %d, want 1", stats.Blank)
	}

	amount, ok := rec.rows[0].Get(types.RoleAmount)
	if !ok || amount != "1,000" {
		t.Errorf("Get(amount) = %q, %v; want \"1,000\", true", amount, ok)
	}
}

func TestScannerSectionReset(t *testing.T) {
	content := "FEBRUARY\n" +
		"Customer Name,Order Amount,Model No\n" +
		"ACME,100,M1\n" +
		"MARCH\n" +
		"BETA,200,M2\n" +
		"Customer Name,Order Amount,Model No\n" +
		"GAMMA,300,M3\n"

	rec := &recorder{}
	s := New(bulkOptions(), rec)
	lines := csvparser.SplitLines(content)

	for _, line := range lines[:4] {
		s.Feed(line)
	}
	if s.State() != SeekingSchema {
		t.Errorf("State() after MARCH = %v, want %v", s.State(), SeekingSchema)
	}
	if got := s.Context(); got.Month != time.March {
		t.Errorf("Context() after MARCH = %v", got)
	}

	for _, line := range lines[4:] {
		s.Feed(line)
	}
	if s.State() != InData {
		t.Errorf("State() at end = %v, want %v", s.State(), InData)
	}
	if stats := s.Stats(); stats.Sections != 2 || stats.Ignored != 1 || stats.Rows != 2 {
		t.Errorf("Stats() = %+v", stats)
	}

	if len(rec.rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rec.rows))
	}
	if rec.rows[0].Context.Month != time.February || rec.rows[1].Context.Month != time.March {
		t.Errorf("contexts = %v, %v", rec.rows[0].Context, rec.rows[1].Context)
	}
	for _, r := range rec.rows {
		if r.LineNumber() == 5 {
			t.Errorf("row between section header and schema header reached the handler")
		}
	}
}

func TestScannerEmbeddedMarkers(t *testing.T) {
	content := "SALES BY DAY - MONTH OF JANUARY 2024\n" +
		"Date,Total Amount,Company\n" +
		"5,100,ACME\n" +
		"MONTH OF FEB.,,\n" +
		"1,50,BETA\n" +
		"MONTH OF MARCH 2025,,\n" +
		"2,70,GAMMA\n"

	rec, stats := scan(salesOptions(), content)

	wantSections := []types.MonthContext{
		{Month: time.January, Year: 2024},
		{Month: time.February, Year: 2024},
		{Month: time.March, Year: 2025},
	}
	if diff := cmp.Diff(wantSections, rec.sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	if len(rec.rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rec.rows))
	}
	if rec.rows[2].Context != wantSections[2] {
		t.Errorf("last row context = %v, want %v", rec.rows[2].Context, wantSections[2])
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
}

func TestScannerEmbeddedWithoutMarkerIgnoresRows(t *testing.T) {
	content := "DAILY SALES\n" +
		"Date,Total Amount,Company\n" +
		"5,100,ACME\n"

	rec, stats := scan(salesOptions(), content)
	if len(rec.rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rec.rows))
	}
	if stats.Ignored != 1 {
		t.Errorf("Ignored = %d, want 1", stats.Ignored)
	}
}

func TestRowGetReportsMissing(t *testing.T) {
	b := salesOptions().Schema.Bind([]string{"Date", "Total Amount", "Company"})
	row := NewRow(types.FieldRow{Fields: []string{"5", "100"}}, types.MonthContext{}, b)

	if _, ok := row.Get(types.RoleCompany); ok {
		t.Error("Get(company) on a two-field row reported present")
	}
	if v, ok := row.Get(types.RoleAmount); !ok || v != "100" {
		t.Errorf("Get(amount) = %q, %v", v, ok)
	}
	if row.Short() {
		t.Error("row with every required column reported short")
	}
}

func TestSchemaBindByHeaderName(t *testing.T) {
	b := bulkOptions().Schema.Bind([]string{"S/N", "Model No", "Customer Name", "Order Amount"})

	want := map[types.Role]int{types.RoleCustomer: 2, types.RoleAmount: 3, types.RoleModel: 1}
	for role, pos := range want {
		got, ok := b.Position(role)
		if !ok || got != pos {
			t.Errorf("Position(%v) = %d, %v; want %d", role, got, ok, pos)
		}
	}
	if b.Width() != 4 {
		t.Errorf("Width() = %d, want 4", b.Width())
	}
}

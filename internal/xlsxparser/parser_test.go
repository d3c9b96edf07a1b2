package xlsxparser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/ledgerclean/internal/types"
)

func buildWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}

		for r, row := range rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatal(err)
				}
				if err := f.SetCellValue(name, cell, v); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	path := filepath.Join(t.TempDir(), "ledger_2024.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadLines(t *testing.T) {
	path := buildWorkbook(t, map[string][][]any{
		"Orders": {
			{"JANUARY"},
			{"Customer Name", "Order Amount", "Model No"},
			{"ACME, Ltd", 1000, `M"1`},
			{"BETA\nTRADING", 25.5, "M2"},
		},
	})

	lines, content, err := ReadLines(path, Options{})
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}

	want := []types.RawLine{
		{Text: "JANUARY", Number: 1},
		{Text: "Customer Name,Order Amount,Model No", Number: 2},
		{Text: `"ACME, Ltd",1000,"M""1"`, Number: 3},
		{Text: "BETA TRADING,25.5,M2", Number: 4},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(content, "JANUARY\nCustomer Name") {
		t.Errorf("content = %q", content)
	}
}

func TestReadLinesNamedSheet(t *testing.T) {
	path := buildWorkbook(t, map[string][][]any{
		"Summary": {{"nothing here"}},
	})

	if _, _, err := ReadLines(path, Options{Sheet: "Missing"}); err == nil {
		t.Error("ReadLines() with unknown sheet: error = nil")
	}

	lines, _, err := ReadLines(path, Options{Sheet: "Summary", Comma: ';'})
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}
	if len(lines) != 1 || lines[0].Text != "nothing here" {
		t.Errorf("lines = %+v", lines)
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	if _, _, err := ReadLines(filepath.Join(t.TempDir(), "none.xlsx"), Options{}); err == nil {
		t.Error("ReadLines() error = nil, want failure")
	}
}

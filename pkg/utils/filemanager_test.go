package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/ledgerclean/internal/diagnostics"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"orders.csv", "orders_cleaned.csv"},
		{"data/sales.TXT", "data/sales_cleaned.TXT"},
		{"data/sales.xlsx", "data/sales_cleaned.csv"},
		{"book.XLSM", "book_cleaned.csv"},
		{"items", "items_cleaned"},
		{"jan.2024.csv", "jan.2024_cleaned.csv"},
	}

	for _, tt := range tests {
		if got := DefaultOutputPath(tt.input, "_cleaned"); got != tt.want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "a,b\n")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "a,b\n" {
		t.Errorf("content = %q", data)
	}
	assertOnlyFiles(t, dir, "out.csv")
}

func TestWriteFileAtomicFailureKeepsDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(path, []byte("previous\n"), 0644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := WriteFileAtomic(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WriteFileAtomic() error = %v, want %v", err, boom)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "previous\n" {
		t.Errorf("destination changed to %q", data)
	}
	assertOnlyFiles(t, dir, "out.csv")
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := WriteFileAtomic(path, func(w io.Writer) error { return nil })
	if err == nil {
		t.Fatal("WriteFileAtomic() error = nil, want failure")
	}
}

func TestWriteDiagnosticsLog(t *testing.T) {
	c := diagnostics.New()
	c.Warn(4, "order amount is empty; row dropped")
	c.Error(9, "row could not be processed: boom")

	path := filepath.Join(t.TempDir(), "diag.log")
	err := WriteDiagnosticsLog(path, DiagnosticsLog{
		Source:    "orders.csv",
		RunID:     "run-1",
		Generated: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Entries:   c.All(),
	})
	if err != nil {
		t.Fatalf("WriteDiagnosticsLog() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, want := range []string{
		"Source:    orders.csv",
		"Run ID:    run-1",
		"Generated: 2024-01-02 03:04:05",
		"Warnings:  1",
		"Errors:    1",
		"[WARNING] line 4: order amount is empty; row dropped\n",
		"[ERROR] line 9: row could not be processed: boom\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("log does not contain %q:\n%s", want, text)
		}
	}
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if strings.Join(got, ",") != strings.Join(names, ",") {
		t.Errorf("directory holds %v, want %v", got, names)
	}
}

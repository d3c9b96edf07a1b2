// =============================================================================
// Ledger Cleaner - Delimited-Field Parser
// =============================================================================
//
// This module turns source content into numbered lines and splits single
// lines into fields. Ledger exports are maintained by hand, so the parser
// is forgiving:
//   - Quoted fields may contain the delimiter
//   - A doubled quote inside a quoted field is one literal quote
//   - A quote in the middle of an unquoted field is literal text
//   - An unterminated quote runs to the end of the line
//   - Every field is trimmed
//
// No numeric or semantic interpretation happens here.
//
// =============================================================================

package csvparser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ginjaninja78/ledgerclean/internal/types"
	"github.com/ginjaninja78/ledgerclean/internal/xlsxparser"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings controls how lines are split.
type Settings struct {
	// Comma is the field delimiter.
	// Default: ','
	Comma rune

	// Quote wraps fields that contain the delimiter.
	// Default: '"'
	Quote rune

	// Sheet selects the worksheet for workbook sources.
	Sheet string
}

// DefaultSettings returns comma-delimited, double-quoted settings.
func DefaultSettings() Settings {
	return Settings{Comma: ',', Quote: '"'}
}

func (s Settings) normalized() Settings {
	if s.Comma == 0 {
		s.Comma = ','
	}
	if s.Quote == 0 {
		s.Quote = '"'
	}
	return s
}

// =============================================================================
// SOURCE
// =============================================================================

// Source is a fully read input file.
type Source struct {
	// Identifier is the path the source was read from. The year resolver
	// looks at its base name.
	Identifier string

	// Content is the whole text, used as the second place to look for a year.
	Content string

	// Lines holds the content split into numbered lines.
	Lines []types.RawLine
}

// ReadSource reads an input file completely into memory.
//
// PARAMETERS:
//   - path: The path to a delimited text file or a workbook (.xlsx/.xlsm).
//   - settings: The parsing settings; only Sheet and Comma matter here.
//
// RETURNS:
//   - The Source with its numbered lines.
//   - An error if the file cannot be opened or read.
func ReadSource(path string, settings Settings) (*Source, error) {
	settings = settings.normalized()

	if IsWorkbook(path) {
		lines, content, err := xlsxparser.ReadLines(path, xlsxparser.Options{
			Sheet: settings.Sheet,
			Comma: settings.Comma,
			Quote: settings.Quote,
		})
		if err != nil {
			return nil, err
		}
		return &Source{Identifier: path, Content: content, Lines: lines}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content := strings.TrimPrefix(string(data), "\ufeff")

	return &Source{
		Identifier: path,
		Content:    content,
		Lines:      SplitLines(content),
	}, nil
}

// IsWorkbook reports whether path names a spreadsheet workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// SplitLines splits content on any line terminator (\n, \r\n or \r).
// Line numbers start at 1. A trailing terminator does not produce an extra
// empty line.
func SplitLines(content string) []types.RawLine {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")

	if content == "" {
		return nil
	}

	parts := strings.Split(content, "\n")
	lines := make([]types.RawLine, len(parts))
	for i, text := range parts {
		lines[i] = types.RawLine{Text: text, Number: i + 1}
	}
	return lines
}

// =============================================================================
// LINE PARSER
// =============================================================================

// ParseLine splits one line into trimmed fields.
//
// Parsing never fails. An unterminated quoted field takes the rest of the
// line, delimiters included.
func ParseLine(text string, settings Settings) []string {
	settings = settings.normalized()

	var (
		fields  []string
		field   strings.Builder
		runes   = []rune(text)
		quoted  bool // inside a quoted section
		started bool // the current field has seen a non-space rune
	)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quoted {
			if r == settings.Quote {
				if i+1 < len(runes) && runes[i+1] == settings.Quote {
					field.WriteRune(r)
					i++
					continue
				}
				quoted = false
				continue
			}
			field.WriteRune(r)
			continue
		}

		switch {
		case r == settings.Comma:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
			started = false
		case r == settings.Quote && !started:
			quoted = true
			started = true
			field.Reset()
		default:
			if !unicode.IsSpace(r) {
				started = true
			}
			field.WriteRune(r)
		}
	}

	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}

// ParseRow parses a RawLine into a FieldRow.
func ParseRow(line types.RawLine, settings Settings) types.FieldRow {
	return types.FieldRow{
		Fields: ParseLine(line.Text, settings),
		Line:   line,
	}
}

// IsRowEmpty checks if a row contains only empty values.
func IsRowEmpty(fields []string) bool {
	for _, cell := range fields {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a row-oriented view of one uploaded spreadsheet: the header row
// plus every data row, all as raw strings. Cells keep whatever the source
// held; normalization happens in the extractors.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of an exactly matching header. Matching is case-
// and whitespace-sensitive on purpose: the alias tables carry the source
// system's misspellings verbatim.
func (t *Table) Column(name string) (int, bool) {
	for i, h := range t.Headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// Cell is bounds-safe: short rows read as empty cells.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// LoadTable reads a .csv or .xlsx file into a Table.
func LoadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		return ReadCSV(file)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q, use .csv or .xlsx", filepath.Ext(path))
	}
}

// ReadCSV parses comma-separated text. The first row is the header row.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	// Source exports have ragged rows; pad instead of rejecting.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	return &Table{Headers: records[0], Rows: records[1:]}, nil
}

// ReadXLSX parses the first sheet of a spreadsheet workbook.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}

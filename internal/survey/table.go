package survey

import (
	"strings"
)

const utf8BOM = "\uFEFF"

// Value is a single answer cell as exported by the form.
type Value string

// String returns the answer without surrounding whitespace.
func (v Value) String() string {
	return strings.TrimSpace(string(v))
}

// IsMissing reports whether the answer is blank.
func (v Value) IsMissing() bool {
	return v.String() == ""
}

// Row maps a column label to its answer.
type Row map[string]Value

// Get returns the answer for label, or a missing value.
func (r Row) Get(label string) Value {
	return r[label]
}

// Table is the full set of survey responses. It is never modified after
// NewTable returns.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a Table from a header and its records. Labels are trimmed
// (a leading byte order mark included) and blank labels are dropped. When two
// columns share a label the first one wins. Short records are padded with
// missing values and extra cells are ignored.
func NewTable(header []string, records [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyTable
	}

	type column struct {
		label string
		index int
	}

	columns := make([]column, 0, len(header))
	seen := make(map[string]bool, len(header))
	for i, raw := range header {
		label := NormalizeHeader(raw)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		columns = append(columns, column{label: label, index: i})
	}
	if len(columns) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		Columns: make([]string, len(columns)),
		Rows:    make([]Row, 0, len(records)),
	}
	for i, c := range columns {
		t.Columns[i] = c.label
	}

	for _, record := range records {
		if isBlankRecord(record) {
			continue
		}
		row := make(Row, len(columns))
		for _, c := range columns {
			if c.index < len(record) {
				row[c.label] = Value(record[c.index])
			} else {
				row[c.label] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// NormalizeHeader strips a byte order mark and surrounding whitespace from a
// column label.
func NormalizeHeader(label string) string {
	return strings.TrimSpace(strings.TrimPrefix(label, utf8BOM))
}

// Len returns the number of responses.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether label is one of the table's columns.
func (t *Table) HasColumn(label string) bool {
	for _, c := range t.Columns {
		if c == label {
			return true
		}
	}
	return false
}

// Column returns every answer of one column in row order.
func (t *Table) Column(label string) []Value {
	values := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Get(label)
	}
	return values
}

// isBlankRecord reports whether every cell is blank. Such records are padding
// from the export, not responses, and never become rows.
func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

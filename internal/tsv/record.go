// Package tsv provides a verbatim tab-separated table model for variant files.
//
// Every cell is opaque text and is carried through the pipeline exactly as it
// appeared in the input. A "." or empty cell denotes a missing value by
// convention, but the package never interprets or rewrites cell contents.
package tsv

// Missing is the conventional sentinel for an absent value.
const Missing = "."

// Record is a single data row. Fields are in header order and hold the raw
// input text unchanged.
type Record struct {
	Fields []string
}

// Value returns the field at index i, or the empty string if the row is
// shorter than the header.
func (r Record) Value(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Table is a fully-read TSV file: the header line plus all data rows.
type Table struct {
	Columns []string
	Rows    []Record
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

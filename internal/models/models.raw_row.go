package models

// RawRow is one row handed over by a row source: trimmed column names mapped
// to trimmed cell values. Columns keeps the source column order and is shared
// by every row of the same source.
type RawRow struct {
	Line    int
	Columns []string
	Values  map[string]string
}

// Get returns the trimmed value of column, or "" when absent.
func (r RawRow) Get(column string) string {
	return r.Values[column]
}

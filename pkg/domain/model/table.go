package model

// Table is a materialized warehouse result set. Columns keep the projection order and
// every row is keyed by column name.
type Table struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// ColumnsFromFirstRow returns the column names of the first row in projection order.
// Columns missing from the first row are skipped.
func (t *Table) ColumnsFromFirstRow() []string {
	if t.IsEmpty() {
		return nil
	}

	first := t.Rows[0]
	columns := make([]string, 0, len(first))
	for _, col := range t.Columns {
		if _, ok := first[col]; ok {
			columns = append(columns, col)
		}
	}
	return columns
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"sort"

	"github.com/angelosalatino/dblp-parser/pkg/dblp"
)

// Table accumulates records in memory, one column per field, rows aligned
// by record index. Cells are string, []string, or nil where a record lacks
// the field. Unsuitable for unbounded dumps; intended for moderate
// extractions consumed in-process.
type Table struct {
	columns map[string][]any
	rows    int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{columns: make(map[string][]any)}
}

// Write appends one record as a row, padding columns the record lacks.
func (t *Table) Write(rec dblp.Record) error {
	for name := range rec {
		if _, ok := t.columns[name]; !ok {
			// New column: backfill earlier rows.
			t.columns[name] = make([]any, t.rows)
		}
	}
	for name, col := range t.columns {
		if value, ok := rec[name]; ok {
			t.columns[name] = append(col, value)
		} else {
			t.columns[name] = append(col, nil)
		}
	}
	t.rows++
	return nil
}

// Close is a no-op; the table lives in memory.
func (t *Table) Close() error { return nil }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in sorted order.
func (t *Table) Columns() []string {
	names := make([]string, 0, len(t.columns))
	for name := range t.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Column returns the cells of the named column, aligned with row indexes,
// or nil if no record carried the field.
func (t *Table) Column(name string) []any {
	return t.columns[name]
}

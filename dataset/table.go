/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dataset

import (
	"fmt"
	"time"
)

// Column describes one column of a table
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Table is a fully materialized, column-ordered set of rows.
// Column names are unique and every row carries a cell (possibly nil) for
// every column. Tables handed to the engine are treated as read-only; stages
// that add columns work on a Clone.
type Table struct {
	columns []Column
	index   map[string]int
	rows    []Row
}

// NewTable builds a table. Cells absent from a row are filled with nil, cells
// for undeclared columns are dropped and every other cell is coerced to the
// kind of its column.
func NewTable(columns []Column, rows []Row) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    make([]Row, 0, len(rows)),
	}
	for _, c := range columns {
		if _, exists := t.index[c.Name]; exists {
			return nil, fmt.Errorf("duplicate column name '%s'", c.Name)
		}
		t.index[c.Name] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	for i, r := range rows {
		row, err := t.normalize(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// MustNewTable is NewTable that panics on error. Intended for tests and examples.
func MustNewTable(columns []Column, rows []Row) *Table {
	t, err := NewTable(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Empty returns a table with the given columns and no rows
func Empty(columns ...Column) *Table {
	return MustNewTable(columns, nil)
}

func (t *Table) normalize(r Row) (Row, error) {
	out := make(Row, len(t.columns))
	for _, c := range t.columns {
		v, err := cell(r[c.Name], c)
		if err != nil {
			return nil, err
		}
		out[c.Name] = v
	}
	return out, nil
}

// cell converts v to the representation of col's kind
func cell(v interface{}, col Column) (interface{}, error) {
	if IsMissing(v) {
		return nil, nil
	}
	if conforms(v, col.Kind) {
		return v, nil
	}
	c, err := Coerce(v, col.Kind)
	if err != nil {
		return nil, fmt.Errorf("column '%s': cannot use %v as %s: %w", col.Name, v, col.Kind, err)
	}
	return c, nil
}

func conforms(v interface{}, k Kind) bool {
	switch k {
	case KindNumeric:
		_, ok := v.(float64)
		return ok
	case KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindTemporal:
		_, ok := v.(time.Time)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}

// Columns returns a copy of the column descriptors in order
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// HasColumn reports whether the table declares name
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row. The map is shared with the table and must not be modified.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Value returns the cell at row i, column name
func (t *Table) Value(i int, name string) interface{} {
	return t.rows[i][name]
}

// Values returns the cells of one column in row order
func (t *Table) Values(name string) []interface{} {
	out := make([]interface{}, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[name]
	}
	return out
}

// Clone returns a deep copy whose rows can be extended without touching t
func (t *Table) Clone() *Table {
	c := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
		rows:    make([]Row, len(t.rows)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	for i, r := range t.rows {
		c.rows[i] = r.Clone()
	}
	return c
}

// Subset returns a new table holding the rows at the given indices, in the
// given order. Row maps are shared with t.
func (t *Table) Subset(indices []int) *Table {
	s := &Table{
		columns: t.Columns(),
		index:   t.index,
		rows:    make([]Row, 0, len(indices)),
	}
	for _, i := range indices {
		s.rows = append(s.rows, t.rows[i])
	}
	return s
}

// Head returns the first n rows (all rows when n exceeds Len)
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.rows) {
		n = len(t.rows)
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return t.Subset(indices)
}

// AddColumn appends a column with one value per row. It mutates t, so callers
// must only use it on a working copy.
func (t *Table) AddColumn(col Column, values []interface{}) error {
	if _, exists := t.index[col.Name]; exists {
		return fmt.Errorf("column '%s' already exists", col.Name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column '%s' has %d values, table has %d rows", col.Name, len(values), len(t.rows))
	}
	converted := make([]interface{}, len(values))
	for i, v := range values {
		c, err := cell(v, col)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		converted[i] = c
	}
	// Subset shares the index map; copy before writing
	index := make(map[string]int, len(t.index)+1)
	for k, v := range t.index {
		index[k] = v
	}
	index[col.Name] = len(t.columns)
	t.index = index
	t.columns = append(t.columns[:len(t.columns):len(t.columns)], col)
	for i, r := range t.rows {
		r[col.Name] = converted[i]
	}
	return nil
}

// Project keeps only the named columns, in the given order. Unknown names are
// ignored. Rows are copied.
func (t *Table) Project(names []string) *Table {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		if c, ok := t.Column(n); ok {
			cols = append(cols, c)
		}
	}
	p, err := NewTable(cols, t.rows)
	if err != nil {
		// duplicate names in the projection list; keep first occurrences
		seen := make(map[string]bool, len(cols))
		unique := cols[:0:0]
		for _, c := range cols {
			if !seen[c.Name] {
				seen[c.Name] = true
				unique = append(unique, c)
			}
		}
		p = MustNewTable(unique, t.rows)
	}
	return p
}

// Records returns the rows as fresh maps that share nothing with the table
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, len(t.rows))
	for i, r := range t.rows {
		out[i] = map[string]interface{}(r.Clone())
	}
	return out
}

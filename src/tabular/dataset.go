package tabular

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

type CellKind int

const (
	KindNull CellKind = iota
	KindString
	KindNumber
)

// Cell is one scalar dataset value. Numeric cells keep their original lexeme
// so that exporting a dataset reproduces the ingested bytes exactly.
type Cell struct {
	kind CellKind
	raw  string
	num  float64
}

func NullCell() Cell {
	return Cell{kind: KindNull}
}

func StringCell(s string) Cell {
	return Cell{kind: KindString, raw: s}
}

func NumberCell(raw string, value float64) Cell {
	return Cell{kind: KindNumber, raw: raw, num: value}
}

func (c Cell) Kind() CellKind {
	return c.kind
}

func (c Cell) IsNull() bool {
	return c.kind == KindNull
}

// String returns the stringified value used as the mapping key for
// tokenization. Null cells stringify to the empty string but are never
// tokenized.
func (c Cell) String() string {
	return c.raw
}

func (c Cell) Number() (float64, bool) {
	return c.num, c.kind == KindNumber
}

type Column struct {
	Name  string
	Cells []Cell
}

// NewColumnFromStrings builds a column from raw field values, treating
// nullString as the null sentinel. If every non-null field parses as a
// number the column is numeric; otherwise all non-null fields stay strings.
// This mirrors the usual dataframe dtype inference, so the classifier's
// string-only heuristics skip purely numeric columns.
func NewColumnFromStrings(name string, raws []string, nullString string) *Column {
	numeric := false
	nonNullCount := 0
	allNumeric := true
	for _, raw := range raws {
		if raw == nullString {
			continue
		}
		nonNullCount++
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			allNumeric = false
			break
		}
	}
	numeric = allNumeric && nonNullCount > 0

	cells := make([]Cell, 0, len(raws))
	for _, raw := range raws {
		switch {
		case raw == nullString:
			cells = append(cells, NullCell())
		case numeric:
			v, _ := strconv.ParseFloat(raw, 64)
			cells = append(cells, NumberCell(raw, v))
		default:
			cells = append(cells, StringCell(raw))
		}
	}
	return &Column{Name: name, Cells: cells}
}

// IsStringTyped reports whether the column should be treated as textual.
// Numeric and all-null columns are not textual, so the classifier's
// string-only heuristics skip them.
func (c *Column) IsStringTyped() bool {
	for _, cell := range c.Cells {
		if cell.Kind() == KindString {
			return true
		}
	}
	return false
}

func (c *Column) NonNullValues() []string {
	values := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.IsNull() {
			values = append(values, cell.String())
		}
	}
	return values
}

// DistinctNonNullValues preserves first-seen order.
func (c *Column) DistinctNonNullValues() []string {
	return lo.Uniq(c.NonNullValues())
}

func (c *Column) clone() *Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return &Column{Name: c.Name, Cells: cells}
}

// Dataset is an ordered collection of equally sized named columns.
type Dataset struct {
	columns []*Column
	index   map[string]int
}

func NewDataset() *Dataset {
	return &Dataset{index: make(map[string]int)}
}

func (ds *Dataset) AddColumn(col *Column) error {
	if _, exists := ds.index[col.Name]; exists {
		return fmt.Errorf("duplicate column name %q in dataset", col.Name)
	}
	if len(ds.columns) > 0 && len(col.Cells) != ds.RowCount() {
		return fmt.Errorf("column %q has %d rows, dataset has %d", col.Name, len(col.Cells), ds.RowCount())
	}
	ds.index[col.Name] = len(ds.columns)
	ds.columns = append(ds.columns, col)
	return nil
}

func (ds *Dataset) Column(name string) (*Column, bool) {
	i, ok := ds.index[name]
	if !ok {
		return nil, false
	}
	return ds.columns[i], true
}

func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.index[name]
	return ok
}

// ColumnNames returns names in dataset order.
func (ds *Dataset) ColumnNames() []string {
	return lo.Map(ds.columns, func(c *Column, _ int) string { return c.Name })
}

func (ds *Dataset) Columns() []*Column {
	return ds.columns
}

func (ds *Dataset) ColumnCount() int {
	return len(ds.columns)
}

func (ds *Dataset) RowCount() int {
	if len(ds.columns) == 0 {
		return 0
	}
	return len(ds.columns[0].Cells)
}

// Clone returns a deep copy; transforms never mutate their input dataset.
func (ds *Dataset) Clone() *Dataset {
	clone := NewDataset()
	for _, col := range ds.columns {
		// AddColumn cannot fail here: names and lengths come from a valid dataset.
		_ = clone.AddColumn(col.clone())
	}
	return clone
}

// ReplaceColumnCells swaps the cells of an existing column in place.
func (ds *Dataset) ReplaceColumnCells(name string, cells []Cell) error {
	i, ok := ds.index[name]
	if !ok {
		return fmt.Errorf("column %q not found in dataset", name)
	}
	if len(cells) != ds.RowCount() {
		return fmt.Errorf("replacement for column %q has %d rows, dataset has %d", name, len(cells), ds.RowCount())
	}
	ds.columns[i].Cells = cells
	return nil
}

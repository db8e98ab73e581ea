package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Table is an immutable, ordered set of products.
// Every derived table is a new Table; the receiver is never modified.
type Table struct {
	rows []Product
}

// NewTable builds a table from a copy of rows.
func NewTable(rows []Product) *Table {
	cp := make([]Product, len(rows))
	copy(cp, rows)
	return &Table{rows: cp}
}

// Empty returns a table with zero rows.
func Empty() *Table {
	return &Table{}
}

// Len returns the number of rows. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return t.Len() == 0 }

// At returns a copy of row i.
func (t *Table) At(i int) Product {
	return t.rows[i]
}

// Rows returns a copy of all rows.
func (t *Table) Rows() []Product {
	if t == nil {
		return nil
	}
	cp := make([]Product, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Where returns the rows for which keep returns true, in their original order.
func (t *Table) Where(keep func(Product) bool) *Table {
	if t.Len() == 0 {
		return Empty()
	}
	out := make([]Product, 0, len(t.rows))
	for _, p := range t.rows {
		if keep(p) {
			out = append(out, p)
		}
	}
	return &Table{rows: out}
}

// Column returns the values of measure m for every row, NaN included.
func (t *Table) Column(m Measure) []float64 {
	out := make([]float64, t.Len())
	for i := range out {
		out[i] = t.rows[i].Measure(m)
	}
	return out
}

// Valid returns the non-NaN values of measure m.
func (t *Table) Valid(m Measure) []float64 {
	out := make([]float64, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if v := t.rows[i].Measure(m); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Sum adds the non-missing values of m. Missing values are skipped.
func (t *Table) Sum(m Measure) float64 {
	return floats.Sum(t.Valid(m))
}

// Mean averages the non-missing values of m. ok is false when none exist.
func (t *Table) Mean(m Measure) (mean float64, ok bool) {
	vals := t.Valid(m)
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}

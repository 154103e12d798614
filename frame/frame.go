// Package frame holds the data a model was fitted on as named numeric columns.
//
// Model adapters keep a *Frame and the name of their response variable; the
// response vector is resolved from the frame at extraction time.
//
// Columns are indexed by the xxHash64 of their name, the same identifier
// scheme internal/hash uses for every column. This keeps one ID space for
// column names; at the column counts of a model frame a map keyed by name
// would be just as fast. If two names ever share a hash the frame still
// resolves them correctly by comparing names.
package frame

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/internal/collision"
	"github.com/arloliu/fitstat/internal/hash"
)

// Column is a named numeric variable. NaN marks a missing observation.
type Column struct {
	Name   string
	Values []float64
}

// Frame is an immutable set of equal-length columns.
type Frame struct {
	columns   []Column
	index     map[uint64]int
	collision bool
	rows      int
}

// New builds a frame from columns. All columns must have the same length and
// distinct, non-empty names. Column values are copied.
func New(columns ...Column) (*Frame, error) {
	tracker := collision.NewTracker()
	f := &Frame{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[uint64]int, len(columns)),
	}

	for i, col := range columns {
		id := hash.ColumnID(col.Name)
		if err := tracker.TrackColumn(col.Name, id); err != nil {
			return nil, fmt.Errorf("column %d (%q): %w", i, col.Name, err)
		}
		if i == 0 {
			f.rows = len(col.Values)
		} else if len(col.Values) != f.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d: %w", col.Name, len(col.Values), f.rows, errs.ErrColumnLength)
		}

		if _, exists := f.index[id]; !exists {
			f.index[id] = i
		}
		f.columns = append(f.columns, Column{Name: col.Name, Values: slices.Clone(col.Values)})
	}
	f.collision = tracker.HasCollision()

	return f, nil
}

// MustNew is like New but panics on error. Intended for tests and examples.
func MustNew(columns ...Column) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}

	return f
}

// Column returns the values of the named column. The returned slice must not
// be modified.
func (f *Frame) Column(name string) ([]float64, bool) {
	if f == nil {
		return nil, false
	}

	if i, ok := f.index[hash.ColumnID(name)]; ok && f.columns[i].Name == name {
		return f.columns[i].Values, true
	}
	if !f.collision {
		return nil, false
	}

	for _, col := range f.columns {
		if col.Name == name {
			return col.Values, true
		}
	}

	return nil, false
}

// Lookup is like Column but reports a missing column as an ErrExtraction error.
func (f *Frame) Lookup(name string) ([]float64, error) {
	values, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("variable %q not found in model data (columns: %s): %w",
			name, strings.Join(f.Names(), ", "), errs.ErrExtraction)
	}

	return values, nil
}

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	if f == nil {
		return nil
	}

	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}

	return names
}

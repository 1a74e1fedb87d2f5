package frame

import (
	"github.com/pkg/errors"
)

// Frame is an ordered collection of equal-length series with name lookup.
type Frame struct {
	cols  []*Series
	index map[string]int
}

// New creates a frame from the given series. All series must share a length
// and names must be unique.
func New(cols ...*Series) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for _, col := range cols {
		if err := f.AddColumn(col); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// NumRows returns the number of rows. An empty frame has zero rows.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}

	return f.cols[0].Len()
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.cols)
}

// ColumnNames returns the column names in frame order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, col := range f.cols {
		names[i] = col.Name()
	}

	return names
}

// HasColumn reports whether a column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]

	return ok
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (*Series, error) {
	idx, ok := f.index[name]
	if !ok {
		return nil, errors.Wrap(ErrColumnNotFound, name)
	}

	return f.cols[idx], nil
}

// AddColumn appends a column to the frame.
func (f *Frame) AddColumn(col *Series) error {
	if _, ok := f.index[col.Name()]; ok {
		return errors.Wrap(ErrDuplicateColumn, col.Name())
	}
	if len(f.cols) > 0 && col.Len() != f.NumRows() {
		return errors.Wrap(ErrRaggedSeries, col.Name())
	}

	f.index[col.Name()] = len(f.cols)
	f.cols = append(f.cols, col)

	return nil
}

// SetColumn replaces the column with the same name, keeping its position, or
// appends it when absent.
func (f *Frame) SetColumn(col *Series) error {
	idx, ok := f.index[col.Name()]
	if !ok {
		return f.AddColumn(col)
	}
	if col.Len() != f.NumRows() {
		return errors.Wrap(ErrRaggedSeries, col.Name())
	}

	f.cols[idx] = col

	return nil
}

// DropColumn removes the column with the given name.
func (f *Frame) DropColumn(name string) error {
	idx, ok := f.index[name]
	if !ok {
		return errors.Wrap(ErrColumnNotFound, name)
	}

	f.cols = append(f.cols[:idx], f.cols[idx+1:]...)
	delete(f.index, name)
	for i := idx; i < len(f.cols); i++ {
		f.index[f.cols[i].Name()] = i
	}

	return nil
}

// Select returns a new frame holding deep copies of the named columns, in the
// given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := &Frame{index: make(map[string]int, len(names))}
	for _, name := range names {
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(col.Clone()); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Take returns a new frame holding the given rows, in order.
func (f *Frame) Take(rows []int) (*Frame, error) {
	numRows := f.NumRows()
	for _, row := range rows {
		if row < 0 || row >= numRows {
			return nil, errors.Wrapf(ErrRowOutOfRange, "%d", row)
		}
	}

	out := &Frame{index: make(map[string]int, len(f.cols))}
	for _, col := range f.cols {
		if err := out.AddColumn(col.Take(rows)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// DropRows returns a new frame without the given rows.
func (f *Frame) DropRows(rows []int) (*Frame, error) {
	drop := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		drop[row] = struct{}{}
	}

	keep := make([]int, 0, f.NumRows())
	for row := 0; row < f.NumRows(); row++ {
		if _, ok := drop[row]; !ok {
			keep = append(keep, row)
		}
	}

	return f.Take(keep)
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		cols:  make([]*Series, len(f.cols)),
		index: make(map[string]int, len(f.cols)),
	}
	for i, col := range f.cols {
		out.cols[i] = col.Clone()
		out.index[col.Name()] = i
	}

	return out
}

// Equal reports whether two frames hold the same columns in the same order.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if len(f.cols) != len(other.cols) {
		return false
	}
	for i, col := range f.cols {
		if !col.Equal(other.cols[i]) {
			return false
		}
	}

	return true
}

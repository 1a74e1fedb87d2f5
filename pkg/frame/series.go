package frame

import (
	"math"
)

// Series is a named column of values.
type Series struct {
	name   string
	values []Value
}

// NewSeries creates a series from individual values.
func NewSeries(name string, values ...Value) *Series {
	return &Series{name: name, values: values}
}

// FloatSeries creates a numeric series. NaN entries become missing cells.
func FloatSeries(name string, values []float64) *Series {
	cells := make([]Value, len(values))
	for i, f := range values {
		cells[i] = Number(f)
	}

	return &Series{name: name, values: cells}
}

// StringSeries creates a string series.
func StringSeries(name string, values []string) *Series {
	cells := make([]Value, len(values))
	for i, s := range values {
		cells[i] = String(s)
	}

	return &Series{name: name, values: cells}
}

// Name returns the series name.
func (s *Series) Name() string {
	return s.name
}

// Rename returns a copy of the series under a new name.
func (s *Series) Rename(name string) *Series {
	clone := s.Clone()
	clone.name = name

	return clone
}

// Len returns the number of cells.
func (s *Series) Len() int {
	return len(s.values)
}

// At returns the cell at the given row.
func (s *Series) At(row int) Value {
	return s.values[row]
}

// Set replaces the cell at the given row.
func (s *Series) Set(row int, v Value) {
	s.values[row] = v
}

// Append adds a cell at the end of the series.
func (s *Series) Append(v Value) {
	s.values = append(s.values, v)
}

// Floats returns the numeric form of every cell. Missing and string cells
// become NaN.
func (s *Series) Floats() []float64 {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		f, ok := v.Float()
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}

	return out
}

// Strings returns the canonical string form of every cell.
func (s *Series) Strings() []string {
	out := make([]string, len(s.values))
	for i, v := range s.values {
		out[i] = v.Format()
	}

	return out
}

// IsNumeric reports whether every non-missing cell holds a number.
func (s *Series) IsNumeric() bool {
	for _, v := range s.values {
		if v.IsMissing() {
			continue
		}
		if _, ok := v.Float(); !ok {
			return false
		}
	}

	return true
}

// HasMissing reports whether any cell is absent.
func (s *Series) HasMissing() bool {
	for _, v := range s.values {
		if v.IsMissing() {
			return true
		}
	}

	return false
}

// NUnique counts distinct non-missing values.
func (s *Series) NUnique() int {
	return len(s.ValueCounts())
}

// ValueCounts returns the number of occurrences of each non-missing value,
// keyed by its canonical string form.
func (s *Series) ValueCounts() map[string]int {
	counts := make(map[string]int)
	for _, v := range s.values {
		if v.IsMissing() {
			continue
		}
		counts[v.Format()]++
	}

	return counts
}

// Take returns a new series holding the cells at the given rows, in order.
func (s *Series) Take(rows []int) *Series {
	values := make([]Value, len(rows))
	for i, row := range rows {
		values[i] = s.values[row]
	}

	return &Series{name: s.name, values: values}
}

// Clone returns a deep copy of the series.
func (s *Series) Clone() *Series {
	values := make([]Value, len(s.values))
	copy(values, s.values)

	return &Series{name: s.name, values: values}
}

// Equal reports whether two series share name, length and cells.
func (s *Series) Equal(other *Series) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.name != other.name || len(s.values) != len(other.values) {
		return false
	}
	for i, v := range s.values {
		if !v.Equal(other.values[i]) {
			return false
		}
	}

	return true
}

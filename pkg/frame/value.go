package frame

import (
	"math"
	"strconv"
)

// Kind describes what a cell holds.
type Kind uint8

const (
	// KindMissing marks an absent cell.
	KindMissing Kind = iota
	// KindNumber marks a float64 cell.
	KindNumber
	// KindString marks a string cell.
	KindString
)

// Value is a single cell of a series.
type Value struct {
	num  float64
	str  string
	kind Kind
}

// Number returns a numeric value. NaN collapses to a missing value so a
// missing cell has exactly one representation.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}

	return Value{kind: KindNumber, num: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Missing returns the missing value.
func Missing() Value {
	return Value{}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the cell is absent.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Float returns the numeric form of the value and whether it holds one.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	return v.num, true
}

// Str returns the string form of the value and whether it holds one.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.str, true
}

// Format renders the value the way it is written to CSV. Missing cells render
// as the empty string.
func (v Value) Format() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindMissing:
	}

	return ""
}

// Equal reports whether two values are identical.
func (v Value) Equal(other Value) bool {
	return v == other
}

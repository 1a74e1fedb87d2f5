package frame

import "github.com/pkg/errors"

var (
	// ErrColumnNotFound is returned when a named column is absent.
	ErrColumnNotFound = errors.New("column not found")
	// ErrDuplicateColumn is returned when a column name is already taken.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrRaggedSeries is returned when series lengths disagree.
	ErrRaggedSeries = errors.New("all series must share the same length")
	// ErrRowOutOfRange is returned when a row index is outside the frame.
	ErrRowOutOfRange = errors.New("row index out of range")
)

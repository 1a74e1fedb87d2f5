package estimator

import "github.com/pkg/errors"

var (
	// ErrNotFitted is returned when an estimator transforms before fitting.
	ErrNotFitted = errors.New("estimator is not fitted")
	// ErrUnknownColumn is returned when transforming a column the estimator
	// never saw during fit.
	ErrUnknownColumn = errors.New("column was not fitted")
	// ErrUnknownCategory is returned when encoding a value outside the
	// fitted categories.
	ErrUnknownCategory = errors.New("category was not fitted")
	// ErrEmptyFit is returned when fitting on no usable values.
	ErrEmptyFit = errors.New("nothing to fit on")
	// ErrNotNumeric is returned when a numeric strategy meets string cells.
	ErrNotNumeric = errors.New("column is not numeric")
)

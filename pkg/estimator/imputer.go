package estimator

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/bowline-go/bowline/pkg/frame"
)

// Strategy selects how SimpleImputer picks a fill value.
type Strategy string

const (
	// Mean fills with the column mean. Numeric columns only.
	Mean Strategy = "mean"
	// Median fills with the column median. Numeric columns only.
	Median Strategy = "median"
	// MostFrequent fills with the modal value, ties broken by the smaller
	// string form.
	MostFrequent Strategy = "most_frequent"
	// Constant fills with a caller-supplied value.
	Constant Strategy = "constant"
)

// KnownStrategy reports whether the strategy name is valid.
func KnownStrategy(s Strategy) bool {
	switch s {
	case Mean, Median, MostFrequent, Constant:
		return true
	}

	return false
}

// SimpleImputer replaces missing cells with a per-column fill value learned
// during fit.
type SimpleImputer struct {
	strategy Strategy
	constant frame.Value
	fill     map[string]frame.Value
}

// NewSimpleImputer creates an imputer with the given strategy.
func NewSimpleImputer(strategy Strategy) *SimpleImputer {
	return &SimpleImputer{strategy: strategy}
}

// WithConstant sets the fill value used by the Constant strategy.
func (im *SimpleImputer) WithConstant(v frame.Value) *SimpleImputer {
	im.constant = v

	return im
}

// Strategy returns the configured strategy.
func (im *SimpleImputer) Strategy() Strategy {
	return im.strategy
}

// Fit learns the fill value for the given column from its non-missing cells.
func (im *SimpleImputer) Fit(col *frame.Series) error {
	if !KnownStrategy(im.strategy) {
		return errors.Errorf("unknown imputer strategy %q", im.strategy)
	}

	fill, err := im.fillValue(col)
	if err != nil {
		return errors.Wrap(err, col.Name())
	}

	if im.fill == nil {
		im.fill = make(map[string]frame.Value)
	}
	im.fill[col.Name()] = fill

	return nil
}

func (im *SimpleImputer) fillValue(col *frame.Series) (frame.Value, error) {
	if im.strategy == Constant {
		return im.constant, nil
	}

	switch im.strategy {
	case Mean, Median:
		if !col.IsNumeric() {
			return frame.Missing(), ErrNotNumeric
		}
		values := finite(col.Floats())
		if len(values) == 0 {
			return frame.Missing(), ErrEmptyFit
		}
		if im.strategy == Mean {
			return frame.Number(mean(values)), nil
		}

		return frame.Number(percentile(values, 0.5)), nil
	case MostFrequent:
		counts := col.ValueCounts()
		if len(counts) == 0 {
			return frame.Missing(), ErrEmptyFit
		}
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		best := keys[0]
		for _, k := range keys[1:] {
			if counts[k] > counts[best] {
				best = k
			}
		}
		if col.IsNumeric() {
			// modal key round-trips through its string form
			for row := 0; row < col.Len(); row++ {
				if v := col.At(row); !v.IsMissing() && v.Format() == best {
					return v, nil
				}
			}
		}

		return frame.String(best), nil
	case Constant:
	}

	return im.constant, nil
}

// Transform returns a copy of the column with missing cells filled.
func (im *SimpleImputer) Transform(col *frame.Series) (*frame.Series, error) {
	if im.fill == nil {
		return nil, ErrNotFitted
	}
	fill, ok := im.fill[col.Name()]
	if !ok {
		return nil, errors.Wrap(ErrUnknownColumn, col.Name())
	}

	out := col.Clone()
	for row := 0; row < out.Len(); row++ {
		if out.At(row).IsMissing() {
			out.Set(row, fill)
		}
	}

	return out, nil
}

// FitTransform fits on the column and transforms it.
func (im *SimpleImputer) FitTransform(col *frame.Series) (*frame.Series, error) {
	if err := im.Fit(col); err != nil {
		return nil, err
	}

	return im.Transform(col)
}

// FillValue returns the fitted fill value for a column.
func (im *SimpleImputer) FillValue(name string) (frame.Value, error) {
	if im.fill == nil {
		return frame.Missing(), ErrNotFitted
	}
	fill, ok := im.fill[name]
	if !ok {
		return frame.Missing(), errors.Wrap(ErrUnknownColumn, name)
	}

	return fill, nil
}

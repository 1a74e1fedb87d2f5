package estimator

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/bowline-go/bowline/pkg/frame"
)

// sortedClasses collects the distinct non-missing values of a column in
// lexicographic order of their string form.
func sortedClasses(col *frame.Series) []string {
	counts := col.ValueCounts()
	classes := make([]string, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	return classes
}

// LabelEncoder maps the values of a column onto integer codes 0..n-1, in
// lexicographic class order.
type LabelEncoder struct {
	classes map[string][]string
	codes   map[string]map[string]int
}

// NewLabelEncoder creates a label encoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// Fit learns the classes of the given column.
func (e *LabelEncoder) Fit(col *frame.Series) error {
	classes := sortedClasses(col)
	if len(classes) == 0 {
		return errors.Wrap(ErrEmptyFit, col.Name())
	}

	codes := make(map[string]int, len(classes))
	for code, class := range classes {
		codes[class] = code
	}

	if e.classes == nil {
		e.classes = make(map[string][]string)
		e.codes = make(map[string]map[string]int)
	}
	e.classes[col.Name()] = classes
	e.codes[col.Name()] = codes

	return nil
}

// Transform returns a numeric copy of the column with each value replaced by
// its class code. Missing cells stay missing.
func (e *LabelEncoder) Transform(col *frame.Series) (*frame.Series, error) {
	if e.codes == nil {
		return nil, ErrNotFitted
	}
	codes, ok := e.codes[col.Name()]
	if !ok {
		return nil, errors.Wrap(ErrUnknownColumn, col.Name())
	}

	out := frame.NewSeries(col.Name())
	for row := 0; row < col.Len(); row++ {
		cell := col.At(row)
		if cell.IsMissing() {
			out.Append(frame.Missing())

			continue
		}
		code, ok := codes[cell.Format()]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCategory, "%s=%s", col.Name(), cell.Format())
		}
		out.Append(frame.Number(float64(code)))
	}

	return out, nil
}

// FitTransform fits on the column and transforms it.
func (e *LabelEncoder) FitTransform(col *frame.Series) (*frame.Series, error) {
	if err := e.Fit(col); err != nil {
		return nil, err
	}

	return e.Transform(col)
}

// InverseTransform maps a numeric column of codes back to the original
// classes. Codes are rounded to the nearest integer first, so raw model
// scores can be decoded directly.
func (e *LabelEncoder) InverseTransform(col *frame.Series) (*frame.Series, error) {
	if e.classes == nil {
		return nil, ErrNotFitted
	}
	classes, ok := e.classes[col.Name()]
	if !ok {
		return nil, errors.Wrap(ErrUnknownColumn, col.Name())
	}

	out := frame.NewSeries(col.Name())
	for row := 0; row < col.Len(); row++ {
		cell := col.At(row)
		if cell.IsMissing() {
			out.Append(frame.Missing())

			continue
		}
		f, ok := cell.Float()
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCategory, "%s=%s", col.Name(), cell.Format())
		}
		code := int(math.Round(f))
		if code < 0 || code >= len(classes) {
			return nil, errors.Wrapf(ErrUnknownCategory, "%s=%d", col.Name(), code)
		}
		out.Append(frame.String(classes[code]))
	}

	return out, nil
}

// Classes returns the fitted classes of a column.
func (e *LabelEncoder) Classes(name string) ([]string, error) {
	if e.classes == nil {
		return nil, ErrNotFitted
	}
	classes, ok := e.classes[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownColumn, name)
	}

	out := make([]string, len(classes))
	copy(out, classes)

	return out, nil
}

// Fitted reports whether the encoder saw the given column during fit.
func (e *LabelEncoder) Fitted(name string) bool {
	_, ok := e.classes[name]

	return ok
}

// OneHotEncoder expands a column into one indicator column per category,
// named <column>_<category>, in lexicographic category order.
type OneHotEncoder struct {
	categories map[string][]string
}

// NewOneHotEncoder creates a one-hot encoder.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit learns the categories of the given column.
func (e *OneHotEncoder) Fit(col *frame.Series) error {
	categories := sortedClasses(col)
	if len(categories) == 0 {
		return errors.Wrap(ErrEmptyFit, col.Name())
	}

	if e.categories == nil {
		e.categories = make(map[string][]string)
	}
	e.categories[col.Name()] = categories

	return nil
}

// Transform returns one indicator series per fitted category. A missing cell
// yields zero in every indicator.
func (e *OneHotEncoder) Transform(col *frame.Series) ([]*frame.Series, error) {
	if e.categories == nil {
		return nil, ErrNotFitted
	}
	categories, ok := e.categories[col.Name()]
	if !ok {
		return nil, errors.Wrap(ErrUnknownColumn, col.Name())
	}

	position := make(map[string]int, len(categories))
	indicators := make([]*frame.Series, len(categories))
	for i, category := range categories {
		position[category] = i
		indicators[i] = frame.FloatSeries(
			fmt.Sprintf("%s_%s", col.Name(), category),
			make([]float64, col.Len()),
		)
	}

	for row := 0; row < col.Len(); row++ {
		cell := col.At(row)
		if cell.IsMissing() {
			continue
		}
		i, ok := position[cell.Format()]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCategory, "%s=%s", col.Name(), cell.Format())
		}
		indicators[i].Set(row, frame.Number(1))
	}

	return indicators, nil
}

// FitTransform fits on the column and transforms it.
func (e *OneHotEncoder) FitTransform(col *frame.Series) ([]*frame.Series, error) {
	if err := e.Fit(col); err != nil {
		return nil, err
	}

	return e.Transform(col)
}

// Categories returns the fitted categories of a column.
func (e *OneHotEncoder) Categories(name string) ([]string, error) {
	if e.categories == nil {
		return nil, ErrNotFitted
	}
	categories, ok := e.categories[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownColumn, name)
	}

	out := make([]string, len(categories))
	copy(out, categories)

	return out, nil
}

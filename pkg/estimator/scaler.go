package estimator

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Scaler maps numeric columns onto a model-friendly range and back. NaN
// entries pass through every direction untouched.
type Scaler interface {
	// Fit learns the scaling parameters of a named column.
	Fit(name string, values []float64) error
	// Transform scales a fitted column.
	Transform(name string, values []float64) ([]float64, error)
	// InverseTransform undoes the scaling of a fitted column.
	InverseTransform(name string, values []float64) ([]float64, error)
}

// ScalerKind names a built-in scaler for configuration purposes.
type ScalerKind string

const (
	// StandardScaling is z-score scaling.
	StandardScaling ScalerKind = "standard"
	// MinMaxScaling rescales to [0, 1].
	MinMaxScaling ScalerKind = "minmax"
	// RobustScaling centres on the median and scales by the IQR.
	RobustScaling ScalerKind = "robust"
)

// NewScaler creates a built-in scaler by kind.
func NewScaler(kind ScalerKind) (Scaler, error) {
	switch kind {
	case StandardScaling:
		return NewStandardScaler(), nil
	case MinMaxScaling:
		return NewMinMaxScaler(), nil
	case RobustScaling:
		return NewRobustScaler(), nil
	}

	return nil, errors.Errorf("unknown scaler kind %q", kind)
}

type scaleParams struct {
	center float64
	scale  float64
}

// apply runs f over the values, letting NaN through.
func apply(values []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = v

			continue
		}
		out[i] = f(v)
	}

	return out
}

type affineScaler struct {
	params map[string]scaleParams
	fit    func(values []float64) scaleParams
}

func (s *affineScaler) Fit(name string, values []float64) error {
	usable := finite(values)
	if len(usable) == 0 {
		return errors.Wrap(ErrEmptyFit, name)
	}

	if s.params == nil {
		s.params = make(map[string]scaleParams)
	}
	s.params[name] = s.fit(usable)

	return nil
}

func (s *affineScaler) lookup(name string) (scaleParams, error) {
	if s.params == nil {
		return scaleParams{}, ErrNotFitted
	}
	p, ok := s.params[name]
	if !ok {
		return scaleParams{}, errors.Wrap(ErrUnknownColumn, name)
	}

	return p, nil
}

func (s *affineScaler) Transform(name string, values []float64) ([]float64, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	return apply(values, func(v float64) float64 {
		v -= p.center
		if p.scale > 0 {
			v /= p.scale
		}

		return v
	}), nil
}

func (s *affineScaler) InverseTransform(name string, values []float64) ([]float64, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	return apply(values, func(v float64) float64 {
		if p.scale > 0 {
			v *= p.scale
		}

		return v + p.center
	}), nil
}

// StandardScaler scales to z = (x - mean) / std, with the population standard
// deviation. A constant column is only centred.
type StandardScaler struct {
	affineScaler
}

// NewStandardScaler creates a standard scaler.
func NewStandardScaler() *StandardScaler {
	s := &StandardScaler{}
	s.fit = func(values []float64) scaleParams {
		return scaleParams{center: mean(values), scale: populationStd(values)}
	}

	return s
}

// MinMaxScaler scales to (x - min) / (max - min). A constant column maps to
// zero.
type MinMaxScaler struct {
	affineScaler
}

// NewMinMaxScaler creates a min-max scaler.
func NewMinMaxScaler() *MinMaxScaler {
	s := &MinMaxScaler{}
	s.fit = func(values []float64) scaleParams {
		lo, hi := floats.Min(values), floats.Max(values)

		return scaleParams{center: lo, scale: hi - lo}
	}

	return s
}

// RobustScaler scales to (x - median) / IQR, which shrugs off outliers. A
// zero-IQR column is only centred.
type RobustScaler struct {
	affineScaler
}

// NewRobustScaler creates a robust scaler.
func NewRobustScaler() *RobustScaler {
	s := &RobustScaler{}
	s.fit = func(values []float64) scaleParams {
		return scaleParams{
			center: percentile(values, 0.5),
			scale:  percentile(values, 0.75) - percentile(values, 0.25),
		}
	}

	return s
}

var (
	_ Scaler = (*StandardScaler)(nil)
	_ Scaler = (*MinMaxScaler)(nil)
	_ Scaler = (*RobustScaler)(nil)
)

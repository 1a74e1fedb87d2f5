package postprocess

import (
	"github.com/pkg/errors"

	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/preprocess"
)

// ErrNotReversible is returned when the run the postprocessor was built from
// skipped the estimator the inverse needs.
var ErrNotReversible = errors.New("run fitted no estimator able to reverse this transformation")

// StandardPostprocessor decodes processed output using the estimators a
// preprocess run fitted.
type StandardPostprocessor struct {
	arts preprocess.Artifacts
}

// NewStandard creates a postprocessor from the artifacts of a process run.
func NewStandard(arts preprocess.Artifacts) *StandardPostprocessor {
	return &StandardPostprocessor{arts: arts}
}

// DecodeTarget maps raw predictions for the target column back to its
// original domain: label-encoded targets decode to their classes, scaled
// numeric targets unscale, unscaled numeric targets pass through.
func (pp *StandardPostprocessor) DecodeTarget(preds []float64) (*frame.Series, error) {
	name := pp.arts.Target

	if pp.arts.TargetEncoded {
		if pp.arts.LabelEncoder == nil {
			return nil, errors.Wrap(ErrNotReversible, name)
		}

		return pp.arts.LabelEncoder.InverseTransform(frame.FloatSeries(name, preds))
	}

	switch pp.arts.TargetRole {
	case preprocess.RoleNumber:
		if !pp.arts.TargetScaled {
			return frame.FloatSeries(name, preds), nil
		}
		if pp.arts.Scaler == nil {
			return nil, errors.Wrap(ErrNotReversible, name)
		}
		raw, err := pp.arts.Scaler.InverseTransform(name, preds)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}

		return frame.FloatSeries(name, raw), nil
	case preprocess.RoleBinary, preprocess.RoleCategory, preprocess.RoleID:
	}

	// a categoric target never goes through a reversible encoding
	return nil, errors.Wrap(ErrNotReversible, name)
}

// InverseScale undoes the numeric feature scaling on a processed frame.
// Columns the scaler never saw pass through untouched.
func (pp *StandardPostprocessor) InverseScale(f *frame.Frame) (*frame.Frame, error) {
	if pp.arts.Scaler == nil {
		return nil, ErrNotReversible
	}

	out := f.Clone()
	for _, name := range pp.arts.NumericFeatures {
		if !out.HasColumn(name) {
			continue
		}
		col, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		raw, err := pp.arts.Scaler.InverseTransform(name, col.Floats())
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		if err := out.SetColumn(frame.FloatSeries(name, raw)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

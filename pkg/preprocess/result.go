package preprocess

import (
	"github.com/bowline-go/bowline/pkg/estimator"
	"github.com/bowline-go/bowline/pkg/frame"
)

// Artifacts carries everything a run fitted, so model output can later be
// mapped back to the original domain by the postprocess package.
type Artifacts struct {
	// Target is the target column name.
	Target string
	// TargetRole is the role the target column belongs to.
	TargetRole Role
	// NumericFeatures are the numeric columns of the run.
	NumericFeatures []string
	// Imputer is the fitted imputer, nil when the stage was skipped.
	Imputer *estimator.SimpleImputer
	// Scaler is the fitted scaler, nil when the stage was skipped.
	Scaler estimator.Scaler
	// LabelEncoder is the fitted binary encoder, nil when skipped.
	LabelEncoder *estimator.LabelEncoder
	// OneHotEncoder is the fitted categorical encoder, nil when skipped.
	OneHotEncoder *estimator.OneHotEncoder
	// TargetScaled reports whether the target went through the scaler.
	TargetScaled bool
	// TargetEncoded reports whether the target went through the label
	// encoder.
	TargetEncoded bool
}

// Result is the output of a Process run.
type Result struct {
	// X holds the processed feature columns and Y the processed target.
	X *frame.Frame
	Y *frame.Series

	// Train/test partitions, nil when splitting was skipped.
	XTrain *frame.Frame
	XTest  *frame.Frame
	YTrain *frame.Series
	YTest  *frame.Series

	// Artifacts are the fitted estimators of the run.
	Artifacts Artifacts
}

// Split reports whether the result carries train/test partitions.
func (r *Result) Split() bool {
	return r.XTrain != nil
}

package preprocess_test

import (
	"context"
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowline-go/bowline/pkg/estimator"
	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/preprocess"
	"github.com/bowline-go/bowline/pkg/preprocess/drawer"
	"github.com/bowline-go/bowline/pkg/preprocess/measure"
)

// adultFixture is a small cut of the usual census shape: a numeric column
// with a hole, a categoric column, and two binary columns.
func adultFixture(t *testing.T) *frame.Frame {
	t.Helper()

	f, err := frame.New(
		frame.NewSeries("age",
			frame.Number(25), frame.Number(38), frame.Number(28), frame.Missing(),
			frame.Number(45), frame.Number(33), frame.Number(52), frame.Number(41),
		),
		frame.FloatSeries("capital-gain", []float64{0, 500, 0, 300, 0, 800, 120, 90}),
		frame.StringSeries("workclass", []string{
			"Private", "Gov", "Private", "Private", "SelfEmp", "Gov", "Private", "SelfEmp",
		}),
		frame.StringSeries("sex", []string{
			"Male", "Female", "Male", "Female", "Male", "Male", "Female", "Male",
		}),
		frame.StringSeries("salary", []string{
			"<=50K", ">50K", "<=50K", "<=50K", ">50K", "<=50K", ">50K", "<=50K",
		}),
	)
	require.NoError(t, err)

	return f
}

func adultPreprocessor(t *testing.T) *preprocess.StandardPreprocessor {
	t.Helper()

	pre, err := preprocess.New(adultFixture(t),
		preprocess.WithNumericFeatures("age", "capital-gain"),
		preprocess.WithCategoricFeatures("workclass"),
		preprocess.WithBinaryFeatures("sex", "salary"),
	)
	require.NoError(t, err)

	return pre
}

func TestNewNilData(t *testing.T) {
	t.Parallel()

	_, err := preprocess.New(nil, preprocess.WithNumericFeatures("age"))
	require.ErrorIs(t, err, preprocess.ErrDataMustBeSet)
}

func TestNewNoFeatures(t *testing.T) {
	t.Parallel()

	_, err := preprocess.New(adultFixture(t))
	require.ErrorIs(t, err, preprocess.ErrNoFeatures)
}

func TestNewUnknownFeature(t *testing.T) {
	t.Parallel()

	_, err := preprocess.New(adultFixture(t), preprocess.WithNumericFeatures("non-feature"))
	require.ErrorIs(t, err, preprocess.ErrUnknownFeature)
}

func TestNewRoleOverlap(t *testing.T) {
	t.Parallel()

	_, err := preprocess.New(adultFixture(t),
		preprocess.WithNumericFeatures("age"),
		preprocess.WithBinaryFeatures("age"),
	)
	require.ErrorIs(t, err, preprocess.ErrRoleOverlap)
}

func TestNewAutoDetectConflict(t *testing.T) {
	t.Parallel()

	_, err := preprocess.New(adultFixture(t),
		preprocess.WithAutoDetect(),
		preprocess.WithNumericFeatures("age"),
	)
	require.ErrorIs(t, err, preprocess.ErrAutoDetectConflict)
}

func TestNewAutoDetect(t *testing.T) {
	t.Parallel()

	pre, err := preprocess.New(adultFixture(t), preprocess.WithAutoDetect())
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "capital-gain"}, pre.NumericFeatures())
	assert.Equal(t, []string{"workclass"}, pre.CategoricFeatures())
	assert.Equal(t, []string{"sex", "salary"}, pre.BinaryFeatures())
}

func TestFeatures(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	assert.Equal(t, []string{"age", "capital-gain", "workclass", "sex", "salary"}, pre.Features())
}

func TestProcessUnknownTarget(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	_, err := pre.Process(context.Background(), "fake target")
	require.ErrorIs(t, err, preprocess.ErrUnknownTarget)
}

func TestProcessMissingValuesFail(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	// the default imputer would fill the hole in age, so skip it
	_, err := pre.Process(context.Background(), "salary", preprocess.WithoutImputer())
	require.ErrorIs(t, err, preprocess.ErrMissingValues)
	assert.Contains(t, err.Error(), "age")
}

func TestProcessImputesMissing(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	res, err := pre.Process(context.Background(), "salary", preprocess.WithoutSplit())
	require.NoError(t, err)

	// nothing was dropped: the hole in age was filled with the mean
	assert.Equal(t, 8, res.X.NumRows())

	fill, err := res.Artifacts.Imputer.FillValue("age")
	require.NoError(t, err)
	mean, ok := fill.Float()
	require.True(t, ok)
	assert.InDelta(t, (25+38+28+45+33+52+41)/7.0, mean, 1e-9)
}

func TestProcessRemoveMissing(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	res, err := pre.Process(context.Background(), "salary",
		preprocess.WithoutImputer(),
		preprocess.WithRemoveMissing(),
		preprocess.WithoutSplit(),
	)
	require.NoError(t, err)

	// the row with the hole in age is gone
	assert.Equal(t, 7, res.X.NumRows())
	assert.Equal(t, 7, res.Y.Len())
}

func TestProcessFullRun(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	res, err := pre.Process(context.Background(), "salary", preprocess.WithoutSplit())
	require.NoError(t, err)

	// workclass expanded, salary excluded from X
	assert.Equal(t, []string{
		"age", "capital-gain", "sex",
		"workclass_Gov", "workclass_Private", "workclass_SelfEmp",
	}, res.X.ColumnNames())

	// binary features encoded to 0/1, classes sorted
	sex, err := res.X.Column("sex")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1, 0, 1, 1, 0, 1}, sex.Floats())

	// the target is label encoded too: "<=50K" sorts before ">50K"
	assert.Equal(t, []float64{0, 1, 0, 0, 1, 0, 1, 0}, res.Y.Floats())

	// scaled numeric features are centred
	age, err := res.X.Column("age")
	require.NoError(t, err)
	var sum float64
	for _, v := range age.Floats() {
		sum += v
	}
	assert.InDelta(t, 0, sum, 1e-9)

	assert.True(t, res.Artifacts.TargetEncoded)
	assert.False(t, res.Artifacts.TargetScaled)
	assert.Equal(t, preprocess.RoleBinary, res.Artifacts.TargetRole)
	assert.False(t, res.Split())
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	data := adultFixture(t)
	snapshot := data.Clone()

	pre, err := preprocess.New(data,
		preprocess.WithNumericFeatures("age", "capital-gain"),
		preprocess.WithCategoricFeatures("workclass"),
		preprocess.WithBinaryFeatures("sex", "salary"),
	)
	require.NoError(t, err)

	_, err = pre.Process(context.Background(), "salary", preprocess.WithoutSplit())
	require.NoError(t, err)

	assert.True(t, data.Equal(snapshot))
}

func TestProcessSplit(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	res, err := pre.Process(context.Background(), "salary", preprocess.WithSeed(2020))
	require.NoError(t, err)

	require.True(t, res.Split())
	assert.Equal(t, 6, res.XTrain.NumRows())
	assert.Equal(t, 2, res.XTest.NumRows())
	assert.Equal(t, 6, res.YTrain.Len())
	assert.Equal(t, 2, res.YTest.Len())

	// same seed, same partition
	again, err := pre.Process(context.Background(), "salary", preprocess.WithSeed(2020))
	require.NoError(t, err)
	assert.True(t, res.XTrain.Equal(again.XTrain))
	assert.True(t, res.YTest.Equal(again.YTest))
}

func TestProcessNoEstimators(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	res, err := pre.Process(context.Background(), "salary",
		preprocess.WithoutImputer(),
		preprocess.WithoutScaler(),
		preprocess.WithoutLabelEncoder(),
		preprocess.WithoutOneHotEncoder(),
		preprocess.WithoutSplit(),
		preprocess.WithRemoveMissing(),
	)
	require.NoError(t, err)

	// untouched values, original columns, minus the dropped row and target
	assert.Equal(t, []string{"age", "capital-gain", "workclass", "sex"}, res.X.ColumnNames())
	assert.Equal(t, []string{"<=50K", ">50K", "<=50K", ">50K", "<=50K", ">50K", "<=50K"}, res.Y.Strings())

	workclass, err := res.X.Column("workclass")
	require.NoError(t, err)
	assert.Equal(t, "Private", workclass.At(0).Format())

	assert.Nil(t, res.Artifacts.Imputer)
	assert.Nil(t, res.Artifacts.Scaler)
	assert.Nil(t, res.Artifacts.LabelEncoder)
	assert.Nil(t, res.Artifacts.OneHotEncoder)
}

func TestProcessNumericTargetScaling(t *testing.T) {
	t.Parallel()

	data, err := frame.New(
		frame.FloatSeries("age", []float64{20, 30, 40, 50}),
		frame.FloatSeries("price", []float64{100, 200, 300, 400}),
	)
	require.NoError(t, err)

	pre, err := preprocess.New(data, preprocess.WithNumericFeatures("age", "price"))
	require.NoError(t, err)

	res, err := pre.Process(context.Background(), "price", preprocess.WithoutSplit())
	require.NoError(t, err)
	assert.True(t, res.Artifacts.TargetScaled)

	var sum float64
	for _, v := range res.Y.Floats() {
		sum += v
	}
	assert.InDelta(t, 0, sum, 1e-9)

	unscaled, err := pre.Process(context.Background(), "price",
		preprocess.WithoutSplit(), preprocess.WithoutTargetScaling())
	require.NoError(t, err)
	assert.False(t, unscaled.Artifacts.TargetScaled)
	assert.Equal(t, []float64{100, 200, 300, 400}, unscaled.Y.Floats())
}

func TestProcessCustomEstimators(t *testing.T) {
	t.Parallel()

	data, err := frame.New(
		frame.NewSeries("age", frame.Number(10), frame.Missing(), frame.Number(30), frame.Number(20)),
		frame.StringSeries("salary", []string{"lo", "hi", "lo", "hi"}),
	)
	require.NoError(t, err)

	pre, err := preprocess.New(data,
		preprocess.WithNumericFeatures("age"),
		preprocess.WithBinaryFeatures("salary"),
	)
	require.NoError(t, err)

	res, err := pre.Process(context.Background(), "salary",
		preprocess.WithImputer(estimator.NewSimpleImputer(estimator.Constant).WithConstant(frame.Number(0))),
		preprocess.WithScaler(estimator.NewMinMaxScaler()),
		preprocess.WithoutSplit(),
	)
	require.NoError(t, err)

	age, err := res.X.Column("age")
	require.NoError(t, err)
	// constant imputation to 0, then min-max over [0, 30]
	assert.InDeltaSlice(t, []float64{1.0 / 3, 0, 1, 2.0 / 3}, age.Floats(), 1e-12)
}

func TestProcessConcurrentColumns(t *testing.T) {
	t.Parallel()

	pre := adultPreprocessor(t)
	res, err := pre.Process(context.Background(), "salary",
		preprocess.WithConcurrency(4),
		preprocess.WithSeed(11),
	)
	require.NoError(t, err)

	sequential, err := pre.Process(context.Background(), "salary", preprocess.WithSeed(11))
	require.NoError(t, err)
	assert.True(t, res.XTrain.Equal(sequential.XTrain))
}

func TestProcessCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pre := adultPreprocessor(t)
	_, err := pre.Process(ctx, "salary")
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcessObservers(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	msr := measure.New()
	drw := drawer.New(fsys, "plan.dot")

	pre := adultPreprocessor(t)
	_, err := pre.Process(context.Background(), "salary",
		preprocess.WithSeed(1),
		preprocess.WithObservers(msr, drw),
	)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"impute", "check-missing", "label-encode", "one-hot", "scale", "split"},
		msr.StageNames(),
	)

	raw, err := afero.ReadFile(fsys, "plan.dot")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"one-hot" -> "scale"`)
}

func TestProcessScaleValues(t *testing.T) {
	t.Parallel()

	data, err := frame.New(
		frame.FloatSeries("x", []float64{2, 4, 4, 4, 5, 5, 7, 9}),
		frame.StringSeries("label", []string{"a", "b", "a", "b", "a", "b", "a", "b"}),
	)
	require.NoError(t, err)

	pre, err := preprocess.New(data,
		preprocess.WithNumericFeatures("x"),
		preprocess.WithBinaryFeatures("label"),
	)
	require.NoError(t, err)

	res, err := pre.Process(context.Background(), "label", preprocess.WithoutSplit())
	require.NoError(t, err)

	col, err := res.X.Column("x")
	require.NoError(t, err)
	// mean 5, population std 2
	want := []float64{-1.5, -0.5, -0.5, -0.5, 0, 0, 1, 2}
	got := col.Floats()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(got[i]) {
			t.Fatalf("unexpected NaN at %d", i)
		}
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}

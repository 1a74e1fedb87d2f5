package postprocess_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/postprocess"
	"github.com/bowline-go/bowline/pkg/preprocess"
)

func binaryTargetRun(t *testing.T) *preprocess.Result {
	t.Helper()

	data, err := frame.New(
		frame.FloatSeries("age", []float64{20, 30, 40, 50}),
		frame.StringSeries("salary", []string{"<=50K", ">50K", "<=50K", ">50K"}),
	)
	require.NoError(t, err)

	pre, err := preprocess.New(data,
		preprocess.WithNumericFeatures("age"),
		preprocess.WithBinaryFeatures("salary"),
	)
	require.NoError(t, err)

	res, err := pre.Process(context.Background(), "salary", preprocess.WithoutSplit())
	require.NoError(t, err)

	return res
}

func TestDecodeBinaryTarget(t *testing.T) {
	t.Parallel()

	res := binaryTargetRun(t)
	post := postprocess.NewStandard(res.Artifacts)

	// raw scores round to the nearest class code
	decoded, err := post.DecodeTarget([]float64{0.1, 0.9, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"<=50K", ">50K", "<=50K", ">50K"}, decoded.Strings())
	assert.Equal(t, "salary", decoded.Name())
}

func TestDecodeScaledNumericTarget(t *testing.T) {
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

	post := postprocess.NewStandard(res.Artifacts)
	decoded, err := post.DecodeTarget(res.Y.Floats())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100, 200, 300, 400}, decoded.Floats(), 1e-9)
}

func TestDecodeUnscaledNumericTargetPassesThrough(t *testing.T) {
	t.Parallel()

	data, err := frame.New(
		frame.FloatSeries("age", []float64{20, 30, 40, 50}),
		frame.FloatSeries("price", []float64{100, 200, 300, 400}),
	)
	require.NoError(t, err)

	pre, err := preprocess.New(data, preprocess.WithNumericFeatures("age", "price"))
	require.NoError(t, err)
	res, err := pre.Process(context.Background(), "price",
		preprocess.WithoutSplit(), preprocess.WithoutTargetScaling())
	require.NoError(t, err)

	post := postprocess.NewStandard(res.Artifacts)
	decoded, err := post.DecodeTarget([]float64{150, 250})
	require.NoError(t, err)
	assert.Equal(t, []float64{150, 250}, decoded.Floats())
}

func TestDecodeCategoricTargetNotReversible(t *testing.T) {
	t.Parallel()

	data, err := frame.New(
		frame.FloatSeries("age", []float64{20, 30, 40, 50}),
		frame.StringSeries("city", []string{"rome", "oslo", "kyiv", "rome"}),
	)
	require.NoError(t, err)

	pre, err := preprocess.New(data,
		preprocess.WithNumericFeatures("age"),
		preprocess.WithCategoricFeatures("city"),
	)
	require.NoError(t, err)
	res, err := pre.Process(context.Background(), "city", preprocess.WithoutSplit())
	require.NoError(t, err)

	post := postprocess.NewStandard(res.Artifacts)
	_, err = post.DecodeTarget([]float64{0, 1})
	require.ErrorIs(t, err, postprocess.ErrNotReversible)
}

func TestDecodeBinaryTargetWithoutEncoder(t *testing.T) {
	t.Parallel()

	data, err := frame.New(
		frame.FloatSeries("age", []float64{20, 30, 40, 50}),
		frame.FloatSeries("flag", []float64{0, 1, 0, 1}),
	)
	require.NoError(t, err)

	pre, err := preprocess.New(data,
		preprocess.WithNumericFeatures("age"),
		preprocess.WithBinaryFeatures("flag"),
	)
	require.NoError(t, err)
	res, err := pre.Process(context.Background(), "flag",
		preprocess.WithoutSplit(), preprocess.WithoutLabelEncoder())
	require.NoError(t, err)

	post := postprocess.NewStandard(res.Artifacts)
	_, err = post.DecodeTarget([]float64{0, 1})
	require.ErrorIs(t, err, postprocess.ErrNotReversible)
}

func TestInverseScale(t *testing.T) {
	t.Parallel()

	res := binaryTargetRun(t)
	post := postprocess.NewStandard(res.Artifacts)

	back, err := post.InverseScale(res.X)
	require.NoError(t, err)

	age, err := back.Column("age")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{20, 30, 40, 50}, age.Floats(), 1e-9)

	// the processed frame itself stays scaled
	scaled, err := res.X.Column("age")
	require.NoError(t, err)
	assert.InDelta(t, 0, scaled.Floats()[0]+scaled.Floats()[3], 1e-9)
}

func TestInverseScaleWithoutScaler(t *testing.T) {
	t.Parallel()

	data, err := frame.New(
		frame.FloatSeries("age", []float64{20, 30}),
		frame.StringSeries("salary", []string{"a", "b"}),
	)
	require.NoError(t, err)

	pre, err := preprocess.New(data,
		preprocess.WithNumericFeatures("age"),
		preprocess.WithBinaryFeatures("salary"),
	)
	require.NoError(t, err)
	res, err := pre.Process(context.Background(), "salary",
		preprocess.WithoutSplit(), preprocess.WithoutScaler())
	require.NoError(t, err)

	post := postprocess.NewStandard(res.Artifacts)
	_, err = post.InverseScale(res.X)
	require.ErrorIs(t, err, postprocess.ErrNotReversible)
}

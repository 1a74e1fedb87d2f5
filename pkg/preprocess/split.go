package preprocess

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/bowline-go/bowline/pkg/frame"
)

const defaultTestSize = 0.25

// ShuffledSplit is the default Splitter. It shuffles the row order with the
// given seed and hands the first ceil(n*testSize) rows to the test partition.
func ShuffledSplit(x *frame.Frame, y *frame.Series, testSize float64, seed int64) (*frame.Frame, *frame.Frame, *frame.Series, *frame.Series, error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.Wrapf(ErrTestSize, "%v", testSize)
	}

	n := y.Len()
	numTest := int(math.Ceil(float64(n) * testSize))

	perm := rand.New(rand.NewSource(seed)).Perm(n) //nolint:gosec //reproducible shuffling, not crypto
	testRows := perm[:numTest]
	trainRows := perm[numTest:]

	xTrain, err := x.Take(trainRows)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "unable to take train rows")
	}
	xTest, err := x.Take(testRows)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "unable to take test rows")
	}

	return xTrain, xTest, y.Take(trainRows), y.Take(testRows), nil
}

package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/preprocess"
)

func repeat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}

	return out
}

func TestDetectRole(t *testing.T) {
	t.Parallel()

	sparse := append(repeat(0, 1000), 1, 2, 3, 4, 5, 6, 7)

	heavy := repeat(0, 1000)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		heavy = append(heavy, repeat(v, 999)...)
	}
	heavy = append(heavy, 6, 7)

	tests := []struct {
		name string
		col  *frame.Series
		want preprocess.Role
	}{
		{"two values", frame.FloatSeries("c", []float64{0, 1, 1, 0}), preprocess.RoleBinary},
		{"all distinct", frame.FloatSeries("c", []float64{0, 1, 2, 3}), preprocess.RoleID},
		{"continuous", frame.FloatSeries("c", []float64{0.5, 1.2, 3.4, 4.4, 5.1, 5.1, 1.1}), preprocess.RoleNumber},
		{"sparse zeros", frame.FloatSeries("c", sparse), preprocess.RoleNumber},
		{"heavy repeats", frame.FloatSeries("c", heavy), preprocess.RoleNumber},
		{"strings", frame.StringSeries("c", []string{"married", "divorced", "single", "divorced"}), preprocess.RoleCategory},
		{"zero mode stays modal", frame.FloatSeries("c", append(repeat(0, 1000), 1, 2)), preprocess.RoleCategory},
		{"nonzero mode", frame.FloatSeries("c", append(repeat(1, 1000), 0, 2)), preprocess.RoleCategory},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, preprocess.DetectRole(tc.col))
		})
	}
}

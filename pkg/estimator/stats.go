package estimator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// finite drops NaN entries so the fitted statistics ignore missing cells.
func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}

	return out
}

func mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

// populationStd matches the scaling convention of dividing by n, not n-1.
func populationStd(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	variance := stat.Variance(values, nil) * (n - 1) / n

	return math.Sqrt(variance)
}

// percentile interpolates linearly between order statistics, the same
// convention numpy uses for quantiles.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)

	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

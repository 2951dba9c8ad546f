package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeanStdVariance(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	require.InDelta(t, 5.0, Mean(x), 1e-9)
	require.InDelta(t, 4.0, Variance(x), 1e-9)
	require.InDelta(t, 2.0, Std(x), 1e-9)
}

func TestEmptyInputIsNaN(t *testing.T) {
	require.True(t, math.IsNaN(Mean(nil)))
	require.True(t, math.IsNaN(Median(nil)))
	require.True(t, math.IsNaN(Min(nil)))
	require.True(t, math.IsNaN(Max(nil)))
	require.True(t, math.IsNaN(Mode(nil)))
	require.True(t, math.IsNaN(MAD(nil)))
}

func TestPercentileInterpolates(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	require.InDelta(t, 1.0, Percentile(x, 0), 1e-9)
	require.InDelta(t, 4.0, Percentile(x, 100), 1e-9)
	require.InDelta(t, 2.5, Percentile(x, 50), 1e-9)
	require.InDelta(t, 1.75, Percentile(x, 25), 1e-9)
}

func TestMedianOddAndEven(t *testing.T) {
	require.InDelta(t, 3.0, Median([]float64{5, 1, 3}), 1e-9)
	require.InDelta(t, 2.5, Median([]float64{4, 1, 2, 3}), 1e-9)
}

func TestModeBreaksTiesLow(t *testing.T) {
	require.InDelta(t, 1.0, Mode([]float64{2, 1, 2, 1}), 1e-9)
	require.InDelta(t, 7.0, Mode([]float64{7, 7, 1, 2}), 1e-9)
}

func TestMAD(t *testing.T) {
	// median = 2, deviations = {1, 0, 1, 2}, median of deviations = 1.
	require.InDelta(t, 1.0, MAD([]float64{1, 2, 3, 4}), 1e-9)
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	up := []float64{2, 4, 6, 8, 10}
	down := []float64{10, 8, 6, 4, 2}

	require.InDelta(t, 1.0, Correlation(x, up), 1e-9)
	require.InDelta(t, -1.0, Correlation(x, down), 1e-9)
	require.True(t, math.IsNaN(Correlation(x, []float64{3, 3, 3, 3, 3})))
}

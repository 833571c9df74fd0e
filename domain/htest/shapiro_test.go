package htest

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/core"
)

func TestShapiroWilkNormalSampleFailsToReject(t *testing.T) {
	x := normalScores(100, 5, 10)

	tt := NewShapiroWilkTest()
	require.NoError(t, tt.Fit(x))

	params := tt.Params()
	assert.Greater(t, params.PValue, 0.05)
	assert.Greater(t, params.Statistic, 0.98, "W should sit near 1 for normal data")
	assert.LessOrEqual(t, params.Statistic, 1.0)
}

func TestShapiroWilkUniformSampleRejects(t *testing.T) {
	x := uniformGrid(100, 0, 1)

	tt := NewShapiroWilkTest()
	require.NoError(t, tt.Fit(x))
	assert.LessOrEqual(t, tt.Params().PValue, 0.05)
}

func TestShapiroWilkSkewedSampleRejects(t *testing.T) {
	// Squaring normal scores produces a strongly right-skewed sample.
	base := normalScores(200, 0, 1)
	x := make([]float64, len(base))
	for i, v := range base {
		x[i] = v * v
	}

	tt := NewShapiroWilkTest()
	require.NoError(t, tt.Fit(x))
	assert.LessOrEqual(t, tt.Params().PValue, 0.05)
}

func TestShapiroWilkSmallestSample(t *testing.T) {
	// n=3 takes the exact arcsine branch.
	tt := NewShapiroWilkTest()
	require.NoError(t, tt.Fit([]float64{1, 2, 10}))

	params := tt.Params()
	assert.Greater(t, params.Statistic, 0.0)
	assert.LessOrEqual(t, params.Statistic, 1.0)
	assert.Greater(t, params.PValue, 0.0)
	assert.LessOrEqual(t, params.PValue, 1.0)
}

func TestShapiroWilkPerfectlyLinearTriple(t *testing.T) {
	// Three equally spaced points align exactly with the normal scores.
	tt := NewShapiroWilkTest()
	require.NoError(t, tt.Fit([]float64{1, 2, 3}))
	assert.InDelta(t, 1.0, tt.Params().Statistic, 1e-12)
	assert.InDelta(t, 1.0, tt.Params().PValue, 1e-12)
}

func TestShapiroWilkSampleTooSmall(t *testing.T) {
	tt := NewShapiroWilkTest()
	err := tt.Fit([]float64{1, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSampleTooSmall))
	assert.False(t, tt.Params().IsFitted)
}

func TestShapiroWilkSampleTooLarge(t *testing.T) {
	tt := NewShapiroWilkTest()
	err := tt.Fit(normalScores(5001, 0, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSampleTooLarge))
	assert.False(t, tt.Params().IsFitted)
}

func TestShapiroWilkZeroRange(t *testing.T) {
	tt := NewShapiroWilkTest()
	err := tt.Fit(constant(20, 4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrZeroVariance))
}

func TestShapiroWilkRejectsNonFinite(t *testing.T) {
	tt := NewShapiroWilkTest()
	err := tt.Fit([]float64{1, 2, math.NaN(), 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNonFinite))
}

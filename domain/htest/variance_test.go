package htest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/core"
)

func TestVarianceTestsEqualScaleFailToReject(t *testing.T) {
	x := normalScores(1000, 5, 10)
	y := normalScores(1000, 8, 10)

	for _, tt := range []TwoSampleTest{NewBartlettTest(), NewLeveneTest()} {
		require.NoError(t, tt.Fit(x, y), "fit %s", tt.Kind())
		assert.Greater(t, tt.Params().PValue, 0.01, "%s on equal scales", tt.Kind())
	}
}

func TestVarianceTestsUnequalScaleReject(t *testing.T) {
	x := normalScores(1000, 5, 1)
	y := normalScores(1000, 5, 10)

	for _, tt := range []TwoSampleTest{NewBartlettTest(), NewLeveneTest()} {
		require.NoError(t, tt.Fit(x, y), "fit %s", tt.Kind())
		assert.LessOrEqual(t, tt.Params().PValue, 0.01, "%s on 1x vs 10x scale", tt.Kind())
	}
}

func TestVarianceTestsAreSymmetric(t *testing.T) {
	x := normalScores(200, 0, 2)
	y := normalScores(150, 0, 3)

	for _, build := range []func(...Option) TwoSampleTest{
		func(opts ...Option) TwoSampleTest { return NewBartlettTest(opts...) },
		func(opts ...Option) TwoSampleTest { return NewLeveneTest(opts...) },
	} {
		fwd := build()
		rev := build()
		require.NoError(t, fwd.Fit(x, y))
		require.NoError(t, rev.Fit(y, x))
		assert.InDelta(t, fwd.Params().Statistic, rev.Params().Statistic, 1e-9)
		assert.InDelta(t, fwd.Params().PValue, rev.Params().PValue, 1e-9)
	}
}

func TestBartlettZeroVariance(t *testing.T) {
	tt := NewBartlettTest()
	err := tt.Fit(constant(50, 2), normalScores(50, 0, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrZeroVariance))
	assert.False(t, tt.Params().IsFitted)
}

func TestLeveneConstantSamplesDegenerate(t *testing.T) {
	tt := NewLeveneTest()
	err := tt.Fit(constant(50, 2), constant(50, 9))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrZeroVariance))
	assert.False(t, tt.Params().IsFitted)
}

func TestLeveneRobustToSkew(t *testing.T) {
	// A heavily skewed pair with matched spread: the median-centered
	// statistic should stay finite and the p-value in range.
	base := normalScores(200, 0, 1)
	x := make([]float64, len(base))
	y := make([]float64, len(base))
	for i, v := range base {
		x[i] = v * v
		y[i] = v * v * 1.02
	}

	tt := NewLeveneTest()
	require.NoError(t, tt.Fit(x, y))
	assert.Greater(t, tt.Params().PValue, 0.01)
}

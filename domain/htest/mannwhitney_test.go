package htest

import (
	"errors"
	"math"
	"testing"

	moremath "github.com/aclements/go-moremath/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/core"
)

func TestMannWhitneyKnownStatistic(t *testing.T) {
	// All of x below all of y: U for x is zero.
	tt := NewMannWhitneyUTest()
	require.NoError(t, tt.Fit([]float64{1, 2, 3}, []float64{4, 5, 6}))
	assert.Equal(t, 0.0, tt.Params().Statistic)

	// Fully interleaved: half the pairs favor x.
	tt = NewMannWhitneyUTest()
	require.NoError(t, tt.Fit([]float64{1, 3, 5, 7}, []float64{2, 4, 6, 8}))
	assert.InDelta(t, 6.0, tt.Params().Statistic, 1e-12)
}

func TestMannWhitneyMatchesReferencePValue(t *testing.T) {
	src := newSource(21)
	x := randNormal(src, 40, 5, 10)
	y := randNormal(src, 40, 6, 10)

	ref, err := moremath.MannWhitneyUTest(x, y, moremath.LocationDiffers)
	require.NoError(t, err)

	tt := NewMannWhitneyUTest()
	require.NoError(t, tt.Fit(x, y))

	// The normal approximation with continuity correction tracks the exact
	// distribution to well within library precision at this size.
	assert.InDelta(t, ref.P, tt.Params().PValue, 1e-2)

	// U for one side plus U for the other covers every pair.
	u1 := tt.Params().Statistic
	n1n2 := float64(len(x) * len(y))
	assert.InDelta(t, ref.U, math.Min(u1, n1n2-u1), 1e-9)
}

func TestMannWhitneyEqualLocationFailsToReject(t *testing.T) {
	x := normalScores(100, 5, 10)
	y := normalScores(100, 5.1, 10)

	tt := NewMannWhitneyUTest()
	require.NoError(t, tt.Fit(x, y))
	assert.Greater(t, tt.Params().PValue, 0.05)
}

func TestMannWhitneyLargeShiftRejects(t *testing.T) {
	x := normalScores(100, 10, 10)
	y := normalScores(100, 5.1, 10)

	tt := NewMannWhitneyUTest()
	require.NoError(t, tt.Fit(x, y))
	assert.LessOrEqual(t, tt.Params().PValue, 0.05)
}

func TestMannWhitneyTieCorrection(t *testing.T) {
	// Heavy ties still yield a finite statistic and a sane p-value.
	x := []float64{1, 1, 2, 2, 3, 3, 4, 4}
	y := []float64{2, 2, 3, 3, 4, 4, 5, 5}

	tt := NewMannWhitneyUTest()
	require.NoError(t, tt.Fit(x, y))
	assert.False(t, math.IsNaN(tt.Params().PValue))
	assert.GreaterOrEqual(t, tt.Params().PValue, 0.0)
	assert.LessOrEqual(t, tt.Params().PValue, 1.0)
}

func TestMannWhitneyAllTiedIsDegenerate(t *testing.T) {
	tt := NewMannWhitneyUTest()
	err := tt.Fit(constant(10, 7), constant(10, 7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDegenerate))
	assert.False(t, tt.Params().IsFitted)
}

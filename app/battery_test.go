package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"hypotest/adapters/memory"
	"hypotest/domain/htest"
	"hypotest/domain/report"
)

func normalScores(n int, mu, sigma float64) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		p := (float64(i) + 0.5) / float64(n)
		out[i] = mu + sigma*distuv.UnitNormal.Quantile(p)
	}
	return out
}

func TestBatteryRunsFullSuite(t *testing.T) {
	x := normalScores(100, 5, 10)
	y := normalScores(100, 5.1, 10)

	rep, err := NewBattery().Run(context.Background(), x, y)
	require.NoError(t, err)

	// Five two-sample tests plus Shapiro-Wilk on each sample.
	require.Len(t, rep.Runs, 7)
	assert.Equal(t, DefaultAlpha, rep.Alpha)
	assert.False(t, rep.ID.IsEmpty())
	require.Len(t, rep.Samples, 2)
	assert.Equal(t, "x", rep.Samples[0].Label)
	assert.Equal(t, "y", rep.Samples[1].Label)

	kinds := make(map[htest.Kind]int)
	for _, run := range rep.Runs {
		assert.True(t, run.IsFitted, "%s should fit on well-behaved samples", run.Kind)
		kinds[run.Kind]++
	}
	for _, kind := range htest.TwoSampleKinds() {
		assert.Equal(t, 1, kinds[kind], "one run per two-sample kind")
	}
	assert.Equal(t, 2, kinds[htest.KindShapiroWilk], "normality check per sample")

	// Nearly identical distributions: nothing should be rejected.
	assert.Empty(t, rep.Rejections())
	assert.Empty(t, rep.Failed())
}

func TestBatteryDetectsLocationShift(t *testing.T) {
	x := normalScores(100, 10, 10)
	y := normalScores(100, 5.1, 10)

	rep, err := NewBattery().Run(context.Background(), x, y)
	require.NoError(t, err)

	rejected := make(map[htest.Kind]bool)
	for _, run := range rep.Rejections() {
		rejected[run.Kind] = true
	}
	assert.True(t, rejected[htest.KindStudent])
	assert.True(t, rejected[htest.KindMannWhitneyU])
	assert.True(t, rejected[htest.KindKolmogorovSmirnov])
}

func TestBatteryRecordsPartialFailures(t *testing.T) {
	// A constant x sample breaks the variance-based tests but not the suite.
	x := make([]float64, 50)
	for i := range x {
		x[i] = 3
	}
	y := normalScores(50, 0, 1)

	rep, err := NewBattery().Run(context.Background(), x, y)
	require.NoError(t, err)
	require.Len(t, rep.Runs, 7)

	failed := rep.Failed()
	assert.NotEmpty(t, failed)
	for _, run := range failed {
		assert.NotEmpty(t, run.Error)
		assert.NotEmpty(t, run.Name, "failed runs keep their identity")
		assert.Equal(t, report.ConclusionInconclusive, run.Conclude(rep.Alpha))
	}
}

func TestBatteryStoresRunsInLedger(t *testing.T) {
	ledger := memory.NewRunLedger()
	b := NewBattery(WithLedger(ledger), WithAlpha(0.01))

	rep, err := b.Run(context.Background(), normalScores(60, 0, 1), normalScores(60, 0.2, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.01, rep.Alpha)

	stored, err := ledger.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, stored, len(rep.Runs))
}

func TestBatteryHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBattery().Run(ctx, normalScores(60, 0, 1), normalScores(60, 0, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

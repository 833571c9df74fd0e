package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/htest"
)

func fittedRun(t *testing.T, pValue float64) Run {
	t.Helper()
	res := htest.Result{
		Kind:           htest.KindStudent,
		Name:           "Student's t-test",
		Statistic:      2.5,
		PValue:         pValue,
		NullHypothesis: "μ1 = μ2",
		IsFitted:       true,
	}
	return NewRun(res, 100, 100)
}

func TestNewRunCarriesResultFields(t *testing.T) {
	run := fittedRun(t, 0.03)

	assert.False(t, run.ID.IsEmpty())
	assert.Equal(t, htest.KindStudent, run.Kind)
	assert.Equal(t, "Student's t-test", run.Name)
	assert.Equal(t, 0.03, run.PValue)
	assert.True(t, run.IsFitted)
	assert.Equal(t, 100, run.SampleSizeX)
	assert.Equal(t, 100, run.SampleSizeY)
	assert.Empty(t, run.Error)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestNewFailedRunKeepsIdentity(t *testing.T) {
	run := NewFailedRun(htest.KindBartlett, "Bartlett's test", "σ1² = σ2²", 10, 10,
		errors.New("sample x has zero variance"))

	assert.Equal(t, htest.KindBartlett, run.Kind)
	assert.Equal(t, "Bartlett's test", run.Name)
	assert.False(t, run.IsFitted)
	assert.Contains(t, run.Error, "zero variance")
}

func TestConclude(t *testing.T) {
	assert.Equal(t, ConclusionReject, fittedRun(t, 0.01).Conclude(0.05))
	assert.Equal(t, ConclusionReject, fittedRun(t, 0.05).Conclude(0.05), "boundary rejects")
	assert.Equal(t, ConclusionFailToReject, fittedRun(t, 0.2).Conclude(0.05))

	failed := NewFailedRun(htest.KindStudent, "Student's t-test", "μ1 = μ2", 5, 5,
		errors.New("boom"))
	assert.Equal(t, ConclusionInconclusive, failed.Conclude(0.05))
}

func TestSummarize(t *testing.T) {
	s := Summarize("x", []float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, "x", s.Label)
	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 4.5, s.Median, 1e-12)
	assert.InDelta(t, 2.13808993, s.StdDev, 1e-6)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
}

func TestReportRejectionsAndFailed(t *testing.T) {
	rep := &Report{
		Alpha: 0.05,
		Runs: []Run{
			fittedRun(t, 0.001),
			fittedRun(t, 0.5),
			NewFailedRun(htest.KindLevene, "Levene's test", "σ1² = σ2²", 3, 3,
				errors.New("degenerate")),
		},
	}

	rejected := rep.Rejections()
	require.Len(t, rejected, 1)
	assert.Equal(t, 0.001, rejected[0].PValue)

	failed := rep.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, htest.KindLevene, failed[0].Kind)
}

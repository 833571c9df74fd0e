package htest

import (
	"fmt"
	"math"
	"sort"

	"hypotest/domain/core"
)

// MannWhitneyUTest is the non-parametric analogue of Student's t-test. It
// reports the U statistic for the first sample and a two-sided p-value from
// the normal approximation with tie correction and continuity correction.
type MannWhitneyUTest struct {
	params   Result
	renderer Renderer
}

// NewMannWhitneyUTest creates an unfitted Mann-Whitney U test.
func NewMannWhitneyUTest(opts ...Option) *MannWhitneyUTest {
	cfg := applyOptions(opts)
	return &MannWhitneyUTest{
		params:   newResult(KindMannWhitneyU),
		renderer: cfg.renderer,
	}
}

// Kind returns KindMannWhitneyU.
func (t *MannWhitneyUTest) Kind() Kind { return KindMannWhitneyU }

// Params returns the owned result record.
func (t *MannWhitneyUTest) Params() Result { return t.params }

// Fit runs the rank-sum test on x and y.
func (t *MannWhitneyUTest) Fit(x, y []float64, opts ...FitOption) error {
	return fitTwoSample(&t.params, x, y, 2, t.compute, t.renderTask(x, y), opts)
}

func (t *MannWhitneyUTest) compute(x, y []float64) (float64, float64, error) {
	n1 := float64(len(x))
	n2 := float64(len(y))
	n := n1 + n2

	rankSumX, tieSum := rankSum(x, y)

	u1 := rankSumX - n1*(n1+1)/2
	mean := n1 * n2 / 2
	variance := n1 * n2 / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if variance <= 0 {
		return 0, 0, fmt.Errorf("%w: all observations are tied", core.ErrDegenerate)
	}

	// Continuity correction of 0.5 toward the mean.
	numerator := math.Abs(u1-mean) - 0.5
	if numerator < 0 {
		numerator = 0
	}
	z := numerator / math.Sqrt(variance)
	return u1, twoSidedNormalPValue(z), nil
}

func (t *MannWhitneyUTest) renderTask(x, y []float64) renderFunc {
	if t.renderer == nil {
		return nil
	}
	return func() error { return t.renderer.DistributionOverlay(x, y, t.params) }
}

// rankSum computes the sum of mid-ranks assigned to x in the pooled sample,
// along with Σ(t³ - t) over tie groups for the variance correction.
func rankSum(x, y []float64) (sumX, tieSum float64) {
	type obs struct {
		value float64
		fromX bool
	}
	pooled := make([]obs, 0, len(x)+len(y))
	for _, v := range x {
		pooled = append(pooled, obs{value: v, fromX: true})
	}
	for _, v := range y {
		pooled = append(pooled, obs{value: v})
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	for i := 0; i < len(pooled); {
		j := i
		for j < len(pooled) && pooled[j].value == pooled[i].value {
			j++
		}
		// Mid-rank shared by the tie group [i, j).
		rank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if pooled[k].fromX {
				sumX += rank
			}
		}
		if size := float64(j - i); size > 1 {
			tieSum += size*size*size - size
		}
		i = j
	}
	return sumX, tieSum
}

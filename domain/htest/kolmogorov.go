package htest

import (
	"math"
	"sort"
)

// KolmogorovSmirnovTest compares the full shape of two empirical
// distributions. The statistic is the exact maximum distance between the two
// ECDFs; the two-sided p-value uses the asymptotic Kolmogorov distribution
// with Stephens' small-sample adjustment, so it should be trusted mainly for
// reasonably large samples.
type KolmogorovSmirnovTest struct {
	params   Result
	renderer Renderer
}

// NewKolmogorovSmirnovTest creates an unfitted Kolmogorov-Smirnov test.
func NewKolmogorovSmirnovTest(opts ...Option) *KolmogorovSmirnovTest {
	cfg := applyOptions(opts)
	return &KolmogorovSmirnovTest{
		params:   newResult(KindKolmogorovSmirnov),
		renderer: cfg.renderer,
	}
}

// Kind returns KindKolmogorovSmirnov.
func (t *KolmogorovSmirnovTest) Kind() Kind { return KindKolmogorovSmirnov }

// Params returns the owned result record.
func (t *KolmogorovSmirnovTest) Params() Result { return t.params }

// Fit runs the test on x and y.
func (t *KolmogorovSmirnovTest) Fit(x, y []float64, opts ...FitOption) error {
	return fitTwoSample(&t.params, x, y, 1, t.compute, t.renderTask(x, y), opts)
}

func (t *KolmogorovSmirnovTest) compute(x, y []float64) (float64, float64, error) {
	d := ksDistance(x, y)

	n1 := float64(len(x))
	n2 := float64(len(y))
	en := math.Sqrt(n1 * n2 / (n1 + n2))
	lambda := (en + 0.12 + 0.11/en) * d
	return d, kolmogorovSurvival(lambda), nil
}

func (t *KolmogorovSmirnovTest) renderTask(x, y []float64) renderFunc {
	if t.renderer == nil {
		return nil
	}
	return func() error { return t.renderer.ECDFOverlay(x, y, t.params) }
}

// ksDistance computes sup |F1 - F2| over the pooled support.
func ksDistance(x, y []float64) float64 {
	sx := sortedCopy(x)
	sy := sortedCopy(y)
	n1 := float64(len(sx))
	n2 := float64(len(sy))

	var d float64
	i, j := 0, 0
	for i < len(sx) && j < len(sy) {
		v := sx[i]
		if sy[j] < v {
			v = sy[j]
		}
		for i < len(sx) && sx[i] == v {
			i++
		}
		for j < len(sy) && sy[j] == v {
			j++
		}
		diff := math.Abs(float64(i)/n1 - float64(j)/n2)
		if diff > d {
			d = diff
		}
	}
	return d
}

func sortedCopy(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	sort.Float64s(out)
	return out
}

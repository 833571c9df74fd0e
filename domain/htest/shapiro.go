package htest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"hypotest/domain/core"
)

// ShapiroWilkTest checks whether a single sample was drawn from a normal
// distribution, using Royston's AS R94 approximation (valid for
// 3 <= n <= 5000). At very large n the test rejects for trivial departures
// from normality, so callers should not over-trust it there.
type ShapiroWilkTest struct {
	params   Result
	renderer Renderer
}

// NewShapiroWilkTest creates an unfitted Shapiro-Wilk test.
func NewShapiroWilkTest(opts ...Option) *ShapiroWilkTest {
	cfg := applyOptions(opts)
	return &ShapiroWilkTest{
		params:   newResult(KindShapiroWilk),
		renderer: cfg.renderer,
	}
}

// Kind returns KindShapiroWilk.
func (t *ShapiroWilkTest) Kind() Kind { return KindShapiroWilk }

// Params returns the owned result record.
func (t *ShapiroWilkTest) Params() Result { return t.params }

// Fit runs the test on x.
func (t *ShapiroWilkTest) Fit(x []float64, opts ...FitOption) error {
	return fitOneSample(&t.params, x, 3, t.compute, t.renderTask(x), opts)
}

func (t *ShapiroWilkTest) compute(x []float64) (float64, float64, error) {
	n := len(x)
	if n > 5000 {
		return 0, 0, fmt.Errorf("%w: Shapiro-Wilk approximation holds up to n=5000, got %d", core.ErrSampleTooLarge, n)
	}

	sorted := sortedCopy(x)
	if sorted[n-1] == sorted[0] {
		return 0, 0, fmt.Errorf("%w: sample has zero range", core.ErrZeroVariance)
	}

	w := shapiroWilkW(sorted)
	p := shapiroWilkPValue(w, n)
	return w, p, nil
}

func (t *ShapiroWilkTest) renderTask(x []float64) renderFunc {
	if t.renderer == nil {
		return nil
	}
	return func() error { return t.renderer.NormalFit(x, t.params) }
}

// shapiroWilkW computes the W statistic from an ascending sample using
// Royston's polynomial approximation to the optimal weights.
func shapiroWilkW(sorted []float64) float64 {
	n := len(sorted)
	nf := float64(n)

	// Expected normal order statistics (Blom's approximation).
	m := make([]float64, n)
	ssm := 0.0
	for i := 0; i < n; i++ {
		m[i] = normalQuantile((float64(i+1) - 0.375) / (nf + 0.25))
		ssm += m[i] * m[i]
	}

	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
	} else {
		u := 1 / math.Sqrt(nf)
		rms := math.Sqrt(ssm)
		an := m[n-1]/rms + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*-2.706056))))

		var phi float64
		if n > 5 {
			an1 := m[n-2]/rms + u*(0.042981+u*(-0.293762+u*(-1.752461+u*(5.682633+u*-3.582633))))
			phi = (ssm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
			a[n-1], a[0] = an, -an
			a[n-2], a[1] = an1, -an1
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
		} else {
			phi = (ssm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			a[n-1], a[0] = an, -an
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
		}
	}

	meanX := stat.Mean(sorted, nil)
	num := 0.0
	den := 0.0
	for i, v := range sorted {
		num += a[i] * v
		den += (v - meanX) * (v - meanX)
	}
	w := num * num / den
	if w > 1 {
		w = 1
	}
	return w
}

// shapiroWilkPValue maps W to a p-value via Royston's normalizing transforms.
func shapiroWilkPValue(w float64, n int) float64 {
	if w >= 1 {
		return 1
	}
	nf := float64(n)

	switch {
	case n == 3:
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clampProb(p)
	case n <= 11:
		gamma := 0.459*nf - 2.273
		if gamma <= math.Log(1-w) {
			return 0
		}
		mu := 0.5440 - 0.39978*nf + 0.025054*nf*nf - 0.0006714*nf*nf*nf
		sigma := math.Exp(1.3822 - 0.77857*nf + 0.062767*nf*nf - 0.0020322*nf*nf*nf)
		z := (-math.Log(gamma-math.Log(1-w)) - mu) / sigma
		return normalSurvival(z)
	default:
		logN := math.Log(nf)
		mu := 0.0038915*logN*logN*logN - 0.083751*logN*logN - 0.31082*logN - 1.5861
		sigma := math.Exp(0.0030302*logN*logN - 0.082676*logN - 0.4803)
		z := (math.Log(1-w) - mu) / sigma
		return normalSurvival(z)
	}
}

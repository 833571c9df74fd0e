package htest

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// normalScores returns a deterministic normal-shaped sample: the n quantiles
// of N(mu, sigma²) at evenly spaced probabilities. Deterministic inputs keep
// the significance assertions stable.
func normalScores(n int, mu, sigma float64) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		p := (float64(i) + 0.5) / float64(n)
		out[i] = mu + sigma*distuv.UnitNormal.Quantile(p)
	}
	return out
}

// uniformGrid returns n evenly spaced values over [lo, hi].
func uniformGrid(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		p := (float64(i) + 0.5) / float64(n)
		out[i] = lo + p*(hi-lo)
	}
	return out
}

// randNormal draws a seeded random sample, used where results are compared
// against a reference implementation on identical data.
func randNormal(src rand.Source, n int, mu, sigma float64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

package htest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Reference distribution helpers. All p-values in this package funnel through
// these so the CDF source stays in one place.

// twoSidedTPValue computes the two-tailed p-value for a t-statistic.
func twoSidedTPValue(t, df float64) float64 {
	if df <= 0 {
		return 1.0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return clampProb(2 * (1 - dist.CDF(math.Abs(t))))
}

// twoSidedNormalPValue computes the two-tailed p-value for a z-statistic.
func twoSidedNormalPValue(z float64) float64 {
	return clampProb(2 * (1 - distuv.UnitNormal.CDF(math.Abs(z))))
}

// fSurvival computes the upper tail of the F(d1, d2) distribution.
func fSurvival(f, d1, d2 float64) float64 {
	if d1 <= 0 || d2 <= 0 {
		return 1.0
	}
	dist := distuv.F{D1: d1, D2: d2}
	return clampProb(1 - dist.CDF(f))
}

// chiSquaredSurvival computes the upper tail of the chi-squared distribution.
func chiSquaredSurvival(x, df float64) float64 {
	if df <= 0 {
		return 1.0
	}
	dist := distuv.ChiSquared{K: df}
	return clampProb(1 - dist.CDF(x))
}

// kolmogorovSurvival evaluates Q(λ) = 2 Σ (-1)^(j-1) exp(-2 j² λ²), the
// asymptotic two-sided tail of the Kolmogorov distribution.
func kolmogorovSurvival(lambda float64) float64 {
	if lambda <= 0 {
		return 1.0
	}
	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := math.Exp(-2 * float64(j) * float64(j) * lambda * lambda)
		sum += sign * term
		sign = -sign
		if term < 1e-10 {
			break
		}
	}
	return clampProb(2 * sum)
}

// normalQuantile is the standard normal inverse CDF.
func normalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// normalSurvival is the standard normal upper tail.
func normalSurvival(z float64) float64 {
	return clampProb(1 - distuv.UnitNormal.CDF(z))
}

func clampProb(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

package htest

import (
	"fmt"
	"math"
)

// Result carries the outcome of a single hypothesis test. Name and
// NullHypothesis are fixed when the owning test is constructed; Statistic,
// PValue and IsFitted are written exactly once per Fit call.
type Result struct {
	Kind           Kind    `json:"kind"`
	Name           string  `json:"name"`
	Statistic      float64 `json:"statistic"`
	PValue         float64 `json:"p_value"`
	NullHypothesis string  `json:"null_hypothesis"`
	IsFitted       bool    `json:"is_fitted"`
}

// newResult creates an unfitted result for the given kind. Statistic and
// PValue hold NaN sentinels until the first successful fit.
func newResult(kind Kind) Result {
	meta := metaByKind[kind]
	return Result{
		Kind:           kind,
		Name:           meta.name,
		NullHypothesis: meta.nullHypothesis,
		Statistic:      math.NaN(),
		PValue:         math.NaN(),
	}
}

// setFitted overwrites the derived fields. Re-fitting replaces the previous
// outcome entirely.
func (r *Result) setFitted(statistic, pValue float64) {
	r.Statistic = statistic
	r.PValue = pValue
	r.IsFitted = true
}

// Reject reports whether the null hypothesis is rejected at significance
// level alpha. It is only meaningful on a fitted result.
func (r Result) Reject(alpha float64) bool {
	return r.IsFitted && r.PValue <= alpha
}

func (r Result) String() string {
	if !r.IsFitted {
		return fmt.Sprintf("%s (unfitted, H0: %s)", r.Name, r.NullHypothesis)
	}
	return fmt.Sprintf("%s: statistic=%.4f p=%.4f (H0: %s)", r.Name, r.Statistic, r.PValue, r.NullHypothesis)
}

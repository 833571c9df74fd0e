package htest

import (
	"fmt"

	"hypotest/domain/core"
)

// Kind identifies a statistical test variant
type Kind string

const (
	KindStudent           Kind = "student"
	KindMannWhitneyU      Kind = "mann_whitney_u"
	KindLevene            Kind = "levene"
	KindBartlett          Kind = "bartlett"
	KindKolmogorovSmirnov Kind = "kolmogorov_smirnov"
	KindShapiroWilk       Kind = "shapiro_wilk"
)

// testMeta carries the fixed per-kind metadata. Name and null hypothesis are
// set at construction and never change afterwards.
type testMeta struct {
	name           string
	nullHypothesis string
}

var metaByKind = map[Kind]testMeta{
	KindStudent:           {name: "Student's t-test", nullHypothesis: "μ1 = μ2"},
	KindMannWhitneyU:      {name: "Mann-Whitney U test", nullHypothesis: "P(X > Y) = P(Y > X)"},
	KindLevene:            {name: "Levene test", nullHypothesis: "σ1² = σ2²"},
	KindBartlett:          {name: "Bartlett test", nullHypothesis: "σ1² = σ2²"},
	KindKolmogorovSmirnov: {name: "Kolmogorov-Smirnov test", nullHypothesis: "the two distributions are identical"},
	KindShapiroWilk:       {name: "Shapiro-Wilk test", nullHypothesis: "X ~ N(μ, σ²)"},
}

// Valid reports whether k names a known test kind.
func (k Kind) Valid() bool {
	_, ok := metaByKind[k]
	return ok
}

// String returns the kind identifier.
func (k Kind) String() string { return string(k) }

// TwoSampleKinds lists the two-sample test variants in a stable order.
func TwoSampleKinds() []Kind {
	return []Kind{KindStudent, KindMannWhitneyU, KindLevene, KindBartlett, KindKolmogorovSmirnov}
}

// NewTwoSampleTest constructs a two-sample test of the given kind.
func NewTwoSampleTest(kind Kind, opts ...Option) (TwoSampleTest, error) {
	switch kind {
	case KindStudent:
		return NewStudentTest(opts...), nil
	case KindMannWhitneyU:
		return NewMannWhitneyUTest(opts...), nil
	case KindLevene:
		return NewLeveneTest(opts...), nil
	case KindBartlett:
		return NewBartlettTest(opts...), nil
	case KindKolmogorovSmirnov:
		return NewKolmogorovSmirnovTest(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownTest, kind)
	}
}

// NewOneSampleTest constructs a one-sample test of the given kind.
func NewOneSampleTest(kind Kind, opts ...Option) (OneSampleTest, error) {
	switch kind {
	case KindShapiroWilk:
		return NewShapiroWilkTest(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownTest, kind)
	}
}

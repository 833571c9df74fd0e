package htest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"hypotest/domain/core"
)

// StudentTest compares the means of two independent samples. The default
// estimator is Welch's, which does not assume equal variances; construct with
// WithEqualVariance for the pooled form.
type StudentTest struct {
	params        Result
	renderer      Renderer
	equalVariance bool
}

// NewStudentTest creates an unfitted Student's t-test.
func NewStudentTest(opts ...Option) *StudentTest {
	cfg := applyOptions(opts)
	return &StudentTest{
		params:        newResult(KindStudent),
		renderer:      cfg.renderer,
		equalVariance: cfg.equalVariance,
	}
}

// Kind returns KindStudent.
func (t *StudentTest) Kind() Kind { return KindStudent }

// Params returns the owned result record.
func (t *StudentTest) Params() Result { return t.params }

// EqualVariance reports which estimator the test uses.
func (t *StudentTest) EqualVariance() bool { return t.equalVariance }

// Fit runs the t-test on x and y.
func (t *StudentTest) Fit(x, y []float64, opts ...FitOption) error {
	return fitTwoSample(&t.params, x, y, 2, t.compute, t.renderTask(x, y), opts)
}

func (t *StudentTest) compute(x, y []float64) (float64, float64, error) {
	statistic, df, err := tStatistic(x, y, t.equalVariance)
	if err != nil {
		return 0, 0, err
	}
	return statistic, twoSidedTPValue(statistic, df), nil
}

func (t *StudentTest) renderTask(x, y []float64) renderFunc {
	if t.renderer == nil {
		return nil
	}
	return func() error { return t.renderer.CriticalRegion(x, y, t.params) }
}

// tStatistic computes the two-sample t statistic and its degrees of freedom.
// With pooled=false it uses Welch's form and the Welch-Satterthwaite df.
func tStatistic(x, y []float64, pooled bool) (statistic, df float64, err error) {
	n1 := float64(len(x))
	n2 := float64(len(y))
	m1 := stat.Mean(x, nil)
	m2 := stat.Mean(y, nil)
	v1 := stat.Variance(x, nil)
	v2 := stat.Variance(y, nil)

	if pooled {
		df = n1 + n2 - 2
		pooledVar := ((n1-1)*v1 + (n2-1)*v2) / df
		if pooledVar == 0 {
			return 0, 0, fmt.Errorf("%w: both samples are constant", core.ErrZeroVariance)
		}
		statistic = (m1 - m2) / math.Sqrt(pooledVar*(1/n1+1/n2))
		return statistic, df, nil
	}

	se1 := v1 / n1
	se2 := v2 / n2
	if se1+se2 == 0 {
		return 0, 0, fmt.Errorf("%w: both samples are constant", core.ErrZeroVariance)
	}
	statistic = (m1 - m2) / math.Sqrt(se1+se2)
	df = (se1 + se2) * (se1 + se2) / (se1*se1/(n1-1) + se2*se2/(n2-1))
	return statistic, df, nil
}

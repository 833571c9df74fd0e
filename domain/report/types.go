package report

import (
	"github.com/montanaflynn/stats"

	"hypotest/domain/core"
	"hypotest/domain/htest"
)

// Conclusion is the ternary outcome of a test run at a given significance
// level.
type Conclusion string

const (
	ConclusionReject       Conclusion = "reject_h0"
	ConclusionFailToReject Conclusion = "fail_to_reject_h0"
	ConclusionInconclusive Conclusion = "inconclusive"
)

// Run is the persisted record of one fitted (or failed) test.
type Run struct {
	ID             core.ID        `json:"id" db:"id"`
	Kind           htest.Kind     `json:"kind" db:"kind"`
	Name           string         `json:"name" db:"name"`
	Statistic      float64        `json:"statistic" db:"statistic"`
	PValue         float64        `json:"p_value" db:"p_value"`
	NullHypothesis string         `json:"null_hypothesis" db:"null_hypothesis"`
	IsFitted       bool           `json:"is_fitted" db:"is_fitted"`
	SampleSizeX    int            `json:"sample_size_x" db:"sample_size_x"`
	SampleSizeY    int            `json:"sample_size_y,omitempty" db:"sample_size_y"`
	Error          string         `json:"error,omitempty" db:"error"`
	CreatedAt      core.Timestamp `json:"created_at" db:"created_at"`
}

// NewRun records a successfully fitted result.
func NewRun(res htest.Result, nx, ny int) Run {
	return Run{
		ID:             core.NewID(),
		Kind:           res.Kind,
		Name:           res.Name,
		Statistic:      res.Statistic,
		PValue:         res.PValue,
		NullHypothesis: res.NullHypothesis,
		IsFitted:       res.IsFitted,
		SampleSizeX:    nx,
		SampleSizeY:    ny,
		CreatedAt:      core.Now(),
	}
}

// NewFailedRun records a test whose numeric procedure could not produce a
// statistic. The run keeps the fixed test identity so the failure stays
// attributable.
func NewFailedRun(kind htest.Kind, name, nullHypothesis string, nx, ny int, err error) Run {
	return Run{
		ID:             core.NewID(),
		Kind:           kind,
		Name:           name,
		NullHypothesis: nullHypothesis,
		SampleSizeX:    nx,
		SampleSizeY:    ny,
		Error:          err.Error(),
		CreatedAt:      core.Now(),
	}
}

// Conclude applies the ternary conclusion logic: reject when the p-value is
// at or below alpha, fail to reject above it, inconclusive when the run never
// fitted.
func (r Run) Conclude(alpha float64) Conclusion {
	if !r.IsFitted {
		return ConclusionInconclusive
	}
	if r.PValue <= alpha {
		return ConclusionReject
	}
	return ConclusionFailToReject
}

// SampleSummary is a descriptive snapshot of one input sample.
type SampleSummary struct {
	Label  string  `json:"label"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes the descriptive snapshot for a sample.
func Summarize(label string, x []float64) SampleSummary {
	mean, _ := stats.Mean(x)
	median, _ := stats.Median(x)
	sd, _ := stats.StandardDeviationSample(x)
	min, _ := stats.Min(x)
	max, _ := stats.Max(x)
	return SampleSummary{
		Label:  label,
		N:      len(x),
		Mean:   mean,
		Median: median,
		StdDev: sd,
		Min:    min,
		Max:    max,
	}
}

// Report collects a battery's runs plus the sample summaries they ran on.
type Report struct {
	ID        core.ID         `json:"id"`
	Alpha     float64         `json:"alpha"`
	Samples   []SampleSummary `json:"samples"`
	Runs      []Run           `json:"runs"`
	CreatedAt core.Timestamp  `json:"created_at"`
}

// Rejections returns the runs whose null hypothesis is rejected at the
// report's significance level.
func (r *Report) Rejections() []Run {
	var out []Run
	for _, run := range r.Runs {
		if run.Conclude(r.Alpha) == ConclusionReject {
			out = append(out, run)
		}
	}
	return out
}

// Failed returns the runs that never produced a statistic.
func (r *Report) Failed() []Run {
	var out []Run
	for _, run := range r.Runs {
		if !run.IsFitted {
			out = append(out, run)
		}
	}
	return out
}

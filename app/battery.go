package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"hypotest/domain/core"
	"hypotest/domain/htest"
	"hypotest/domain/report"
	"hypotest/ports"
)

// DefaultAlpha is the significance level used when none is configured.
const DefaultAlpha = 0.05

// Battery runs the full test suite over a pair of samples: the five
// two-sample tests plus Shapiro-Wilk on each sample. Every run gets a fresh
// test instance, so runs never share result records.
type Battery struct {
	ledger ports.RunLedger
	alpha  float64
	opts   []htest.Option
}

// BatteryOption configures a Battery.
type BatteryOption func(*Battery)

// WithLedger stores every run in the given ledger after the suite finishes.
func WithLedger(ledger ports.RunLedger) BatteryOption {
	return func(b *Battery) { b.ledger = ledger }
}

// WithAlpha sets the significance level attached to reports.
func WithAlpha(alpha float64) BatteryOption {
	return func(b *Battery) { b.alpha = alpha }
}

// WithTestOptions forwards construction options (renderer, variance
// assumption) to every test in the suite.
func WithTestOptions(opts ...htest.Option) BatteryOption {
	return func(b *Battery) { b.opts = opts }
}

// NewBattery creates a battery with the default significance level.
func NewBattery(opts ...BatteryOption) *Battery {
	b := &Battery{alpha: DefaultAlpha}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// task is one scheduled test of the suite.
type task struct {
	kind htest.Kind
	fit  func() (htest.Result, error)
	nx   int
	ny   int
}

// Run executes the suite concurrently and collects a report. Individual test
// failures are recorded as failed runs rather than aborting the suite; only
// context cancellation stops it early.
func (b *Battery) Run(ctx context.Context, x, y []float64) (*report.Report, error) {
	tasks := b.tasks(x, y)
	runs := make([]report.Run, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	for i, tk := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := tk.fit()
			if err != nil {
				meta := htest.Result{}
				if t, kindErr := describe(tk.kind); kindErr == nil {
					meta = t
				}
				runs[i] = report.NewFailedRun(tk.kind, meta.Name, meta.NullHypothesis, tk.nx, tk.ny, err)
				return nil
			}
			runs[i] = report.NewRun(res, tk.nx, tk.ny)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("battery: %w", err)
	}

	rep := &report.Report{
		ID:    core.NewID(),
		Alpha: b.alpha,
		Samples: []report.SampleSummary{
			report.Summarize("x", x),
			report.Summarize("y", y),
		},
		Runs:      runs,
		CreatedAt: core.Now(),
	}

	if b.ledger != nil {
		for _, run := range rep.Runs {
			if err := b.ledger.StoreRun(ctx, run); err != nil {
				return rep, fmt.Errorf("battery: store run %s: %w", run.ID, err)
			}
		}
	}
	return rep, nil
}

func (b *Battery) tasks(x, y []float64) []task {
	tasks := make([]task, 0, len(htest.TwoSampleKinds())+2)
	for _, kind := range htest.TwoSampleKinds() {
		tasks = append(tasks, task{
			kind: kind,
			nx:   len(x),
			ny:   len(y),
			fit: func() (htest.Result, error) {
				t, err := htest.NewTwoSampleTest(kind, b.opts...)
				if err != nil {
					return htest.Result{}, err
				}
				if err := t.Fit(x, y); err != nil {
					return htest.Result{}, err
				}
				return t.Params(), nil
			},
		})
	}
	for _, sample := range []struct {
		label string
		data  []float64
	}{{"x", x}, {"y", y}} {
		tasks = append(tasks, task{
			kind: htest.KindShapiroWilk,
			nx:   len(sample.data),
			fit: func() (htest.Result, error) {
				t := htest.NewShapiroWilkTest(b.opts...)
				if err := t.Fit(sample.data); err != nil {
					return htest.Result{}, err
				}
				return t.Params(), nil
			},
		})
	}
	return tasks
}

// describe returns the unfitted result of a kind, for labeling failed runs.
func describe(kind htest.Kind) (htest.Result, error) {
	if kind == htest.KindShapiroWilk {
		return htest.NewShapiroWilkTest().Params(), nil
	}
	t, err := htest.NewTwoSampleTest(kind)
	if err != nil {
		return htest.Result{}, err
	}
	return t.Params(), nil
}

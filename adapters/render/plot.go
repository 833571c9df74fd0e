package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"hypotest/domain/core"
	"hypotest/domain/htest"
)

var (
	colorX = color.NRGBA{R: 30, G: 144, B: 255, A: 255} // dodger blue
	colorY = color.NRGBA{R: 50, G: 205, B: 50, A: 255}  // lime green

	fillX = color.NRGBA{R: 30, G: 144, B: 255, A: 90}
	fillY = color.NRGBA{R: 50, G: 205, B: 50, A: 90}
)

// PlotRenderer implements the htest.Renderer delegate with gonum/plot,
// writing one SVG chart per invocation to the configured writer.
type PlotRenderer struct {
	w      io.Writer
	width  vg.Length
	height vg.Length
}

// NewPlotRenderer creates a renderer targeting w.
func NewPlotRenderer(w io.Writer) *PlotRenderer {
	return &PlotRenderer{w: w, width: 6 * vg.Inch, height: 4 * vg.Inch}
}

// CriticalRegion draws the t-distribution under H0 with the observed
// statistic marked.
func (r *PlotRenderer) CriticalRegion(x, y []float64, res htest.Result) error {
	if err := checkFitted(res); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: t=%.3f, p=%.4f", res.Name, res.Statistic, res.PValue)
	p.X.Label.Text = "t"
	p.Y.Label.Text = "density"

	df := welchDF(x, y)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	pdf := plotter.NewFunction(dist.Prob)
	pdf.Samples = 200
	pdf.LineStyle.Color = colorX
	pdf.LineStyle.Width = vg.Points(1.5)

	limit := math.Max(4, math.Abs(res.Statistic)+1)
	p.X.Min, p.X.Max = -limit, limit
	p.Y.Min = 0

	observed, err := verticalLine(res.Statistic, dist.Prob(0))
	if err != nil {
		return err
	}
	observed.LineStyle.Color = colorY
	observed.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(pdf, observed)
	p.Legend.Add(fmt.Sprintf("Student's t, df=%.1f", df), pdf)
	p.Legend.Add("observed statistic", observed)
	return r.write(p)
}

// DistributionOverlay draws normalized histograms of both samples.
func (r *PlotRenderer) DistributionOverlay(x, y []float64, res htest.Result) error {
	if err := checkFitted(res); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: statistic=%.3f, p=%.4f", res.Name, res.Statistic, res.PValue)
	p.X.Label.Text = "data"
	p.Y.Label.Text = "density"

	hx, err := histogram(x, colorX, fillX)
	if err != nil {
		return err
	}
	hy, err := histogram(y, colorY, fillY)
	if err != nil {
		return err
	}

	p.Add(hx, hy)
	p.Legend.Add(fmt.Sprintf("first sample, mean=%.2f", stat.Mean(x, nil)), hx)
	p.Legend.Add(fmt.Sprintf("second sample, mean=%.2f", stat.Mean(y, nil)), hy)
	return r.write(p)
}

// ECDFOverlay draws both empirical CDFs as step functions.
func (r *PlotRenderer) ECDFOverlay(x, y []float64, res htest.Result) error {
	if err := checkFitted(res); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: D=%.3f, p=%.4f", res.Name, res.Statistic, res.PValue)
	p.X.Label.Text = "data"
	p.Y.Label.Text = "F(x)"
	p.Y.Min, p.Y.Max = 0, 1.05

	lx, err := plotter.NewLine(ecdfSteps(x))
	if err != nil {
		return fmt.Errorf("ecdf line: %w", err)
	}
	lx.LineStyle.Color = colorX
	lx.LineStyle.Width = vg.Points(1.5)

	ly, err := plotter.NewLine(ecdfSteps(y))
	if err != nil {
		return fmt.Errorf("ecdf line: %w", err)
	}
	ly.LineStyle.Color = colorY
	ly.LineStyle.Width = vg.Points(1.5)

	p.Add(lx, ly)
	p.Legend.Add("first sample ECDF", lx)
	p.Legend.Add("second sample ECDF", ly)
	p.Legend.Top = false
	return r.write(p)
}

// NormalFit draws the sample histogram against the normal density fitted by
// moment matching.
func (r *PlotRenderer) NormalFit(x []float64, res htest.Result) error {
	if err := checkFitted(res); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: W=%.4f, p=%.4f", res.Name, res.Statistic, res.PValue)
	p.X.Label.Text = "data"
	p.Y.Label.Text = "density"

	h, err := histogram(x, colorX, fillX)
	if err != nil {
		return err
	}

	mean, std := stat.MeanStdDev(x, nil)
	dist := distuv.Normal{Mu: mean, Sigma: std}
	pdf := plotter.NewFunction(dist.Prob)
	pdf.Samples = 200
	pdf.LineStyle.Color = colorY
	pdf.LineStyle.Width = vg.Points(1.5)

	p.Add(h, pdf)
	p.Legend.Add("sample", h)
	p.Legend.Add(fmt.Sprintf("N(%.2f, %.2f²)", mean, std), pdf)
	return r.write(p)
}

// checkFitted rejects unfitted results: their NaN sentinels would poison the
// chart titles and axis limits.
func checkFitted(res htest.Result) error {
	if !res.IsFitted {
		return fmt.Errorf("%w: %s", core.ErrNotFitted, res.Name)
	}
	return nil
}

func (r *PlotRenderer) write(p *plot.Plot) error {
	wt, err := p.WriterTo(r.width, r.height, "svg")
	if err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	if _, err := wt.WriteTo(r.w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func histogram(x []float64, line, fill color.Color) (*plotter.Histogram, error) {
	h, err := plotter.NewHist(plotter.Values(x), 16)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	h.Normalize(1)
	h.FillColor = fill
	h.LineStyle.Color = line
	return h, nil
}

func verticalLine(x, top float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
	if err != nil {
		return nil, fmt.Errorf("vertical line: %w", err)
	}
	return l, nil
}

// ecdfSteps turns a sample into the vertices of its ECDF step function.
func ecdfSteps(x []float64) plotter.XYs {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	pts := make(plotter.XYs, 0, 2*len(sorted))
	prev := 0.0
	for i, v := range sorted {
		pts = append(pts, plotter.XY{X: v, Y: prev})
		prev = float64(i+1) / n
		pts = append(pts, plotter.XY{X: v, Y: prev})
	}
	return pts
}

// welchDF recomputes the Welch-Satterthwaite degrees of freedom for the
// reference curve. Presentation only; the fitted statistic is untouched.
func welchDF(x, y []float64) float64 {
	n1 := float64(len(x))
	n2 := float64(len(y))
	se1 := stat.Variance(x, nil) / n1
	se2 := stat.Variance(y, nil) / n2
	if se1+se2 == 0 {
		return n1 + n2 - 2
	}
	return (se1 + se2) * (se1 + se2) / (se1*se1/(n1-1) + se2*se2/(n2-1))
}

// Command demo runs every test on generated samples and writes the
// diagnostic charts as SVG files, mirroring a typical analysis session.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat/distuv"

	"hypotest/adapters/memory"
	"hypotest/adapters/render"
	"hypotest/app"
	"hypotest/domain/htest"
)

func main() {
	outDir := "plots"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	src := rand.NewPCG(7, 2026)

	// Two roughly matched normal samples: central tendency tests should
	// fail to reject.
	normalA := sample(distuv.Normal{Mu: 10, Sigma: 3, Src: src}, 100)
	normalB := sample(distuv.Normal{Mu: 9.3, Sigma: 3, Src: src}, 100)

	// Two skewed samples with different spread for the dispersion and
	// distribution tests.
	gammaA := sample(distuv.Gamma{Alpha: 5, Beta: 1.0 / 10, Src: src}, 100)
	gammaB := sample(distuv.Gamma{Alpha: 3, Beta: 1.0 / 12, Src: src}, 100)

	fitAndPlot(outDir, "student.svg", normalA, normalB, func(r htest.Renderer) htest.TwoSampleTest {
		return htest.NewStudentTest(htest.WithRenderer(r))
	})
	fitAndPlot(outDir, "mann_whitney.svg", normalA, normalB, func(r htest.Renderer) htest.TwoSampleTest {
		return htest.NewMannWhitneyUTest(htest.WithRenderer(r))
	})
	fitAndPlot(outDir, "levene.svg", gammaA, gammaB, func(r htest.Renderer) htest.TwoSampleTest {
		return htest.NewLeveneTest(htest.WithRenderer(r))
	})
	fitAndPlot(outDir, "bartlett.svg", gammaA, gammaB, func(r htest.Renderer) htest.TwoSampleTest {
		return htest.NewBartlettTest(htest.WithRenderer(r))
	})
	fitAndPlot(outDir, "kolmogorov_smirnov.svg", gammaA, gammaB, func(r htest.Renderer) htest.TwoSampleTest {
		return htest.NewKolmogorovSmirnovTest(htest.WithRenderer(r))
	})

	plotShapiro(outDir, "shapiro_wilk.svg", gammaA)

	// Full battery over the matched normal pair, printed as markdown.
	battery := app.NewBattery(app.WithLedger(memory.NewRunLedger()))
	rep, err := battery.Run(context.Background(), normalA, normalB)
	if err != nil {
		log.Fatalf("battery: %v", err)
	}
	fmt.Println(app.MarkdownReport(rep))
}

func fitAndPlot(outDir, name string, x, y []float64, build func(htest.Renderer) htest.TwoSampleTest) {
	f, err := os.Create(filepath.Join(outDir, name))
	if err != nil {
		log.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()

	t := build(render.NewPlotRenderer(f))
	if err := t.Fit(x, y, htest.WithPlot()); err != nil {
		log.Fatalf("fit %s: %v", t.Kind(), err)
	}
	fmt.Println(t.Params())
}

func plotShapiro(outDir, name string, x []float64) {
	f, err := os.Create(filepath.Join(outDir, name))
	if err != nil {
		log.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()

	t := htest.NewShapiroWilkTest(htest.WithRenderer(render.NewPlotRenderer(f)))
	if err := t.Fit(x, htest.WithPlot()); err != nil {
		log.Fatalf("fit %s: %v", t.Kind(), err)
	}
	fmt.Println(t.Params())
}

func sample(dist interface{ Rand() float64 }, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

package app

import (
	"fmt"
	"strings"

	"hypotest/domain/report"
)

// MarkdownReport renders a battery report as a markdown document. The UI
// layer converts it to HTML; the demo prints it as-is.
func MarkdownReport(rep *report.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Hypothesis test report\n\n")
	fmt.Fprintf(&b, "Report `%s`, significance level α = %.3g.\n\n", rep.ID, rep.Alpha)

	b.WriteString("## Samples\n\n")
	b.WriteString("| Sample | N | Mean | Median | Std dev | Min | Max |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, s := range rep.Samples {
		fmt.Fprintf(&b, "| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			s.Label, s.N, s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	}

	b.WriteString("\n## Tests\n\n")
	b.WriteString("| Test | H0 | Statistic | p-value | Conclusion |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, run := range rep.Runs {
		if !run.IsFitted {
			fmt.Fprintf(&b, "| %s | %s | — | — | %s (%s) |\n",
				run.Name, run.NullHypothesis, conclusionLabel(report.ConclusionInconclusive), run.Error)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %.4f | %.4g | %s |\n",
			run.Name, run.NullHypothesis, run.Statistic, run.PValue, conclusionLabel(run.Conclude(rep.Alpha)))
	}

	if rejected := rep.Rejections(); len(rejected) > 0 {
		b.WriteString("\n## Rejected null hypotheses\n\n")
		for _, run := range rejected {
			fmt.Fprintf(&b, "- **%s**: rejected H0 (%s) with p = %.4g\n", run.Name, run.NullHypothesis, run.PValue)
		}
	}
	return b.String()
}

func conclusionLabel(c report.Conclusion) string {
	switch c {
	case report.ConclusionReject:
		return "reject H0"
	case report.ConclusionFailToReject:
		return "fail to reject H0"
	default:
		return "inconclusive"
	}
}

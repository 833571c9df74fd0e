package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hypotest/domain/report"
)

const (
	runsSheet    = "Runs"
	samplesSheet = "Samples"
)

// WriteReport writes a battery report as an xlsx workbook: one sheet for the
// test runs, one for the sample summaries.
func WriteReport(w io.Writer, rep *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", runsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(samplesSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := writeRuns(f, rep); err != nil {
		return err
	}
	if err := writeSamples(f, rep); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRuns(f *excelize.File, rep *report.Report) error {
	header := []interface{}{"ID", "Test", "Null hypothesis", "Statistic", "p-value", "Conclusion", "N(x)", "N(y)", "Error", "Created at"}
	if err := f.SetSheetRow(runsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write runs header: %w", err)
	}
	for i, run := range rep.Runs {
		row := []interface{}{
			run.ID.String(), run.Name, run.NullHypothesis,
			run.Statistic, run.PValue, string(run.Conclude(rep.Alpha)),
			run.SampleSizeX, run.SampleSizeY, run.Error, run.CreatedAt.String(),
		}
		if !run.IsFitted {
			row[3], row[4] = "", ""
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(runsSheet, cell, &row); err != nil {
			return fmt.Errorf("write run row %d: %w", i, err)
		}
	}
	return nil
}

func writeSamples(f *excelize.File, rep *report.Report) error {
	header := []interface{}{"Sample", "N", "Mean", "Median", "Std dev", "Min", "Max"}
	if err := f.SetSheetRow(samplesSheet, "A1", &header); err != nil {
		return fmt.Errorf("write samples header: %w", err)
	}
	for i, s := range rep.Samples {
		row := []interface{}{s.Label, s.N, s.Mean, s.Median, s.StdDev, s.Min, s.Max}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(samplesSheet, cell, &row); err != nil {
			return fmt.Errorf("write sample row %d: %w", i, err)
		}
	}
	return nil
}

package ui

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"hypotest/adapters/export"
	"hypotest/adapters/render"
	"hypotest/app"
	"hypotest/domain/core"
	"hypotest/domain/htest"
	"hypotest/domain/report"
)

// samplesRequest is the JSON body shared by the fit endpoints. Y is omitted
// for one-sample tests.
type samplesRequest struct {
	X             []float64 `json:"x" binding:"required"`
	Y             []float64 `json:"y"`
	EqualVariance bool      `json:"equal_variance"`
}

// handleFitTest fits a single test and stores the run.
func (s *Server) handleFitTest(c *gin.Context) {
	kind := htest.Kind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown test kind: " + c.Param("kind")})
		return
	}

	var req samplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, ny, err := fitKind(kind, req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	run := report.NewRun(res, len(req.X), ny)
	if err := s.ledger.StoreRun(c.Request.Context(), run); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// handlePlotTest fits a single test and responds with its diagnostic chart.
func (s *Server) handlePlotTest(c *gin.Context) {
	kind := htest.Kind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown test kind: " + c.Param("kind")})
		return
	}

	var req samplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	opts := testOptions(req, htest.WithRenderer(render.NewPlotRenderer(&buf)))

	var err error
	if kind == htest.KindShapiroWilk {
		t := htest.NewShapiroWilkTest(opts...)
		err = t.Fit(req.X, htest.WithPlot())
	} else {
		var t htest.TwoSampleTest
		if t, err = htest.NewTwoSampleTest(kind, opts...); err == nil {
			err = t.Fit(req.X, req.Y, htest.WithPlot())
		}
	}
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// handleBattery runs the full suite and returns the report as JSON.
func (s *Server) handleBattery(c *gin.Context) {
	rep, ok := s.runBattery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rep)
}

// handleBatteryReport runs the full suite and returns an HTML report.
func (s *Server) handleBatteryReport(c *gin.Context) {
	rep, ok := s.runBattery(c)
	if !ok {
		return
	}
	md := app.MarkdownReport(rep)
	c.Data(http.StatusOK, "text/html; charset=utf-8", markdownToHTML(md))
}

func (s *Server) runBattery(c *gin.Context) (*report.Report, bool) {
	var req samplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if len(req.Y) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "battery requires both x and y samples"})
		return nil, false
	}

	battery := app.NewBattery(
		app.WithLedger(s.ledger),
		app.WithTestOptions(testOptions(req)...),
	)
	rep, err := battery.Run(c.Request.Context(), req.X, req.Y)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return rep, true
}

// handleListRuns lists recent runs from the ledger.
func (s *Server) handleListRuns(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	runs, err := s.ledger.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// handleGetRun fetches one run by id.
func (s *Server) handleGetRun(c *gin.Context) {
	run, err := s.ledger.GetRun(c.Request.Context(), core.ID(c.Param("id")))
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// handleExportRuns downloads recent runs as an xlsx workbook.
func (s *Server) handleExportRuns(c *gin.Context) {
	runs, err := s.ledger.ListRuns(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rep := &report.Report{
		ID:        core.NewID(),
		Alpha:     app.DefaultAlpha,
		Runs:      runs,
		CreatedAt: core.Now(),
	}
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, rep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="test_runs.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// fitKind dispatches to the right contract for the kind and returns the
// fitted result plus the second sample size (0 for one-sample tests).
func fitKind(kind htest.Kind, req samplesRequest) (htest.Result, int, error) {
	opts := testOptions(req)
	if kind == htest.KindShapiroWilk {
		t := htest.NewShapiroWilkTest(opts...)
		if err := t.Fit(req.X); err != nil {
			return htest.Result{}, 0, err
		}
		return t.Params(), 0, nil
	}

	t, err := htest.NewTwoSampleTest(kind, opts...)
	if err != nil {
		return htest.Result{}, 0, err
	}
	if err := t.Fit(req.X, req.Y); err != nil {
		return htest.Result{}, 0, err
	}
	return t.Params(), len(req.Y), nil
}

func testOptions(req samplesRequest, extra ...htest.Option) []htest.Option {
	opts := extra
	if req.EqualVariance {
		opts = append(opts, htest.WithEqualVariance())
	}
	return opts
}

// statusForError maps domain errors onto HTTP statuses: invalid input and
// degenerate samples are client problems, everything else is a 500.
func statusForError(err error) int {
	if core.IsInputError(err) || core.IsDegenerateError(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func markdownToHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.ToHTML([]byte(md), p, renderer)
}

package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hypotest/app"
	"hypotest/ports"
)

// Server exposes the hypothesis-testing toolkit over HTTP.
type Server struct {
	router  *gin.Engine
	ledger  ports.RunLedger
	battery *app.Battery
}

// NewServer wires the routes against the given run ledger.
func NewServer(ledger ports.RunLedger) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	s := &Server{
		router:  router,
		ledger:  ledger,
		battery: app.NewBattery(app.WithLedger(ledger)),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/tests/:kind", s.handleFitTest)
		api.POST("/tests/:kind/plot", s.handlePlotTest)
		api.POST("/battery", s.handleBattery)
		api.POST("/battery/report", s.handleBatteryReport)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
		api.GET("/runs/export", s.handleExportRuns)
	}
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Package ui exposes the test dispatcher over a JSON HTTP API.
package ui

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gomeans/app"
	"gomeans/domain/core"
	"gomeans/domain/means"
)

// Server wires the application services to HTTP routes.
type Server struct {
	router *gin.Engine
	means  *app.MeansService
	sweep  *app.SweepService
	log    zerolog.Logger
}

func NewServer(meansSvc *app.MeansService, sweepSvc *app.SweepService, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		means:  meansSvc,
		sweep:  sweepSvc,
		log:    log,
	}
	s.setupRoutes()
	return s
}

// Router returns the handler for use with http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.GET("/tests", s.handleCatalog)
		api.POST("/tests/run", s.handleRunTest)
		api.POST("/tests/sweep", s.handleSweep)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
		api.GET("/runs/:id/report", s.handleRunReport)
	}
}

// runTestRequest is the request body for single-test and sweep endpoints.
// Test is ignored for sweeps.
type runTestRequest struct {
	Scores []float64 `json:"scores" binding:"required"`
	Groups []string  `json:"groups" binding:"required"`
	Test   string    `json:"test"`
	Alpha  *float64  `json:"alpha"`
	Iters  bool      `json:"iters"`
	Order  *int      `json:"order"`
	Alt    bool      `json:"alt"`
}

func (r runTestRequest) options() means.Options {
	opts := means.DefaultOptions()
	if r.Alpha != nil {
		opts.Alpha = *r.Alpha
	}
	opts.Iters = r.Iters
	if r.Order != nil {
		opts.Order = *r.Order
	}
	opts.Alt = r.Alt
	return opts
}

func (s *Server) handleCatalog(c *gin.Context) {
	type entry struct {
		Test string `json:"test"`
		Name string `json:"name"`
	}
	catalog := make([]entry, 0, len(means.AllTests()))
	for _, kind := range means.AllTests() {
		catalog = append(catalog, entry{Test: string(kind), Name: kind.DisplayName()})
	}
	c.JSON(http.StatusOK, gin.H{"tests": catalog})
}

func (s *Server) handleRunTest(c *gin.Context) {
	var req runTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	kind, err := means.ParseTestKind(req.Test)
	if err != nil {
		s.respondError(c, err)
		return
	}

	run, err := s.means.Run(c.Request.Context(), app.RunRequest{
		Scores:  req.Scores,
		Groups:  req.Groups,
		Test:    kind,
		Options: req.options(),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleSweep(c *gin.Context) {
	var req runTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.sweep.RunAll(c.Request.Context(), req.Scores, req.Groups, req.options())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

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

	runs, err := s.means.ListRuns(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

func (s *Server) handleGetRun(c *gin.Context) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := s.means.GetRun(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleRunReport(c *gin.Context) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := s.means.GetRun(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	md := RunReportMarkdown(run)
	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderHTML(md))
}

func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case core.IsValidationError(err), core.IsPreconditionError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

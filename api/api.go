// Package api exposes the toolkit over HTTP.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seo-optimizer/toolkit/logging"
	"github.com/seo-optimizer/toolkit/middleware"
	"github.com/seo-optimizer/toolkit/robots"
	"github.com/seo-optimizer/toolkit/schema"
	"github.com/seo-optimizer/toolkit/toolkit"
	"github.com/seo-optimizer/toolkit/validation"
)

// Handler serves the tool endpoints.
type Handler struct {
	tools   *toolkit.Toolkit
	traffic *logging.Traffic
	logger  *zap.Logger
}

// NewHandler returns a Handler; a nil logger discards output.
func NewHandler(tools *toolkit.Toolkit, traffic *logging.Traffic, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{tools: tools, traffic: traffic, logger: logger}
}

// Register mounts the routes under rg, normally the /api group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
	rg.GET("/statistics", h.statistics)

	tools := rg.Group("/tools")
	tools.POST("/robots", h.analyzeRobots)
	tools.POST("/robots/test", h.testRobots)
	tools.GET("/robots/sample", h.robotsSample)
	tools.POST("/meta-title", h.composeMeta)
	tools.POST("/meta-title/html", h.composeMetaFromHTML)
	tools.POST("/schema", h.buildSchema)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statistics reports live traffic with this month's usage, or the usage of
// the month named by ?month=YYYY-MM.
func (h *Handler) statistics(c *gin.Context) {
	month, ok := c.GetQuery("month")
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"traffic": h.traffic.Snapshot(),
			"usage":   h.tools.Usage(),
			"months":  h.tools.Months(),
		})
		return
	}

	usage, found, err := h.tools.MonthlyUsage(month)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No statistics recorded for " + month})
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "usage": usage})
}

type robotsRequest struct {
	RobotsTxt string `json:"robotsTxt"`
}

func (h *Handler) analyzeRobots(c *gin.Context) {
	var req robotsRequest
	if !h.bind(c, &req) {
		return
	}
	report, err := h.tools.AnalyzeRobots(req.RobotsTxt)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type robotsTestRequest struct {
	RobotsTxt string `json:"robotsTxt"`
	UserAgent string `json:"userAgent"`
	URL       string `json:"url"`
}

func (h *Handler) testRobots(c *gin.Context) {
	var req robotsTestRequest
	if !h.bind(c, &req) {
		return
	}
	res, err := h.tools.TestRobots(req.RobotsTxt, req.UserAgent, req.URL)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) robotsSample(c *gin.Context) {
	c.JSON(http.StatusOK, robotsRequest{RobotsTxt: robots.SampleRobotsTxt})
}

// metaRequest accepts keywords as a list or as one comma separated string.
type metaRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    Keywords `json:"keywords"`
}

func (h *Handler) composeMeta(c *gin.Context) {
	var req metaRequest
	if !h.bind(c, &req) {
		return
	}
	report, err := h.tools.ComposeMeta(req.Title, req.Description, req.Keywords)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type metaHTMLRequest struct {
	HTML     string   `json:"html"`
	Keywords Keywords `json:"keywords"`
}

func (h *Handler) composeMetaFromHTML(c *gin.Context) {
	var req metaHTMLRequest
	if !h.bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		h.fail(c, validation.New("html", "is required"))
		return
	}
	report, err := h.tools.ComposeMetaFromHTML(strings.NewReader(req.HTML), req.Keywords)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type schemaRequest struct {
	Type string        `json:"type"`
	Data schema.Fields `json:"data"`
}

func (h *Handler) buildSchema(c *gin.Context) {
	var req schemaRequest
	if !h.bind(c, &req) {
		return
	}
	report, err := h.tools.BuildSchema(req.Type, req.Data)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// fail writes err as a 400 when it is a validation error and a 500 otherwise.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}
	_ = c.Error(err)
	h.logger.Error("tool failed",
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("request_id", middleware.RequestIDFrom(c)),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run tool"})
}

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/okatech-org/admin.ga-sub001/internal/core"
	"github.com/okatech-org/admin.ga-sub001/internal/core/consistency"
	"github.com/okatech-org/admin.ga-sub001/internal/core/hierarchy"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
	"github.com/okatech-org/admin.ga-sub001/internal/core/query"
	"github.com/okatech-org/admin.ga-sub001/internal/core/relation"
	"github.com/okatech-org/admin.ga-sub001/internal/logger"
	"github.com/okatech-org/admin.ga-sub001/internal/metrics"
)

type Server struct {
	Registry    *core.Registry
	Logger      *logrus.Logger
	MetricsPath string
}

// NewServer wires the HTTP API to a registry. An empty metricsPath disables
// the Prometheus endpoint.
func NewServer(registry *core.Registry, log *logrus.Logger, metricsPath string) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		Registry:    registry,
		Logger:      log,
		MetricsPath: metricsPath,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), countRequests())

	r.GET("/healthz", s.Health)
	if s.MetricsPath != "" {
		r.GET(s.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	// Analyses of the configured snapshot source.
	r.GET("/report", s.SourceReport)
	r.GET("/entities", s.SourceEntities)
	r.GET("/entities/:id/ancestors", s.SourceAncestors)
	r.GET("/entities/:id/descendants", s.SourceDescendants)

	// Analyses of a snapshot carried in the request body.
	r.POST("/report", s.Report)
	r.POST("/forest", s.Forest)
	r.POST("/relations", s.Relations)
	r.POST("/consistency", s.Consistency)
	r.POST("/ancestors", s.Ancestors)
	r.POST("/descendants", s.Descendants)
	r.POST("/filter", s.Filter)

	return r
}

type SnapshotRequest struct {
	Entities []model.EntityRecord `json:"entities" binding:"required"`
}

type TraversalRequest struct {
	ID       string               `json:"id"`
	Entities []model.EntityRecord `json:"entities" binding:"required"`
}

type FilterRequest struct {
	Criteria model.Criteria       `json:"criteria"`
	Entities []model.EntityRecord `json:"entities" binding:"required"`
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) SourceReport(c *gin.Context) {
	run, err := s.Registry.Analyze(c.Request.Context())
	if err != nil {
		s.sourceFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) SourceEntities(c *gin.Context) {
	var criteria model.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	entities, ok := s.snapshot(c)
	if !ok {
		return
	}
	result, err := query.FilterEntities(entities, criteria)
	if err != nil {
		s.queryFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entities": result})
}

func (s *Server) SourceAncestors(c *gin.Context) {
	s.sourceTraversal(c, query.AncestorsOf)
}

func (s *Server) SourceDescendants(c *gin.Context) {
	s.sourceTraversal(c, query.DescendantsOf)
}

func (s *Server) sourceTraversal(c *gin.Context, traverse traversal) {
	entities, ok := s.snapshot(c)
	if !ok {
		return
	}
	result, err := traverse(c.Param("id"), entities)
	if err != nil {
		s.queryFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entities": result})
}

func (s *Server) Report(c *gin.Context) {
	var req SnapshotRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, core.GenerateReport(req.Entities))
}

func (s *Server) Forest(c *gin.Context) {
	var req SnapshotRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, hierarchy.BuildForest(req.Entities))
}

func (s *Server) Relations(c *gin.Context) {
	var req SnapshotRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"relations": relation.DeriveRelations(req.Entities)})
}

func (s *Server) Consistency(c *gin.Context) {
	var req SnapshotRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, consistency.Analyze(req.Entities))
}

func (s *Server) Ancestors(c *gin.Context) {
	s.traverse(c, query.AncestorsOf)
}

func (s *Server) Descendants(c *gin.Context) {
	s.traverse(c, query.DescendantsOf)
}

type traversal func(id string, entities []model.EntityRecord) ([]model.EntityRecord, error)

func (s *Server) traverse(c *gin.Context, fn traversal) {
	var req TraversalRequest
	if !bind(c, &req) {
		return
	}
	result, err := fn(req.ID, req.Entities)
	if err != nil {
		s.queryFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entities": result})
}

func (s *Server) Filter(c *gin.Context) {
	var req FilterRequest
	if !bind(c, &req) {
		return
	}
	result, err := query.FilterEntities(req.Entities, req.Criteria)
	if err != nil {
		s.queryFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entities": result})
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}

func (s *Server) snapshot(c *gin.Context) ([]model.EntityRecord, bool) {
	entities, err := s.Registry.Snapshot(c.Request.Context())
	if err != nil {
		s.sourceFailed(c, err)
		return nil, false
	}
	return entities, true
}

func (s *Server) sourceFailed(c *gin.Context, err error) {
	s.Logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Snapshot source failed")
	if errors.Is(err, core.ErrNoSource) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No snapshot source configured"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load snapshot"})
}

func (s *Server) queryFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCriteria):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrEntityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.Logger.WithError(err).Error("Query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Query failed"})
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("Request served")
	}
}

func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

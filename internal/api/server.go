package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/martatracker-data/internal/alerts"
	"github.com/martatracker-data/internal/common/logger"
	"github.com/martatracker-data/internal/feed"
)

// QueryService answers the read path.
type QueryService interface {
	ByRoute(ctx context.Context, route string) (map[string]alerts.Record, error)
	All(ctx context.Context) (map[string]alerts.Record, error)
}

// Syncer runs one ingestion cycle on demand.
type Syncer interface {
	Run(ctx context.Context) error
}

type alertResponse struct {
	LastUpdated string `json:"lastUpdated"`
	Text        string `json:"text"`
}

type queryResponse struct {
	AlertsByRoute map[string]alertResponse `json:"alertsByRoute"`
}

// Server exposes the query and sync operations over HTTP.
type Server struct {
	query  QueryService
	syncer Syncer
	logger logger.Logger
	engine *gin.Engine
}

func NewServer(query QueryService, syncer Syncer, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		query:  query,
		syncer: syncer,
		logger: log,
		engine: engine,
	}

	engine.GET("/healthz", s.handleHealth)

	v1 := engine.Group("/v1")
	v1.GET("/alerts", s.handleAllAlerts)
	v1.GET("/alerts/:route", s.handleRouteAlerts)
	v1.POST("/sync", s.handleSync)

	return s
}

// Handler returns the router for mounting on an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAllAlerts(c *gin.Context) {
	records, err := s.query.All(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to query all alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, toQueryResponse(records))
}

func (s *Server) handleRouteAlerts(c *gin.Context) {
	route := c.Param("route")
	records, err := s.query.ByRoute(c.Request.Context(), route)
	if err != nil {
		s.logger.Error("Failed to query alerts by route", "route", route, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, toQueryResponse(records))
}

// handleSync triggers one ingestion cycle. Feed failures map to 502, leaving
// the cursor untouched; storage failures map to 500.
func (s *Server) handleSync(c *gin.Context) {
	if err := s.syncer.Run(c.Request.Context()); err != nil {
		if errors.Is(err, feed.ErrUpstream) {
			s.logger.Warn("Sync rejected by upstream feed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream feed failure"})
			return
		}
		s.logger.Error("Sync failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toQueryResponse(records map[string]alerts.Record) queryResponse {
	out := queryResponse{AlertsByRoute: make(map[string]alertResponse, len(records))}
	for route, rec := range records {
		resp := alertResponse{Text: rec.Text}
		if !rec.CreatedAt.IsZero() {
			resp.LastUpdated = rec.CreatedAt.UTC().Format(time.RFC3339)
		}
		out.AlertsByRoute[route] = resp
	}
	return out
}

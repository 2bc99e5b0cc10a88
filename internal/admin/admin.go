// Package admin hosts the small HTTP surface that drives a built
// pipeline from outside, the way the teacher's internal/mirage/routes.go
// and internal/server host gin routers in front of their own runtime
// state. It never reaches into pipeline internals — every handler goes
// through Injector methods, the same boundary spec.md §6 draws between
// the dispatch core and the process/thread hosting it.
package admin

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/danmuck/conduit/internal/observability"
	"github.com/danmuck/conduit/internal/pipeline"
	"github.com/danmuck/conduit/internal/stages/fields"
)

// Injector is the subset of *pipeline.Injector[fields.FieldSet,
// []byte, fields.FieldSet, []byte] this server drives. Named as an
// interface so tests can substitute a recording double.
type Injector interface {
	InjectCommand(cmd fields.FieldSet)
	InjectEvent(evt []byte)
	Management(msg pipeline.Message)
}

// Server wraps a gin.Engine bound to one Injector.
type Server struct {
	engine    *gin.Engine
	injector  Injector
	startedAt time.Time
}

// New builds the admin router with the same middleware shape as the
// teacher's cmd/edgectl/main.go: recovery, request logging, CORS, then
// routes.
func New(injector Injector, logger zerolog.Logger, corsOrigins []string) *Server {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	s := &Server{engine: r, injector: injector, startedAt: time.Now()}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler, for use with an
// http.Server or in tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts listening, blocking the way gin.Engine.Run does in the
// teacher's cmd/edgectl/main.go.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.POST("/inject/command", s.handleInjectCommand)
	s.engine.POST("/inject/event", s.handleInjectEvent)
	s.engine.POST("/management", s.handleManagement)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.startedAt).String(),
		"service": "conduit-admin",
	})
}

type fieldRequest struct {
	ID    uint16 `json:"id"`
	Type  uint8  `json:"type" binding:"required"`
	Value []byte `json:"value"`
}

type injectCommandRequest struct {
	Fields []fieldRequest `json:"fields" binding:"required"`
}

func (s *Server) handleInjectCommand(c *gin.Context) {
	var req injectCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fs := make(fields.FieldSet, len(req.Fields))
	for i, f := range req.Fields {
		fs[i] = fields.Field{ID: f.ID, Type: f.Type, Value: f.Value}
	}
	s.injector.InjectCommand(fs)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

type injectEventRequest struct {
	Payload []byte `json:"payload" binding:"required"`
}

func (s *Server) handleInjectEvent(c *gin.Context) {
	var req injectEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.injector.InjectEvent(req.Payload)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

type managementRequest struct {
	Kind string         `json:"kind" binding:"required"`
	Body map[string]any `json:"body"`
}

func (s *Server) handleManagement(c *gin.Context) {
	var req managementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.injector.Management(req)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

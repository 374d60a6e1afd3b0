// Package server exposes schema generation over HTTP.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/KhalidAdan/tables/internal/debug"
	"github.com/KhalidAdan/tables/internal/generator"
	"github.com/KhalidAdan/tables/internal/model"
)

// GenerateFunc renders a model for one target
type GenerateFunc func(m *model.Model, target model.Target) (string, error)

// Server serves schema generation over HTTP
type Server struct {
	generate GenerateFunc
}

// New returns a Server backed by generator.Generate
func New() *Server {
	return &Server{generate: generator.Generate}
}

// NewHTTPServer wires the router into an http.Server listening on addr
func NewHTTPServer(addr string) *http.Server {
	if !debug.Enabled() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &http.Server{
		Addr:         addr,
		Handler:      New().Router(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Router builds the gin engine
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/targets", s.listTargets)
	router.POST("/generate/:target", s.generateSchema)
	return router
}

// listTargets handles GET /targets
func (s *Server) listTargets(c *gin.Context) {
	success(c, http.StatusOK, generator.Targets())
}

// generateSchema handles POST /generate/:target
func (s *Server) generateSchema(c *gin.Context) {
	target := model.Target(c.Param("target"))
	if _, err := generator.Lookup(target); err != nil {
		fail(c, http.StatusNotFound, err, "Unknown target")
		return
	}

	var m model.Model
	if err := c.ShouldBindJSON(&m); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if err := model.Validate(&m); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid model")
		return
	}

	out, err := s.generate(&m, target)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, generator.ErrUnknownTarget) {
			status = http.StatusNotFound
		}
		fail(c, status, err, "Failed to generate schema")
		return
	}

	c.String(http.StatusOK, out)
}

// requestLogger logs each request through the debug logger
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		debug.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Package server provides the HTTP API consumed by chat transports and
// admin UIs.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/rcliao/chat-memory/internal/learner"
	"github.com/rcliao/chat-memory/internal/store"
)

// Config holds the HTTP server listen address.
type Config struct {
	Host string
	Port int
}

// Server exposes the memory store and learner over HTTP.
type Server struct {
	echo    *echo.Echo
	store   *store.SQLiteStore
	learner *learner.Learner
	logger  *zap.Logger
	config  *Config
	dbPath  string
}

// New creates the HTTP server.
func New(s *store.SQLiteStore, l *learner.Learner, logger *zap.Logger, cfg *Config, dbPath string) (*Server, error) {
	if s == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if l == nil {
		return nil, fmt.Errorf("learner cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 8170}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	srv := &Server{
		echo:    e,
		store:   s,
		learner: l,
		logger:  logger,
		config:  cfg,
		dbPath:  dbPath,
	}
	srv.registerRoutes()
	return srv, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")

	v1.POST("/interactions", s.handleRecord)
	v1.GET("/interactions", s.handleListInteractions)
	v1.DELETE("/interactions/:id", s.handleRemoveInteraction)
	v1.DELETE("/interactions", s.handleClearInteractions)

	v1.GET("/patterns", s.handlePatterns)
	v1.POST("/respond", s.handleRespond)
	v1.POST("/suggest", s.handleSuggest)
	v1.GET("/stats", s.handleStats)

	v1.POST("/documents", s.handleAddDocument)
	v1.GET("/documents", s.handleListDocuments)
	v1.DELETE("/documents/:id", s.handleRemoveDocument)
	v1.DELETE("/documents", s.handleClearDocuments)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

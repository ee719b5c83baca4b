package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Stateless analysis
	s.echo.POST("/api/score", s.handleScore)
	s.echo.POST("/api/conversation", s.handleConversation)

	// Session lifecycle
	s.echo.POST("/api/sessions", s.handleCreateSession)
	s.echo.POST("/api/sessions/:uuid/messages", s.handleSessionMessage)
	s.echo.GET("/api/sessions/:uuid/summary", s.handleSessionSummary)
	s.echo.GET("/api/sessions/:uuid/stats", s.handleSessionStats)
	s.echo.GET("/api/sessions/:uuid/export", s.handleSessionExport)
	s.echo.DELETE("/api/sessions/:uuid", s.handleDeleteSession)

	// Live feed WebSocket
	s.echo.GET("/ws/feed/:uuid", s.handleFeed)
}

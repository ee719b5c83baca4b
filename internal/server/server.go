package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pscheid92/moodlens/internal/analysis"
	"github.com/pscheid92/moodlens/internal/config"
	"github.com/pscheid92/moodlens/internal/domain"
	apperrors "github.com/pscheid92/moodlens/internal/errors"
	"github.com/pscheid92/moodlens/internal/feed"
	"github.com/pscheid92/moodlens/internal/sentiment"
)

// healthChecker is implemented by history backends that can verify their
// connection (Redis, SQLite). The in-memory store has nothing to check.
type healthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo       *echo.Echo
	config     *config.Config
	scorer     sentiment.TextScorer
	aggregator *sentiment.Aggregator
	analyzer   *analysis.Analyzer
	trend      *analysis.TrendAnalyzer
	responder  domain.Responder
	history    domain.HistoryStore
	feed       *feed.Hub
	startTime  time.Time
}

func NewServer(
	cfg *config.Config,
	scorer sentiment.TextScorer,
	aggregator *sentiment.Aggregator,
	analyzer *analysis.Analyzer,
	responder domain.Responder,
	history domain.HistoryStore,
	hub *feed.Hub,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(apperrors.Middleware())
	e.Use(newRateLimiter(cfg.RateLimit, cfg.RateBurst).middleware())

	srv := &Server{
		echo:       e,
		config:     cfg,
		scorer:     scorer,
		aggregator: aggregator,
		analyzer:   analyzer,
		trend:      analysis.NewTrendAnalyzer(0.1),
		responder:  responder,
		history:    history,
		feed:       hub,
		startTime:  time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/moodlens/internal/analysis"
	"github.com/pscheid92/moodlens/internal/domain"
	apperrors "github.com/pscheid92/moodlens/internal/errors"
	"github.com/pscheid92/moodlens/internal/metrics"
)

const maxMessageLength = 10000

type scoreRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleScore(c echo.Context) error {
	var req scoreRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.ValidationError("text is required")
	}
	if len(req.Text) > maxMessageLength {
		return apperrors.ValidationError("text too long").WithField("max_length", maxMessageLength)
	}

	start := time.Now()
	score := s.scorer.Score(req.Text)
	metrics.AnalysisDuration.WithLabelValues("score").Observe(time.Since(start).Seconds())
	metrics.MessagesAnalyzed.WithLabelValues(score.Label.String()).Inc()

	return c.JSON(http.StatusOK, score)
}

type conversationRequest struct {
	Messages []string `json:"messages"`
}

type conversationResponse struct {
	Summary       domain.Summary           `json:"summary"`
	Insights      analysis.Insights        `json:"insights"`
	TurningPoints []analysis.TurningPoint  `json:"turning_points"`
	Trend         *analysis.Trend          `json:"trend,omitempty"`
}

func (s *Server) handleConversation(c echo.Context) error {
	var req conversationRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	for i, msg := range req.Messages {
		if len(msg) > maxMessageLength {
			return apperrors.ValidationError("message too long").WithField("index", i)
		}
	}

	start := time.Now()
	summary := s.aggregator.AnalyzeConversation(req.Messages)
	metrics.AnalysisDuration.WithLabelValues("conversation").Observe(time.Since(start).Seconds())
	metrics.ConversationsAnalyzed.Inc()

	resp := conversationResponse{
		Summary:       summary,
		Insights:      s.analyzer.Insights(req.Messages),
		TurningPoints: s.analyzer.TurningPoints(req.Messages, analysis.DefaultTurningPointThreshold),
	}

	compounds := make([]float64, len(summary.PerMessage))
	for i, m := range summary.PerMessage {
		compounds[i] = m.Score.Compound
	}
	if trend, ok := s.trend.Analyze(compounds); ok {
		resp.Trend = &trend
	}

	return c.JSON(http.StatusOK, resp)
}

package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/moodlens/internal/domain"
	apperrors "github.com/pscheid92/moodlens/internal/errors"
	"github.com/pscheid92/moodlens/internal/export"
	"github.com/pscheid92/moodlens/internal/feed"
	"github.com/pscheid92/moodlens/internal/metrics"
	"github.com/pscheid92/moodlens/internal/stats"
)

func (s *Server) handleCreateSession(c echo.Context) error {
	sessionID := uuid.New()
	return c.JSON(http.StatusCreated, map[string]string{"session_id": sessionID.String()})
}

func sessionIDFromPath(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("uuid")
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid session UUID").WithField("uuid", raw)
	}
	return sessionID, nil
}

type sessionMessageRequest struct {
	Text string `json:"text"`
}

type sessionMessageResponse struct {
	Response string       `json:"response"`
	Score    domain.Score `json:"score"`
}

func (s *Server) handleSessionMessage(c echo.Context) error {
	sessionID, err := sessionIDFromPath(c)
	if err != nil {
		return err
	}

	var req sessionMessageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.ValidationError("text is required")
	}
	if len(req.Text) > maxMessageLength {
		return apperrors.ValidationError("text too long").WithField("max_length", maxMessageLength)
	}

	ctx := c.Request().Context()
	now := time.Now()

	start := time.Now()
	score := s.scorer.Score(req.Text)
	metrics.AnalysisDuration.WithLabelValues("score").Observe(time.Since(start).Seconds())
	metrics.MessagesAnalyzed.WithLabelValues(score.Label.String()).Inc()

	response := s.responder.Respond(req.Text, score.Label)

	userMsg := domain.Message{Role: domain.RoleUser, Content: req.Text, Timestamp: now, Score: &score}
	if err := s.history.Append(ctx, sessionID, userMsg); err != nil {
		return apperrors.InternalError("failed to record message", err).WithField("session_id", sessionID.String())
	}
	botMsg := domain.Message{Role: domain.RoleBot, Content: response, Timestamp: time.Now()}
	if err := s.history.Append(ctx, sessionID, botMsg); err != nil {
		return apperrors.InternalError("failed to record response", err).WithField("session_id", sessionID.String())
	}

	s.feed.Broadcast(sessionID, feed.Update{
		Role:      domain.RoleUser,
		Label:     score.Label,
		Compound:  score.Compound,
		Timestamp: now,
	})

	return c.JSON(http.StatusOK, sessionMessageResponse{Response: response, Score: score})
}

func (s *Server) sessionTranscript(c echo.Context, sessionID uuid.UUID) ([]domain.Message, error) {
	messages, err := s.history.Messages(c.Request().Context(), sessionID)
	if err != nil {
		return nil, apperrors.InternalError("failed to load history", err).WithField("session_id", sessionID.String())
	}
	if len(messages) == 0 {
		return nil, apperrors.NotFoundError("session has no messages").WithField("session_id", sessionID.String())
	}
	return messages, nil
}

func userTexts(messages []domain.Message) []string {
	texts := make([]string, 0, len(messages)/2+1)
	for _, msg := range messages {
		if msg.Role == domain.RoleUser {
			texts = append(texts, msg.Content)
		}
	}
	return texts
}

func (s *Server) handleSessionSummary(c echo.Context) error {
	sessionID, err := sessionIDFromPath(c)
	if err != nil {
		return err
	}

	messages, err := s.sessionTranscript(c, sessionID)
	if err != nil {
		return err
	}

	summary := s.aggregator.AnalyzeConversation(userTexts(messages))
	metrics.ConversationsAnalyzed.Inc()
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleSessionStats(c echo.Context) error {
	sessionID, err := sessionIDFromPath(c)
	if err != nil {
		return err
	}

	messages, err := s.sessionTranscript(c, sessionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats.Compute(messages))
}

func (s *Server) handleSessionExport(c echo.Context) error {
	sessionID, err := sessionIDFromPath(c)
	if err != nil {
		return err
	}

	format := export.FormatJSON
	if raw := c.QueryParam("format"); raw != "" {
		format, err = export.ParseFormat(raw)
		if err != nil {
			return apperrors.ValidationError(err.Error())
		}
	}

	messages, err := s.sessionTranscript(c, sessionID)
	if err != nil {
		return err
	}

	now := time.Now()
	conv := export.Conversation{
		ExportedAt: now,
		Messages:   messages,
		Summary:    s.aggregator.AnalyzeConversation(userTexts(messages)),
	}

	contentType := "application/json"
	switch format {
	case export.FormatCSV:
		contentType = "text/csv"
	case export.FormatText:
		contentType = "text/plain"
	}
	filename := export.Filename("conversation", format, now)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)

	if err := export.Write(c.Response(), format, conv); err != nil {
		return apperrors.InternalError("failed to write export", err).WithField("session_id", sessionID.String())
	}
	return nil
}

func (s *Server) handleDeleteSession(c echo.Context) error {
	sessionID, err := sessionIDFromPath(c)
	if err != nil {
		return err
	}

	if err := s.history.Clear(c.Request().Context(), sessionID); err != nil {
		return apperrors.InternalError("failed to clear session", err).WithField("session_id", sessionID.String())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}

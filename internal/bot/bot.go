package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/pscheid92/moodlens/internal/metrics"
)

// TextScorer scores a single message.
type TextScorer interface {
	Score(text string) domain.Score
}

// ConversationAnalyzer computes the conversation-level summary.
type ConversationAnalyzer interface {
	AnalyzeConversation(texts []string) domain.Summary
}

// Bot processes user messages for one conversation session: score the
// message, pick a reply, record both turns in the history store.
type Bot struct {
	sessionID uuid.UUID
	scorer    TextScorer
	analyzer  ConversationAnalyzer
	responder domain.Responder
	history   domain.HistoryStore
	clock     clockwork.Clock
}

// New creates a bot for a fresh session.
func New(scorer TextScorer, analyzer ConversationAnalyzer, responder domain.Responder, history domain.HistoryStore, clock clockwork.Clock) *Bot {
	return &Bot{
		sessionID: uuid.New(),
		scorer:    scorer,
		analyzer:  analyzer,
		responder: responder,
		history:   history,
		clock:     clock,
	}
}

// SessionID returns the session identifier used for history storage.
func (b *Bot) SessionID() uuid.UUID {
	return b.sessionID
}

// ProcessMessage scores the user's input, generates a reply and records both
// turns. The returned score is the user message's polarity result.
func (b *Bot) ProcessMessage(ctx context.Context, userInput string) (string, domain.Score, error) {
	start := time.Now()
	score := b.scorer.Score(userInput)
	metrics.AnalysisDuration.WithLabelValues("score").Observe(time.Since(start).Seconds())
	metrics.MessagesAnalyzed.WithLabelValues(score.Label.String()).Inc()

	response := b.responder.Respond(userInput, score.Label)

	now := b.clock.Now()
	userMsg := domain.Message{Role: domain.RoleUser, Content: userInput, Timestamp: now, Score: &score}
	if err := b.history.Append(ctx, b.sessionID, userMsg); err != nil {
		return "", domain.Score{}, fmt.Errorf("recording user message: %w", err)
	}

	botMsg := domain.Message{Role: domain.RoleBot, Content: response, Timestamp: now}
	if err := b.history.Append(ctx, b.sessionID, botMsg); err != nil {
		return "", domain.Score{}, fmt.Errorf("recording bot message: %w", err)
	}

	return response, score, nil
}

// Summary recomputes the conversation-level sentiment over all user turns
// recorded so far.
func (b *Bot) Summary(ctx context.Context) (domain.Summary, error) {
	texts, err := b.UserTexts(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	metrics.ConversationsAnalyzed.Inc()
	return b.analyzer.AnalyzeConversation(texts), nil
}

// UserTexts returns the user-side transcript in chronological order.
func (b *Bot) UserTexts(ctx context.Context) ([]string, error) {
	messages, err := b.history.Messages(ctx, b.sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	texts := make([]string, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == domain.RoleUser {
			texts = append(texts, msg.Content)
		}
	}
	return texts, nil
}

// Messages returns the full transcript, both roles, in order.
func (b *Bot) Messages(ctx context.Context) ([]domain.Message, error) {
	return b.history.Messages(ctx, b.sessionID)
}

// Reset clears the session history and starts a new session ID.
func (b *Bot) Reset(ctx context.Context) error {
	if err := b.history.Clear(ctx, b.sessionID); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	b.sessionID = uuid.New()
	return nil
}

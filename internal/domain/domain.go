package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Classification ---

// Label is the three-way sentiment classification of a text or conversation.
type Label int

const (
	LabelNeutral Label = iota
	LabelPositive
	LabelNegative
)

// String returns the display form used at serialization boundaries.
func (l Label) String() string {
	switch l {
	case LabelPositive:
		return "Positive"
	case LabelNegative:
		return "Negative"
	default:
		return "Neutral"
	}
}

// MarshalJSON serializes the label as its display string.
func (l Label) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON parses a display string back into a Label.
// Unknown values map to Neutral.
func (l *Label) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Positive"`:
		*l = LabelPositive
	case `"Negative"`:
		*l = LabelNegative
	default:
		*l = LabelNeutral
	}
	return nil
}

// Thresholds holds the compound-score cutoffs for classification.
// Values are inclusive: compound >= Positive classifies as positive,
// compound <= Negative as negative, everything between as neutral.
type Thresholds struct {
	Positive float64
	Negative float64
}

// DefaultThresholds returns the standard ±0.05 classification cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Positive: 0.05, Negative: -0.05}
}

// Classify maps a compound score to a Label. It is a pure function of the
// score and the two cutoffs, so recomputing the label from a stored compound
// always reproduces it.
func (t Thresholds) Classify(compound float64) Label {
	switch {
	case compound >= t.Positive:
		return LabelPositive
	case compound <= t.Negative:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// --- Model types ---

// Score is the per-text polarity result. Positive, Negative and Neutral are
// proportions of lexical content and sum to 1.0; Compound is the normalized
// composite valence in [-1, 1].
type Score struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
	Label    Label   `json:"label"`
}

// MessageScore pairs an analyzed text with its score, in turn order.
type MessageScore struct {
	Text  string `json:"text"`
	Score Score  `json:"score"`
}

// Counts tallies per-message labels across a conversation.
type Counts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the number of messages tallied.
func (c Counts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}

// Summary is the conversation-level sentiment result. It is recomputed from
// the full message list on every analysis, never mutated incrementally.
type Summary struct {
	OverallLabel    Label          `json:"overall_label"`
	AverageCompound float64        `json:"average_compound"`
	PerMessage      []MessageScore `json:"per_message"`
	Counts          Counts         `json:"counts"`
	MoodTrend       string         `json:"mood_trend"`
}

// Role distinguishes who produced a conversation message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one turn in a stored conversation. Score is set for user
// messages only; bot responses are not classified.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Score     *Score    `json:"score,omitempty"`
}

// --- Interfaces ---

// Lexicon maps a token to its context-independent valence, roughly in
// [-4, +4]. Implementations must be safe for concurrent reads.
type Lexicon interface {
	Valence(token string) (float64, bool)
}

// HistoryStore abstracts conversation history persistence.
// In-memory, SQLite and Redis implementations exist.
type HistoryStore interface {
	Append(ctx context.Context, sessionID uuid.UUID, msg Message) error
	Messages(ctx context.Context, sessionID uuid.UUID) ([]Message, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// Responder picks a reply for a user message given its classification.
type Responder interface {
	Respond(userInput string, label Label) string
}

// Package stats computes transcript-level statistics for a conversation.
// It consumes per-message compound scores produced by the sentiment core
// but derives its own engagement metrics; mood-trend classification stays
// in the core.
package stats

import (
	"math"
	"strings"
	"time"

	"github.com/pscheid92/moodlens/internal/domain"
)

// Statistics summarizes a conversation transcript.
type Statistics struct {
	TotalMessages int `json:"total_messages"`
	UserMessages  int `json:"user_messages"`
	BotMessages   int `json:"bot_messages"`

	Duration          time.Duration `json:"duration_ns"`
	MessagesPerMinute float64       `json:"messages_per_minute"`

	TotalWords           int     `json:"total_words"`
	TotalCharacters      int     `json:"total_characters"`
	AverageMessageLength float64 `json:"average_message_length"`
	LongestMessage       int     `json:"longest_message"`
	ShortestMessage      int     `json:"shortest_message"`

	AverageSentiment    float64 `json:"average_sentiment"`
	SentimentVariance   float64 `json:"sentiment_variance"`
	MostPositiveMessage string  `json:"most_positive_message"`
	MostNegativeMessage string  `json:"most_negative_message"`
}

// Compute derives statistics from a full transcript. Sentiment fields only
// consider messages that carry a score (user turns). An empty transcript
// yields zero values throughout.
func Compute(messages []domain.Message) Statistics {
	var s Statistics
	if len(messages) == 0 {
		return s
	}

	s.TotalMessages = len(messages)
	s.ShortestMessage = math.MaxInt

	var (
		compounds  []float64
		bestScore  = math.Inf(-1)
		worstScore = math.Inf(1)
		firstSeen  = messages[0].Timestamp
		lastSeen   = messages[0].Timestamp
	)

	for _, msg := range messages {
		if msg.Role == domain.RoleBot {
			s.BotMessages++
		} else {
			s.UserMessages++
		}

		length := len([]rune(msg.Content))
		s.TotalCharacters += length
		s.TotalWords += len(strings.Fields(msg.Content))
		if length > s.LongestMessage {
			s.LongestMessage = length
		}
		if length < s.ShortestMessage {
			s.ShortestMessage = length
		}

		if msg.Timestamp.Before(firstSeen) {
			firstSeen = msg.Timestamp
		}
		if msg.Timestamp.After(lastSeen) {
			lastSeen = msg.Timestamp
		}

		if msg.Score == nil {
			continue
		}
		compounds = append(compounds, msg.Score.Compound)
		if msg.Score.Compound > bestScore {
			bestScore = msg.Score.Compound
			s.MostPositiveMessage = msg.Content
		}
		if msg.Score.Compound < worstScore {
			worstScore = msg.Score.Compound
			s.MostNegativeMessage = msg.Content
		}
	}

	s.AverageMessageLength = float64(s.TotalCharacters) / float64(s.TotalMessages)
	s.Duration = lastSeen.Sub(firstSeen)
	if minutes := s.Duration.Minutes(); minutes > 0 {
		s.MessagesPerMinute = float64(s.TotalMessages) / minutes
	}

	if len(compounds) > 0 {
		sum := 0.0
		for _, c := range compounds {
			sum += c
		}
		s.AverageSentiment = sum / float64(len(compounds))

		variance := 0.0
		for _, c := range compounds {
			d := c - s.AverageSentiment
			variance += d * d
		}
		s.SentimentVariance = variance / float64(len(compounds))
	}

	return s
}

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConversation() Conversation {
	score := domain.Score{Positive: 0.7, Neutral: 0.3, Compound: 0.62, Label: domain.LabelPositive}
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Conversation{
		ExportedAt: ts,
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "this is great", Timestamp: ts, Score: &score},
			{Role: domain.RoleBot, Content: "glad to hear it", Timestamp: ts},
		},
		Summary: domain.Summary{
			OverallLabel:    domain.LabelPositive,
			AverageCompound: 0.62,
			PerMessage:      []domain.MessageScore{{Text: "this is great", Score: score}},
			Counts:          domain.Counts{Positive: 1},
			MoodTrend:       "Insufficient data for trend analysis",
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "csv", "text"} {
		format, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), format)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteJSON_StableFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleConversation()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "messages")
	assert.Contains(t, decoded, "summary")

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"overall_label", "average_compound", "per_message", "counts", "mood_trend"} {
		assert.Contains(t, summary, key)
	}
	assert.Equal(t, "Positive", summary["overall_label"])
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleConversation()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"role", "content", "timestamp", "label", "compound", "positive", "negative", "neutral"}, records[0])
	assert.Equal(t, "user", records[1][0])
	assert.Equal(t, "Positive", records[1][3])
	assert.Equal(t, "0.62", records[1][4])
	// Bot rows carry no sentiment columns.
	assert.Equal(t, "", records[2][3])
}

func TestWriteText_ContainsSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleConversation()))

	out := buf.String()
	assert.Contains(t, out, `User: "this is great"`)
	assert.Contains(t, out, `Chatbot: "glad to hear it"`)
	assert.Contains(t, out, "Overall sentiment: Positive")
	assert.Contains(t, out, "Mood trend: Insufficient data for trend analysis")
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Format("yaml"), sampleConversation())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported"))
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "conversation_20250601_120000.json", Filename("conversation", FormatJSON, now))
	assert.Equal(t, "conversation_20250601_120000.txt", Filename("conversation", FormatText, now))
}

// Package export serializes conversation transcripts and sentiment
// summaries to JSON, CSV and plain text. Field names are stable: callers
// (and downstream tooling) parse them.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pscheid92/moodlens/internal/domain"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatCSV, FormatText:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want json, csv or text)", name)
	}
}

// Conversation bundles everything an export carries.
type Conversation struct {
	ExportedAt time.Time        `json:"exported_at"`
	Messages   []domain.Message `json:"messages"`
	Summary    domain.Summary   `json:"summary"`
}

// Write serializes the conversation to w in the chosen format.
func Write(w io.Writer, format Format, conv Conversation) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, conv)
	case FormatCSV:
		return writeCSV(w, conv)
	case FormatText:
		return writeText(w, conv)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeJSON(w io.Writer, conv Conversation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(conv); err != nil {
		return fmt.Errorf("encoding JSON export: %w", err)
	}
	return nil
}

var csvHeader = []string{"role", "content", "timestamp", "label", "compound", "positive", "negative", "neutral"}

func writeCSV(w io.Writer, conv Conversation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, msg := range conv.Messages {
		record := []string{
			string(msg.Role),
			msg.Content,
			msg.Timestamp.UTC().Format(time.RFC3339),
			"", "", "", "", "",
		}
		if msg.Score != nil {
			record[3] = msg.Score.Label.String()
			record[4] = formatFloat(msg.Score.Compound)
			record[5] = formatFloat(msg.Score.Positive)
			record[6] = formatFloat(msg.Score.Negative)
			record[7] = formatFloat(msg.Score.Neutral)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV export: %w", err)
	}
	return nil
}

func writeText(w io.Writer, conv Conversation) error {
	for _, msg := range conv.Messages {
		roleLabel := "User"
		if msg.Role == domain.RoleBot {
			roleLabel = "Chatbot"
		}
		line := fmt.Sprintf("%s: %q", roleLabel, msg.Content)
		if msg.Score != nil {
			line += fmt.Sprintf(" [%s %.2f]", msg.Score.Label, msg.Score.Compound)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing text export: %w", err)
		}
	}

	summary := conv.Summary
	_, err := fmt.Fprintf(w,
		"\nOverall sentiment: %s\nAverage compound: %.2f\nPositive: %d  Negative: %d  Neutral: %d\nMood trend: %s\n",
		summary.OverallLabel, summary.AverageCompound,
		summary.Counts.Positive, summary.Counts.Negative, summary.Counts.Neutral,
		summary.MoodTrend,
	)
	if err != nil {
		return fmt.Errorf("writing text summary: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename builds a timestamped export filename like
// "conversation_20250601_120000.json".
func Filename(prefix string, format Format, now time.Time) string {
	ext := string(format)
	if format == FormatText {
		ext = "txt"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("20060102_150405"), ext)
}

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/pscheid92/moodlens/internal/metrics"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	timestamp  TEXT NOT NULL,
	score      TEXT
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, id);
`

// SQLiteStore persists conversation history in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database handle is usable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Append adds a message to the end of the session's transcript.
func (s *SQLiteStore) Append(ctx context.Context, sessionID uuid.UUID, msg domain.Message) error {
	var scoreJSON sql.NullString
	if msg.Score != nil {
		data, err := json.Marshal(msg.Score)
		if err != nil {
			return fmt.Errorf("encoding score: %w", err)
		}
		scoreJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, timestamp, score) VALUES (?, ?, ?, ?, ?)`,
		sessionID.String(), string(msg.Role), msg.Content, msg.Timestamp.UTC().Format(time.RFC3339Nano), scoreJSON,
	)
	if err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("sqlite", "append", "error").Inc()
		return fmt.Errorf("inserting message: %w", err)
	}
	metrics.HistoryOpsTotal.WithLabelValues("sqlite", "append", "ok").Inc()
	return nil
}

// Messages returns the session's transcript in append order.
func (s *SQLiteStore) Messages(ctx context.Context, sessionID uuid.UUID) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, timestamp, score FROM messages WHERE session_id = ? ORDER BY id`,
		sessionID.String(),
	)
	if err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("sqlite", "messages", "error").Inc()
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []domain.Message
	for rows.Next() {
		var (
			role      string
			content   string
			timestamp string
			scoreJSON sql.NullString
		)
		if err := rows.Scan(&role, &content, &timestamp, &scoreJSON); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}

		msg := domain.Message{Role: domain.Role(role), Content: content, Timestamp: ts}
		if scoreJSON.Valid {
			var score domain.Score
			if err := json.Unmarshal([]byte(scoreJSON.String), &score); err != nil {
				return nil, fmt.Errorf("decoding score: %w", err)
			}
			msg.Score = &score
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	metrics.HistoryOpsTotal.WithLabelValues("sqlite", "messages", "ok").Inc()
	return messages, nil
}

// Clear removes the session's transcript.
func (s *SQLiteStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID.String()); err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("sqlite", "clear", "error").Inc()
		return fmt.Errorf("deleting messages: %w", err)
	}
	metrics.HistoryOpsTotal.WithLabelValues("sqlite", "clear", "ok").Inc()
	return nil
}

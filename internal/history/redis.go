package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/pscheid92/moodlens/internal/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// sessionTTL keeps abandoned transcripts from accumulating forever.
const sessionTTL = 24 * time.Hour

// RedisStore keeps conversation history in Redis lists, one list per
// session. Enables sharing sessions across multiple server instances.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore creates a history store over an existing Redis client.
func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(sessionID uuid.UUID) string {
	return "history:" + sessionID.String()
}

// Append pushes a message to the tail of the session's list and refreshes
// the session TTL.
func (s *RedisStore) Append(ctx context.Context, sessionID uuid.UUID, msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("redis", "append", "error").Inc()
		return fmt.Errorf("appending message: %w", err)
	}
	metrics.HistoryOpsTotal.WithLabelValues("redis", "append", "ok").Inc()
	return nil
}

// Ping verifies the Redis connection is alive.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Messages returns the session's transcript in append order.
func (s *RedisStore) Messages(ctx context.Context, sessionID uuid.UUID) ([]domain.Message, error) {
	raw, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("redis", "messages", "error").Inc()
		return nil, fmt.Errorf("reading messages: %w", err)
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, item := range raw {
		var msg domain.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decoding message: %w", err)
		}
		messages = append(messages, msg)
	}

	metrics.HistoryOpsTotal.WithLabelValues("redis", "messages", "ok").Inc()
	return messages, nil
}

// Clear removes the session's transcript.
func (s *RedisStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("redis", "clear", "error").Inc()
		return fmt.Errorf("clearing session: %w", err)
	}
	metrics.HistoryOpsTotal.WithLabelValues("redis", "clear", "ok").Inc()
	return nil
}

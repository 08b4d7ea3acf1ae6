package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/strivetech/sales-ai-platform/internal/rag"
)

const defaultSessionTTL = 24 * time.Hour

// Session is the per-visitor conversation state, persisted between turns.
type Session struct {
	SessionID string                `json:"sessionId"`
	Industry  string                `json:"industry"`
	Messages  []ChatMessage         `json:"messages"`
	State     rag.ConversationState `json:"state"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// SessionStore persists sessions in Redis as JSON blobs with a TTL.
type SessionStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client *redis.Client, ttl time.Duration, tracer trace.Tracer) *SessionStore {
	if client == nil {
		panic("chat: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if tracer == nil {
		tracer = otel.Tracer("salesai.internal.chat.sessions")
	}
	return &SessionStore{redis: client, ttl: ttl, tracer: tracer}
}

// Load returns the stored session, or nil when the session is new or expired.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "chat.load_session")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("chat: failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chat: failed to decode session: %w", err)
	}
	return &sess, nil
}

// Save persists the session and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	ctx, span := s.tracer.Start(ctx, "chat.save_session")
	defer span.End()

	if sess == nil || sess.SessionID == "" {
		return fmt.Errorf("chat: session id is required")
	}
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(sess.SessionID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: failed to persist session: %w", err)
	}
	return nil
}

// Delete removes the session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "chat.delete_session")
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("chat_session:%s", id)
}

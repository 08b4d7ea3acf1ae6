package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"

	"github.com/strivetech/sales-ai-platform/pkg/logging"
)

// Default retrieval tuning.
const (
	DefaultThreshold = 0.75
	DefaultLimit     = 5
)

// SearchQuery parameterizes one nearest-neighbor query against a collection.
// Matches below Threshold are excluded entirely; the boundary is inclusive.
type SearchQuery struct {
	Vector    []float32
	Industry  string
	Threshold float64
	Limit     int
}

func (q SearchQuery) withDefaults() SearchQuery {
	if q.Threshold <= 0 {
		q.Threshold = DefaultThreshold
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q
}

// VectorStore persists embedded records in two collections and answers
// industry-scoped, threshold-scoped nearest-neighbor queries over each.
type VectorStore interface {
	SearchConversations(ctx context.Context, q SearchQuery) ([]Match, error)
	SearchExamples(ctx context.Context, q SearchQuery) ([]Match, error)
	InsertConversation(ctx context.Context, rec *ConversationRecord) error
	InsertExample(ctx context.Context, rec *ExampleRecord) error
	MarkConversationSuccess(ctx context.Context, sessionID string, conversionScore float64) error
	Dimension() int
	Ping(ctx context.Context) error
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGVectorStore implements VectorStore on PostgreSQL with the pgvector
// extension. Similarity is cosine: 1 - (embedding <=> query).
type PGVectorStore struct {
	db        pgxQuerier
	dimension int
	logger    *logging.Logger
}

// NewPGVectorStore creates a Postgres-backed vector store.
func NewPGVectorStore(db pgxQuerier, dimension int, logger *logging.Logger) *PGVectorStore {
	if db == nil {
		panic("rag: database handle cannot be nil")
	}
	if dimension <= 0 {
		dimension = 1536
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PGVectorStore{db: db, dimension: dimension, logger: logger}
}

const searchConversationsSQL = `
	SELECT id, user_message, assistant_response,
	       COALESCE(problem_detected, ''), COALESCE(solution_presented, ''),
	       COALESCE(conversation_stage, ''), outcome,
	       COALESCE(conversion_score, 0),
	       1 - (embedding <=> $1) AS similarity
	FROM conversations
	WHERE industry = $2 AND 1 - (embedding <=> $1) >= $3
	ORDER BY embedding <=> $1
	LIMIT $4`

// SearchConversations returns up to q.Limit organic-history matches ranked
// by descending similarity.
func (s *PGVectorStore) SearchConversations(ctx context.Context, q SearchQuery) ([]Match, error) {
	q = q.withDefaults()
	rows, err := s.db.Query(ctx, searchConversationsSQL,
		pgvector.NewVector(q.Vector), q.Industry, q.Threshold, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: conversations query: %v", ErrSearchUnavailable, err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m := Match{Collection: CollectionConversations}
		if err := rows.Scan(&m.ID, &m.UserMessage, &m.AssistantResponse,
			&m.ProblemDetected, &m.SolutionPresented, &m.ConversationStage,
			&m.Outcome, &m.ConversionScore, &m.Similarity); err != nil {
			return nil, fmt.Errorf("%w: conversations scan: %v", ErrSearchUnavailable, err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: conversations rows: %v", ErrSearchUnavailable, err)
	}
	return matches, nil
}

const searchExamplesSQL = `
	SELECT id, user_input, assistant_response,
	       COALESCE(problem_type, ''), COALESCE(solution_type, ''),
	       COALESCE(conversation_stage, ''), COALESCE(outcome, ''),
	       COALESCE(conversion_score, 0),
	       1 - (embedding <=> $1) AS similarity
	FROM examples
	WHERE industry = $2 AND 1 - (embedding <=> $1) >= $3
	ORDER BY embedding <=> $1
	LIMIT $4`

// SearchExamples returns up to q.Limit curated-example matches ranked by
// descending similarity.
func (s *PGVectorStore) SearchExamples(ctx context.Context, q SearchQuery) ([]Match, error) {
	q = q.withDefaults()
	rows, err := s.db.Query(ctx, searchExamplesSQL,
		pgvector.NewVector(q.Vector), q.Industry, q.Threshold, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: examples query: %v", ErrSearchUnavailable, err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m := Match{Collection: CollectionExamples}
		if err := rows.Scan(&m.ID, &m.UserMessage, &m.AssistantResponse,
			&m.ProblemDetected, &m.SolutionPresented, &m.ConversationStage,
			&m.Outcome, &m.ConversionScore, &m.Similarity); err != nil {
			return nil, fmt.Errorf("%w: examples scan: %v", ErrSearchUnavailable, err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: examples rows: %v", ErrSearchUnavailable, err)
	}
	return matches, nil
}

// InsertConversation persists one completed exchange. A record with a
// missing or mis-sized embedding is rejected before touching the database.
func (s *PGVectorStore) InsertConversation(ctx context.Context, rec *ConversationRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	if len(rec.Embedding) != s.dimension {
		return fmt.Errorf("%w: embedding has %d dimensions, store expects %d", ErrInvalidRecord, len(rec.Embedding), s.dimension)
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if rec.Outcome == "" {
		rec.Outcome = OutcomeInProgress
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO conversations (
			id, industry, client_id, session_id,
			user_message, assistant_response, embedding,
			problem_detected, solution_presented, conversation_stage,
			outcome, conversion_score, booking_completed,
			response_time_ms, user_satisfaction,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, rec.ID, rec.Industry, nullIfEmpty(rec.ClientID), rec.SessionID,
		rec.UserMessage, rec.AssistantResponse, pgvector.NewVector(rec.Embedding),
		nullIfEmpty(rec.ProblemDetected), nullIfEmpty(rec.SolutionPresented), nullIfEmpty(rec.ConversationStage),
		rec.Outcome, nullIfZero(rec.ConversionScore), rec.BookingCompleted,
		rec.ResponseTimeMs, nullIfZeroInt(rec.UserSatisfaction),
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert conversation: %v", ErrWriteFailed, err)
	}
	return nil
}

// InsertExample persists one curated example. Used by the seeding process.
func (s *PGVectorStore) InsertExample(ctx context.Context, rec *ExampleRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	if len(rec.Embedding) != s.dimension {
		return fmt.Errorf("%w: embedding has %d dimensions, store expects %d", ErrInvalidRecord, len(rec.Embedding), s.dimension)
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO examples (
			id, industry, user_input, assistant_response, embedding,
			problem_type, solution_type, conversation_stage,
			outcome, conversion_score, is_verified, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, rec.ID, rec.Industry, rec.UserInput, rec.AssistantResponse, pgvector.NewVector(rec.Embedding),
		nullIfEmpty(rec.ProblemType), nullIfEmpty(rec.SolutionType), nullIfEmpty(rec.ConversationStage),
		nullIfEmpty(rec.Outcome), rec.ConversionScore, rec.IsVerified, nullIfEmpty(rec.Notes),
		rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert example: %v", ErrWriteFailed, err)
	}
	return nil
}

// MarkConversationSuccess flags every record for the session as a completed
// booking and refreshes updated_at.
func (s *PGVectorStore) MarkConversationSuccess(ctx context.Context, sessionID string, conversionScore float64) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidRecord)
	}
	_, err := s.db.Exec(ctx, `
		UPDATE conversations SET
			outcome = $1,
			booking_completed = TRUE,
			conversion_score = $2,
			updated_at = $3
		WHERE session_id = $4
	`, OutcomeBookingCompleted, conversionScore, time.Now().UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("%w: mark success: %v", ErrWriteFailed, err)
	}
	return nil
}

// Dimension reports the vector size both collections were created with.
func (s *PGVectorStore) Dimension() int {
	return s.dimension
}

// Ping verifies database connectivity.
func (s *PGVectorStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("rag: store ping: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}

func nullIfZeroInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

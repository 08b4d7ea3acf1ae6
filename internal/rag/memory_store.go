package rag

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryVectorStore keeps both collections in memory and answers queries
// with a brute-force cosine scan. Suitable for tests and small corpora.
type MemoryVectorStore struct {
	dimension int

	mu            sync.RWMutex
	conversations []*ConversationRecord
	examples      []*ExampleRecord
}

// NewMemoryVectorStore creates an in-memory store.
func NewMemoryVectorStore(dimension int) *MemoryVectorStore {
	if dimension <= 0 {
		dimension = 1536
	}
	return &MemoryVectorStore{dimension: dimension}
}

// SearchConversations scans organic history for the query's industry.
func (s *MemoryVectorStore) SearchConversations(ctx context.Context, q SearchQuery) ([]Match, error) {
	q = q.withDefaults()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []Match
	for _, rec := range s.conversations {
		if rec.Industry != q.Industry {
			continue
		}
		sim := cosineSimilarity(q.Vector, rec.Embedding)
		if sim < q.Threshold {
			continue
		}
		matches = append(matches, Match{
			ID:                rec.ID,
			Collection:        CollectionConversations,
			UserMessage:       rec.UserMessage,
			AssistantResponse: rec.AssistantResponse,
			ProblemDetected:   rec.ProblemDetected,
			SolutionPresented: rec.SolutionPresented,
			ConversationStage: rec.ConversationStage,
			Outcome:           rec.Outcome,
			ConversionScore:   rec.ConversionScore,
			Similarity:        sim,
		})
	}
	return rankAndLimit(matches, q.Limit), nil
}

// SearchExamples scans curated examples for the query's industry.
func (s *MemoryVectorStore) SearchExamples(ctx context.Context, q SearchQuery) ([]Match, error) {
	q = q.withDefaults()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []Match
	for _, rec := range s.examples {
		if rec.Industry != q.Industry {
			continue
		}
		sim := cosineSimilarity(q.Vector, rec.Embedding)
		if sim < q.Threshold {
			continue
		}
		matches = append(matches, Match{
			ID:                rec.ID,
			Collection:        CollectionExamples,
			UserMessage:       rec.UserInput,
			AssistantResponse: rec.AssistantResponse,
			ProblemDetected:   rec.ProblemType,
			SolutionPresented: rec.SolutionType,
			ConversationStage: rec.ConversationStage,
			Outcome:           rec.Outcome,
			ConversionScore:   rec.ConversionScore,
			Similarity:        sim,
		})
	}
	return rankAndLimit(matches, q.Limit), nil
}

// rankAndLimit orders by descending similarity, keeping insertion order for
// ties, and truncates to limit.
func rankAndLimit(matches []Match, limit int) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// InsertConversation appends a completed exchange.
func (s *MemoryVectorStore) InsertConversation(ctx context.Context, rec *ConversationRecord) error {
	if rec == nil {
		return ErrInvalidRecord
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append(s.conversations, rec)
	return nil
}

// InsertExample appends a curated example.
func (s *MemoryVectorStore) InsertExample(ctx context.Context, rec *ExampleRecord) error {
	if rec == nil {
		return ErrInvalidRecord
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.examples = append(s.examples, rec)
	return nil
}

// MarkConversationSuccess updates all records for the session.
func (s *MemoryVectorStore) MarkConversationSuccess(ctx context.Context, sessionID string, conversionScore float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, rec := range s.conversations {
		if rec.SessionID != sessionID {
			continue
		}
		rec.Outcome = OutcomeBookingCompleted
		rec.BookingCompleted = true
		rec.ConversionScore = conversionScore
		rec.UpdatedAt = now
	}
	return nil
}

// Dimension reports the configured vector size.
func (s *MemoryVectorStore) Dimension() int {
	return s.dimension
}

// Ping always succeeds for the in-memory store.
func (s *MemoryVectorStore) Ping(ctx context.Context) error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	var normA float64
	var normB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

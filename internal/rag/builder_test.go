package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int { return len(s.vector) }

type stubStore struct {
	conversations    []Match
	examples         []Match
	conversationsErr error
	examplesErr      error

	searchCalls     int
	insertFailures  int
	insertCalls     int
	inserted        []*ConversationRecord
	markedSessionID string
	markedScore     float64
	dimension       int
	pingErr         error
}

func (s *stubStore) SearchConversations(ctx context.Context, q SearchQuery) ([]Match, error) {
	s.searchCalls++
	return s.conversations, s.conversationsErr
}

func (s *stubStore) SearchExamples(ctx context.Context, q SearchQuery) ([]Match, error) {
	s.searchCalls++
	return s.examples, s.examplesErr
}

func (s *stubStore) InsertConversation(ctx context.Context, rec *ConversationRecord) error {
	s.insertCalls++
	if s.insertFailures > 0 {
		s.insertFailures--
		return ErrWriteFailed
	}
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *stubStore) InsertExample(ctx context.Context, rec *ExampleRecord) error { return nil }

func (s *stubStore) MarkConversationSuccess(ctx context.Context, sessionID string, conversionScore float64) error {
	s.markedSessionID = sessionID
	s.markedScore = conversionScore
	return nil
}

func (s *stubStore) Dimension() int {
	if s.dimension > 0 {
		return s.dimension
	}
	return 3
}

func (s *stubStore) Ping(ctx context.Context) error { return s.pingErr }

func newTestBuilder(embedder *stubEmbedder, store *stubStore) *ContextBuilder {
	return NewContextBuilder(embedder, store, nil, nil, BuilderOptions{})
}

func TestBuildContextChurnScenario(t *testing.T) {
	store := &stubStore{
		conversations: []Match{
			{Collection: CollectionConversations, ProblemDetected: "customer_churn", SolutionPresented: "churn_prediction", ConversionScore: 0.95, Similarity: 0.9, AssistantResponse: "quantify the loss"},
			{Collection: CollectionConversations, ProblemDetected: "customer_churn", SolutionPresented: "churn_prediction", Similarity: 0.85},
		},
		examples: []Match{
			{Collection: CollectionExamples, ProblemDetected: "customer_churn", SolutionPresented: "churn_prediction", Similarity: 0.8},
		},
	}
	b := newTestBuilder(&stubEmbedder{vector: []float32{1, 0, 0}}, store)

	rc := b.BuildContext(context.Background(), "we keep losing customers", "strive", ConversationState{Stage: StageDiscovery})

	assert.Equal(t, []string{"customer_churn"}, rc.SearchResults.DetectedProblems)
	assert.Equal(t, []string{"churn_prediction"}, rc.SearchResults.RecommendedSolutions)
	require.NotNil(t, rc.SearchResults.BestPattern)
	assert.Equal(t, 0.95, rc.SearchResults.BestPattern.ConversionScore)
	assert.InDelta(t, (0.85+1.0+1.0)/3, rc.SearchResults.Confidence.OverallConfidence, 1e-9)

	assert.Equal(t, "Present solution with proven talking points", rc.Guidance.SuggestedApproach)
	assert.Equal(t, UrgencyHigh, rc.Guidance.UrgencyLevel)
	assert.Contains(t, rc.Guidance.KeyPoints, "Similar conversations with 95% conversion rate used this approach")
}

func TestBuildContextUnknownIndustryDegradesToDiscovery(t *testing.T) {
	b := newTestBuilder(&stubEmbedder{vector: []float32{1, 0, 0}}, &stubStore{})

	rc := b.BuildContext(context.Background(), "hello", "unknown", ConversationState{})

	assert.Empty(t, rc.SearchResults.DetectedProblems)
	assert.Nil(t, rc.SearchResults.BestPattern)
	assert.Zero(t, rc.SearchResults.Confidence.OverallConfidence)
	assert.Equal(t, "Continue discovery to understand pain points", rc.Guidance.SuggestedApproach)
	assert.Equal(t, UrgencyLow, rc.Guidance.UrgencyLevel)
}

func TestBuildContextEmbeddingFailureDegrades(t *testing.T) {
	store := &stubStore{conversations: []Match{{Similarity: 0.9}}}
	b := newTestBuilder(&stubEmbedder{err: ErrEmbeddingUnavailable}, store)

	rc := b.BuildContext(context.Background(), "hello", "strive", ConversationState{})

	assert.Zero(t, store.searchCalls)
	assert.Empty(t, rc.SearchResults.DetectedProblems)
	assert.Equal(t, "Continue discovery to understand pain points", rc.Guidance.SuggestedApproach)
}

func TestBuildContextSearchFailureDegradesPerCollection(t *testing.T) {
	store := &stubStore{
		conversationsErr: ErrSearchUnavailable,
		examples: []Match{
			{Collection: CollectionExamples, ProblemDetected: "fraud", Similarity: 0.9},
		},
	}
	b := newTestBuilder(&stubEmbedder{vector: []float32{1, 0, 0}}, store)

	rc := b.BuildContext(context.Background(), "hello", "strive", ConversationState{})

	assert.Equal(t, []string{"fraud"}, rc.SearchResults.DetectedProblems)
	assert.Equal(t, UrgencyHigh, rc.Guidance.UrgencyLevel)
}

func TestStoreConversationValidatesBeforeEmbed(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0, 0}}
	b := newTestBuilder(embedder, &stubStore{})

	err := b.StoreConversation(context.Background(), StoreConversationInput{
		SessionID: "sess-1", Industry: "strive", AssistantResponse: "hi",
	})

	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Zero(t, embedder.calls)
}

func TestStoreConversationFillsRecord(t *testing.T) {
	store := &stubStore{}
	b := newTestBuilder(&stubEmbedder{vector: []float32{1, 0, 0}}, store)

	err := b.StoreConversation(context.Background(), StoreConversationInput{
		SessionID: "sess-1", Industry: "strive",
		UserMessage: "we keep losing customers", AssistantResponse: "tell me more",
		ProblemDetected: "customer_churn", ConversationStage: StageDiscovery,
	})
	require.NoError(t, err)

	require.Len(t, store.inserted, 1)
	rec := store.inserted[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, []float32{1, 0, 0}, rec.Embedding)
	assert.Equal(t, "customer_churn", rec.ProblemDetected)
}

func TestStoreConversationRetriesOnce(t *testing.T) {
	store := &stubStore{insertFailures: 1}
	b := newTestBuilder(&stubEmbedder{vector: []float32{1, 0, 0}}, store)

	err := b.StoreConversation(context.Background(), StoreConversationInput{
		SessionID: "sess-1", Industry: "strive",
		UserMessage: "hello", AssistantResponse: "hi",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, store.insertCalls)
	assert.Len(t, store.inserted, 1)
}

func TestStoreConversationGivesUpAfterRetry(t *testing.T) {
	store := &stubStore{insertFailures: 2}
	b := newTestBuilder(&stubEmbedder{vector: []float32{1, 0, 0}}, store)

	err := b.StoreConversation(context.Background(), StoreConversationInput{
		SessionID: "sess-1", Industry: "strive",
		UserMessage: "hello", AssistantResponse: "hi",
	})

	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Equal(t, 2, store.insertCalls)
	assert.Empty(t, store.inserted)
}

func TestStoreConversationEmbeddingFailure(t *testing.T) {
	store := &stubStore{}
	b := newTestBuilder(&stubEmbedder{err: errors.New("down")}, store)

	err := b.StoreConversation(context.Background(), StoreConversationInput{
		SessionID: "sess-1", Industry: "strive",
		UserMessage: "hello", AssistantResponse: "hi",
	})

	assert.Error(t, err)
	assert.Zero(t, store.insertCalls)
}

func TestMarkConversationSuccessDefaultsScore(t *testing.T) {
	store := &stubStore{}
	b := newTestBuilder(&stubEmbedder{vector: []float32{1, 0, 0}}, store)

	require.NoError(t, b.MarkConversationSuccess(context.Background(), "sess-1", 0))
	assert.Equal(t, "sess-1", store.markedSessionID)
	assert.Equal(t, 1.0, store.markedScore)

	require.NoError(t, b.MarkConversationSuccess(context.Background(), "sess-2", 0.85))
	assert.Equal(t, 0.85, store.markedScore)
}

func TestHealthDetectsDimensionMismatch(t *testing.T) {
	b := newTestBuilder(&stubEmbedder{vector: []float32{1, 0}}, &stubStore{dimension: 3})
	assert.ErrorIs(t, b.Health(context.Background()), ErrDimensionMismatch)

	ok := newTestBuilder(&stubEmbedder{vector: []float32{1, 0, 0}}, &stubStore{dimension: 3})
	assert.NoError(t, ok.Health(context.Background()))
}

func TestNewContextBuilderRejectsNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewContextBuilder(nil, &stubStore{}, nil, nil, BuilderOptions{}) })
	assert.Panics(t, func() { NewContextBuilder(&stubEmbedder{}, nil, nil, nil, BuilderOptions{}) })
}

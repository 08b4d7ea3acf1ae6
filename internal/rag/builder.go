package rag

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strivetech/sales-ai-platform/internal/observability/metrics"
	"github.com/strivetech/sales-ai-platform/pkg/logging"
)

// BuilderOptions tunes retrieval and external-call deadlines.
type BuilderOptions struct {
	Threshold     float64
	Limit         int
	EmbedTimeout  time.Duration
	SearchTimeout time.Duration
	WriteTimeout  time.Duration
}

func (o BuilderOptions) withDefaults() BuilderOptions {
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.EmbedTimeout <= 0 {
		o.EmbedTimeout = 10 * time.Second
	}
	if o.SearchTimeout <= 0 {
		o.SearchTimeout = 5 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	return o
}

// ContextBuilder orchestrates the per-turn pipeline: embed the user message,
// search both collections, aggregate, synthesize guidance. It also drives the
// write path that grows the conversations collection.
type ContextBuilder struct {
	embedder Embedder
	store    VectorStore
	logger   *logging.Logger
	metrics  *metrics.RAGMetrics
	opts     BuilderOptions
}

// NewContextBuilder wires the pipeline. metrics may be nil.
func NewContextBuilder(embedder Embedder, store VectorStore, logger *logging.Logger, m *metrics.RAGMetrics, opts BuilderOptions) *ContextBuilder {
	if embedder == nil {
		panic("rag: embedder cannot be nil")
	}
	if store == nil {
		panic("rag: vector store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ContextBuilder{
		embedder: embedder,
		store:    store,
		logger:   logger,
		metrics:  m,
		opts:     opts.withDefaults(),
	}
}

// BuildContext runs the full retrieval pipeline for one user turn. It never
// fails: retrieval errors degrade to a zero-evidence context whose guidance
// defaults to the discovery branch.
func (b *ContextBuilder) BuildContext(ctx context.Context, userMessage, industry string, state ConversationState) RAGContext {
	start := time.Now()
	defer func() {
		b.metrics.ObserveContextBuild(time.Since(start).Seconds())
	}()

	pool := b.searchBothCollections(ctx, userMessage, industry)
	results := Aggregate(pool)
	guidance := SynthesizeGuidance(results, state)

	return RAGContext{
		UserMessage:         userMessage,
		SearchResults:       results,
		ConversationHistory: state,
		Guidance:            guidance,
	}
}

// searchBothCollections embeds the query once and issues the two collection
// searches concurrently. Each failure degrades to an empty list for that
// collection; an embedding failure degrades to an empty pool.
func (b *ContextBuilder) searchBothCollections(ctx context.Context, userMessage, industry string) []Match {
	embedCtx, cancel := context.WithTimeout(ctx, b.opts.EmbedTimeout)
	defer cancel()

	vectors, err := b.embedder.Embed(embedCtx, []string{userMessage})
	if err != nil || len(vectors) == 0 {
		b.metrics.ObserveEmbeddingFailure()
		b.logger.Error("rag: query embedding failed, degrading to zero-evidence context",
			"industry", industry, "error", err)
		return nil
	}

	query := SearchQuery{
		Vector:    vectors[0],
		Industry:  industry,
		Threshold: b.opts.Threshold,
		Limit:     b.opts.Limit,
	}

	var wg sync.WaitGroup
	var conversations, examples []Match

	wg.Add(2)
	go func() {
		defer wg.Done()
		conversations = b.searchCollection(ctx, CollectionConversations, query, b.store.SearchConversations)
	}()
	go func() {
		defer wg.Done()
		examples = b.searchCollection(ctx, CollectionExamples, query, b.store.SearchExamples)
	}()
	wg.Wait()

	// Merge without re-ranking across collections; each match keeps its own
	// similarity score for averaging during aggregation.
	pool := make([]Match, 0, len(conversations)+len(examples))
	pool = append(pool, conversations...)
	pool = append(pool, examples...)
	return pool
}

func (b *ContextBuilder) searchCollection(ctx context.Context, collection string, query SearchQuery, search func(context.Context, SearchQuery) ([]Match, error)) []Match {
	searchCtx, cancel := context.WithTimeout(ctx, b.opts.SearchTimeout)
	defer cancel()

	matches, err := search(searchCtx, query)
	if err != nil {
		b.metrics.ObserveSearch(collection, "error")
		b.logger.Warn("rag: collection search failed, treating as zero matches",
			"collection", collection, "industry", query.Industry, "error", err)
		return nil
	}
	b.metrics.ObserveSearch(collection, "ok")
	return matches
}

// StoreConversationInput is a completed turn awaiting persistence. The core
// fills in the id, embedding, and timestamps.
type StoreConversationInput struct {
	Industry          string
	ClientID          string
	SessionID         string
	UserMessage       string
	AssistantResponse string
	ProblemDetected   string
	SolutionPresented string
	ConversationStage string
	Outcome           string
	ConversionScore   float64
	BookingCompleted  bool
	ResponseTimeMs    int
	UserSatisfaction  int
}

func (in StoreConversationInput) validate() error {
	if strings.TrimSpace(in.UserMessage) == "" {
		return fmt.Errorf("%w: user message is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(in.SessionID) == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(in.Industry) == "" {
		return fmt.Errorf("%w: industry is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(in.AssistantResponse) == "" {
		return fmt.Errorf("%w: assistant response is required", ErrInvalidRecord)
	}
	return nil
}

// StoreConversation embeds the user message and persists the completed turn.
// Validation happens before the embedding call so invalid input never costs
// an external round trip, and a record is only ever written with its
// embedding attached. The insert is retried once; a repeated failure is
// returned for the caller to log and swallow.
func (b *ContextBuilder) StoreConversation(ctx context.Context, in StoreConversationInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	embedCtx, cancel := context.WithTimeout(ctx, b.opts.EmbedTimeout)
	defer cancel()

	vectors, err := b.embedder.Embed(embedCtx, []string{in.UserMessage})
	if err != nil {
		b.metrics.ObserveEmbeddingFailure()
		return fmt.Errorf("rag: store conversation: %w", err)
	}
	if len(vectors) == 0 {
		return fmt.Errorf("rag: store conversation: %w: no vector returned", ErrEmbeddingUnavailable)
	}

	rec := &ConversationRecord{
		ID:                uuid.New(),
		Industry:          in.Industry,
		ClientID:          in.ClientID,
		SessionID:         in.SessionID,
		UserMessage:       in.UserMessage,
		AssistantResponse: in.AssistantResponse,
		Embedding:         vectors[0],
		ProblemDetected:   in.ProblemDetected,
		SolutionPresented: in.SolutionPresented,
		ConversationStage: in.ConversationStage,
		Outcome:           in.Outcome,
		ConversionScore:   in.ConversionScore,
		BookingCompleted:  in.BookingCompleted,
		ResponseTimeMs:    in.ResponseTimeMs,
		UserSatisfaction:  in.UserSatisfaction,
	}

	writeCtx, cancelWrite := context.WithTimeout(ctx, b.opts.WriteTimeout)
	defer cancelWrite()

	if err := b.store.InsertConversation(writeCtx, rec); err != nil {
		b.logger.Warn("rag: conversation insert failed, retrying once",
			"session_id", in.SessionID, "error", err)
		if err := b.store.InsertConversation(writeCtx, rec); err != nil {
			b.metrics.ObserveWrite("error")
			b.logger.Error("rag: conversation insert failed after retry",
				"session_id", in.SessionID, "error", err)
			return fmt.Errorf("rag: store conversation: %w", err)
		}
	}
	b.metrics.ObserveWrite("ok")
	return nil
}

// MarkConversationSuccess records a completed booking for the session.
// A non-positive score defaults to 1.0.
func (b *ContextBuilder) MarkConversationSuccess(ctx context.Context, sessionID string, conversionScore float64) error {
	if conversionScore <= 0 {
		conversionScore = 1.0
	}

	writeCtx, cancel := context.WithTimeout(ctx, b.opts.WriteTimeout)
	defer cancel()

	if err := b.store.MarkConversationSuccess(writeCtx, sessionID, conversionScore); err != nil {
		b.metrics.ObserveWrite("error")
		b.logger.Error("rag: mark conversation success failed", "session_id", sessionID, "error", err)
		return err
	}
	b.metrics.ObserveWrite("ok")
	return nil
}

// Health verifies the store is reachable and that the embedder and store
// agree on vector dimensionality. Run at startup and from the health
// endpoint; a mismatch is a deployment error, not a per-request condition.
func (b *ContextBuilder) Health(ctx context.Context) error {
	if b.embedder.Dimension() != b.store.Dimension() {
		return fmt.Errorf("%w: embedder produces %d, store expects %d",
			ErrDimensionMismatch, b.embedder.Dimension(), b.store.Dimension())
	}
	return b.store.Ping(ctx)
}

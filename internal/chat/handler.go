package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/strivetech/sales-ai-platform/internal/cache"
	"github.com/strivetech/sales-ai-platform/internal/rag"
	"github.com/strivetech/sales-ai-platform/pkg/logging"
)

const defaultIndustry = "strive"

// ContextService is the retrieval pipeline the handler drives per turn.
// Satisfied by *rag.ContextBuilder.
type ContextService interface {
	BuildContext(ctx context.Context, userMessage, industry string, state rag.ConversationState) rag.RAGContext
	StoreConversation(ctx context.Context, in rag.StoreConversationInput) error
	MarkConversationSuccess(ctx context.Context, sessionID string, conversionScore float64) error
	Health(ctx context.Context) error
}

// SessionRepository loads and saves per-visitor conversation state.
// Satisfied by *SessionStore.
type SessionRepository interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
}

// Handler serves the conversational sales endpoints.
type Handler struct {
	contexts   ContextService
	sessions   SessionRepository
	llm        LLMClient
	ctxCache   *cache.Cache[rag.RAGContext]
	cacheTTL   time.Duration
	basePrompt string
	logger     *logging.Logger
}

// NewHandler wires the chat-turn driver. ctxCache may be nil to disable
// context memoization.
func NewHandler(contexts ContextService, sessions SessionRepository, llm LLMClient, ctxCache *cache.Cache[rag.RAGContext], cacheTTL time.Duration, basePrompt string, logger *logging.Logger) *Handler {
	if contexts == nil {
		panic("chat: context service cannot be nil")
	}
	if llm == nil {
		panic("chat: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Handler{
		contexts:   contexts,
		sessions:   sessions,
		llm:        llm,
		ctxCache:   ctxCache,
		cacheTTL:   cacheTTL,
		basePrompt: basePrompt,
		logger:     logger,
	}
}

// MessageRequest is the body of POST /conversations/message.
type MessageRequest struct {
	SessionID string `json:"session_id"`
	Industry  string `json:"industry"`
	Message   string `json:"message"`
}

// MessageResponse is the reply for one turn.
type MessageResponse struct {
	SessionID        string       `json:"session_id"`
	Reply            string       `json:"reply"`
	Stage            string       `json:"stage"`
	DetectedProblems []string     `json:"detected_problems"`
	Guidance         rag.Guidance `json:"guidance"`
	Confidence       float64      `json:"confidence"`
}

// HandleMessage runs one conversational turn: load state, build retrieval
// context, complete, respond, then persist the turn. The persistence step is
// skipped when the client has gone away; an in-flight response nobody reads
// should not grow the training corpus.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}
	if req.Industry == "" {
		req.Industry = defaultIndustry
	}

	ctx := r.Context()
	sess := h.loadOrCreateSession(ctx, req)

	userTurns := countUserMessages(sess.Messages) + 1
	sess.State.Stage = stageForCount(userTurns)
	sess.State.ProblemsDiscussed = append(sess.State.ProblemsDiscussed,
		detectProblems(req.Message, sess.State.ProblemsDiscussed)...)
	sess.State.MessageCount = userTurns

	ragCtx := h.buildContext(ctx, req.Message, req.Industry, sess.State)

	completion, err := h.llm.Complete(ctx, LLMRequest{
		System:   BuildSystemPrompt(h.basePrompt, ragCtx),
		Messages: append(sess.Messages, ChatMessage{Role: ChatRoleUser, Content: req.Message}),
	})
	if err != nil {
		h.logger.Error("chat: completion failed", "session_id", req.SessionID, "error", err)
		respondError(w, http.StatusBadGateway, "assistant is unavailable")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{
		SessionID:        req.SessionID,
		Reply:            completion.Text,
		Stage:            sess.State.Stage,
		DetectedProblems: ragCtx.SearchResults.DetectedProblems,
		Guidance:         ragCtx.Guidance,
		Confidence:       ragCtx.SearchResults.Confidence.OverallConfidence,
	})

	if ctx.Err() != nil {
		h.logger.Info("chat: client gone, skipping turn persistence", "session_id", req.SessionID)
		return
	}
	h.persistTurn(context.WithoutCancel(ctx), req, sess, ragCtx, completion.Text)
}

func (h *Handler) loadOrCreateSession(ctx context.Context, req MessageRequest) *Session {
	if h.sessions != nil {
		sess, err := h.sessions.Load(ctx, req.SessionID)
		if err != nil {
			h.logger.Warn("chat: session load failed, starting fresh", "session_id", req.SessionID, "error", err)
		} else if sess != nil {
			return sess
		}
	}
	return &Session{
		SessionID: req.SessionID,
		Industry:  req.Industry,
		State:     rag.ConversationState{Stage: rag.StageDiscovery},
	}
}

func (h *Handler) buildContext(ctx context.Context, message, industry string, state rag.ConversationState) rag.RAGContext {
	if h.ctxCache == nil {
		return h.contexts.BuildContext(ctx, message, industry, state)
	}
	key := cache.Key(industry, message)
	if cached, ok := h.ctxCache.Get(key); ok {
		return cached
	}
	built := h.contexts.BuildContext(ctx, message, industry, state)
	h.ctxCache.Set(key, built, h.cacheTTL)
	return built
}

// persistTurn appends the exchange to the session and grows the retrieval
// corpus. Both failures are swallowed after logging; the user already has
// their answer.
func (h *Handler) persistTurn(ctx context.Context, req MessageRequest, sess *Session, ragCtx rag.RAGContext, reply string) {
	input := rag.StoreConversationInput{
		Industry:          req.Industry,
		SessionID:         req.SessionID,
		UserMessage:       req.Message,
		AssistantResponse: reply,
		ConversationStage: sess.State.Stage,
		Outcome:           rag.OutcomeInProgress,
	}
	if len(ragCtx.SearchResults.DetectedProblems) > 0 {
		input.ProblemDetected = ragCtx.SearchResults.DetectedProblems[0]
	}
	if len(ragCtx.SearchResults.RecommendedSolutions) > 0 {
		input.SolutionPresented = ragCtx.SearchResults.RecommendedSolutions[0]
	}
	if err := h.contexts.StoreConversation(ctx, input); err != nil {
		h.logger.Error("chat: failed to store turn", "session_id", req.SessionID, "error", err)
	}

	if h.sessions == nil {
		return
	}
	sess.Messages = append(sess.Messages,
		ChatMessage{Role: ChatRoleUser, Content: req.Message},
		ChatMessage{Role: ChatRoleAssistant, Content: reply})
	sess.State.MessageCount = countUserMessages(sess.Messages)
	if err := h.sessions.Save(ctx, sess); err != nil {
		h.logger.Error("chat: failed to save session", "session_id", req.SessionID, "error", err)
	}
}

// BookingConfirmedRequest is the body of POST /conversations/booking-confirmed.
type BookingConfirmedRequest struct {
	SessionID       string  `json:"session_id"`
	ConversionScore float64 `json:"conversion_score"`
}

// HandleBookingConfirmed records a completed booking reported by the booking
// system and promotes the session's records to successful patterns.
func (h *Handler) HandleBookingConfirmed(w http.ResponseWriter, r *http.Request) {
	var req BookingConfirmedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	if err := h.contexts.MarkConversationSuccess(r.Context(), req.SessionID, req.ConversionScore); err != nil {
		h.logger.Error("chat: booking confirmation failed", "session_id", req.SessionID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to record booking")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleHealth reports pipeline health: store reachability and
// embedder/store dimension agreement.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.contexts.Health(r.Context()); err != nil {
		h.logger.Error("chat: health check failed", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func countUserMessages(messages []ChatMessage) int {
	n := 0
	for _, m := range messages {
		if m.Role == ChatRoleUser {
			n++
		}
	}
	return n
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

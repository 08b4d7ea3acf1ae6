package rag

import (
	"time"

	"github.com/google/uuid"
)

// Conversation outcomes.
const (
	OutcomeBookingCompleted  = "booking_completed"
	OutcomeConversationEnded = "conversation_ended"
	OutcomeInProgress        = "in_progress"
)

// Conversation stages.
const (
	StageDiscovery   = "discovery"
	StageQualifying  = "qualifying"
	StageSolutioning = "solutioning"
	StageBooking     = "booking"
)

// Collection names in the vector store.
const (
	CollectionConversations = "conversations"
	CollectionExamples      = "examples"
)

// ConversationRecord is one real user/assistant exchange persisted for
// future retrieval. The embedding is always computed from UserMessage alone
// so that similarity search compares query text to historical user
// utterances, never to responses.
type ConversationRecord struct {
	ID        uuid.UUID
	Industry  string
	ClientID  string
	SessionID string

	UserMessage       string
	AssistantResponse string
	Embedding         []float32

	ProblemDetected   string
	SolutionPresented string
	ConversationStage string

	Outcome          string
	ConversionScore  float64
	BookingCompleted bool

	ResponseTimeMs   int
	UserSatisfaction int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExampleRecord is a curated, verified training exchange. Examples are
// seeded out-of-band and read-only at runtime.
type ExampleRecord struct {
	ID       uuid.UUID
	Industry string

	UserInput         string
	AssistantResponse string
	Embedding         []float32

	ProblemType       string
	SolutionType      string
	ConversationStage string

	Outcome         string
	ConversionScore float64

	IsVerified bool
	Notes      string

	CreatedAt time.Time
}

// Match is one ranked similarity-search hit from either collection.
type Match struct {
	ID                uuid.UUID `json:"id"`
	Collection        string    `json:"collection"`
	UserMessage       string    `json:"userMessage"`
	AssistantResponse string    `json:"assistantResponse"`
	ProblemDetected   string    `json:"problemDetected,omitempty"`
	SolutionPresented string    `json:"solutionPresented,omitempty"`
	ConversationStage string    `json:"conversationStage,omitempty"`
	Outcome           string    `json:"outcome,omitempty"`
	ConversionScore   float64   `json:"conversionScore"`
	Similarity        float64   `json:"similarity"`
}

// BestPattern is the highest-converting retrieved exchange.
type BestPattern struct {
	Approach        string  `json:"approach"`
	ConversionScore float64 `json:"conversionScore"`
	Stage           string  `json:"stage"`
}

// Confidence carries the three retrieval confidence scalars, each in [0,1].
type Confidence struct {
	ProblemDetection  float64 `json:"problemDetection"`
	SolutionMatch     float64 `json:"solutionMatch"`
	OverallConfidence float64 `json:"overallConfidence"`
}

// SemanticSearchResult aggregates the merged match pool into problem and
// solution signals.
type SemanticSearchResult struct {
	SimilarConversations []Match      `json:"similarConversations"`
	DetectedProblems     []string     `json:"detectedProblems"`
	RecommendedSolutions []string     `json:"recommendedSolutions"`
	BestPattern          *BestPattern `json:"bestPattern,omitempty"`
	Confidence           Confidence   `json:"confidence"`
}

// ConversationState is the lightweight per-session state supplied by the
// chat-turn driver. MessageCount counts user turns, the current one
// included.
type ConversationState struct {
	Stage             string   `json:"stage"`
	MessageCount      int      `json:"messageCount"`
	ProblemsDiscussed []string `json:"problemsDiscussed"`
}

// Guidance is the synthesized advice handed to prompt assembly.
type Guidance struct {
	SuggestedApproach string   `json:"suggestedApproach"`
	KeyPoints         []string `json:"keyPoints"`
	AvoidTopics       []string `json:"avoidTopics"`
	UrgencyLevel      string   `json:"urgencyLevel"`
}

// Urgency levels. The synthesizer only ever produces low or high; medium is
// declared for wire compatibility with downstream consumers.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// RAGContext is the per-turn retrieval context handed to prompt assembly.
// It is ephemeral and never persisted.
type RAGContext struct {
	UserMessage         string               `json:"userMessage"`
	SearchResults       SemanticSearchResult `json:"searchResults"`
	ConversationHistory ConversationState    `json:"conversationHistory"`
	Guidance            Guidance             `json:"guidance"`
}

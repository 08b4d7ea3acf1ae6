package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEmptyPool(t *testing.T) {
	result := Aggregate(nil)

	assert.Empty(t, result.DetectedProblems)
	assert.Empty(t, result.RecommendedSolutions)
	assert.Nil(t, result.BestPattern)
	assert.Zero(t, result.Confidence.ProblemDetection)
	assert.Zero(t, result.Confidence.SolutionMatch)
	assert.Zero(t, result.Confidence.OverallConfidence)
}

func TestAggregateConfidenceBounds(t *testing.T) {
	pool := []Match{
		{ProblemDetected: "churn", SolutionPresented: "churn_prediction", Similarity: 0.99},
		{ProblemDetected: "churn", SolutionPresented: "churn_prediction", Similarity: 0.95},
		{ProblemDetected: "support", Similarity: 0.8},
	}
	result := Aggregate(pool)

	for name, v := range map[string]float64{
		"problemDetection":  result.Confidence.ProblemDetection,
		"solutionMatch":     result.Confidence.SolutionMatch,
		"overallConfidence": result.Confidence.OverallConfidence,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	pool := []Match{
		{ProblemDetected: "churn", SolutionPresented: "churn_prediction", ConversionScore: 0.95, Similarity: 0.9},
		{ProblemDetected: "support", SolutionPresented: "support_automation", Similarity: 0.8},
	}
	first := Aggregate(pool)
	second := Aggregate(pool)
	assert.Equal(t, first, second)
}

func TestAggregateProblemFrequencyRanking(t *testing.T) {
	pool := []Match{
		{ProblemDetected: "support", Similarity: 0.8},
		{ProblemDetected: "churn", Similarity: 0.8},
		{ProblemDetected: "churn", Similarity: 0.8},
		{ProblemDetected: "quality", Similarity: 0.8},
		{ProblemDetected: "quality", Similarity: 0.8},
		{ProblemDetected: "quality", Similarity: 0.8},
		{ProblemDetected: "maintenance", Similarity: 0.8},
	}
	result := Aggregate(pool)

	// Top 3 by descending count; maintenance (1) ties support (1) but
	// support was seen first, and only three labels survive.
	assert.Equal(t, []string{"quality", "churn", "support"}, result.DetectedProblems)
}

func TestAggregateTieBreakIsDeterministic(t *testing.T) {
	pool := []Match{
		{ProblemDetected: "alpha", Similarity: 0.8},
		{ProblemDetected: "beta", Similarity: 0.8},
	}
	for i := 0; i < 10; i++ {
		result := Aggregate(pool)
		assert.Equal(t, []string{"alpha", "beta"}, result.DetectedProblems)
	}
}

func TestBestPatternSelection(t *testing.T) {
	pool := []Match{
		{AssistantResponse: "a", ConversionScore: 0.65, Similarity: 0.8},
		{AssistantResponse: "b", ConversionScore: 0.72, Similarity: 0.8},
		{AssistantResponse: "c", ConversionScore: 0.95, Similarity: 0.8},
		{AssistantResponse: "d", ConversionScore: 0.71, Similarity: 0.8},
	}
	result := Aggregate(pool)

	require.NotNil(t, result.BestPattern)
	assert.Equal(t, 0.95, result.BestPattern.ConversionScore)
	assert.Equal(t, "c", result.BestPattern.Approach)
}

func TestBestPatternAbsentBelowThreshold(t *testing.T) {
	pool := []Match{
		{ConversionScore: 0.3, Similarity: 0.8},
		{ConversionScore: 0.5, Similarity: 0.8},
		{ConversionScore: 0.6, Similarity: 0.8},
	}
	result := Aggregate(pool)
	assert.Nil(t, result.BestPattern)
}

func TestBestPatternThreadsStageFromRecord(t *testing.T) {
	pool := []Match{
		{AssistantResponse: "a", ConversionScore: 0.9, ConversationStage: StageQualifying, Similarity: 0.8},
	}
	result := Aggregate(pool)
	require.NotNil(t, result.BestPattern)
	assert.Equal(t, StageQualifying, result.BestPattern.Stage)
}

func TestBestPatternStageFallback(t *testing.T) {
	pool := []Match{
		{AssistantResponse: "a", ConversionScore: 0.9, Similarity: 0.8},
	}
	result := Aggregate(pool)
	require.NotNil(t, result.BestPattern)
	assert.Equal(t, StageSolutioning, result.BestPattern.Stage)
}

func TestAggregateChurnScenario(t *testing.T) {
	pool := []Match{
		{ProblemDetected: "churn", SolutionPresented: "churn_prediction", ConversionScore: 0.95, Similarity: 0.9, AssistantResponse: "proven approach"},
		{ProblemDetected: "churn", SolutionPresented: "churn_prediction", Similarity: 0.85},
		{ProblemDetected: "churn", SolutionPresented: "churn_prediction", Similarity: 0.8},
	}
	result := Aggregate(pool)

	assert.Equal(t, []string{"churn"}, result.DetectedProblems)
	require.NotNil(t, result.BestPattern)
	assert.Equal(t, 0.95, result.BestPattern.ConversionScore)

	// avg similarity 0.85, problemDetection 1.0, solutionMatch 1.0
	assert.InDelta(t, 1.0, result.Confidence.ProblemDetection, 1e-9)
	assert.InDelta(t, 1.0, result.Confidence.SolutionMatch, 1e-9)
	assert.InDelta(t, (0.85+1.0+1.0)/3, result.Confidence.OverallConfidence, 1e-9)
}

func TestAggregateIgnoresEmptyLabels(t *testing.T) {
	pool := []Match{
		{Similarity: 0.8},
		{Similarity: 0.85},
	}
	result := Aggregate(pool)
	assert.Empty(t, result.DetectedProblems)
	assert.Empty(t, result.RecommendedSolutions)
	assert.Zero(t, result.Confidence.ProblemDetection)
	assert.Zero(t, result.Confidence.SolutionMatch)
	// overall is avg similarity / 3 when no labels are present
	assert.InDelta(t, 0.825/3, result.Confidence.OverallConfidence, 1e-9)
}

package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuidanceHighConfidenceWithPattern(t *testing.T) {
	results := SemanticSearchResult{
		BestPattern: &BestPattern{Approach: "x", ConversionScore: 0.95, Stage: StageSolutioning},
		Confidence:  Confidence{OverallConfidence: 0.9},
	}
	g := SynthesizeGuidance(results, ConversationState{})

	assert.Equal(t, "Present solution with proven talking points", g.SuggestedApproach)
	assert.Contains(t, g.KeyPoints, "Similar conversations with 95% conversion rate used this approach")
	assert.Contains(t, g.KeyPoints, "Focus on problem quantification and impact")
	assert.Equal(t, UrgencyLow, g.UrgencyLevel)
}

func TestGuidanceHighConfidenceWithoutPattern(t *testing.T) {
	// High similarity and consistent labels, but no match converted above
	// 0.7. The approach still points at the solution, yet no bucket fires:
	// no discovery key points and nothing to avoid.
	results := SemanticSearchResult{
		DetectedProblems: []string{"quality_control"},
		Confidence:       Confidence{OverallConfidence: 0.95},
	}
	g := SynthesizeGuidance(results, ConversationState{})

	assert.Equal(t, "Present solution with proven talking points", g.SuggestedApproach)
	assert.Empty(t, g.KeyPoints)
	assert.Empty(t, g.AvoidTopics)
	assert.Equal(t, UrgencyLow, g.UrgencyLevel)
}

func TestGuidanceMediumConfidence(t *testing.T) {
	results := SemanticSearchResult{Confidence: Confidence{OverallConfidence: 0.65}}
	g := SynthesizeGuidance(results, ConversationState{})

	assert.Equal(t, "Ask qualifying questions to confirm problem", g.SuggestedApproach)
	assert.Contains(t, g.KeyPoints, "Ask 2-3 discovery questions to clarify the problem")
	assert.Contains(t, g.KeyPoints, "Avoid premature solution presentation")
	assert.Empty(t, g.AvoidTopics)
}

func TestGuidanceLowConfidenceStaysInDiscovery(t *testing.T) {
	results := SemanticSearchResult{Confidence: Confidence{OverallConfidence: 0.3}}
	g := SynthesizeGuidance(results, ConversationState{})

	assert.Equal(t, "Continue discovery to understand pain points", g.SuggestedApproach)
	assert.Contains(t, g.KeyPoints, "Stay in discovery mode - ask open-ended questions")
	assert.Contains(t, g.AvoidTopics, "Specific solution recommendations")
}

func TestGuidanceZeroEvidenceDefaults(t *testing.T) {
	g := SynthesizeGuidance(Aggregate(nil), ConversationState{})

	assert.Equal(t, "Continue discovery to understand pain points", g.SuggestedApproach)
	assert.Contains(t, g.AvoidTopics, "Specific solution recommendations")
	assert.Equal(t, UrgencyLow, g.UrgencyLevel)
}

func TestGuidanceUrgencyEscalation(t *testing.T) {
	for _, problem := range []string{"churn", "customer_churn", "fraud", "payment_fraud"} {
		results := SemanticSearchResult{
			DetectedProblems: []string{problem},
			Confidence:       Confidence{OverallConfidence: 0.3},
		}
		g := SynthesizeGuidance(results, ConversationState{})
		assert.Equal(t, UrgencyHigh, g.UrgencyLevel, problem)
		assert.Contains(t, g.KeyPoints, "Emphasize cost of inaction and urgency")
	}
}

func TestGuidanceUrgencyRunsIndependentlyOfBuckets(t *testing.T) {
	results := SemanticSearchResult{
		DetectedProblems: []string{"churn"},
		BestPattern:      &BestPattern{ConversionScore: 0.92},
		Confidence:       Confidence{OverallConfidence: 0.9},
	}
	g := SynthesizeGuidance(results, ConversationState{})

	// Key points from both the confidence bucket and the urgency rule.
	assert.Equal(t, UrgencyHigh, g.UrgencyLevel)
	assert.Contains(t, g.KeyPoints, "Focus on problem quantification and impact")
	assert.Contains(t, g.KeyPoints, "Emphasize cost of inaction and urgency")
}

func TestGuidanceNeverProducesMedium(t *testing.T) {
	for _, overall := range []float64{0, 0.2, 0.5, 0.51, 0.8, 0.81, 1.0} {
		results := SemanticSearchResult{Confidence: Confidence{OverallConfidence: overall}}
		g := SynthesizeGuidance(results, ConversationState{})
		assert.NotEqual(t, UrgencyMedium, g.UrgencyLevel)
	}
}

func TestGuidanceConversionRateRounding(t *testing.T) {
	results := SemanticSearchResult{
		BestPattern: &BestPattern{ConversionScore: 0.876},
		Confidence:  Confidence{OverallConfidence: 0.85},
	}
	g := SynthesizeGuidance(results, ConversationState{})
	assert.Contains(t, g.KeyPoints, "Similar conversations with 88% conversion rate used this approach")
}

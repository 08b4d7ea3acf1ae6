package rag

import (
	"fmt"
	"math"
	"strings"
)

// Confidence buckets for guidance synthesis.
const (
	highConfidenceFloor   = 0.8
	mediumConfidenceFloor = 0.5
)

// highUrgencyMarkers are problem-label substrings that escalate urgency.
var highUrgencyMarkers = []string{"churn", "fraud"}

// SynthesizeGuidance turns aggregated retrieval signals and the current
// conversation state into talking points for prompt assembly. The three
// confidence branches are independent conditions, not a three-way split:
// high confidence without a proven pattern matches none of them and yields
// no bucket key points. The urgency rule always runs on top.
func SynthesizeGuidance(results SemanticSearchResult, state ConversationState) Guidance {
	confidence := results.Confidence
	keyPoints := []string{}
	avoidTopics := []string{}
	urgencyLevel := UrgencyLow

	if confidence.OverallConfidence > highConfidenceFloor && results.BestPattern != nil {
		keyPoints = append(keyPoints,
			fmt.Sprintf("Similar conversations with %d%% conversion rate used this approach",
				int(math.Round(results.BestPattern.ConversionScore*100))))
		keyPoints = append(keyPoints, "Focus on problem quantification and impact")
	}
	if confidence.OverallConfidence > mediumConfidenceFloor && confidence.OverallConfidence <= highConfidenceFloor {
		keyPoints = append(keyPoints, "Ask 2-3 discovery questions to clarify the problem")
		keyPoints = append(keyPoints, "Avoid premature solution presentation")
	}
	if confidence.OverallConfidence <= mediumConfidenceFloor {
		keyPoints = append(keyPoints, "Stay in discovery mode - ask open-ended questions")
		avoidTopics = append(avoidTopics, "Specific solution recommendations")
	}

	if hasHighUrgencyProblem(results.DetectedProblems) {
		urgencyLevel = UrgencyHigh
		keyPoints = append(keyPoints, "Emphasize cost of inaction and urgency")
	}

	var suggestedApproach string
	switch {
	case confidence.OverallConfidence > highConfidenceFloor:
		suggestedApproach = "Present solution with proven talking points"
	case confidence.OverallConfidence > mediumConfidenceFloor:
		suggestedApproach = "Ask qualifying questions to confirm problem"
	default:
		suggestedApproach = "Continue discovery to understand pain points"
	}

	return Guidance{
		SuggestedApproach: suggestedApproach,
		KeyPoints:         keyPoints,
		AvoidTopics:       avoidTopics,
		UrgencyLevel:      urgencyLevel,
	}
}

func hasHighUrgencyProblem(problems []string) bool {
	for _, p := range problems {
		for _, marker := range highUrgencyMarkers {
			if strings.Contains(p, marker) {
				return true
			}
		}
	}
	return false
}

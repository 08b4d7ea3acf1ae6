package chat

import (
	"fmt"
	"math"
	"strings"

	"github.com/strivetech/sales-ai-platform/internal/rag"
)

// DefaultBasePrompt is the assistant persona used when no industry-specific
// prompt is configured.
const DefaultBasePrompt = `You are a consultative AI sales assistant. You help prospects ` +
	`articulate their business problems, qualify whether our solutions fit, and ` +
	`guide qualified prospects toward booking a demo. Be concise, ask one ` +
	`question at a time, and never oversell.`

// BuildSystemPrompt appends the retrieval-derived guidance to the base
// persona prompt. Sections with no content are omitted.
func BuildSystemPrompt(basePrompt string, rc rag.RAGContext) string {
	if basePrompt == "" {
		basePrompt = DefaultBasePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n## Contextual Intelligence\n\n")

	results := rc.SearchResults
	guidance := rc.Guidance

	if len(results.DetectedProblems) > 0 {
		b.WriteString("Similar conversations detected these problems:\n")
		for _, p := range results.DetectedProblems {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if results.BestPattern != nil {
		fmt.Fprintf(&b, "Proven approach (%d%% conversion rate): focus on quantifying the problem's impact and showing clear ROI.\n\n",
			int(math.Round(results.BestPattern.ConversionScore*100)))
	}

	fmt.Fprintf(&b, "Recommended strategy: %s\n\n", guidance.SuggestedApproach)

	if len(guidance.KeyPoints) > 0 {
		b.WriteString("Key points to include:\n")
		for _, p := range guidance.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if len(guidance.AvoidTopics) > 0 {
		b.WriteString("Topics to avoid:\n")
		for _, topic := range guidance.AvoidTopics {
			fmt.Fprintf(&b, "- %s\n", topic)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Confidence level: %d%%\n", int(math.Round(results.Confidence.OverallConfidence*100)))
	fmt.Fprintf(&b, "Urgency: %s\n", guidance.UrgencyLevel)

	return b.String()
}

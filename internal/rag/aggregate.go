package rag

import "sort"

const (
	topLabelCount        = 3
	bestPatternThreshold = 0.7
)

// Aggregate reduces a merged match pool to frequency-ranked problem and
// solution labels, the single highest-converting pattern, and confidence
// scores. Pure function of its input: identical pools always produce
// identical output.
func Aggregate(pool []Match) SemanticSearchResult {
	result := SemanticSearchResult{
		SimilarConversations: pool,
		DetectedProblems:     []string{},
		RecommendedSolutions: []string{},
	}
	if len(pool) == 0 {
		return result
	}

	problemCounts, problemMax := countLabels(pool, func(m Match) string { return m.ProblemDetected })
	solutionCounts, solutionMax := countLabels(pool, func(m Match) string { return m.SolutionPresented })

	result.DetectedProblems = topLabels(problemCounts, topLabelCount)
	result.RecommendedSolutions = topLabels(solutionCounts, topLabelCount)
	result.BestPattern = bestPattern(pool)

	var similaritySum float64
	for _, m := range pool {
		similaritySum += m.Similarity
	}
	avgSimilarity := similaritySum / float64(len(pool))

	problemDetection := clamp01(float64(problemMax) / float64(len(pool)))
	solutionMatch := clamp01(float64(solutionMax) / float64(len(pool)))

	result.Confidence = Confidence{
		ProblemDetection:  problemDetection,
		SolutionMatch:     solutionMatch,
		OverallConfidence: clamp01((avgSimilarity + problemDetection + solutionMatch) / 3),
	}
	return result
}

type labelCount struct {
	label string
	count int
}

// countLabels tallies non-empty labels in first-seen order and reports the
// highest single-label count.
func countLabels(pool []Match, label func(Match) string) ([]labelCount, int) {
	index := make(map[string]int)
	var counts []labelCount
	for _, m := range pool {
		l := label(m)
		if l == "" {
			continue
		}
		if i, ok := index[l]; ok {
			counts[i].count++
			continue
		}
		index[l] = len(counts)
		counts = append(counts, labelCount{label: l})
		counts[len(counts)-1].count = 1
	}

	maxCount := 0
	for _, c := range counts {
		if c.count > maxCount {
			maxCount = c.count
		}
	}
	return counts, maxCount
}

// topLabels sorts by descending count, ties kept in first-seen order.
func topLabels(counts []labelCount, n int) []string {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	labels := make([]string, len(counts))
	for i, c := range counts {
		labels[i] = c.label
	}
	return labels
}

// bestPattern picks the highest-converting match above the conversion
// threshold, or nil when none qualifies. The stage is taken from the source
// record when it carries one.
func bestPattern(pool []Match) *BestPattern {
	var best *Match
	for i := range pool {
		m := &pool[i]
		if m.ConversionScore <= bestPatternThreshold {
			continue
		}
		if best == nil || m.ConversionScore > best.ConversionScore {
			best = m
		}
	}
	if best == nil {
		return nil
	}

	stage := best.ConversationStage
	if stage == "" {
		stage = StageSolutioning
	}
	return &BestPattern{
		Approach:        best.AssistantResponse,
		ConversionScore: best.ConversionScore,
		Stage:           stage,
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

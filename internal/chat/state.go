package chat

import (
	"strings"

	"github.com/strivetech/sales-ai-platform/internal/rag"
)

// problemKeywords are user-utterance markers that flag a discussed problem.
var problemKeywords = []string{
	"losing customers",
	"churn",
	"defects",
	"quality",
	"support tickets",
	"fraud",
	"maintenance",
	"inventory",
}

// stageForCount maps how many user turns have happened to a sales stage.
func stageForCount(userMessages int) string {
	switch {
	case userMessages <= 2:
		return rag.StageDiscovery
	case userMessages <= 4:
		return rag.StageQualifying
	case userMessages <= 6:
		return rag.StageSolutioning
	default:
		return rag.StageBooking
	}
}

// detectProblems returns the problem keywords present in the message,
// excluding ones already seen.
func detectProblems(message string, seen []string) []string {
	lower := strings.ToLower(message)
	var found []string
	for _, kw := range problemKeywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		if contains(seen, kw) || contains(found, kw) {
			continue
		}
		found = append(found, kw)
	}
	return found
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

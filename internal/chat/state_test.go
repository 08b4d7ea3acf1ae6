package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strivetech/sales-ai-platform/internal/rag"
)

func TestStageForCount(t *testing.T) {
	cases := map[int]string{
		1: rag.StageDiscovery,
		2: rag.StageDiscovery,
		3: rag.StageQualifying,
		4: rag.StageQualifying,
		5: rag.StageSolutioning,
		6: rag.StageSolutioning,
		7: rag.StageBooking,
	}
	for count, want := range cases {
		assert.Equal(t, want, stageForCount(count), "count %d", count)
	}
}

func TestDetectProblems(t *testing.T) {
	found := detectProblems("We're losing customers to churn and fraud is up", nil)
	assert.ElementsMatch(t, []string{"losing customers", "churn", "fraud"}, found)
}

func TestDetectProblemsSkipsSeen(t *testing.T) {
	found := detectProblems("churn is killing us", []string{"churn"})
	assert.Empty(t, found)
}

func TestDetectProblemsCaseInsensitive(t *testing.T) {
	found := detectProblems("FRAUD everywhere", nil)
	assert.Equal(t, []string{"fraud"}, found)
}

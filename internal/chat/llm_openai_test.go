package chat

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatAPI struct {
	resp openai.ChatCompletionResponse
	err  error
	last openai.ChatCompletionRequest
}

func (s *stubChatAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.last = req
	return s.resp, s.err
}

func TestOpenAIClientComplete(t *testing.T) {
	api := &stubChatAPI{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Content: "hello there"},
			FinishReason: openai.FinishReasonStop,
		}},
		Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}}
	c := NewOpenAIClient(api, "")

	resp, err := c.Complete(context.Background(), LLMRequest{
		System:   "be helpful",
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", resp.Text)
	assert.Equal(t, int32(15), resp.Usage.TotalTokens)

	require.Len(t, api.last.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, api.last.Messages[0].Role)
	assert.Equal(t, openai.GPT4oMini, api.last.Model)
	assert.Equal(t, 1024, api.last.MaxTokens)
}

func TestOpenAIClientError(t *testing.T) {
	c := NewOpenAIClient(&stubChatAPI{err: errors.New("rate limited")}, "")
	_, err := c.Complete(context.Background(), LLMRequest{
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}},
	})
	assert.Error(t, err)
}

func TestOpenAIClientNoChoices(t *testing.T) {
	c := NewOpenAIClient(&stubChatAPI{}, "")
	_, err := c.Complete(context.Background(), LLMRequest{
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}},
	})
	assert.Error(t, err)
}

package chat

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type openaiChatAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient implements LLMClient against the OpenAI chat completions API.
type OpenAIClient struct {
	client       openaiChatAPI
	defaultModel string
}

// NewOpenAIClient creates an OpenAI-backed chat client.
func NewOpenAIClient(client openaiChatAPI, defaultModel string) *OpenAIClient {
	if client == nil {
		panic("chat: openai client cannot be nil")
	}
	if defaultModel == "" {
		defaultModel = openai.GPT4oMini
	}
	return &OpenAIClient{client: client, defaultModel: defaultModel}
}

// Complete issues one non-streaming chat completion.
func (c *OpenAIClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	maxTokens := int(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return LLMResponse{}, fmt.Errorf("chat: completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return LLMResponse{}, fmt.Errorf("chat: completion returned no choices")
	}

	choice := resp.Choices[0]
	return LLMResponse{
		Text:       choice.Message.Content,
		StopReason: string(choice.FinishReason),
		Usage: TokenUsage{
			InputTokens:  int32(resp.Usage.PromptTokens),
			OutputTokens: int32(resp.Usage.CompletionTokens),
			TotalTokens:  int32(resp.Usage.TotalTokens),
		},
	}, nil
}

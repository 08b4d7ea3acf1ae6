package rag

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder maps text to fixed-dimension dense vectors. Implementations must
// be deterministic enough that identical text yields near-identical vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

type openaiEmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIEmbedder generates embeddings through the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client    openaiEmbeddingAPI
	model     string
	dimension int
}

// NewOpenAIEmbedder creates an OpenAI-backed embedder.
func NewOpenAIEmbedder(client openaiEmbeddingAPI, model string, dimension int) *OpenAIEmbedder {
	if client == nil {
		panic("rag: embedding client cannot be nil")
	}
	if model == "" {
		model = string(openai.AdaEmbeddingV2)
	}
	if dimension <= 0 {
		dimension = 1536
	}
	return &OpenAIEmbedder{client: client, model: model, dimension: dimension}
}

// Embed returns one vector per input text, in input order.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := &openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	}
	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: response size mismatch (want %d, got %d)", ErrEmbeddingUnavailable, len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		if len(item.Embedding) == 0 {
			return nil, fmt.Errorf("%w: empty embedding at index %d", ErrEmbeddingUnavailable, i)
		}
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

// Dimension reports the vector size this embedder produces.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

package rag

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type bedrockInvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockEmbedder generates embeddings through Amazon Bedrock's Titan
// embedding models. Bedrock only embeds one text per InvokeModel call, so
// batches are issued sequentially.
type BedrockEmbedder struct {
	api       bedrockInvokeModelAPI
	modelID   string
	dimension int
}

// NewBedrockEmbedder creates a Bedrock-backed embedder.
func NewBedrockEmbedder(api bedrockInvokeModelAPI, modelID string, dimension int) *BedrockEmbedder {
	if api == nil {
		panic("rag: bedrock runtime client cannot be nil")
	}
	if modelID == "" {
		modelID = "amazon.titan-embed-text-v2:0"
	}
	if dimension <= 0 {
		dimension = 1024
	}
	return &BedrockEmbedder{api: api, modelID: modelID, dimension: dimension}
}

// Embed returns one vector per input text, in input order.
func (e *BedrockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, 0, len(texts))
	for _, text := range texts {
		payload, err := json.Marshal(map[string]any{
			"inputText": text,
		})
		if err != nil {
			return nil, fmt.Errorf("rag: embedding request marshal: %w", err)
		}

		out, err := e.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(e.modelID),
			ContentType: aws.String("application/json"),
			Accept:      aws.String("application/json"),
			Body:        payload,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
		}

		var decoded struct {
			Embedding []float64 `json:"embedding"`
		}
		if err := json.Unmarshal(out.Body, &decoded); err != nil {
			return nil, fmt.Errorf("%w: response parse: %v", ErrEmbeddingUnavailable, err)
		}
		if len(decoded.Embedding) == 0 {
			return nil, fmt.Errorf("%w: response was empty", ErrEmbeddingUnavailable)
		}

		vec := make([]float32, len(decoded.Embedding))
		for i, f := range decoded.Embedding {
			vec[i] = float32(f)
		}
		embeddings = append(embeddings, vec)
	}

	return embeddings, nil
}

// Dimension reports the vector size this embedder produces.
func (e *BedrockEmbedder) Dimension() int {
	return e.dimension
}

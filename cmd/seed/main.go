package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	appconfig "github.com/strivetech/sales-ai-platform/internal/config"
	"github.com/strivetech/sales-ai-platform/internal/rag"
	"github.com/strivetech/sales-ai-platform/pkg/logging"
)

// Seeds the examples collection with the curated strive training set.
// Safe to re-run; rows get fresh IDs, so truncate first when re-seeding.
func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).Component("seed")

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := rag.NewPGVectorStore(pool, cfg.EmbeddingDimensions, logger)
	embedder := rag.NewOpenAIEmbedder(openai.NewClient(cfg.OpenAIAPIKey), cfg.EmbeddingModel, cfg.EmbeddingDimensions)

	logger.Info("seeding training data", "examples", len(striveTrainingData))

	succeeded, failed := 0, 0
	for _, example := range striveTrainingData {
		rec := example
		rec.Industry = "strive"
		rec.IsVerified = true

		embedCtx, cancel := context.WithTimeout(ctx, cfg.EmbedTimeout)
		vectors, err := embedder.Embed(embedCtx, []string{rec.UserInput})
		cancel()
		if err != nil || len(vectors) == 0 {
			logger.Error("embedding failed", "problem_type", rec.ProblemType, "error", err)
			failed++
			continue
		}
		rec.Embedding = vectors[0]

		if err := store.InsertExample(ctx, &rec); err != nil {
			logger.Error("insert failed", "problem_type", rec.ProblemType, "error", err)
			failed++
			continue
		}

		logger.Info("inserted example", "problem_type", rec.ProblemType, "stage", rec.ConversationStage)
		succeeded++

		// Pace embedding calls to stay under provider rate limits.
		time.Sleep(100 * time.Millisecond)
	}

	logger.Info("seed complete", "succeeded", succeeded, "failed", failed, "total", len(striveTrainingData))
	if failed > 0 {
		os.Exit(1)
	}
}

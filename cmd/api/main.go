package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/strivetech/sales-ai-platform/internal/api/router"
	"github.com/strivetech/sales-ai-platform/internal/cache"
	"github.com/strivetech/sales-ai-platform/internal/chat"
	appconfig "github.com/strivetech/sales-ai-platform/internal/config"
	httpmiddleware "github.com/strivetech/sales-ai-platform/internal/http/middleware"
	"github.com/strivetech/sales-ai-platform/internal/observability/metrics"
	"github.com/strivetech/sales-ai-platform/internal/rag"
	"github.com/strivetech/sales-ai-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting sales-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"embedding_provider", cfg.EmbeddingProvider,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := newDBPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := newRedisClient(cfg)
	defer func() { _ = redisClient.Close() }()

	embedder, err := newEmbedder(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize embedder", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	ragMetrics := metrics.NewRAGMetrics(registry)

	store := rag.NewPGVectorStore(pool, cfg.EmbeddingDimensions, logger.Component("rag"))
	builder := rag.NewContextBuilder(embedder, store, logger.Component("rag"), ragMetrics, rag.BuilderOptions{
		Threshold:     cfg.SearchThreshold,
		Limit:         cfg.SearchLimit,
		EmbedTimeout:  cfg.EmbedTimeout,
		SearchTimeout: cfg.SearchTimeout,
		WriteTimeout:  cfg.WriteTimeout,
	})

	// A dimension mismatch between the embedder and the store is a
	// deployment error; refuse to start.
	healthCtx, cancelHealth := context.WithTimeout(ctx, 10*time.Second)
	if err := builder.Health(healthCtx); err != nil {
		cancelHealth()
		logger.Error("pipeline health check failed", "error", err)
		os.Exit(1)
	}
	cancelHealth()

	ctxCache := cache.New[rag.RAGContext](cfg.ContextCacheEntries, cfg.ContextCacheTTL)
	go ctxCache.StartSweeper(ctx, time.Minute)

	sessions := chat.NewSessionStore(redisClient, cfg.SessionTTL, nil)
	llm := chat.NewOpenAIClient(openai.NewClient(cfg.OpenAIAPIKey), cfg.ChatModel)
	chatHandler := chat.NewHandler(builder, sessions, llm, ctxCache, cfg.ContextCacheTTL, "", logger.Component("chat"))

	limiter := httpmiddleware.NewRateLimiter(5, 10)
	go limiter.StartCleanup(ctx, 5*time.Minute, 10*time.Minute)

	r := router.New(&router.Config{
		Logger:         logger,
		ChatHandler:    chatHandler,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		MessageLimiter: limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newDBPool(ctx context.Context, cfg *appconfig.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func newRedisClient(cfg *appconfig.Config) *redis.Client {
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}

func newEmbedder(ctx context.Context, cfg *appconfig.Config) (rag.Embedder, error) {
	if cfg.EmbeddingProvider == "bedrock" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, err
		}
		client := bedrockruntime.NewFromConfig(awsCfg)
		return rag.NewBedrockEmbedder(client, cfg.BedrockEmbeddingModelID, cfg.EmbeddingDimensions), nil
	}
	client := openai.NewClient(cfg.OpenAIAPIKey)
	return rag.NewOpenAIEmbedder(client, cfg.EmbeddingModel, cfg.EmbeddingDimensions), nil
}

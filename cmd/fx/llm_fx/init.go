package llm_fx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"agentsville/internal/config"
	"agentsville/pkg/llm"
)

var Module = fx.Provide(
	ProvideReasoningClient,
	ProvideEmbedder)

// ProvideReasoningClient creates the chat client for the configured provider.
func ProvideReasoningClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (llm.ReasoningClient, error) {
	if cfg.APIKey() == "" {
		logger.Warn("no API key for reasoning provider, calls will fail", zap.String("provider", cfg.LLM.Provider))
	}

	client, err := llm.NewReasoningClient(context.Background(), llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("reasoning client ready", zap.String("provider", cfg.LLM.Provider), zap.String("model", client.Model()))

	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error { return closer.Close() },
		})
	}
	return client, nil
}

func ProvideEmbedder(cfg *config.Config, logger *zap.Logger) (llm.Embedder, error) {
	switch strings.ToLower(cfg.LLM.EmbeddingProvider) {
	case "", "hash":
		return llm.NewHashEmbedder(), nil
	case "openai":
		if cfg.LLM.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required when using OpenAI embeddings")
		}
		logger.Info("using OpenAI embeddings")
		return llm.NewOpenAIEmbedder(cfg.LLM.OpenAIAPIKey, cfg.LLM.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s. Use 'hash' or 'openai'", cfg.LLM.EmbeddingProvider)
	}
}

// Package llm is the boundary to the reasoning process: chat completions from
// OpenAI or Gemini, and text embeddings.
package llm

import (
	"context"
	"fmt"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	// JSONMode asks the provider for a bare JSON object.
	JSONMode bool
}

type ReasoningClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Model() string
}

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewReasoningClient picks a provider implementation from cfg.
func NewReasoningClient(ctx context.Context, cfg Config) (ReasoningClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported reasoning provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}

// splitSystem separates the system prompt from the conversation turns.
func splitSystem(messages []Message) (string, []Message) {
	var system []string
	var turns []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	return strings.Join(system, "\n\n"), turns
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/namehunt/namehunt/internal/llm"
	"github.com/namehunt/namehunt/internal/llm/gemini"
	"github.com/namehunt/namehunt/internal/llm/openai"
)

// newModel builds the text generation client selected by --provider.
// Construction happens in the subcommands that generate names, so check
// keeps working without a model API key in the environment.
func newModel(ctx context.Context, cfg *config) (llm.Model, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "gemini":
		key := cfg.creds.GeminiAPIKey
		if key == "" {
			key = cfg.creds.GoogleAPIKey
		}
		return gemini.New(ctx, gemini.Options{APIKey: key, Model: cfg.LLMModel})
	case "openai":
		return openai.New(openai.Options{APIKey: cfg.creds.OpenAIAPIKey, Model: cfg.LLMModel})
	default:
		return nil, fmt.Errorf("unknown provider %q (use gemini or openai)", cfg.Provider)
	}
}

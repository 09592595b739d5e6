// Package gemini adapts Google's Generative AI SDK to the llm.Model contract.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/namehunt/namehunt/internal/llm"
)

const DefaultModel = "gemini-1.5-flash"

type Options struct {
	// APIKey falls back to GEMINI_API_KEY, then GOOGLE_API_KEY.
	APIKey string
	// Model defaults to DefaultModel.
	Model string
	// Config sampling knobs; zero values take the llm defaults.
	Config llm.Config
}

type Client struct {
	client *genai.Client
	model  string
	cfg    llm.Config
}

func New(ctx context.Context, opts Options) (*Client, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	if key == "" {
		return nil, errors.New("gemini: missing API key (set GEMINI_API_KEY or GOOGLE_API_KEY)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("gemini: init: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: client, model: model, cfg: opts.Config.WithDefaults()}, nil
}

func (c *Client) Name() string { return "gemini" }

// Close releases the underlying API connection.
func (c *Client) Close() error { return c.client.Close() }

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetCandidateCount(int32(c.cfg.CandidateCount))
	model.SetMaxOutputTokens(int32(c.cfg.MaxOutputTokens))
	model.SetTemperature(c.cfg.Temperature)
	if len(c.cfg.StopSequences) > 0 {
		model.StopSequences = c.cfg.StopSequences
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	// Responses are text-only for this use; join any text parts, skip the rest.
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

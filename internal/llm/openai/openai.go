// Package openai adapts the go-openai chat completion API to the llm.Model
// contract.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/namehunt/namehunt/internal/llm"
)

const DefaultModel = goopenai.GPT4oMini

type Options struct {
	// APIKey falls back to OPENAI_API_KEY.
	APIKey string
	// Model defaults to DefaultModel.
	Model string
	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
	// Config sampling knobs; zero values take the llm defaults.
	Config llm.Config
}

type Client struct {
	client *goopenai.Client
	model  string
	cfg    llm.Config
}

func New(opts Options) (*Client, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, errors.New("openai: missing API key (set OPENAI_API_KEY)")
	}

	cfg := goopenai.DefaultConfig(key)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: goopenai.NewClientWithConfig(cfg), model: model, cfg: opts.Config.WithDefaults()}, nil
}

func (c *Client) Name() string { return "openai" }

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{{
			Role:    goopenai.ChatMessageRoleUser,
			Content: prompt,
		}},
		MaxTokens:   c.cfg.MaxOutputTokens,
		Temperature: c.cfg.Temperature,
		N:           c.cfg.CandidateCount,
	}
	if len(c.cfg.StopSequences) > 0 {
		req.Stop = c.cfg.StopSequences
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

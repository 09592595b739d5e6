package gemini

import (
	"context"
	"strings"
	"testing"

	"github.com/namehunt/namehunt/internal/llm"
)

func TestNew_MissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := New(context.Background(), Options{})
	if err == nil || !strings.Contains(err.Error(), "missing API key") {
		t.Fatalf("err=%v, want missing API key", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	c, err := New(context.Background(), Options{APIKey: "k"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if c.Name() != "gemini" {
		t.Fatalf("Name=%q, want gemini", c.Name())
	}
	if c.model != DefaultModel {
		t.Fatalf("model=%q, want %q", c.model, DefaultModel)
	}
	if c.cfg.CandidateCount != 1 || c.cfg.MaxOutputTokens != llm.DefaultMaxOutputTokens {
		t.Fatalf("cfg=%+v, want llm defaults applied", c.cfg)
	}
}

func TestNew_EnvKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "envkey")

	c, err := New(context.Background(), Options{Model: "gemini-1.5-pro"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if c.model != "gemini-1.5-pro" {
		t.Fatalf("model=%q, want gemini-1.5-pro", c.model)
	}
}

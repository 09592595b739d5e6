// Package llm defines the text-generation oracle the candidate generator
// talks to. Concrete providers live in subpackages (gemini, openai).
package llm

import "context"

// Model is a text-in, text-out oracle. Implementations own their transport
// and credentials; retry policy belongs to the caller.
type Model interface {
	// Name identifies the provider in logs.
	Name() string
	// GenerateText sends one prompt and returns the raw response text.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Sampling defaults. One low-temperature candidate with bounded output keeps
// responses in the one-name-per-line shape the parser expects.
const (
	DefaultMaxOutputTokens = 8000
	DefaultTemperature     = 0.5
)

// Config carries the sampling knobs shared by every provider.
type Config struct {
	// CandidateCount is how many completions to request. <=0 means 1.
	CandidateCount int
	// MaxOutputTokens bounds the response size. <=0 means DefaultMaxOutputTokens.
	MaxOutputTokens int
	// Temperature <=0 means DefaultTemperature.
	Temperature float32
	// StopSequences truncate generation when emitted. Empty means none.
	StopSequences []string
}

// WithDefaults returns a copy with zero-value knobs filled in.
func (c Config) WithDefaults() Config {
	if c.CandidateCount <= 0 {
		c.CandidateCount = 1
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	return c
}

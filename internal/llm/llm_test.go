package llm

import "testing"

func TestConfigWithDefaults(t *testing.T) {
	t.Parallel()

	got := Config{}.WithDefaults()
	if got.CandidateCount != 1 {
		t.Fatalf("CandidateCount=%d, want 1", got.CandidateCount)
	}
	if got.MaxOutputTokens != DefaultMaxOutputTokens {
		t.Fatalf("MaxOutputTokens=%d, want %d", got.MaxOutputTokens, DefaultMaxOutputTokens)
	}
	if got.Temperature != DefaultTemperature {
		t.Fatalf("Temperature=%v, want %v", got.Temperature, DefaultTemperature)
	}
	if len(got.StopSequences) != 0 {
		t.Fatalf("StopSequences=%v, want none", got.StopSequences)
	}

	// Explicit values survive.
	set := Config{CandidateCount: 2, MaxOutputTokens: 100, Temperature: 0.9}.WithDefaults()
	if set.CandidateCount != 2 || set.MaxOutputTokens != 100 || set.Temperature != 0.9 {
		t.Fatalf("explicit config mangled: %+v", set)
	}
}

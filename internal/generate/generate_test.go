package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/namehunt/namehunt/internal/memory"
)

// scriptedModel replays canned responses (or errors) in order.
type scriptedModel struct {
	responses []string
	errs      []error
	prompts   []string
}

func (m *scriptedModel) Name() string { return "scripted" }

func (m *scriptedModel) GenerateText(_ context.Context, prompt string) (string, error) {
	i := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "", nil
}

func newGenerator(t *testing.T, model *scriptedModel, seen *memory.Set) *Generator {
	t.Helper()
	g, err := New(model, seen, Options{Extensions: []string{"com", "net"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

var ceiling = decimal.RequireFromString("20")

func TestExtractCandidate(t *testing.T) {
	t.Parallel()

	exts := []string{"com", "net"}
	cases := []struct {
		line string
		want string
		ok   bool
	}{
		{"tidepool.com", "tidepool.com", true},
		{"TidePool.COM", "tidepool.com", true},
		{"1. tidepool.com", "tidepool.com", true},
		{"12) wavecrest.net", "wavecrest.net", true},
		{"- reefly.com", "reefly.com", true},
		{"* surfup.net", "surfup.net", true},
		{"\"quoted.com\"", "quoted.com", true},
		{"`fenced.com`", "fenced.com", true},
		{"seaglass.com - short and memorable", "seaglass.com", true},
		{"try seaglass.com.", "seaglass.com", true},
		{"4wheels.com", "4wheels.com", true},
		{"123.com", "123.com", true},
		{"", "", false},
		{"a great name idea", "", false},
		{"wrongtld.org", "", false},
		{"endswithcom", "", false},
		{"3.", "", false},
	}

	for _, tc := range cases {
		got, ok := ExtractCandidate(tc.line, exts)
		if ok != tc.ok {
			t.Fatalf("ExtractCandidate(%q): ok=%v, want %v", tc.line, ok, tc.ok)
		}
		if got != tc.want {
			t.Fatalf("ExtractCandidate(%q): got %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestCandidates_SingleCallWhenDelivered(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: []string{"alpha.com\nbeta.com\ngamma.net"}}
	g := newGenerator(t, model, memory.NewSet())

	got := g.Candidates(context.Background(), "tide pools", 3, ceiling)
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3: %v", len(got), got)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(model.prompts))
	}
	if !strings.Contains(model.prompts[0], "exactly 3 ") || !strings.Contains(model.prompts[0], "tide pools") {
		t.Fatalf("prompt missing count or topic: %q", model.prompts[0])
	}
	if !strings.Contains(model.prompts[0], ".com, .net") {
		t.Fatalf("prompt missing extensions: %q", model.prompts[0])
	}
	if !strings.Contains(model.prompts[0], "$20") {
		t.Fatalf("prompt missing ceiling: %q", model.prompts[0])
	}
}

func TestCandidates_RetryAsksForOutstanding(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: []string{
		"alpha.com\nnot a domain line",
		"beta.com\ngamma.com",
	}}
	g := newGenerator(t, model, memory.NewSet())

	got := g.Candidates(context.Background(), "reefs", 3, ceiling)
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3: %v", len(got), got)
	}
	if len(model.prompts) != 2 {
		t.Fatalf("model called %d times, want 2", len(model.prompts))
	}
	// The second ask covers only what is still missing.
	if !strings.Contains(model.prompts[1], "exactly 2 ") {
		t.Fatalf("second prompt should ask for 2: %q", model.prompts[1])
	}
}

func TestCandidates_StopsAfterMaxCalls(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: []string{"junk", "junk", "junk", "junk"}}
	g := newGenerator(t, model, memory.NewSet())

	got := g.Candidates(context.Background(), "reefs", 5, ceiling)
	if len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
	if len(model.prompts) != 3 {
		t.Fatalf("model called %d times, want 3", len(model.prompts))
	}
}

func TestCandidates_ModelErrorConsumesCall(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{
		errs:      []error{errors.New("quota"), nil},
		responses: []string{"", "alpha.com"},
	}
	g := newGenerator(t, model, memory.NewSet())

	got := g.Candidates(context.Background(), "reefs", 1, ceiling)
	if len(got) != 1 || got[0] != "alpha.com" {
		t.Fatalf("got %v, want [alpha.com]", got)
	}
	if len(model.prompts) != 2 {
		t.Fatalf("model called %d times, want 2", len(model.prompts))
	}
}

func TestCandidates_SkipsSeenAndRepeats(t *testing.T) {
	t.Parallel()

	seen := memory.NewSet()
	seen.AddNew([]string{"stale.com"})

	model := &scriptedModel{responses: []string{
		"stale.com\nfresh.com\nFresh.COM\nsecond.net",
		"third.com",
	}}
	g := newGenerator(t, model, seen)

	got := g.Candidates(context.Background(), "reefs", 3, ceiling)
	want := []string{"fresh.com", "second.net", "third.com"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	// Filtering is read-only; nothing new was recorded.
	if seen.Len() != 1 {
		t.Fatalf("memory Len=%d, want 1", seen.Len())
	}
}

func TestCandidates_NeverExceedsAsk(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{responses: []string{"a.com\nb.com\nc.com\nd.com\ne.com"}}
	g := newGenerator(t, model, memory.NewSet())

	got := g.Candidates(context.Background(), "reefs", 2, ceiling)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
}

func TestCandidates_ZeroAsk(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{}
	g := newGenerator(t, model, memory.NewSet())

	if got := g.Candidates(context.Background(), "reefs", 0, ceiling); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
	if len(model.prompts) != 0 {
		t.Fatalf("model called %d times, want 0", len(model.prompts))
	}
}

func TestCandidates_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &scriptedModel{responses: []string{"a.com"}}
	g := newGenerator(t, model, memory.NewSet())

	if got := g.Candidates(ctx, "reefs", 1, ceiling); len(got) != 0 {
		t.Fatalf("got %v, want none after cancel", got)
	}
	if len(model.prompts) != 0 {
		t.Fatalf("model called %d times, want 0", len(model.prompts))
	}
}

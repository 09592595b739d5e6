// Package generate turns a topic into fresh candidate domain names by asking
// a text model and filtering what comes back. Models under-deliver and drift
// from the requested format routinely, so the generator retries with a
// reduced ask and treats every response line with suspicion.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/namehunt/namehunt/internal/domain"
	"github.com/namehunt/namehunt/internal/llm"
	"github.com/namehunt/namehunt/internal/memory"
)

type Options struct {
	// Extensions the names must end in, dotless ("com"). Empty means com.
	Extensions []string
	// MaxCalls bounds model calls per Candidates invocation. <=0 means 3.
	MaxCalls int
	// Logger receives under-delivery and model failure notes. nil discards.
	Logger *log.Logger
}

type Generator struct {
	model llm.Model
	seen  *memory.Set
	opts  Options
}

func New(model llm.Model, seen *memory.Set, opts Options) (*Generator, error) {
	if model == nil {
		return nil, errors.New("generate: nil model")
	}
	if seen == nil {
		return nil, errors.New("generate: nil memory")
	}
	opts.Extensions = domain.NormalizeExtensions(opts.Extensions)
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{"com"}
	}
	if opts.MaxCalls <= 0 {
		opts.MaxCalls = 3
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Generator{model: model, seen: seen, opts: opts}, nil
}

// Candidates asks the model for up to n names for topic, retrying with the
// outstanding count when a response comes up short. At most MaxCalls model
// calls are made, so the result may be shorter than n; it is never longer.
// Names already in the shared memory are dropped here but not recorded;
// recording is the caller's move once it commits to a batch.
func (g *Generator) Candidates(ctx context.Context, topic string, n int, ceiling decimal.Decimal) []string {
	if n <= 0 {
		return nil
	}

	accumulated := make([]string, 0, n)
	inBatch := make(map[string]struct{}, n)

	for call := 0; call < g.opts.MaxCalls && len(accumulated) < n; call++ {
		if ctx.Err() != nil {
			return accumulated
		}

		need := n - len(accumulated)
		text, err := g.model.GenerateText(ctx, g.prompt(topic, need, ceiling))
		if err != nil {
			g.opts.Logger.Printf("generate: %s call %d failed: %v", g.model.Name(), call+1, err)
			continue
		}

		for _, line := range strings.Split(text, "\n") {
			if len(accumulated) >= n {
				break
			}
			name, ok := ExtractCandidate(line, g.opts.Extensions)
			if !ok {
				continue
			}
			if _, dup := inBatch[name]; dup {
				continue
			}
			if g.seen.Seen(name) {
				continue
			}
			inBatch[name] = struct{}{}
			accumulated = append(accumulated, name)
		}

		if len(accumulated) < n {
			g.opts.Logger.Printf("generate: %d/%d candidates after call %d", len(accumulated), n, call+1)
		}
	}

	return accumulated
}

func (g *Generator) prompt(topic string, n int, ceiling decimal.Decimal) string {
	exts := make([]string, len(g.opts.Extensions))
	for i, e := range g.opts.Extensions {
		exts[i] = "." + e
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Please generate exactly %d creative and short domain names related to the topic: %q.\n", n, topic)
	fmt.Fprintf(&b, "Use only common extensions like %s that usually cost less than $%s.\n", strings.Join(exts, ", "), ceiling)
	b.WriteString("Each domain should be unique, memorable, and concise. Provide one domain per line, formatted exactly as follows: \"domainname.com\".\n")
	fmt.Fprintf(&b, "Ensure that there are %d domain names generated without any deviation.", n)
	return b.String()
}

// ExtractCandidate reduces one response line to a normalized domain name. It
// strips a leading list marker and quote characters, then picks the first
// token ending in an accepted extension. ok is false when the line carries
// no acceptable name.
func ExtractCandidate(line string, exts []string) (string, bool) {
	line = stripMarker(strings.TrimSpace(line))
	if line == "" {
		return "", false
	}

	for _, tok := range strings.Fields(line) {
		tok = strings.Trim(tok, "\"'`“”‘’")
		tok = strings.TrimRight(tok, ".,;:")
		if tok == "" {
			continue
		}
		if !domain.HasAcceptedExtension(tok, exts) {
			continue
		}
		name, err := domain.Normalize(tok)
		if err != nil {
			return "", false
		}
		if !domain.HasAcceptedExtension(name, exts) {
			return "", false
		}
		return name, true
	}
	return "", false
}

// stripMarker removes a leading list marker: a bullet, or digits ended by
// "." or ")". The numeric form must be followed by whitespace so names like
// "4wheels.com" and "123.com" keep their digits.
func stripMarker(s string) string {
	for _, b := range []string{"-", "*", "•"} {
		if strings.HasPrefix(s, b) {
			return strings.TrimSpace(strings.TrimPrefix(s, b))
		}
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		rest := s[i+1:]
		if rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
			return strings.TrimSpace(rest)
		}
	}
	return s
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/namehunt/namehunt/internal/domain"
)

// readDomainsFromArgsAndStdin merges positional args with stdin lines when
// stdin is piped. Order is preserved: args first, then stdin.
func readDomainsFromArgsAndStdin(args []string, stdin *os.File) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}

	if stdin != nil && !term.IsTerminal(int(stdin.Fd())) {
		lines, err := domain.ReadLines(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		out = append(out, lines...)
	}

	return out, nil
}

// splitCommaList splits a comma-separated flag value, trimming whitespace,
// lowercasing entries, and dropping empties and duplicates.
func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// sleepWithContext pauses for d or until ctx is done, whichever comes first.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Package hunt runs the whole search: generate candidates for a topic, drop
// anything seen before, price the fresh batch, then check availability one
// domain at a time until something affordable turns up or the attempt budget
// runs out.
package hunt

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/namehunt/namehunt/internal/domain"
	"github.com/namehunt/namehunt/internal/memory"
	"github.com/namehunt/namehunt/internal/registrar"
)

// CandidateSource produces fresh candidate names for a topic. The ceiling
// only shapes the ask; the budget filter in Run is what enforces it.
type CandidateSource interface {
	Candidates(ctx context.Context, topic string, n int, ceiling decimal.Decimal) []string
}

type Options struct {
	Source  CandidateSource
	Pricer  registrar.Pricer
	Checker registrar.Checker
	// Memory records every name ever offered. A fresh set is created when
	// nil; pass a shared one when the generator filters against it too.
	Memory *memory.Set

	// Extensions candidates must end in, dotless. Empty means com.
	Extensions []string
	// Budget is the inclusive price ceiling per domain. Must be positive.
	Budget decimal.Decimal
	// MaxAttempts bounds generate-price-check rounds. <=0 means 5.
	MaxAttempts int
	// BatchSize is the candidate ask per attempt. <=0 means 200.
	BatchSize int
	// CheckDelay is slept after each availability call; the registrar caps
	// check traffic well below what pricing allows. <=0 means 2s.
	CheckDelay time.Duration
	// Logger receives progress and per-domain verdicts. nil discards.
	Logger *log.Logger
}

// Finding is one affordable, available domain and the quote that admitted it.
type Finding struct {
	Domain string          `json:"domain"`
	Price  decimal.Decimal `json:"price"`
}

type Hunter struct {
	opts Options
}

func New(opts Options) (*Hunter, error) {
	if opts.Source == nil {
		return nil, errors.New("hunt: nil candidate source")
	}
	if opts.Pricer == nil {
		return nil, errors.New("hunt: nil pricer")
	}
	if opts.Checker == nil {
		return nil, errors.New("hunt: nil checker")
	}
	if !opts.Budget.IsPositive() {
		return nil, errors.New("hunt: budget must be positive")
	}
	if opts.Memory == nil {
		opts.Memory = memory.NewSet()
	}
	opts.Extensions = domain.NormalizeExtensions(opts.Extensions)
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{"com"}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	if opts.CheckDelay <= 0 {
		opts.CheckDelay = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Hunter{opts: opts}, nil
}

// Run searches until an affordable, available domain is found or attempts
// run out. The first hit ends the search; the rest of that attempt's batch
// stays unchecked. An exhausted search returns an empty slice and no error;
// the only errors are context cancellation.
func (h *Hunter) Run(ctx context.Context, topic string) ([]Finding, error) {
	findings := make([]Finding, 0, 1)

	for attempt := 1; attempt <= h.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return findings, err
		}

		h.opts.Logger.Printf("attempt %d/%d: requesting %d candidates", attempt, h.opts.MaxAttempts, h.opts.BatchSize)

		batch := h.opts.Source.Candidates(ctx, topic, h.opts.BatchSize, h.opts.Budget)
		// The generator filters too, but nothing with a stray extension may
		// reach the registrar.
		batch = domain.KeepAccepted(batch, h.opts.Extensions)

		fresh := h.opts.Memory.AddNew(batch)
		if len(fresh) == 0 {
			h.opts.Logger.Printf("attempt %d/%d: no new candidates", attempt, h.opts.MaxAttempts)
			continue
		}
		h.opts.Logger.Printf("attempt %d/%d: pricing %d new candidates", attempt, h.opts.MaxAttempts, len(fresh))

		sheet := h.opts.Pricer.PriceDomains(ctx, fresh)

		for _, name := range fresh {
			if err := ctx.Err(); err != nil {
				return findings, err
			}

			quote := sheet.Lookup(name)
			if !quote.WithinBudget(h.opts.Budget) {
				if quote.Known {
					h.opts.Logger.Printf("%s is over budget ($%s)", name, quote.Price)
				} else {
					h.opts.Logger.Printf("%s has no known price, skipping", name)
				}
				continue
			}

			verdict := h.opts.Checker.CheckDomain(ctx, name)
			if verdict.Available {
				h.opts.Logger.Printf("%s is available for $%s", name, quote.Price)
				findings = append(findings, Finding{Domain: name, Price: quote.Price})
				return findings, nil
			}

			reason := verdict.Reason
			if reason == "" {
				reason = "not available"
			}
			h.opts.Logger.Printf("%s is not available (%s)", name, reason)

			if err := sleepWithContext(ctx, h.opts.CheckDelay); err != nil {
				return findings, err
			}
		}
	}

	h.opts.Logger.Printf("no affordable available domain found after %d attempts", h.opts.MaxAttempts)
	return findings, nil
}

// sleepWithContext paces registrar calls without ignoring cancellation.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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

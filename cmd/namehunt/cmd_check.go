package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/namehunt/namehunt/internal/domain"
)

func newCheckCmd(cfg *config) *cobra.Command {
	var (
		budgetStr     string
		delay         time.Duration
		availableOnly bool
	)

	cmd := &cobra.Command{
		Use:   "check [domain ...]",
		Short: "Price and check availability for specific domains (args and/or stdin)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readDomainsFromArgsAndStdin(args, os.Stdin)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return usageErr(cmd, errors.New("no domains given (pass arguments or pipe stdin)"))
			}
			if err := cfg.requireRegistrar(cmd); err != nil {
				return err
			}

			var budget decimal.Decimal
			hasBudget := strings.TrimSpace(budgetStr) != ""
			if hasBudget {
				budget, err = decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(budgetStr), "$"))
				if err != nil {
					return usageErr(cmd, fmt.Errorf("invalid --budget %q", budgetStr))
				}
				if !budget.IsPositive() {
					return usageErr(cmd, errors.New("--budget must be positive"))
				}
			}

			// Invalid inputs become error rows; valid ones are deduplicated
			// and keep their input order.
			results := make([]checkResult, 0, len(inputs))
			seen := make(map[string]struct{}, len(inputs))
			for _, in := range inputs {
				ascii, err := domain.Normalize(in)
				if err != nil {
					results = append(results, checkResult{Domain: strings.TrimSpace(in), Error: err.Error()})
					continue
				}
				if _, ok := seen[ascii]; ok {
					continue
				}
				seen[ascii] = struct{}{}
				results = append(results, checkResult{Domain: ascii})
			}

			valid := make([]string, 0, len(results))
			for _, r := range results {
				if r.Error == "" {
					valid = append(valid, r.Domain)
				}
			}

			ctx := cmd.Context()
			sheet := cfg.registrar.PriceDomains(ctx, valid)

			first := true
			for i := range results {
				if results[i].Error != "" {
					continue
				}
				name := results[i].Domain

				quote := sheet.Lookup(name)
				if quote.Known {
					results[i].Price = quote.Price.StringFixed(2)
				} else {
					results[i].Detail = "price unknown"
				}
				if hasBudget {
					within := quote.WithinBudget(budget)
					results[i].WithinBudget = &within
				}

				if !first {
					if err := sleepWithContext(ctx, delay); err != nil {
						return &cliError{Code: 1, Err: err, Cmd: cmd}
					}
				}
				first = false

				verdict := cfg.registrar.CheckDomain(ctx, name)
				available := verdict.Available
				results[i].Available = &available
				if !available && verdict.Reason != "" && results[i].Detail == "" {
					results[i].Detail = verdict.Reason
				}
			}

			if availableOnly {
				kept := results[:0]
				for _, r := range results {
					if r.Available != nil && *r.Available {
						kept = append(kept, r)
					}
				}
				results = kept
			}

			if err := writeChecks(os.Stdout, cfg.outFormat, results); err != nil {
				return &cliError{Code: 1, Err: fmt.Errorf("failed to write output: %w", err), Cmd: cmd}
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().StringVar(&budgetStr, "budget", "", "Inclusive price ceiling in USD (adds an IN BUDGET column)")
	cmd.Flags().DurationVar(&delay, "delay", 2*time.Second, "Pause between availability checks")
	cmd.Flags().BoolVar(&availableOnly, "available-only", false, "Only output domains that are available")

	return cmd
}

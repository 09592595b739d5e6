package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/namehunt/namehunt/internal/generate"
	"github.com/namehunt/namehunt/internal/hunt"
	"github.com/namehunt/namehunt/internal/memory"
)

func newSearchCmd(cfg *config) *cobra.Command {
	var (
		budgetStr string
		tldsStr   string
		attempts  int
		batchSize int
		delay     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "search <topic>...",
		Short: "Generate candidates for a topic, stop at the first affordable available one",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(strings.Join(args, " "))
			if topic == "" {
				return usageErr(cmd, errors.New("missing topic"))
			}
			if err := cfg.requireRegistrar(cmd); err != nil {
				return err
			}

			budget, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(budgetStr), "$"))
			if err != nil {
				return usageErr(cmd, fmt.Errorf("invalid --budget %q", budgetStr))
			}
			if !budget.IsPositive() {
				return usageErr(cmd, errors.New("--budget must be positive"))
			}

			tlds := splitCommaList(tldsStr)
			if len(tlds) == 0 {
				return usageErr(cmd, errors.New("--tlds must name at least one extension"))
			}

			model, err := newModel(cmd.Context(), cfg)
			if err != nil {
				return usageErr(cmd, err)
			}
			if closer, ok := model.(io.Closer); ok {
				defer closer.Close()
			}

			seen := memory.NewSet()
			gen, err := generate.New(model, seen, generate.Options{
				Extensions: tlds,
				Logger:     cfg.logger,
			})
			if err != nil {
				return err
			}

			hunter, err := hunt.New(hunt.Options{
				Source:      gen,
				Pricer:      cfg.registrar,
				Checker:     cfg.registrar,
				Memory:      seen,
				Extensions:  tlds,
				Budget:      budget,
				MaxAttempts: attempts,
				BatchSize:   batchSize,
				CheckDelay:  delay,
				Logger:      cfg.logger,
			})
			if err != nil {
				return err
			}

			findings, err := hunter.Run(cmd.Context(), topic)
			if err != nil {
				return &cliError{Code: 1, Err: err, Cmd: cmd}
			}

			if err := writeFindings(os.Stdout, cfg.outFormat, findings); err != nil {
				return &cliError{Code: 1, Err: fmt.Errorf("failed to write output: %w", err), Cmd: cmd}
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().StringVar(&budgetStr, "budget", "20", "Inclusive first-year price ceiling in USD")
	cmd.Flags().StringVar(&tldsStr, "tlds", "com", "Comma-separated extensions candidates must use")
	cmd.Flags().IntVar(&attempts, "attempts", 5, "Maximum generate-price-check rounds")
	cmd.Flags().IntVar(&batchSize, "batch", 200, "Candidate names requested per round")
	cmd.Flags().DurationVar(&delay, "delay", 2*time.Second, "Pause after each availability check")

	return cmd
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/namehunt/namehunt/internal/domain"
	"github.com/namehunt/namehunt/internal/hunt"
)

type outputFormat int

const (
	formatTable outputFormat = iota
	formatNDJSON
	formatJSON
	formatPlain
)

// resolveFormat maps the --format flag and its boolean shorthands to a
// concrete format. "auto" renders a table on a terminal and NDJSON when
// stdout is piped.
func resolveFormat(cfg *config, stdout *os.File) (outputFormat, error) {
	aliases := 0
	name := ""
	if cfg.JSON {
		aliases++
		name = "json"
	}
	if cfg.NDJSON {
		aliases++
		name = "ndjson"
	}
	if cfg.Plain {
		aliases++
		name = "plain"
	}
	if aliases > 1 {
		return formatTable, errors.New("choose at most one of --json, --ndjson, --plain")
	}

	flag := strings.ToLower(strings.TrimSpace(cfg.Format))
	if name != "" {
		if flag != "" && flag != "auto" && flag != name {
			return formatTable, fmt.Errorf("--format %s conflicts with --%s", cfg.Format, name)
		}
	} else {
		name = flag
	}

	switch name {
	case "", "auto":
		if stdout != nil && term.IsTerminal(int(stdout.Fd())) {
			return formatTable, nil
		}
		return formatNDJSON, nil
	case "table":
		return formatTable, nil
	case "json":
		return formatJSON, nil
	case "ndjson", "jsonl":
		return formatNDJSON, nil
	case "plain":
		return formatPlain, nil
	default:
		return formatTable, fmt.Errorf("unknown format %q (use auto, table, json, ndjson or plain)", name)
	}
}

// checkResult is one row of `namehunt check` output.
type checkResult struct {
	Domain       string `json:"domain"`
	Price        string `json:"price,omitempty"`
	Available    *bool  `json:"available,omitempty"`
	WithinBudget *bool  `json:"within_budget,omitempty"`
	Detail       string `json:"detail,omitempty"`
	Error        string `json:"error,omitempty"`
}

func writeFindings(w io.Writer, format outputFormat, findings []hunt.Finding) error {
	switch format {
	case formatNDJSON:
		enc := json.NewEncoder(w)
		for _, f := range findings {
			if err := enc.Encode(f); err != nil {
				return err
			}
		}
		return nil
	case formatJSON:
		return json.NewEncoder(w).Encode(findings)
	case formatPlain:
		for _, f := range findings {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", f.Domain, f.Price.StringFixed(2)); err != nil {
				return err
			}
		}
		return nil
	default:
		tw := domain.NewTabWriter(w)
		fmt.Fprintln(tw, "DOMAIN\tPRICE")
		for _, f := range findings {
			fmt.Fprintf(tw, "%s\t$%s\n", f.Domain, f.Price.StringFixed(2))
		}
		return tw.Flush()
	}
}

func writeChecks(w io.Writer, format outputFormat, results []checkResult) error {
	switch format {
	case formatNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case formatJSON:
		return json.NewEncoder(w).Encode(results)
	case formatPlain:
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", r.Domain, orDash(r.Price), boolStr(r.Available)); err != nil {
				return err
			}
		}
		return nil
	default:
		withBudget := false
		for _, r := range results {
			if r.WithinBudget != nil {
				withBudget = true
				break
			}
		}

		tw := domain.NewTabWriter(w)
		if withBudget {
			fmt.Fprintln(tw, "DOMAIN\tPRICE\tAVAILABLE\tIN BUDGET\tDETAIL")
		} else {
			fmt.Fprintln(tw, "DOMAIN\tPRICE\tAVAILABLE\tDETAIL")
		}
		for _, r := range results {
			price := "-"
			if r.Price != "" {
				price = "$" + r.Price
			}
			detail := r.Detail
			if r.Error != "" {
				detail = r.Error
			}
			if withBudget {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Domain, price, boolStr(r.Available), boolStr(r.WithinBudget), detail)
			} else {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Domain, price, boolStr(r.Available), detail)
			}
		}
		return tw.Flush()
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func boolStr(b *bool) string {
	switch {
	case b == nil:
		return "-"
	case *b:
		return "yes"
	default:
		return "no"
	}
}

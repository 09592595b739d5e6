package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/namehunt/namehunt/internal/hunt"
)

func TestResolveFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config
		want    outputFormat
		wantErr bool
	}{
		{name: "auto without terminal", cfg: config{Format: "auto"}, want: formatNDJSON},
		{name: "table", cfg: config{Format: "table"}, want: formatTable},
		{name: "jsonl alias", cfg: config{Format: "jsonl"}, want: formatNDJSON},
		{name: "json shorthand", cfg: config{Format: "auto", JSON: true}, want: formatJSON},
		{name: "plain shorthand", cfg: config{Format: "auto", Plain: true}, want: formatPlain},
		{name: "two shorthands", cfg: config{JSON: true, Plain: true}, wantErr: true},
		{name: "shorthand against format", cfg: config{Format: "table", JSON: true}, wantErr: true},
		{name: "unknown", cfg: config{Format: "yaml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveFormat(&tt.cfg, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveFormat: want error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveFormat: %v", err)
			}
			if got != tt.want {
				t.Fatalf("resolveFormat: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteFindings(t *testing.T) {
	t.Parallel()

	findings := []hunt.Finding{{Domain: "foo.com", Price: decimal.RequireFromString("12.5")}}

	var plain bytes.Buffer
	if err := writeFindings(&plain, formatPlain, findings); err != nil {
		t.Fatalf("writeFindings plain: %v", err)
	}
	if got, want := plain.String(), "foo.com\t12.50\n"; got != want {
		t.Fatalf("plain output: got %q, want %q", got, want)
	}

	var asJSON bytes.Buffer
	if err := writeFindings(&asJSON, formatJSON, findings); err != nil {
		t.Fatalf("writeFindings json: %v", err)
	}
	if got, want := asJSON.String(), "[{\"domain\":\"foo.com\",\"price\":\"12.5\"}]\n"; got != want {
		t.Fatalf("json output: got %q, want %q", got, want)
	}

	var table bytes.Buffer
	if err := writeFindings(&table, formatTable, findings); err != nil {
		t.Fatalf("writeFindings table: %v", err)
	}
	if !strings.Contains(table.String(), "DOMAIN") || !strings.Contains(table.String(), "$12.50") {
		t.Fatalf("table output missing header or price: %q", table.String())
	}
}

func TestWriteFindings_Empty(t *testing.T) {
	t.Parallel()

	// An exhausted search hands over an empty, non-nil slice. Scripts read
	// a JSON [] and an empty NDJSON/plain body, never null.
	findings := []hunt.Finding{}

	var asJSON bytes.Buffer
	if err := writeFindings(&asJSON, formatJSON, findings); err != nil {
		t.Fatalf("writeFindings json: %v", err)
	}
	if got, want := asJSON.String(), "[]\n"; got != want {
		t.Fatalf("json output: got %q, want %q", got, want)
	}

	var ndjson bytes.Buffer
	if err := writeFindings(&ndjson, formatNDJSON, findings); err != nil {
		t.Fatalf("writeFindings ndjson: %v", err)
	}
	if ndjson.Len() != 0 {
		t.Fatalf("ndjson output not empty: %q", ndjson.String())
	}

	var table bytes.Buffer
	if err := writeFindings(&table, formatTable, findings); err != nil {
		t.Fatalf("writeFindings table: %v", err)
	}
	if !strings.Contains(table.String(), "DOMAIN") {
		t.Fatalf("table output missing header: %q", table.String())
	}
}

func TestWriteChecks_BudgetColumnOnlyWhenSet(t *testing.T) {
	t.Parallel()

	yes := true
	no := false

	var without bytes.Buffer
	rows := []checkResult{{Domain: "foo.com", Price: "10.28", Available: &yes}}
	if err := writeChecks(&without, formatTable, rows); err != nil {
		t.Fatalf("writeChecks: %v", err)
	}
	if strings.Contains(without.String(), "IN BUDGET") {
		t.Fatalf("unexpected budget column: %q", without.String())
	}

	var with bytes.Buffer
	rows = []checkResult{
		{Domain: "foo.com", Price: "10.28", Available: &yes, WithinBudget: &yes},
		{Domain: "bar.com", Available: &no, WithinBudget: &no, Detail: "price unknown"},
	}
	if err := writeChecks(&with, formatTable, rows); err != nil {
		t.Fatalf("writeChecks: %v", err)
	}
	out := with.String()
	if !strings.Contains(out, "IN BUDGET") {
		t.Fatalf("missing budget column: %q", out)
	}
	if !strings.Contains(out, "price unknown") {
		t.Fatalf("missing detail: %q", out)
	}
}

func TestWriteChecks_NDJSONOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	yes := true
	rows := []checkResult{{Domain: "foo.com", Available: &yes}}
	if err := writeChecks(&buf, formatNDJSON, rows); err != nil {
		t.Fatalf("writeChecks: %v", err)
	}
	if got, want := buf.String(), "{\"domain\":\"foo.com\",\"available\":true}\n"; got != want {
		t.Fatalf("ndjson output: got %q, want %q", got, want)
	}
}

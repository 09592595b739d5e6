// Package registrar defines the pricing and availability contracts the hunt
// loop depends on. The concrete Namecheap client lives in a subpackage.
package registrar

import (
	"context"

	"github.com/shopspring/decimal"
)

// SentinelPrice is the quote recorded when a real price could not be
// obtained. It is high enough that no sane budget admits it, so pricing
// failures silently exclude a domain instead of letting it through.
var SentinelPrice = decimal.NewFromInt(999999)

// Quote is a first-year registration price for one domain. Known is false
// when the price could not be resolved; Price then holds SentinelPrice, never
// zero, so an unknown quote can never read as free.
type Quote struct {
	Price decimal.Decimal
	Known bool
}

// UnknownQuote returns the fallback quote used for any pricing failure.
func UnknownQuote() Quote {
	return Quote{Price: SentinelPrice}
}

// WithinBudget reports whether the quoted price is at most budget.
func (q Quote) WithinBudget(budget decimal.Decimal) bool {
	return q.Price.LessThanOrEqual(budget)
}

// PriceSheet maps a domain to its quote for one pricing call.
type PriceSheet map[string]Quote

// Lookup returns the quote for domain, or UnknownQuote when the sheet has no
// entry for it.
func (s PriceSheet) Lookup(domain string) Quote {
	if q, ok := s[domain]; ok {
		return q
	}
	return UnknownQuote()
}

// Verdict is a fail-closed availability outcome. Available is true only on a
// positive answer from the registrar; any error, timeout or malformed
// response leaves it false with the cause in Reason/Err.
type Verdict struct {
	Available bool
	Reason    string
	Err       error
}

// Pricer resolves quotes for a whole batch in one registrar call. It never
// returns an error: failed lookups come back as unknown quotes.
type Pricer interface {
	Name() string
	PriceDomains(ctx context.Context, domains []string) PriceSheet
}

// Checker answers availability for a single domain. It never returns an
// error: failures come back as an unavailable Verdict. Implementations do
// not pace themselves; the caller owns the inter-call delay.
type Checker interface {
	Name() string
	CheckDomain(ctx context.Context, domain string) Verdict
}

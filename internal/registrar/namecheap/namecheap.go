// Package namecheap implements the registrar contracts against the Namecheap
// XML API. Pricing and availability failures never surface as errors: they
// degrade to sentinel quotes and unavailable verdicts so a flaky registrar
// response can only shrink a batch, not break a run.
package namecheap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/namehunt/namehunt/internal/domain"
	"github.com/namehunt/namehunt/internal/registrar"
)

const (
	defaultBaseURL = "https://api.namecheap.com/xml.response"

	// SandboxBaseURL is the test endpoint; accounts there are free and
	// answers are fake but well-formed.
	SandboxBaseURL = "https://api.sandbox.namecheap.com/xml.response"
)

type Options struct {
	APIUser string
	APIKey  string
	// Username defaults to APIUser; the API accepts acting on behalf of
	// another account, this tool does not.
	Username string
	// ClientIP must match an IP whitelisted for the API key.
	ClientIP string

	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// Logger receives diagnostics for degraded lookups. nil discards.
	Logger *log.Logger
}

type Client struct {
	opts Options
	http *http.Client
	log  *log.Logger
}

func NewClient(opts Options) (*Client, error) {
	opts.APIUser = strings.TrimSpace(opts.APIUser)
	opts.APIKey = strings.TrimSpace(opts.APIKey)
	opts.Username = strings.TrimSpace(opts.Username)
	opts.ClientIP = strings.TrimSpace(opts.ClientIP)
	if opts.Username == "" {
		opts.Username = opts.APIUser
	}
	if opts.APIUser == "" || opts.APIKey == "" || opts.ClientIP == "" {
		return nil, fmt.Errorf("namecheap: missing credentials (set NAMECHEAP_API_USER, NAMECHEAP_API_KEY and NAMECHEAP_CLIENT_IP)")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "namehunt/registrar-namecheap"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
		log:  opts.Logger,
	}, nil
}

func (c *Client) Name() string { return "namecheap" }

// PriceDomains resolves first-year registration quotes for the whole batch
// with a single getpricing call. Every input domain gets an entry; anything
// that cannot be priced keeps the sentinel quote.
func (c *Client) PriceDomains(ctx context.Context, domains []string) registrar.PriceSheet {
	sheet := make(registrar.PriceSheet, len(domains))
	for _, d := range domains {
		sheet[d] = registrar.UnknownQuote()
	}
	if len(domains) == 0 {
		return sheet
	}

	prices, err := c.fetchTLDPrices(ctx)
	if err != nil {
		c.log.Printf("namecheap: pricing failed, keeping sentinel quotes: %v", err)
		return sheet
	}

	for _, d := range domains {
		tld := domain.TLD(d)
		if tld == "" {
			c.log.Printf("namecheap: %s: no tld, keeping sentinel quote", d)
			continue
		}
		price, ok := prices["."+tld]
		if !ok {
			c.log.Printf("namecheap: %s: no first-year price for .%s", d, tld)
			continue
		}
		sheet[d] = registrar.Quote{Price: price, Known: true}
	}
	return sheet
}

// CheckDomain asks the registrar whether one domain is registrable. Only an
// explicit Available="true" answer counts; everything else, including
// transport and parse failures, reads as unavailable.
func (c *Client) CheckDomain(ctx context.Context, name string) registrar.Verdict {
	name = strings.TrimSpace(name)
	if name == "" {
		return registrar.Verdict{Reason: "empty domain"}
	}

	q := url.Values{}
	q.Set("DomainList", name)
	decoded, err := c.call(ctx, "namecheap.domains.check", q)
	if err != nil {
		c.log.Printf("namecheap: %s: availability check failed: %v", name, err)
		return registrar.Verdict{Reason: "check failed", Err: err}
	}

	for _, res := range decoded.CommandResponse.CheckResults {
		if !strings.EqualFold(strings.TrimSpace(res.Domain), name) {
			continue
		}
		if strings.EqualFold(res.Available, "true") {
			return registrar.Verdict{Available: true}
		}
		reason := strings.TrimSpace(res.Description)
		if reason == "" {
			reason = "taken"
		}
		return registrar.Verdict{Reason: reason}
	}

	c.log.Printf("namecheap: %s: no check result in response", name)
	return registrar.Verdict{Reason: "no check result for domain"}
}

// fetchTLDPrices returns first-year registration prices keyed by extension
// in ".com" form. The first product in document order wins for each key.
func (c *Client) fetchTLDPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	q := url.Values{}
	q.Set("ProductType", "DOMAIN")
	decoded, err := c.call(ctx, "namecheap.domains.getpricing", q)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal)
	for _, pt := range decoded.CommandResponse.PricingResult.ProductTypes {
		for _, cat := range pt.Categories {
			for _, prod := range cat.Products {
				key := strings.ToLower(strings.TrimSpace(prod.Name))
				if key == "" {
					continue
				}
				if _, ok := prices[key]; ok {
					continue
				}
				for _, p := range prod.Prices {
					if strings.TrimSpace(p.Duration) != "1" {
						continue
					}
					val, err := decimal.NewFromString(strings.TrimSpace(p.Price))
					if err != nil {
						c.log.Printf("namecheap: bad price %q for %s: %v", p.Price, prod.Name, err)
						continue
					}
					prices[key] = val
					break
				}
			}
		}
	}
	return prices, nil
}

// call issues one API command and decodes the envelope. An HTTP failure, a
// decode failure or Status != OK all come back as errors for the caller to
// degrade on.
func (c *Client) call(ctx context.Context, command string, extra url.Values) (*apiResponse, error) {
	q := url.Values{}
	q.Set("ApiUser", c.opts.APIUser)
	q.Set("ApiKey", c.opts.APIKey)
	q.Set("UserName", c.opts.Username)
	q.Set("ClientIp", c.opts.ClientIP)
	q.Set("Command", command)
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/xml")
	req.Header.Set("user-agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Pricing responses list every TLD; allow a few MB.
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("namecheap: http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded apiResponse
	if err := xml.Unmarshal(b, &decoded); err != nil {
		return nil, fmt.Errorf("namecheap: decode error: %w", err)
	}
	if !strings.EqualFold(decoded.Status, "OK") {
		return nil, fmt.Errorf("namecheap: api error: %s", decoded.Errors.message())
	}
	return &decoded, nil
}

type apiResponse struct {
	XMLName         xml.Name        `xml:"ApiResponse"`
	Status          string          `xml:"Status,attr"`
	Errors          apiErrors       `xml:"Errors"`
	CommandResponse commandResponse `xml:"CommandResponse"`
}

type apiErrors struct {
	Errors []apiError `xml:"Error"`
}

func (e apiErrors) message() string {
	var msgs []string
	for _, err := range e.Errors {
		m := strings.TrimSpace(err.Message)
		if m == "" {
			continue
		}
		if n := strings.TrimSpace(err.Number); n != "" {
			m = n + ": " + m
		}
		msgs = append(msgs, m)
	}
	if len(msgs) == 0 {
		return "unknown error"
	}
	return strings.Join(msgs, "; ")
}

type apiError struct {
	Number  string `xml:"Number,attr"`
	Message string `xml:",chardata"`
}

type commandResponse struct {
	PricingResult pricingResult       `xml:"UserGetPricingResult"`
	CheckResults  []domainCheckResult `xml:"DomainCheckResult"`
}

type pricingResult struct {
	ProductTypes []productType `xml:"ProductType"`
}

type productType struct {
	Name       string            `xml:"Name,attr"`
	Categories []productCategory `xml:"ProductCategory"`
}

type productCategory struct {
	Name     string    `xml:"Name,attr"`
	Products []product `xml:"Product"`
}

type product struct {
	Name   string  `xml:"Name,attr"`
	Prices []price `xml:"Price"`
}

type price struct {
	Duration     string `xml:"Duration,attr"`
	DurationType string `xml:"DurationType,attr"`
	Price        string `xml:"Price,attr"`
}

type domainCheckResult struct {
	Domain      string `xml:"Domain,attr"`
	Available   string `xml:"Available,attr"`
	ErrorNo     string `xml:"ErrorNo,attr"`
	Description string `xml:"Description,attr"`
}

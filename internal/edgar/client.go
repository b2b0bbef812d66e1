// Package edgar implements a rate-limited client for SEC EDGAR public
// endpoints: daily master indexes, company submissions, full-text search,
// ticker mappings, and filing archives.
//
// No API key is required. SEC policy requires an identifying User-Agent
// (company or personal name plus a contact email) and caps request rates
// at 10 requests/second per user-agent.
// Docs: https://www.sec.gov/edgar/sec-api-documentation
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/seenimoa/edgarscan/internal/infra"
)

const (
	// Default EDGAR endpoints. Overridable per client for tests.
	defaultDataURL   = "https://data.sec.gov"
	defaultWWWURL    = "https://www.sec.gov"
	defaultSearchURL = "https://efts.sec.gov/LATEST/search-index"

	// Fallback User-Agent when no contact string is configured. SEC asks
	// for an identifying string instead; callers are warned at startup.
	browserUserAgent = "Mozilla/5.0 (Windows NT 6.3; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/47.0.2526.69 Safari/537.36"

	// Token-bucket budget: an initial burst of 8 requests, refilling one
	// per second after that. Well under SEC's published 10 req/s cap.
	defaultRateLimit = 8
)

// Client is a rate-limited SEC EDGAR HTTP client. All methods issue a
// single request attempt: transport errors and non-2xx statuses are
// returned to the caller, never retried.
type Client struct {
	dataURL   string
	wwwURL    string
	searchURL string
	userAgent string
	limiter   *infra.RateLimiter

	// Ticker mapping cache. SEC refreshes company_tickers.json daily;
	// concurrent first lookups share one fetch.
	tickers     *infra.Cache
	tickerGroup singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the EDGAR endpoint hosts. Used in tests.
func WithBaseURLs(dataURL, wwwURL, searchURL string) Option {
	return func(c *Client) {
		c.dataURL = dataURL
		c.wwwURL = wwwURL
		c.searchURL = searchURL
	}
}

// WithRateLimit overrides the request budget. Values below 1 are
// clamped to 1: a zero-capacity bucket would never grant a token.
func WithRateLimit(perSecond int) Option {
	return func(c *Client) {
		if perSecond < 1 {
			perSecond = 1
		}
		c.limiter = infra.NewRateLimiter(perSecond, time.Second)
	}
}

// New creates an EDGAR client. contact identifies the caller per SEC
// policy ("Your Name your.email@example.com"). When empty, a generic
// browser User-Agent is used and a compliance warning is logged.
func New(contact string, opts ...Option) *Client {
	ua := contact
	if ua == "" {
		ua = browserUserAgent
		log.Println("edgar: no contact string configured; using a generic browser User-Agent is a SEC compliance risk, set sec.contact")
	}
	c := &Client{
		dataURL:   defaultDataURL,
		wwwURL:    defaultWWWURL,
		searchURL: defaultSearchURL,
		userAgent: ua,
		limiter:   infra.NewRateLimiter(defaultRateLimit, time.Second),
		tickers:   infra.NewCache(24 * time.Hour),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// headers returns the fixed header bundle sent with every request.
// SEC endpoints reject requests lacking an identifying User-Agent.
func (c *Client) headers() map[string]string {
	return map[string]string{
		"Accept":           "*/*",
		"Accept-Language":  "en-US,en;q=0.5",
		"User-Agent":       c.userAgent,
		"X-Requested-With": "XMLHttpRequest",
	}
}

// get performs one rate-limited GET and returns the body.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, _, err := infra.DoGet(ctx, rawURL, c.headers())
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

// getQuery performs one rate-limited GET with query parameters.
func (c *Client) getQuery(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, _, err := infra.DoGetQuery(ctx, rawURL, params, c.headers())
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

// getJSON performs one rate-limited GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, rawURL string, dest any) error {
	data, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse SEC JSON: %w", err)
	}
	return nil
}

// PadCIK pads a CIK number to 10 digits with leading zeros, the form SEC
// URLs require.
func PadCIK(cik string) string {
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}

package edgar

import (
	"context"
	"fmt"
	"strings"
)

// ErrTickerNotFound is returned when a ticker has no CIK mapping.
type ErrTickerNotFound struct {
	Ticker string
}

func (e *ErrTickerNotFound) Error() string {
	return fmt.Sprintf("ticker %q not found in SEC database", e.Ticker)
}

const tickerCacheKey = "company_tickers"

// LookupCIK resolves a ticker symbol to its CIK using SEC's
// company_tickers.json. The full mapping is fetched at most once per cache
// TTL; concurrent first lookups share a single fetch.
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(ticker))
	if sym == "" {
		return "", &ErrTickerNotFound{Ticker: ticker}
	}

	mapping, err := c.tickerMap(ctx)
	if err != nil {
		return "", err
	}

	entry, ok := mapping[sym]
	if !ok {
		return "", &ErrTickerNotFound{Ticker: ticker}
	}
	return fmt.Sprintf("%d", entry.CIK), nil
}

// tickerMap returns the upper-cased ticker -> entry mapping, fetching it
// from SEC on a cache miss.
// Format: {"0": {"cik_str": 123, "ticker": "AAPL", "title": "Apple"}, ...}
func (c *Client) tickerMap(ctx context.Context) (map[string]tickerEntry, error) {
	if v, ok := c.tickers.Get(tickerCacheKey); ok {
		return v.(map[string]tickerEntry), nil
	}

	v, err, _ := c.tickerGroup.Do(tickerCacheKey, func() (any, error) {
		if v, ok := c.tickers.Get(tickerCacheKey); ok {
			return v, nil
		}

		u := c.wwwURL + "/files/company_tickers.json"
		var raw map[string]tickerEntry
		if err := c.getJSON(ctx, u, &raw); err != nil {
			return nil, fmt.Errorf("edgar company tickers: %w", err)
		}

		mapping := make(map[string]tickerEntry, len(raw))
		for _, entry := range raw {
			mapping[strings.ToUpper(entry.Ticker)] = entry
		}
		c.tickers.Set(tickerCacheKey, mapping)
		return mapping, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]tickerEntry), nil
}

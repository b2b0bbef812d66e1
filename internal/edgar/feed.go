package edgar

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/edgarscan/pkg/models"
)

// CompanyFeed reads a company's latest filings from the EDGAR Atom feed
// (browse-edgar with output=atom). formType narrows the feed to one form
// ("13D", "13F-HR"); empty returns all recent filings. The feed mirrors
// the website's most-recent view and goes back only a few pages.
func (c *Client) CompanyFeed(ctx context.Context, cik, formType string, count int) ([]models.FeedEntry, error) {
	if count <= 0 {
		count = 40
	}
	params := url.Values{}
	params.Set("action", "getcompany")
	params.Set("CIK", PadCIK(cik))
	params.Set("output", "atom")
	params.Set("count", fmt.Sprintf("%d", count))
	if formType != "" {
		params.Set("type", formType)
	}

	data, err := c.getQuery(ctx, c.wwwURL+"/cgi-bin/browse-edgar", params)
	if err != nil {
		return nil, fmt.Errorf("edgar atom feed CIK %s: %w", cik, err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("edgar atom feed CIK %s: %w", cik, err)
	}

	entries := make([]models.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		form := ""
		if len(item.Categories) > 0 {
			form = item.Categories[0]
		}
		updated := item.Updated
		if updated == "" && item.UpdatedParsed != nil {
			updated = item.UpdatedParsed.Format("2006-01-02")
		}
		entries = append(entries, models.FeedEntry{
			Title:    item.Title,
			Link:     item.Link,
			Updated:  updated,
			FormType: form,
		})
	}
	return entries, nil
}

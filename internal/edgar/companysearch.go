package edgar

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/edgarscan/pkg/models"
)

var cikInHref = regexp.MustCompile(`CIK=(\d+)`)

// SearchCompanies looks up companies by name fragment on the EDGAR
// company browse page and returns (CIK, name) pairs scraped from the
// results table. Useful when a filer has no ticker (most 13F filers).
func (c *Client) SearchCompanies(ctx context.Context, name string, limit int) ([]models.CIKMapping, error) {
	params := url.Values{}
	params.Set("action", "getcompany")
	params.Set("company", name)
	params.Set("match", "contains")

	data, err := c.getQuery(ctx, c.wwwURL+"/cgi-bin/browse-edgar", params)
	if err != nil {
		return nil, fmt.Errorf("edgar company search %q: %w", name, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("edgar company search %q: %w", name, err)
	}

	var results []models.CIKMapping
	doc.Find("table.tableFile2 tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true // header or spacer row
		}
		link := cells.Eq(0).Find("a")
		href, _ := link.Attr("href")
		m := cikInHref.FindStringSubmatch(href)
		if m == nil {
			return true
		}
		results = append(results, models.CIKMapping{
			CIK:  m[1],
			Name: strings.TrimSpace(cells.Eq(1).Text()),
		})
		return limit <= 0 || len(results) < limit
	})

	return results, nil
}

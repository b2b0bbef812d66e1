package edgar

import (
	"context"
	"fmt"

	"github.com/seenimoa/edgarscan/pkg/models"
)

// RecentFilter selects filings from a company's recent submissions.
// StartDate/EndDate are inclusive YYYY-MM-DD bounds; an empty bound is
// unbounded. Limit is a hard cap: iteration stops as soon as it is hit.
type RecentFilter struct {
	Forms     []string
	StartDate string
	EndDate   string
	Limit     int
}

func (f RecentFilter) matchesForm(form string) bool {
	for _, want := range f.Forms {
		if form == want {
			return true
		}
	}
	return false
}

func (f RecentFilter) matchesDate(date string) bool {
	// Fixed-width ISO dates compare correctly as strings.
	if f.StartDate != "" && date < f.StartDate {
		return false
	}
	if f.EndDate != "" && date > f.EndDate {
		return false
	}
	return true
}

// fetchSubmissions retrieves a company's submissions document.
func (c *Client) fetchSubmissions(ctx context.Context, cik string) (*submissionsResponse, error) {
	u := fmt.Sprintf("%s/submissions/CIK%s.json", c.dataURL, PadCIK(cik))
	var resp submissionsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("edgar submissions CIK %s: %w", cik, err)
	}
	return &resp, nil
}

// filterRecent zips the parallel submission arrays into Filing records in
// a single pass, applying the filter. Only the "recent" page is visited:
// SEC truncates it around 1000 entries, so results past that horizon are
// out of reach here and the caller must not treat the output as complete
// filing history.
func filterRecent(resp *submissionsResponse, f RecentFilter) []models.Filing {
	recent := resp.Filings.Recent
	var filings []models.Filing

	for i, form := range recent.Form {
		if !f.matchesForm(form) {
			continue
		}
		if i >= len(recent.FilingDate) || i >= len(recent.AccessionNumber) {
			break // ragged arrays: nothing trustworthy past this point
		}
		if !f.matchesDate(recent.FilingDate[i]) {
			continue
		}

		primaryDoc := ""
		if i < len(recent.PrimaryDocument) {
			primaryDoc = recent.PrimaryDocument[i]
		}

		filings = append(filings, models.Filing{
			Form:            form,
			FilingDate:      recent.FilingDate[i],
			AccessionNumber: recent.AccessionNumber[i],
			CIK:             resp.CIK,
			CompanyName:     resp.Name,
			PrimaryDocument: primaryDoc,
			FilerType:       models.FilerUnknown,
		})

		if f.Limit > 0 && len(filings) >= f.Limit {
			break
		}
	}

	return filings
}

// CompanyFilings fetches a company's recent submissions and returns the
// filings matching the filter.
func (c *Client) CompanyFilings(ctx context.Context, cik string, f RecentFilter) ([]models.Filing, error) {
	resp, err := c.fetchSubmissions(ctx, cik)
	if err != nil {
		return nil, err
	}
	return filterRecent(resp, f), nil
}

// ErrNoIdentifier is returned when neither a ticker nor a CIK is supplied.
var ErrNoIdentifier = fmt.Errorf("either ticker or CIK must be provided")

// Search13D finds 13D and 13D/A filings for a company identified by
// ticker or CIK within the inclusive date range.
func (c *Client) Search13D(ctx context.Context, ticker, cik, startDate, endDate string, limit int) ([]models.Filing, error) {
	if ticker != "" && cik == "" {
		resolved, err := c.LookupCIK(ctx, ticker)
		if err != nil {
			return nil, err
		}
		cik = resolved
	}
	if cik == "" {
		return nil, ErrNoIdentifier
	}

	filings, err := c.CompanyFilings(ctx, cik, RecentFilter{
		Forms:     []string{models.Form13D, models.Form13DA},
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	if ticker != "" {
		for i := range filings {
			filings[i].Ticker = ticker
		}
	}
	return filings, nil
}

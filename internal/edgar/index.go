package edgar

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/seenimoa/edgarscan/pkg/models"
)

// accessionInPath extracts the accession number from an index filename of
// the shape edgar/data/<cik>/<accession>/<doc>.
var accessionInPath = regexp.MustCompile(`/(\d{10}-\d{2}-\d{6})/`)

// Quarter returns the EDGAR quarter number (1-4) for a date.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// DailyIndexURL builds the master daily index URL for a date.
func (c *Client) DailyIndexURL(day time.Time) string {
	return fmt.Sprintf("%s/Archives/edgar/daily-index/%d/QTR%d/master.%s.idx",
		c.wwwURL, day.Year(), Quarter(day), day.Format("20060102"))
}

// FetchDailyIndex downloads one day's master index and returns the 13D
// and 13D/A filings it lists. Weekends and holidays have no index file;
// the resulting 404 surfaces as an error the caller logs and skips.
func (c *Client) FetchDailyIndex(ctx context.Context, day time.Time) ([]models.Filing, error) {
	data, err := c.get(ctx, c.DailyIndexURL(day))
	if err != nil {
		return nil, fmt.Errorf("edgar daily index %s: %w", day.Format("2006-01-02"), err)
	}
	return ParseDailyIndex(string(data), day.Format("2006-01-02")), nil
}

// ParseDailyIndex parses a master.<date>.idx file. Lines before the
// "Form Type" header token are preamble; data rows are pipe-delimited
// with at least five fields (form | company | CIK | date filed | filename).
// Only 13D and 13D/A rows are kept, matched exactly without case-folding.
// An accession number that cannot be extracted from the filename yields an
// empty string, not an error.
func ParseDailyIndex(content, date string) []models.Filing {
	var filings []models.Filing

	parsing := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "Form Type") {
			parsing = true
			continue
		}
		if !parsing || strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 5 {
			continue
		}
		formType := strings.TrimSpace(parts[0])
		if formType != models.Form13D && formType != models.Form13DA {
			continue
		}

		filename := strings.TrimSpace(parts[4])
		accession := ""
		if m := accessionInPath.FindStringSubmatch(filename); m != nil {
			accession = m[1]
		}

		filings = append(filings, models.Filing{
			Form:            formType,
			FilingDate:      date,
			CompanyName:     strings.TrimSpace(parts[1]),
			CIK:             strings.TrimSpace(parts[2]),
			AccessionNumber: accession,
			Filename:        filename,
			FilerType:       models.FilerUnknown,
		})
	}

	return filings
}

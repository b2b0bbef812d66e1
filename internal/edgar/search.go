package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/seenimoa/edgarscan/pkg/models"
)

// SearchFilings queries the EDGAR full-text search endpoint for a
// company's filings of one form type. dateBefore (YYYY-MM-DD) bounds the
// results; count caps them. Used mainly to locate 13F-HR filings.
func (c *Client) SearchFilings(ctx context.Context, cik, formType, dateBefore string, count int) ([]models.Filing, error) {
	params := url.Values{}
	params.Set("category", "custom")
	params.Set("ciks", PadCIK(cik))
	params.Set("forms", formType)
	params.Set("count", strconv.Itoa(count))
	if dateBefore != "" {
		params.Set("dateb", dateBefore)
	}

	data, err := c.getQuery(ctx, c.searchURL, params)
	if err != nil {
		return nil, fmt.Errorf("edgar search %s for CIK %s: %w", formType, cik, err)
	}

	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("edgar search %s for CIK %s: parse SEC JSON: %w", formType, cik, err)
	}

	var filings []models.Filing
	for _, hit := range resp.Hits.Hits {
		filings = append(filings, models.Filing{
			Form:            hit.Source.FormType,
			FilingDate:      hit.Source.FileDate,
			AccessionNumber: hit.Source.AccessionNumber,
			CIK:             cik,
			CompanyName:     hit.Source.EntityName,
			FilerType:       models.FilerUnknown,
		})
		if count > 0 && len(filings) >= count {
			break
		}
	}
	return filings, nil
}

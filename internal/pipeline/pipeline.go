// Package pipeline drives the filing discovery sweeps: date-range 13D
// discovery over daily indexes, targeted sweeps over known institutional
// filers, and 13F holdings retrieval.
//
// All sweeps are sequential and single-threaded. The client's shared
// rate limit budgets our requests against SEC's cap, and fanning out
// across days or entities would defeat it. There is also no retry and no
// cancellation beyond the passed context: a hung endpoint stalls the
// sweep until the HTTP client times out.
//
// Failures are handled per unit of work: a day whose index cannot be
// fetched, or an investor whose submissions cannot be read, is logged
// and skipped. Every returned collection is therefore possibly
// incomplete and callers must treat it that way.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/seenimoa/edgarscan/internal/classify"
	"github.com/seenimoa/edgarscan/internal/edgar"
	"github.com/seenimoa/edgarscan/pkg/models"
)

// Pipeline runs filing discovery sweeps against SEC EDGAR.
type Pipeline struct {
	client     *edgar.Client
	classifier *classify.Classifier
}

// New creates a pipeline over the given client with the default
// institutional classifier.
func New(client *edgar.Client) *Pipeline {
	return &Pipeline{
		client:     client,
		classifier: classify.NewDefault(),
	}
}

// NewWithClassifier creates a pipeline with a custom classifier.
func NewWithClassifier(client *edgar.Client, c *classify.Classifier) *Pipeline {
	return &Pipeline{client: client, classifier: c}
}

// DateRangeSweep walks every calendar day in [start, end], fetches that
// day's master index, and accumulates 13D/13D/A filings up to maxResults.
// The cap applies to the concatenated list: the day that crosses it is
// truncated in append order, not dropped. The accumulated set is then
// passed through the institutional classifier, which acts as a strict
// filter, so fewer than maxResults records may come back.
func (p *Pipeline) DateRangeSweep(ctx context.Context, start, end time.Time, maxResults int) ([]models.Filing, error) {
	var filings []models.Filing

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if maxResults > 0 && len(filings) >= maxResults {
			break
		}

		daily, err := p.client.FetchDailyIndex(ctx, day)
		if err != nil {
			// Weekends and holidays 404; real outages look the same.
			// Either way this day contributes nothing.
			log.Printf("pipeline: skipping %s: %v", day.Format("2006-01-02"), err)
			continue
		}
		if len(daily) > 0 {
			log.Printf("pipeline: %d 13D filings on %s", len(daily), day.Format("2006-01-02"))
		}

		filings = append(filings, daily...)
		if maxResults > 0 && len(filings) > maxResults {
			filings = filings[:maxResults]
		}
	}

	return p.classifier.Filter(filings), nil
}

// TargetedSweep fetches recent 13D/13D/A filings for each investor in
// the catalog, up to perInvestorLimit each. Records are tagged
// Institutional directly: identity is already known from the catalog, no
// classifier pass is needed. A failing investor is logged and skipped.
//
// Only each investor's "recent" submissions page is visited (SEC
// truncates it around 1000 entries), so this is a view of recent
// activity, not complete history.
func (p *Pipeline) TargetedSweep(ctx context.Context, investors []models.InvestorRef, startDate, endDate string, perInvestorLimit int) []models.Filing {
	var all []models.Filing

	for _, inv := range investors {
		if ctx.Err() != nil {
			break
		}

		filings, err := p.client.CompanyFilings(ctx, inv.CIK, edgar.RecentFilter{
			Forms:     []string{models.Form13D, models.Form13DA},
			StartDate: startDate,
			EndDate:   endDate,
			Limit:     perInvestorLimit,
		})
		if err != nil {
			log.Printf("pipeline: skipping %s: %v", inv.Name, err)
			continue
		}

		for i := range filings {
			filings[i].CompanyName = inv.Name
			filings[i].CIK = inv.CIK
			filings[i].FilerType = models.FilerInstitutional
		}
		all = append(all, filings...)
	}

	return all
}

// FetchHoldings retrieves and parses the most recent numFilings 13F-HR
// information tables for a filer CIK. Each holding row is stamped with
// its filing date and accession number. A filing whose table cannot be
// located or parsed is logged and skipped.
func (p *Pipeline) FetchHoldings(ctx context.Context, cik string, numFilings int) ([]models.Holding, error) {
	filings, err := p.client.SearchFilings(ctx, cik, models.Form13FHR, "", numFilings)
	if err != nil {
		return nil, err
	}

	var holdings []models.Holding
	for _, filing := range filings {
		docs, err := p.client.FilingIndex(ctx, cik, filing.AccessionNumber)
		if err != nil {
			log.Printf("pipeline: skipping filing %s: %v", filing.AccessionNumber, err)
			continue
		}

		tableDoc := edgar.InformationTableDoc(docs)
		if tableDoc == "" {
			log.Printf("pipeline: no information table in filing %s", filing.AccessionNumber)
			continue
		}

		xmlContent, err := p.client.FetchDocument(ctx, cik, filing.AccessionNumber, tableDoc)
		if err != nil {
			log.Printf("pipeline: skipping filing %s: %v", filing.AccessionNumber, err)
			continue
		}

		rows, err := edgar.Parse13FTable(xmlContent)
		if err != nil {
			log.Printf("pipeline: unparseable information table in %s: %v", filing.AccessionNumber, err)
			continue
		}

		for i := range rows {
			rows[i].FilingDate = filing.FilingDate
			rows[i].AccessionNumber = filing.AccessionNumber
		}
		holdings = append(holdings, rows...)
	}

	return holdings, nil
}

// FilingDetails resolves the main document of one 13D filing and fetches
// its content.
func (p *Pipeline) FilingDetails(ctx context.Context, cik, accession string) (url, content string, err error) {
	docs, err := p.client.FilingIndex(ctx, cik, accession)
	if err != nil {
		return "", "", err
	}
	name := edgar.Primary13DDoc(docs)
	if name == "" {
		return "", "", &NoPrimaryDocError{Accession: accession}
	}
	content, err = p.client.FetchDocument(ctx, cik, accession, name)
	if err != nil {
		return "", "", err
	}
	return p.client.DocumentURL(cik, accession, name), content, nil
}

// NoPrimaryDocError is returned when a filing's index lists no usable
// primary document.
type NoPrimaryDocError struct {
	Accession string
}

func (e *NoPrimaryDocError) Error() string {
	return "no primary document found in filing " + e.Accession
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seenimoa/edgarscan/internal/edgar"
	"github.com/seenimoa/edgarscan/pkg/models"
)

// indexFor builds a master index body with the given pipe rows appended
// after the header.
func indexFor(rows ...string) string {
	var b strings.Builder
	b.WriteString("Description: daily index\n\n")
	b.WriteString("Form Type|Company Name|CIK|Date Filed|File Name\n")
	b.WriteString("----\n")
	for _, r := range rows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

func newTestPipeline(t *testing.T, handler http.Handler) *Pipeline {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := edgar.New("test test@example.com",
		edgar.WithBaseURLs(srv.URL, srv.URL, srv.URL),
		edgar.WithRateLimit(1000))
	return New(client)
}

func TestDateRangeSweep(t *testing.T) {
	// Three days: one with filings, one 404 (weekend), one with filings.
	bodies := map[string]string{
		"master.20240315.idx": indexFor(
			"13D|MERIDIAN CAPITAL LLC|1000001|2024-03-15|edgar/data/1000001/0001-24-000001/a.txt",
			"13D|SMITH JOHN|1000002|2024-03-15|edgar/data/1000002/0001-24-000002/b.txt",
		),
		"master.20240317.idx": indexFor(
			"13D/A|HARBORVIEW PARTNERS LP|1000003|2024-03-17|edgar/data/1000003/0001-24-000003/c.txt",
		),
	}
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, body := range bodies {
			if strings.HasSuffix(r.URL.Path, name) {
				fmt.Fprint(w, body)
				return
			}
		}
		http.NotFound(w, r)
	}))

	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)

	filings, err := p.DateRangeSweep(context.Background(), start, end, 100)
	if err != nil {
		t.Fatalf("DateRangeSweep failed: %v", err)
	}

	// SMITH JOHN is dropped by the institutional filter.
	if len(filings) != 2 {
		t.Fatalf("expected 2 institutional filings, got %d: %+v", len(filings), filings)
	}
	if filings[0].CompanyName != "MERIDIAN CAPITAL LLC" {
		t.Errorf("unexpected first filing %q", filings[0].CompanyName)
	}
	if filings[1].CompanyName != "HARBORVIEW PARTNERS LP" {
		t.Errorf("unexpected second filing %q", filings[1].CompanyName)
	}
	for _, f := range filings {
		if f.FilerType != models.FilerInstitutional {
			t.Errorf("%s: expected institutional tag", f.CompanyName)
		}
		if len(f.InstitutionalIndicators) == 0 {
			t.Errorf("%s: expected indicators", f.CompanyName)
		}
	}
}

func TestDateRangeSweepCap(t *testing.T) {
	// Each day returns 2 institutional-sounding filings; cap at 3.
	var days int
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		days++
		fmt.Fprint(w, indexFor(
			fmt.Sprintf("13D|ACME CAPITAL LLC %d|1|2024-03-15|edgar/data/1/0001-24-00000%d/a.txt", days, days),
			fmt.Sprintf("13D|ZENITH PARTNERS LP %d|2|2024-03-15|edgar/data/2/0002-24-00000%d/b.txt", days, days),
		))
	}))

	start := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	filings, err := p.DateRangeSweep(context.Background(), start, end, 3)
	if err != nil {
		t.Fatalf("DateRangeSweep failed: %v", err)
	}
	// The crossing day is truncated in append order and later days are
	// never fetched.
	if len(filings) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(filings))
	}
	if days != 2 {
		t.Errorf("expected sweep to stop after 2 days, fetched %d", days)
	}
}

func TestDateRangeSweepAllDaysFail(t *testing.T) {
	p := newTestPipeline(t, http.NotFoundHandler())

	start := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)

	filings, err := p.DateRangeSweep(context.Background(), start, end, 10)
	if err != nil {
		t.Fatalf("failed days must be skipped, not fatal: %v", err)
	}
	if len(filings) != 0 {
		t.Errorf("expected no filings, got %d", len(filings))
	}
}

func TestDateRangeSweepCancelled(t *testing.T) {
	p := newTestPipeline(t, http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	_, err := p.DateRangeSweep(ctx, start, start, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTargetedSweep(t *testing.T) {
	submissions := func(cik, name string) string {
		return fmt.Sprintf(`{
  "cik": %q, "name": %q,
  "filings": {"recent": {
    "form": ["13D", "10-K", "13D/A"],
    "filingDate": ["2024-04-01", "2024-03-01", "2024-02-01"],
    "accessionNumber": ["0001-24-000001", "0001-24-000002", "0001-24-000003"],
    "primaryDocument": ["sc13d.htm", "k.htm", "sc13da.htm"]
  }}
}`, cik, name)
	}
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/submissions/CIK0000001111.json":
			fmt.Fprint(w, submissions("1111", "FILER ONE SEC NAME"))
		case "/submissions/CIK0000002222.json":
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		case "/submissions/CIK0000003333.json":
			fmt.Fprint(w, submissions("3333", "FILER THREE SEC NAME"))
		default:
			http.NotFound(w, r)
		}
	}))

	investors := []models.InvestorRef{
		{Name: "Filer One", CIK: "1111"},
		{Name: "Filer Two", CIK: "2222"},
		{Name: "Filer Three", CIK: "3333"},
	}
	filings := p.TargetedSweep(context.Background(), investors, "", "", 10)

	// The failing investor is skipped, the rest still contribute.
	if len(filings) != 4 {
		t.Fatalf("expected 4 filings, got %d", len(filings))
	}
	// Catalog identity overrides the SEC-reported name, and records are
	// tagged institutional without a classifier pass.
	if filings[0].CompanyName != "Filer One" || filings[0].CIK != "1111" {
		t.Errorf("catalog identity not applied: %+v", filings[0])
	}
	if filings[2].CompanyName != "Filer Three" {
		t.Errorf("expected third investor's filings after the skip: %+v", filings[2])
	}
	for _, f := range filings {
		if f.FilerType != models.FilerInstitutional {
			t.Errorf("expected institutional tag on %+v", f)
		}
	}
}

func TestTargetedSweepPerInvestorLimit(t *testing.T) {
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
  "cik": "1111", "name": "FILER ONE",
  "filings": {"recent": {
    "form": ["13D", "13D", "13D"],
    "filingDate": ["2024-04-01", "2024-03-01", "2024-02-01"],
    "accessionNumber": ["a", "b", "c"],
    "primaryDocument": ["1.htm", "2.htm", "3.htm"]
  }}
}`)
	}))

	filings := p.TargetedSweep(context.Background(),
		[]models.InvestorRef{{Name: "Filer One", CIK: "1111"}}, "", "", 2)
	if len(filings) != 2 {
		t.Errorf("expected per-investor limit of 2, got %d", len(filings))
	}
}

const holdingsSearchResponse = `{
  "hits": {"hits": [
    {"_id": "0001-24-000001", "_source": {
      "accession_number": "0001104659-24-000001",
      "file_date": "2024-05-15",
      "form_type": "13F-HR",
      "entity_name": "TEST FILER"
    }}
  ]}
}`

const holdingsFilingIndex = `{
  "directory": {"item": [
    {"name": "primary_doc.xml", "type": "13F-HR", "description": "PRIMARY DOCUMENT"},
    {"name": "infotable.xml", "type": "INFORMATION TABLE", "description": "13F INFORMATION TABLE"}
  ]}
}`

const holdingsTable = `<informationTable>
  <infoTable>
    <nameOfIssuer>APPLE INC</nameOfIssuer>
    <cusip>037833100</cusip>
    <value>500</value>
    <shrsOrPrnAmt><sshPrnamt>12000</sshPrnamt></shrsOrPrnAmt>
  </infoTable>
</informationTable>`

func TestFetchHoldings(t *testing.T) {
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "search-index") || r.URL.Query().Get("forms") != "":
			fmt.Fprint(w, holdingsSearchResponse)
		case strings.HasSuffix(r.URL.Path, "-index.json"):
			fmt.Fprint(w, holdingsFilingIndex)
		case strings.HasSuffix(r.URL.Path, "infotable.xml"):
			fmt.Fprint(w, holdingsTable)
		default:
			http.NotFound(w, r)
		}
	}))

	holdings, err := p.FetchHoldings(context.Background(), "1067983", 1)
	if err != nil {
		t.Fatalf("FetchHoldings failed: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}
	h := holdings[0]
	if h.IssuerName != "APPLE INC" || h.CUSIP != "037833100" || h.Shares != "12000" {
		t.Errorf("unexpected holding %+v", h)
	}
	// Filed value is in thousands of dollars.
	if h.Value != 500000 {
		t.Errorf("expected value 500000, got %d", h.Value)
	}
	// Rows are stamped with their source filing.
	if h.FilingDate != "2024-05-15" || h.AccessionNumber != "0001104659-24-000001" {
		t.Errorf("holding not stamped with filing metadata: %+v", h)
	}
}

func TestFetchHoldingsNoTable(t *testing.T) {
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "-index.json"):
			fmt.Fprint(w, `{"directory": {"item": [{"name": "readme.txt"}]}}`)
		default:
			fmt.Fprint(w, holdingsSearchResponse)
		}
	}))

	// A filing without a locatable table is skipped, not fatal.
	holdings, err := p.FetchHoldings(context.Background(), "1067983", 1)
	if err != nil {
		t.Fatalf("FetchHoldings failed: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected no holdings, got %d", len(holdings))
	}
}

func TestFetchHoldingsMalformedTable(t *testing.T) {
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "-index.json"):
			fmt.Fprint(w, holdingsFilingIndex)
		case strings.HasSuffix(r.URL.Path, "infotable.xml"):
			fmt.Fprint(w, `<informationTable><infoTable>`)
		default:
			fmt.Fprint(w, holdingsSearchResponse)
		}
	}))

	// An unparseable information table is logged and skipped; the sweep
	// still completes with an empty set.
	holdings, err := p.FetchHoldings(context.Background(), "1067983", 1)
	if err != nil {
		t.Fatalf("parse failure must not propagate: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected no holdings from malformed table, got %d", len(holdings))
	}
}

func TestFilingDetails(t *testing.T) {
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "-index.json"):
			fmt.Fprint(w, `{"directory": {"item": [{"name": "sc13d.txt", "type": "SC 13D"}]}}`)
		case strings.HasSuffix(r.URL.Path, "sc13d.txt"):
			fmt.Fprint(w, "SCHEDULE 13D CONTENT")
		default:
			http.NotFound(w, r)
		}
	}))

	url, content, err := p.FilingDetails(context.Background(), "1000001", "0001104659-24-012345")
	if err != nil {
		t.Fatalf("FilingDetails failed: %v", err)
	}
	if !strings.HasSuffix(url, "/Archives/edgar/data/1000001/000110465924012345/sc13d.txt") {
		t.Errorf("unexpected document URL %q", url)
	}
	if content != "SCHEDULE 13D CONTENT" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestFilingDetailsNoPrimaryDoc(t *testing.T) {
	p := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"directory": {"item": [{"name": "exhibit.xml"}]}}`)
	}))

	_, _, err := p.FilingDetails(context.Background(), "1000001", "0001104659-24-012345")
	var noPrimary *NoPrimaryDocError
	if !errors.As(err, &noPrimary) {
		t.Fatalf("expected NoPrimaryDocError, got %v", err)
	}
	if noPrimary.Accession != "0001104659-24-012345" {
		t.Errorf("error carries accession %q", noPrimary.Accession)
	}
}

func TestMajorInvestors(t *testing.T) {
	investors := MajorInvestors()
	if len(investors) < 10 {
		t.Fatalf("expected a sizable catalog, got %d entries", len(investors))
	}
	for _, inv := range investors {
		if inv.Name == "" || inv.CIK == "" {
			t.Errorf("incomplete catalog entry %+v", inv)
		}
	}

	// Callers get a copy; mutating it must not corrupt the catalog.
	investors[0].Name = "mutated"
	if MajorInvestors()[0].Name == "mutated" {
		t.Error("catalog not isolated from caller mutation")
	}
}

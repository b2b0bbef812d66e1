package edgar

// --- EDGAR Submissions (data.sec.gov/submissions) ---

// submissionsResponse is the company submissions document. The recent
// filing attributes arrive as parallel arrays indexed by position.
type submissionsResponse struct {
	CIK     string   `json:"cik"`
	Name    string   `json:"name"`
	Tickers []string `json:"tickers"`
	Filings struct {
		Recent recentFilings `json:"recent"`
	} `json:"filings"`
}

// recentFilings holds the parallel filing arrays. SEC truncates this set
// to roughly the 1000 most recent filings; older history lives in paged
// files this client does not walk.
type recentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// --- EDGAR Full-Text Search (efts.sec.gov) ---

// searchResponse is the Elasticsearch-shaped search envelope.
type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

type searchHit struct {
	ID     string `json:"_id"`
	Source struct {
		AccessionNumber string `json:"accession_number"`
		FileDate        string `json:"file_date"`
		FormType        string `json:"form_type"`
		EntityName      string `json:"entity_name"`
	} `json:"_source"`
}

// --- CIK / Ticker Mapping ---

// tickerEntry is one row of company_tickers.json
// ({"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}).
type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// --- Filing document index (<accession>-index.json) ---

type filingIndexResponse struct {
	Directory struct {
		Item []filingIndexItem `json:"item"`
	} `json:"directory"`
}

type filingIndexItem struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

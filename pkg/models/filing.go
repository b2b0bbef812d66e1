package models

import "regexp"

// FilerType classifies the entity behind a filing.
type FilerType string

const (
	FilerUnknown       FilerType = "Unknown"
	FilerInstitutional FilerType = "Institutional"
)

// Form types tracked by this tool.
const (
	Form13D   = "13D"
	Form13DA  = "13D/A"
	Form13FHR = "13F-HR"
	Form13FNT = "13F-NT"
)

// AccessionPattern is the SEC accession number format: NNNNNNNNNN-YY-NNNNNN.
var AccessionPattern = regexp.MustCompile(`^\d{10}-\d{2}-\d{6}$`)

// --- SEC Filings ---

// Filing represents one SEC filing record discovered from a daily index,
// the submissions API, or full-text search.
//
// FilingDate is kept as a YYYY-MM-DD string: the format is fixed-width ISO,
// so lexicographic comparison is valid for range filtering.
type Filing struct {
	Form            string    `json:"form"` // "13D", "13D/A", "13F-HR", "13F-NT"
	FilingDate      string    `json:"filing_date"`
	AccessionNumber string    `json:"accession_number"` // empty when not extractable
	CIK             string    `json:"cik"`
	CompanyName     string    `json:"company_name,omitempty"` // filer name
	Ticker          string    `json:"ticker,omitempty"`
	PrimaryDocument string    `json:"primary_document,omitempty"`
	Filename        string    `json:"filename,omitempty"` // index file path under Archives
	FilerType       FilerType `json:"filer_type"`

	// InstitutionalIndicators holds the keyword/pattern evidence recorded
	// by the classifier. Empty for unclassified records.
	InstitutionalIndicators []string `json:"institutional_indicators,omitempty"`
}

// --- 13F Holdings ---

// Holding is one row of a 13F information table.
// Value is in whole US dollars (the source reports thousands; the parser
// multiplies by 1000). Duplicate issuers within one filing are preserved.
type Holding struct {
	IssuerName      string `json:"issuer_name,omitempty"`
	CUSIP           string `json:"cusip,omitempty"` // 9-character identifier
	Shares          string `json:"shares,omitempty"`
	Value           int64  `json:"value,omitempty"`
	FilingDate      string `json:"filing_date,omitempty"`
	AccessionNumber string `json:"accession_number,omitempty"`
}

// --- Investor catalog ---

// InvestorRef identifies a known institutional investor by name and CIK.
// The catalog is defined once at startup and never mutated.
type InvestorRef struct {
	Name string `json:"name"`
	CIK  string `json:"cik"`
}

// CIKMapping represents a mapping from ticker/name to CIK number.
type CIKMapping struct {
	CIK    string `json:"cik"`
	Symbol string `json:"symbol,omitempty"`
	Name   string `json:"name"`
}

// FilingDocument is one entry of a filing's document index.
type FilingDocument struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Size        string `json:"size,omitempty"`
}

// FeedEntry is one item from a company's EDGAR Atom feed.
type FeedEntry struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Updated  string `json:"updated,omitempty"`
	FormType string `json:"form_type,omitempty"`
}

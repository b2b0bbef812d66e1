// Package export writes filing and holding records as flat CSV for
// spreadsheet and analysis tools. Column order is fixed; there is no
// schema versioning.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/seenimoa/edgarscan/pkg/models"
)

// filingColumns is the fixed header for filing exports.
var filingColumns = []string{
	"form", "filing_date", "accession_number", "cik", "company_name",
	"ticker", "filer_type", "institutional_indicators",
}

// holdingColumns is the fixed header for holding exports.
var holdingColumns = []string{
	"issuer_name", "cusip", "shares", "value", "filing_date", "accession_number",
}

// WriteFilings writes filing records as CSV, one row per record.
// Indicator lists are joined with ';' into a single cell.
func WriteFilings(w io.Writer, filings []models.Filing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(filingColumns); err != nil {
		return fmt.Errorf("export filings: %w", err)
	}
	for _, f := range filings {
		row := []string{
			f.Form,
			f.FilingDate,
			f.AccessionNumber,
			f.CIK,
			f.CompanyName,
			f.Ticker,
			string(f.FilerType),
			strings.Join(f.InstitutionalIndicators, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export filings: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHoldings writes holding records as CSV, one row per record.
func WriteHoldings(w io.Writer, holdings []models.Holding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(holdingColumns); err != nil {
		return fmt.Errorf("export holdings: %w", err)
	}
	for _, h := range holdings {
		row := []string{
			h.IssuerName,
			h.CUSIP,
			h.Shares,
			strconv.FormatInt(h.Value, 10),
			h.FilingDate,
			h.AccessionNumber,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export holdings: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FilingsToFile writes filing records to a CSV file at path.
func FilingsToFile(path string, filings []models.Filing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export filings: %w", err)
	}
	defer f.Close()
	return WriteFilings(f, filings)
}

// HoldingsToFile writes holding records to a CSV file at path.
func HoldingsToFile(path string, holdings []models.Holding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export holdings: %w", err)
	}
	defer f.Close()
	return WriteHoldings(f, holdings)
}

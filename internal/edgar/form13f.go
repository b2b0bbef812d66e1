package edgar

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/seenimoa/edgarscan/pkg/models"
)

// 13F information tables come in schema variants depending on filer
// tooling. Candidate tag names per element, tried in preference order.
var (
	tableCandidates = []string{"//informationTable", "//infoTable"}
	entryCandidates = []string{"infoTable", "holding"}

	issuerCandidates = []string{"nameOfIssuer", "issuerName"}
	cusipCandidates  = []string{"cusip"}
	sharesCandidates = []string{"sshPrnamt", "sharesOrPrincipalAmount"}
	valueCandidates  = []string{"value"}
)

// findFirst returns the first node resolved by any of the candidate
// relative paths, in order.
func findFirst(node *xmlquery.Node, candidates []string) *xmlquery.Node {
	for _, name := range candidates {
		if found := xmlquery.FindOne(node, ".//"+name); found != nil {
			return found
		}
	}
	return nil
}

// Parse13FTable parses one 13F information table into holdings. Absent
// fields are left unset; an entry yielding no fields at all is discarded.
// Values are converted from thousands to whole dollars. A parse failure
// is an error the caller downgrades to an empty set with a warning.
func Parse13FTable(xmlContent string) ([]models.Holding, error) {
	doc, err := xmlquery.Parse(strings.NewReader(xmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse 13F XML: %w", err)
	}

	var table *xmlquery.Node
	for _, path := range tableCandidates {
		if table = xmlquery.FindOne(doc, path); table != nil {
			break
		}
	}
	if table == nil {
		return nil, nil
	}

	var entries []*xmlquery.Node
	for _, name := range entryCandidates {
		if entries = xmlquery.Find(table, ".//"+name); len(entries) > 0 {
			break
		}
	}
	// Flat variant: repeated infoTable elements with no wrapping table.
	if len(entries) == 0 && table.Data == "infoTable" {
		entries = xmlquery.Find(doc, "//infoTable")
	}

	var holdings []models.Holding
	for _, entry := range entries {
		var h models.Holding
		found := false

		if n := findFirst(entry, issuerCandidates); n != nil {
			h.IssuerName = strings.TrimSpace(n.InnerText())
			found = true
		}
		if n := findFirst(entry, cusipCandidates); n != nil {
			h.CUSIP = strings.TrimSpace(n.InnerText())
			found = true
		}
		if n := findFirst(entry, sharesCandidates); n != nil {
			h.Shares = strings.TrimSpace(n.InnerText())
			found = true
		}
		if n := findFirst(entry, valueCandidates); n != nil {
			if v, err := strconv.ParseInt(strings.TrimSpace(n.InnerText()), 10, 64); err == nil {
				h.Value = v * 1000 // SEC reports values in thousands
				found = true
			}
		}

		if found {
			holdings = append(holdings, h)
		}
	}

	return holdings, nil
}

// FilingIndex fetches the document index of one filing
// (<accession>-index.json under the filing's archive directory).
func (c *Client) FilingIndex(ctx context.Context, cik, accession string) ([]models.FilingDocument, error) {
	accClean := strings.ReplaceAll(accession, "-", "")
	u := fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s-index.json",
		c.wwwURL, strings.TrimLeft(PadCIK(cik), "0"), accClean, accession)

	var resp filingIndexResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("edgar filing index %s: %w", accession, err)
	}

	docs := make([]models.FilingDocument, 0, len(resp.Directory.Item))
	for _, item := range resp.Directory.Item {
		docs = append(docs, models.FilingDocument{
			Name:        item.Name,
			Type:        item.Type,
			Description: item.Description,
		})
	}
	return docs, nil
}

// DocumentURL builds the archive URL for one document of a filing.
func (c *Client) DocumentURL(cik, accession, name string) string {
	accClean := strings.ReplaceAll(accession, "-", "")
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s",
		c.wwwURL, strings.TrimLeft(PadCIK(cik), "0"), accClean, name)
}

// FetchDocument retrieves one document of a filing as raw text.
func (c *Client) FetchDocument(ctx context.Context, cik, accession, name string) (string, error) {
	data, err := c.get(ctx, c.DocumentURL(cik, accession, name))
	if err != nil {
		return "", fmt.Errorf("edgar document %s/%s: %w", accession, name, err)
	}
	return string(data), nil
}

// InformationTableDoc picks the 13F information table document out of a
// filing's document index: the first .xml whose description mentions 13F,
// then any .xml that looks like an information table, then any .xml at all.
func InformationTableDoc(docs []models.FilingDocument) string {
	for _, d := range docs {
		if strings.HasSuffix(d.Name, ".xml") && strings.Contains(d.Description, "13F") {
			return d.Name
		}
	}
	for _, d := range docs {
		if strings.HasSuffix(d.Name, ".xml") && strings.Contains(strings.ToLower(d.Name), "infotable") {
			return d.Name
		}
	}
	for _, d := range docs {
		if strings.HasSuffix(d.Name, ".xml") {
			return d.Name
		}
	}
	return ""
}

// Primary13DDoc picks the main 13D document out of a filing's document
// index: the first .txt whose name mentions 13d, else the first .txt.
func Primary13DDoc(docs []models.FilingDocument) string {
	for _, d := range docs {
		if strings.HasSuffix(d.Name, ".txt") && strings.Contains(strings.ToLower(d.Name), "13d") {
			return d.Name
		}
	}
	for _, d := range docs {
		if strings.HasSuffix(d.Name, ".txt") {
			return d.Name
		}
	}
	return ""
}

package pipeline

import "github.com/seenimoa/edgarscan/pkg/models"

// majorInvestors is the built-in catalog of large institutional filers
// used to seed targeted sweeps. Defined once, never mutated.
var majorInvestors = []models.InvestorRef{
	{Name: "Berkshire Hathaway Inc", CIK: "1067983"},
	{Name: "Vanguard Group Inc", CIK: "102909"},
	{Name: "BlackRock Inc", CIK: "1364742"},
	{Name: "State Street Corp", CIK: "93751"},
	{Name: "Fidelity Management & Research Company LLC", CIK: "315066"},
	{Name: "Capital Research Global Investors", CIK: "1067983"},
	{Name: "JPMorgan Chase & Co", CIK: "19617"},
	{Name: "Wellington Management Group LLP", CIK: "1633917"},
	{Name: "T. Rowe Price Associates Inc", CIK: "1113169"},
	{Name: "Geode Capital Management LLC", CIK: "1235067"},
	{Name: "Northern Trust Corp", CIK: "73015"},
	{Name: "Bank of America Corp", CIK: "70858"},
	{Name: "Charles Schwab Corp", CIK: "316709"},
	{Name: "Invesco Ltd", CIK: "914208"},
	{Name: "Goldman Sachs Group Inc", CIK: "886982"},
	{Name: "Morgan Stanley", CIK: "895421"},
	{Name: "UBS Group AG", CIK: "1114446"},
	{Name: "Credit Suisse Group AG", CIK: "1053092"},
	{Name: "Citadel Advisors LLC", CIK: "1423053"},
	{Name: "Bridgewater Associates LP", CIK: "1350694"},
}

// MajorInvestors returns a copy of the built-in institutional investor
// catalog.
func MajorInvestors() []models.InvestorRef {
	out := make([]models.InvestorRef, len(majorInvestors))
	copy(out, majorInvestors)
	return out
}

// Package classify tags SEC filers as institutional investors using
// lexical heuristics over the filer name. It is a cheap substring and
// regex screen, not a named-entity classifier: false negatives (filers
// whose names avoid every keyword) and false positives ("Foundation"
// used non-institutionally) are accepted tradeoffs. No confidence score
// is produced, only a membership decision plus the matched evidence.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/seenimoa/edgarscan/pkg/models"
)

// DefaultKeywords are substrings that mark a filer name as institutional.
// Every matching keyword is recorded as an indicator.
var DefaultKeywords = []string{
	"fund", "capital", "management", "partners", "holdings", "investment",
	"advisors", "asset", "trust", "group", "llc", "lp", "corp", "inc",
	"pension", "endowment", "foundation", "insurance", "bank",
}

// DefaultPatterns are fallback regexes tried in order when no keyword
// matches; the first hit wins and is recorded as the sole indicator.
var DefaultPatterns = []string{
	`[a-z]+ capital`,
	`[a-z]+ fund`,
	`[a-z]+ management`,
	`[a-z]+ partners`,
	`[a-z]+ advisors`,
	`[a-z]+ asset`,
	`pension fund`,
	`investment company`,
	`mutual fund`,
	`hedge fund`,
	`private equity`,
}

// pattern is one compiled fallback rule with its indicator label.
type pattern struct {
	label string
	re    *regexp.Regexp
}

// Classifier decides whether a filer name represents an institutional
// investor. The rule lists are fixed at construction; classification is
// case-insensitive and idempotent.
type Classifier struct {
	keywords []string
	patterns []pattern
}

// NewDefault returns a classifier with the default rule lists.
func NewDefault() *Classifier {
	c, err := New(DefaultKeywords, DefaultPatterns)
	if err != nil {
		// Defaults are compile-checked by tests.
		panic(fmt.Sprintf("classify: bad default pattern: %v", err))
	}
	return c
}

// New builds a classifier from custom keyword and pattern lists,
// preserving their order.
func New(keywords, patterns []string) (*Classifier, error) {
	c := &Classifier{keywords: keywords}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("classify: pattern %q: %w", p, err)
		}
		c.patterns = append(c.patterns, pattern{label: p, re: re})
	}
	return c, nil
}

// Match reports whether name is institutional and returns the matched
// indicators: all matching keywords, or the first matching pattern.
func (c *Classifier) Match(name string) ([]string, bool) {
	lower := strings.ToLower(name)

	var indicators []string
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			indicators = append(indicators, kw)
		}
	}
	if len(indicators) > 0 {
		return indicators, true
	}

	for _, p := range c.patterns {
		if p.re.MatchString(lower) {
			return []string{p.label}, true
		}
	}
	return nil, false
}

// Filter returns only the filings whose company name matches, each tagged
// Institutional with its indicators. The classifier is a filter, not just
// a tagger: non-matching records are dropped from the result entirely.
// Already-classified records keep their existing tags when they match again.
func (c *Classifier) Filter(filings []models.Filing) []models.Filing {
	var institutional []models.Filing
	for _, f := range filings {
		indicators, ok := c.Match(f.CompanyName)
		if !ok {
			continue
		}
		f.FilerType = models.FilerInstitutional
		f.InstitutionalIndicators = indicators
		institutional = append(institutional, f)
	}
	return institutional
}

package stats

import (
	"regexp"
	"strconv"
	"strings"
)

// Category is one tracked prime stat line. Label drives value extraction
// ("Item Drop Rate"); Keyword is the shorter presence probe ("item drop")
// tolerant of OCR dropping parts of the line. An empty Keyword falls back to
// the label.
type Category struct {
	Label   string
	Keyword string
}

func (c Category) keyword() string {
	if c.Keyword != "" {
		return c.Keyword
	}
	return c.Label
}

// Key returns the category's session-log field name, e.g. "item_drop_rate".
func (c Category) Key() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c.Label)), " ", "_")
}

// PrimeStats is the keyword-mode stat mapping: per-category accumulated
// percentage totals and keyword presence flags, keyed by category label.
type PrimeStats struct {
	Totals  map[string]int
	Present map[string]bool
}

// PrimeLines returns the number of categories whose keyword was seen in the
// text, regardless of whether a well-formed numeric match accompanied it.
func (s PrimeStats) PrimeLines() int {
	n := 0
	for _, ok := range s.Present {
		if ok {
			n++
		}
	}
	return n
}

// PrimeParser scans OCR text for a configured set of prime stat categories
// and accumulates their percentage values.
type PrimeParser struct {
	categories []Category
	patterns   []*regexp.Regexp
}

// NewPrimeParser compiles one value pattern per category. Labels match
// case-insensitively; the pattern tolerates an optional colon and plus sign
// between label and integer.
func NewPrimeParser(categories []Category) *PrimeParser {
	p := &PrimeParser{categories: categories}
	for _, c := range categories {
		expr := `(?i)` + regexp.QuoteMeta(c.Label) + `\s*:?\s*\+?\s*(\d+)\s*%`
		p.patterns = append(p.patterns, regexp.MustCompile(expr))
	}
	return p
}

// Categories returns the tracked categories in parser order.
func (p *PrimeParser) Categories() []Category { return p.categories }

// Parse extracts the prime stat mapping from raw OCR text. Every
// non-overlapping well-formed occurrence of a category's label contributes
// to that category's total; absence yields zero and false, never an error.
func (p *PrimeParser) Parse(text string) PrimeStats {
	out := PrimeStats{
		Totals:  make(map[string]int, len(p.categories)),
		Present: make(map[string]bool, len(p.categories)),
	}
	lower := strings.ToLower(text)
	for i, c := range p.categories {
		out.Present[c.Label] = strings.Contains(lower, strings.ToLower(c.keyword()))
		total := 0
		for _, m := range p.patterns[i].FindAllStringSubmatch(text, -1) {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			total += v
		}
		out.Totals[c.Label] = total
	}
	return out
}

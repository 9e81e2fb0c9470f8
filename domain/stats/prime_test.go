package stats

import "testing"

const (
	dropLabel  = "Item Drop Rate"
	mesosLabel = "Mesos Obtained"
)

func defaultPrimeParser() *PrimeParser {
	return NewPrimeParser([]Category{
		{Label: dropLabel, Keyword: "item drop"},
		{Label: mesosLabel, Keyword: "mesos"},
	})
}

func TestPrimeParser_NoOccurrencesYieldsZeroAndFalse(t *testing.T) {
	p := defaultPrimeParser()
	got := p.Parse("STR +4\nDEF +60\nsome garbled txt 12%")
	if got.Totals[dropLabel] != 0 || got.Totals[mesosLabel] != 0 {
		t.Fatalf("expected zero totals, got %v", got.Totals)
	}
	if got.Present[dropLabel] || got.Present[mesosLabel] {
		t.Fatalf("expected no keywords present, got %v", got.Present)
	}
	if got.PrimeLines() != 0 {
		t.Fatalf("expected 0 prime lines, got %d", got.PrimeLines())
	}
}

func TestPrimeParser_SumsAllMatches(t *testing.T) {
	p := defaultPrimeParser()
	text := "Item Drop Rate: +12%\nAll Stats: +5%\nitem drop rate +8%\nMesos Obtained: +20%"
	got := p.Parse(text)
	if got.Totals[dropLabel] != 20 {
		t.Fatalf("expected drop total 20, got %d", got.Totals[dropLabel])
	}
	if got.Totals[mesosLabel] != 20 {
		t.Fatalf("expected mesos total 20, got %d", got.Totals[mesosLabel])
	}
	if got.PrimeLines() != 2 {
		t.Fatalf("expected 2 prime lines, got %d", got.PrimeLines())
	}
}

func TestPrimeParser_ValueVariants(t *testing.T) {
	p := defaultPrimeParser()
	cases := []struct {
		name string
		text string
		want int
	}{
		{"colon and plus", "Item Drop Rate: +12%", 12},
		{"no colon", "Item Drop Rate +7%", 7},
		{"no plus", "item drop rate: 9%", 9},
		{"spaced out", "ITEM DROP RATE : + 15 %", 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Parse(tc.text)
			if got.Totals[dropLabel] != tc.want {
				t.Fatalf("total = %d, want %d", got.Totals[dropLabel], tc.want)
			}
		})
	}
}

func TestPrimeParser_KeywordPresentWithoutWellFormedValue(t *testing.T) {
	p := defaultPrimeParser()
	// OCR mangled the number but the keyword substring survived.
	got := p.Parse("Item Drop Rare: +l2o/o")
	if got.Totals[dropLabel] != 0 {
		t.Fatalf("expected total 0, got %d", got.Totals[dropLabel])
	}
	if !got.Present[dropLabel] {
		t.Fatalf("expected keyword presence despite garbled value")
	}
	if got.PrimeLines() != 1 {
		t.Fatalf("expected 1 prime line, got %d", got.PrimeLines())
	}
}

func TestPrimeParser_InterleavedNoise(t *testing.T) {
	p := defaultPrimeParser()
	text := "junk line\nItem Drop Rate: +10%\n;;%%@@\nItem Drop Rate: +5%\nmore junk 3%\nItem Drop Rate: +1%"
	got := p.Parse(text)
	if got.Totals[dropLabel] != 16 {
		t.Fatalf("expected sum 16 regardless of interleaving, got %d", got.Totals[dropLabel])
	}
}

func TestPrimeParser_ConfigurableCategories(t *testing.T) {
	p := NewPrimeParser([]Category{
		{Label: "Boss Damage"},
		{Label: "Ignore Defense"},
		{Label: "ATT"},
	})
	got := p.Parse("Boss Damage: +10%\nIgnore Defense: +15%")
	if got.PrimeLines() != 2 {
		t.Fatalf("expected 2 of 3 categories present, got %d", got.PrimeLines())
	}
	if got.Totals["Boss Damage"] != 10 || got.Totals["Ignore Defense"] != 15 {
		t.Fatalf("unexpected totals %v", got.Totals)
	}
}

func TestCategory_Key(t *testing.T) {
	c := Category{Label: "Item Drop Rate"}
	if got := c.Key(); got != "item_drop_rate" {
		t.Fatalf("Key() = %q", got)
	}
}

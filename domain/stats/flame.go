package stats

import (
	"regexp"
	"strconv"
	"strings"
)

// FlameStats is the comparative-mode stat mapping. All fields default to
// zero when the corresponding line is absent from the text.
type FlameStats struct {
	Main        int
	Secondary   int
	WeaponPower int
	MagicPower  int
	AllStatsPct int
}

// Accepted spellings for the power lines; OCR frequently truncates "ATTACK".
var (
	weaponLabels = []string{"WEAPON ATTACK", "WEAPON ATT"}
	magicLabels  = []string{"MAGIC ATTACK", "MAGIC ATT"}
)

const allStatsLabel = "All Stats"

// plusGap collapses whitespace around a plus sign so "STR  +  12" and
// "STR+12" parse identically.
var plusGap = regexp.MustCompile(`\s*\+\s*`)

// FlameParser extracts the configured main/secondary attributes plus the
// weapon power, magic power and All Stats lines from flame OCR text.
type FlameParser struct {
	main      string
	secondary string
}

// NewFlameParser returns a parser tracking the given attribute names
// (e.g. "DEX", "STR"). Names are matched as-is; game stat lines are
// uppercase tokens.
func NewFlameParser(main, secondary string) *FlameParser {
	return &FlameParser{main: main, secondary: secondary}
}

// Parse processes text line by line. A line contributes to a field when it
// contains that field's label and carries a parsable integer after its first
// plus sign; otherwise the field keeps its current value. Later lines
// overwrite earlier ones for the same field.
func (p *FlameParser) Parse(text string) FlameStats {
	var out FlameStats
	for _, line := range strings.Split(text, "\n") {
		line = plusGap.ReplaceAllString(line, "+")
		if strings.Contains(line, p.main) {
			if v, ok := plusValue(line, false); ok {
				out.Main = v
			}
		}
		if strings.Contains(line, p.secondary) {
			if v, ok := plusValue(line, false); ok {
				out.Secondary = v
			}
		}
		if containsAny(line, weaponLabels) {
			if v, ok := plusValue(line, false); ok {
				out.WeaponPower = v
			}
		}
		if containsAny(line, magicLabels) {
			if v, ok := plusValue(line, false); ok {
				out.MagicPower = v
			}
		}
		if strings.Contains(line, allStatsLabel) {
			if v, ok := plusValue(line, true); ok {
				out.AllStatsPct = v
			}
		}
	}
	return out
}

// plusValue parses the integer between the first plus sign and the next plus
// sign (or end of line). percent additionally strips a trailing % sign.
func plusValue(line string, percent bool) (int, bool) {
	parts := strings.Split(line, "+")
	if len(parts) < 2 {
		return 0, false
	}
	s := strings.TrimSpace(parts[1])
	if percent {
		s = strings.TrimSuffix(s, "%")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func containsAny(line string, labels []string) bool {
	for _, l := range labels {
		if strings.Contains(line, l) {
			return true
		}
	}
	return false
}

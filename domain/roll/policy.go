package roll

import (
	"fmt"
	"strconv"
	"time"

	"github.com/soocke/flame-bot-go/domain/stats"
	"github.com/soocke/flame-bot-go/domain/window"
	"github.com/soocke/flame-bot-go/session"
)

// PrimePolicy scans a single region for prime stat keyword lines and stops
// once enough tracked categories are present.
type PrimePolicy struct {
	Sampler   Sampler
	Parser    *stats.PrimeParser
	Threshold int
}

func (p *PrimePolicy) Name() string { return "prime" }

// Evaluate captures one sample and counts present categories against the
// threshold.
func (p *PrimePolicy) Evaluate(b window.Bounds) (Cycle, error) {
	text, err := p.Sampler.Sample(b)
	if err != nil {
		return Cycle{}, err
	}
	parsed := p.Parser.Parse(text)
	cats := p.Parser.Categories()
	fields := make([]session.Field, 0, len(cats)+1)
	for _, c := range cats {
		fields = append(fields, session.Field{
			Key:   c.Key(),
			Value: strconv.Itoa(parsed.Totals[c.Label]),
		})
	}
	fields = append(fields, session.Field{Key: "prime_line_count", Value: strconv.Itoa(parsed.PrimeLines())})
	return Cycle{
		RawText:   text,
		Reached:   parsed.PrimeLines() >= p.Threshold,
		Fields:    fields,
		SampledAt: time.Now(),
	}, nil
}

// FlamePolicy captures the before and after stat boxes in one iteration and
// accepts the roll when the after score does not decrease. Ties count as
// success, not retry.
type FlamePolicy struct {
	Before   Sampler
	After    Sampler
	Parser   *stats.FlameParser
	UseMagic bool
}

func (p *FlamePolicy) Name() string { return "flame" }

// Evaluate samples both boxes, scores each, and compares.
func (p *FlamePolicy) Evaluate(b window.Bounds) (Cycle, error) {
	beforeText, err := p.Before.Sample(b)
	if err != nil {
		return Cycle{}, fmt.Errorf("before box: %w", err)
	}
	afterText, err := p.After.Sample(b)
	if err != nil {
		return Cycle{}, fmt.Errorf("after box: %w", err)
	}
	before := p.Parser.Parse(beforeText)
	after := p.Parser.Parse(afterText)
	beforeScore := stats.FlameScore(before, p.UseMagic)
	afterScore := stats.FlameScore(after, p.UseMagic)

	fields := []session.Field{
		{Key: "main", Value: beforeAfter(before.Main, after.Main)},
		{Key: "secondary", Value: beforeAfter(before.Secondary, after.Secondary)},
		{Key: "weapon_power", Value: beforeAfter(before.WeaponPower, after.WeaponPower)},
		{Key: "magic_power", Value: beforeAfter(before.MagicPower, after.MagicPower)},
		{Key: "all_stats_pct", Value: beforeAfter(before.AllStatsPct, after.AllStatsPct)},
		{Key: "before_score", Value: strconv.FormatFloat(beforeScore, 'f', 3, 64)},
		{Key: "after_score", Value: strconv.FormatFloat(afterScore, 'f', 3, 64)},
	}
	return Cycle{
		// Both texts feed stuck detection: a frozen pair of boxes means a
		// frozen game, same as a frozen single region.
		RawText:   beforeText + "\n" + afterText,
		Reached:   afterScore >= beforeScore,
		Fields:    fields,
		SampledAt: time.Now(),
	}, nil
}

func beforeAfter(before, after int) string {
	return fmt.Sprintf("%d -> %d", before, after)
}

var (
	_ Policy = (*PrimePolicy)(nil)
	_ Policy = (*FlamePolicy)(nil)
)

package roll

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/soocke/flame-bot-go/domain/stats"
	"github.com/soocke/flame-bot-go/domain/window"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// scriptedSampler returns its texts in order, then repeats the last one.
type scriptedSampler struct {
	texts []string
	calls int
}

func (s *scriptedSampler) Sample(window.Bounds) (string, error) {
	i := s.calls
	s.calls++
	if i >= len(s.texts) {
		i = len(s.texts) - 1
	}
	return s.texts[i], nil
}

type fakeLocator struct {
	bounds window.Bounds
	err    error
	calls  int
}

func (f *fakeLocator) Locate() (window.Bounds, error) {
	f.calls++
	return f.bounds, f.err
}

type fakeRetry struct {
	calls int
	ok    bool
}

func (f *fakeRetry) Invoke(window.Bounds) bool {
	f.calls++
	return f.ok
}

func primeCategories() []stats.Category {
	return []stats.Category{
		{Label: "Item Drop Rate", Keyword: "item drop"},
		{Label: "Mesos Obtained", Keyword: "mesos"},
	}
}

// newTestLoop wires a loop with instant sleeps and no session log.
func newTestLoop(policy Policy, locator window.Locator, retry RetryAction, stop StopSignal, opts Options) *Loop {
	l := New(discardLogger, policy, locator, retry, stop, nil, opts)
	l.sleep = func(time.Duration) {}
	return l
}

func TestLoop_StuckAfterThreeIdenticalSamples(t *testing.T) {
	sampler := &scriptedSampler{texts: []string{"frozen", "frozen", "frozen", "different"}}
	policy := &PrimePolicy{Sampler: sampler, Parser: stats.NewPrimeParser(primeCategories()), Threshold: 1}
	retry := &fakeRetry{ok: true}
	loop := newTestLoop(policy, &fakeLocator{}, retry, nil, Options{})

	if got := loop.Run(); got != OutcomeStuck {
		t.Fatalf("outcome = %v, want stuck", got)
	}
	if sampler.calls != 3 {
		t.Fatalf("expected exactly 3 sampling steps, got %d", sampler.calls)
	}
	if retry.calls != 2 {
		t.Fatalf("expected 2 retries before the stuck stop, got %d", retry.calls)
	}
	if loop.Current() != StateStuck {
		t.Fatalf("terminal state = %v, want stuck", loop.Current())
	}
}

func TestLoop_PrimeSucceedsOnSecondSample(t *testing.T) {
	sampler := &scriptedSampler{texts: []string{
		"DEX +9\nLUK +9",
		"Item Drop Rate: +25%\nLUK +9",
	}}
	policy := &PrimePolicy{Sampler: sampler, Parser: stats.NewPrimeParser(primeCategories()), Threshold: 1}
	retry := &fakeRetry{ok: true}
	loop := newTestLoop(policy, &fakeLocator{}, retry, nil, Options{})

	if got := loop.Run(); got != OutcomeSuccess {
		t.Fatalf("outcome = %v, want success", got)
	}
	if retry.calls != 1 {
		t.Fatalf("expected 1 retry after the empty first sample, got %d", retry.calls)
	}
	found := false
	for _, f := range loop.LastCycle().Fields {
		if f.Key == "item_drop_rate" {
			found = true
			if f.Value != "25" {
				t.Fatalf("recorded total = %s, want 25", f.Value)
			}
		}
	}
	if !found {
		t.Fatalf("item_drop_rate field missing from cycle: %+v", loop.LastCycle().Fields)
	}
}

func TestLoop_PrimeMaxThresholdNeedsBothCategories(t *testing.T) {
	sampler := &scriptedSampler{texts: []string{
		"Item Drop Rate: +20%",
		"Item Drop Rate: +20%\nMesos Obtained: +20%",
	}}
	policy := &PrimePolicy{Sampler: sampler, Parser: stats.NewPrimeParser(primeCategories()), Threshold: 2}
	loop := newTestLoop(policy, &fakeLocator{}, &fakeRetry{ok: true}, nil, Options{})

	if got := loop.Run(); got != OutcomeSuccess {
		t.Fatalf("outcome = %v, want success", got)
	}
	if sampler.calls != 2 {
		t.Fatalf("expected first sample rejected under max threshold, calls = %d", sampler.calls)
	}
}

func TestLoop_FlameAcceptsTie(t *testing.T) {
	// Identical boxes produce equal scores; a tie is success, not retry.
	text := "DEX +30\nWEAPON ATT +5"
	policy := &FlamePolicy{
		Before: &scriptedSampler{texts: []string{text}},
		After:  &scriptedSampler{texts: []string{text}},
		Parser: stats.NewFlameParser("DEX", "STR"),
	}
	retry := &fakeRetry{ok: true}
	loop := newTestLoop(policy, &fakeLocator{}, retry, nil, Options{})

	if got := loop.Run(); got != OutcomeSuccess {
		t.Fatalf("outcome = %v, want success on tie", got)
	}
	if retry.calls != 0 {
		t.Fatalf("tie must not trigger a retry, got %d", retry.calls)
	}
}

func TestLoop_FlameRetriesOnWorseThenAcceptsBetter(t *testing.T) {
	before := &scriptedSampler{texts: []string{"DEX +30", "DEX +30"}}
	after := &scriptedSampler{texts: []string{"DEX +10", "DEX +42"}}
	policy := &FlamePolicy{Before: before, After: after, Parser: stats.NewFlameParser("DEX", "STR")}
	retry := &fakeRetry{ok: true}
	loop := newTestLoop(policy, &fakeLocator{}, retry, nil, Options{})

	if got := loop.Run(); got != OutcomeSuccess {
		t.Fatalf("outcome = %v, want success", got)
	}
	if retry.calls != 1 {
		t.Fatalf("expected exactly 1 retry, got %d", retry.calls)
	}
	if loop.Attempts() != 2 {
		t.Fatalf("expected 2 sampling cycles, got %d", loop.Attempts())
	}
}

func TestLoop_CancelledAtEntry(t *testing.T) {
	policy := &PrimePolicy{Sampler: &scriptedSampler{texts: []string{"x"}}, Parser: stats.NewPrimeParser(primeCategories()), Threshold: 1}
	loop := newTestLoop(policy, &fakeLocator{}, &fakeRetry{ok: true}, StopFunc(func() bool { return true }), Options{})

	if got := loop.Run(); got != OutcomeCancelled {
		t.Fatalf("outcome = %v, want cancelled", got)
	}
	if loop.Attempts() != 0 {
		t.Fatalf("no sampling should happen after cancellation, got %d", loop.Attempts())
	}
}

func TestLoop_CancelledDuringDelaySlice(t *testing.T) {
	policy := &PrimePolicy{Sampler: &scriptedSampler{texts: []string{"nothing here"}}, Parser: stats.NewPrimeParser(primeCategories()), Threshold: 1}
	polls := 0
	stop := StopFunc(func() bool {
		polls++
		return polls > 2 // observed partway through the sliced delay
	})
	sleeps := 0
	loop := New(discardLogger, policy, &fakeLocator{}, &fakeRetry{ok: true}, stop, nil, Options{Delay: 400 * time.Millisecond, Slices: 4})
	loop.sleep = func(d time.Duration) {
		sleeps++
		if want := 100 * time.Millisecond; d != want {
			t.Fatalf("slice = %v, want %v", d, want)
		}
	}

	if got := loop.Run(); got != OutcomeCancelled {
		t.Fatalf("outcome = %v, want cancelled", got)
	}
	if sleeps >= 4 {
		t.Fatalf("cancellation not observed within the sliced delay (slept %d times)", sleeps)
	}
}

func TestLoop_CaptureFailuresHitCap(t *testing.T) {
	locator := &fakeLocator{err: window.ErrNotFound}
	policy := &PrimePolicy{Sampler: &scriptedSampler{texts: []string{"x"}}, Parser: stats.NewPrimeParser(primeCategories()), Threshold: 1}
	retry := &fakeRetry{ok: false}
	loop := newTestLoop(policy, locator, retry, nil, Options{MaxFailures: 3})

	if got := loop.Run(); got != OutcomeStuck {
		t.Fatalf("outcome = %v, want stuck after repeated failures", got)
	}
	if locator.calls != 3 {
		t.Fatalf("expected 3 locate attempts, got %d", locator.calls)
	}
	if loop.Attempts() != 0 {
		t.Fatalf("failed iterations must not count as samples, got %d", loop.Attempts())
	}
}

func TestLoop_FailureCountResetsOnGoodSample(t *testing.T) {
	// Two failures, one good sample, two more failures: the cap of 3 must not
	// trip because the streak was broken.
	extractErr := errors.New("ocr backend unavailable")
	calls := 0
	sampler := SamplerFunc(func(window.Bounds) (string, error) {
		calls++
		if calls == 3 {
			return "text " + string(rune('0'+calls)), nil
		}
		if calls <= 5 {
			return "", extractErr
		}
		return "Item Drop Rate: +10%", nil
	})
	policy := &PrimePolicy{Sampler: sampler, Parser: stats.NewPrimeParser(primeCategories()), Threshold: 1}
	loop := newTestLoop(policy, &fakeLocator{}, &fakeRetry{ok: true}, nil, Options{MaxFailures: 3})

	if got := loop.Run(); got != OutcomeSuccess {
		t.Fatalf("outcome = %v, want success", got)
	}
	if calls != 6 {
		t.Fatalf("expected 6 sampler calls, got %d", calls)
	}
}

func TestLoop_StateTransitionsObserved(t *testing.T) {
	sampler := &scriptedSampler{texts: []string{"Item Drop Rate: +1%"}}
	policy := &PrimePolicy{Sampler: sampler, Parser: stats.NewPrimeParser(primeCategories()), Threshold: 1}
	loop := newTestLoop(policy, &fakeLocator{}, &fakeRetry{ok: true}, nil, Options{})

	var seq []State
	loop.AddListener(func(prev, next State) { seq = append(seq, next) })
	if got := loop.Run(); got != OutcomeSuccess {
		t.Fatalf("outcome = %v, want success", got)
	}
	want := []State{StateSampling, StateEvaluating, StateSucceeded}
	if len(seq) != len(want) {
		t.Fatalf("transitions = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", seq, want)
		}
	}
}

package roll

import (
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/flame-bot-go/domain/window"
	"github.com/soocke/flame-bot-go/session"
)

// Options tune loop timing and failure handling.
type Options struct {
	// Delay between a retry action and the next sample.
	Delay time.Duration
	// Slices divides Delay so the stop signal is observed with latency
	// bounded by Delay/Slices.
	Slices int
	// MaxFailures is the number of consecutive capture/extraction failures
	// tolerated before the run is declared stuck. Zero disables the cap.
	MaxFailures int
	// HistorySize bounds the stuck-detection window (default 3).
	HistorySize int
}

// Loop is the decision orchestrator. It runs synchronously on the calling
// goroutine: exactly one capture/extract/decide cycle at a time, suspending
// only for the sliced inter-attempt delay.
type Loop struct {
	logger  *slog.Logger
	policy  Policy
	locator window.Locator
	retry   RetryAction
	stop    StopSignal
	log     *session.Log

	history   *History
	delay     time.Duration
	slices    int
	maxFails  int
	listeners []StateListener
	sleep     func(time.Duration) // overridable in tests

	state    State
	attempts int
	failures int
	last     Cycle
}

// New constructs a loop in StateIdle.
func New(logger *slog.Logger, policy Policy, locator window.Locator, retry RetryAction, stop StopSignal, sessionLog *session.Log, opts Options) *Loop {
	if opts.Slices <= 0 {
		opts.Slices = 4
	}
	if opts.Delay <= 0 {
		opts.Delay = time.Second
	}
	return &Loop{
		logger:   logger,
		policy:   policy,
		locator:  locator,
		retry:    retry,
		stop:     stop,
		log:      sessionLog,
		history:  NewHistory(opts.HistorySize),
		delay:    opts.Delay,
		slices:   opts.Slices,
		maxFails: opts.MaxFailures,
		sleep:    time.Sleep,
		state:    StateIdle,
	}
}

// AddListener registers a listener for state transitions.
func (l *Loop) AddListener(fn StateListener) { l.listeners = append(l.listeners, fn) }

// Current returns the current state.
func (l *Loop) Current() State { return l.state }

// Attempts returns the number of completed sampling cycles.
func (l *Loop) Attempts() int { return l.attempts }

// LastCycle returns the most recent successfully produced cycle.
func (l *Loop) LastCycle() Cycle { return l.last }

// Run drives the loop to a terminal state and returns the outcome. Sampling
// failures are caught at this boundary: the iteration is skipped and the loop
// proceeds, unless the consecutive-failure cap forces a stuck outcome.
func (l *Loop) Run() Outcome {
	for {
		if l.cancelled() {
			return l.finish(StateCancelled, OutcomeCancelled)
		}
		l.transition(StateSampling)

		bounds, err := l.locator.Locate()
		var cyc Cycle
		if err == nil {
			cyc, err = l.policy.Evaluate(bounds)
		}
		if err != nil {
			l.failures++
			if l.logger != nil {
				l.logger.Warn("sampling failed", "policy", l.policy.Name(), "error", err, "consecutive", l.failures)
			}
			if l.maxFails > 0 && l.failures >= l.maxFails {
				if l.logger != nil {
					l.logger.Error("sampling failed repeatedly, giving up", "failures", l.failures)
				}
				return l.finish(StateStuck, OutcomeStuck)
			}
		} else {
			l.failures = 0
			l.attempts++
			l.last = cyc
			if strings.TrimSpace(cyc.RawText) == "" && l.logger != nil {
				l.logger.Warn("extraction produced no text", "attempt", l.attempts)
			}
			if l.log != nil {
				if lerr := l.log.Scan(cyc.RawText, cyc.Fields); lerr != nil && l.logger != nil {
					l.logger.Warn("session log write failed", "error", lerr)
				}
			}

			l.transition(StateEvaluating)
			// Stuck check precedes the goal check: identical text three times
			// is a structural failure even when it happens to contain a goal.
			l.history.Push(cyc.RawText)
			if l.history.Stuck() {
				return l.finish(StateStuck, OutcomeStuck)
			}
			if cyc.Reached {
				return l.finish(StateSucceeded, OutcomeSuccess)
			}
		}

		l.transition(StateRetrying)
		if l.retry != nil {
			if !l.retry.Invoke(bounds) && l.logger != nil {
				l.logger.Warn("retry action did not complete", "attempt", l.attempts)
			}
		}
		if l.waitInterrupted() {
			return l.finish(StateCancelled, OutcomeCancelled)
		}
	}
}

// waitInterrupted sleeps the inter-attempt delay in slices, polling the stop
// signal before each slice. Returns true when cancellation was observed.
func (l *Loop) waitInterrupted() bool {
	slice := l.delay / time.Duration(l.slices)
	for i := 0; i < l.slices; i++ {
		if l.cancelled() {
			return true
		}
		l.sleep(slice)
	}
	return false
}

func (l *Loop) cancelled() bool { return l.stop != nil && l.stop.Requested() }

func (l *Loop) finish(terminal State, outcome Outcome) Outcome {
	l.transition(terminal)
	if l.logger != nil {
		l.logger.Info("loop finished", "outcome", outcome.String(), "attempts", l.attempts)
	}
	return outcome
}

func (l *Loop) transition(next State) {
	prev := l.state
	if prev == next {
		return
	}
	l.state = next
	if l.logger != nil {
		l.logger.Debug("loop state transition", "from", prev.String(), "to", next.String())
	}
	for _, fn := range l.listeners {
		fn(prev, next)
	}
}

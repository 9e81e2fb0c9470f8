// Package roll implements the sample-extract-score-decide loop that drives
// rerolling: capture a stat region, parse it, evaluate the goal, and either
// stop or trigger the in-game reroll action and sample again.
package roll

import (
	"time"

	"github.com/soocke/flame-bot-go/domain/window"
	"github.com/soocke/flame-bot-go/session"
)

// State enumerates the finite states of the reroll cycle.
type State int

const (
	StateIdle State = iota
	StateSampling
	StateEvaluating
	StateRetrying
	StateSucceeded
	StateStuck
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSampling:
		return "sampling"
	case StateEvaluating:
		return "evaluating"
	case StateRetrying:
		return "retrying"
	case StateSucceeded:
		return "succeeded"
	case StateStuck:
		return "stuck"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a loop run.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeStuck
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeStuck:
		return "stuck"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// StateListener is invoked on every successful state transition.
type StateListener func(prev, next State)

// StopSignal is a level-triggered external stop condition (hotkey). The loop
// polls it; nothing is pushed.
type StopSignal interface {
	Requested() bool
}

// StopFunc adapts a plain poll function to StopSignal.
type StopFunc func() bool

func (f StopFunc) Requested() bool { return f() }

// RetryAction asks the target application to regenerate its displayed stats.
// It reports whether the input sequence completed without an I/O failure.
type RetryAction interface {
	Invoke(b window.Bounds) bool
}

// Sampler produces raw OCR text for one labelled region of the window.
type Sampler interface {
	Sample(b window.Bounds) (string, error)
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(b window.Bounds) (string, error)

func (f SamplerFunc) Sample(b window.Bounds) (string, error) { return f(b) }

// Cycle is one sampling cycle's result: the raw text observed, whether the
// goal was reached, and the derived fields for the session log. Immutable
// once produced.
type Cycle struct {
	RawText   string
	Reached   bool
	Fields    []session.Field
	SampledAt time.Time
}

// Policy is the stat extraction strategy: one capture+extract+parse+goal
// evaluation per call. Two variants exist (prime and flame), selected by
// configuration before the loop starts.
type Policy interface {
	Name() string
	Evaluate(b window.Bounds) (Cycle, error)
}

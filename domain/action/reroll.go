package action

import (
	"log/slog"
	"time"

	"github.com/soocke/flame-bot-go/domain/window"
)

// Callbacks externalize OS input so the reroll sequence is testable without
// a real input-injection capability.
type Callbacks struct {
	MoveCursor func(x, y int)
	ClickLeft  func()
	PressEnter func()
}

// OSCallbacks returns callbacks wired to the platform input functions.
func OSCallbacks() Callbacks {
	return Callbacks{MoveCursor: MoveCursor, ClickLeft: ClickLeft, PressEnter: PressEnter}
}

// Reroller performs the in-game reroll sequence: re-focus the target window,
// click the reroll button, confirm twice with Enter. Sub-step delays are
// fixed; there is no cancellation granularity inside a single invocation.
type Reroller struct {
	Locator window.Locator
	Calls   Callbacks
	ClickX  int // click offset from window left
	ClickY  int // click offset from window top
	Logger  *slog.Logger

	sleep func(time.Duration) // overridable in tests
}

// NewReroller constructs a reroller clicking at the given window-relative
// offset.
func NewReroller(loc window.Locator, calls Callbacks, clickX, clickY int, logger *slog.Logger) *Reroller {
	return &Reroller{Locator: loc, Calls: calls, ClickX: clickX, ClickY: clickY, Logger: logger, sleep: time.Sleep}
}

// Invoke runs one reroll sequence against the window at bounds. It reports
// whether the sequence completed without an I/O failure surfacing.
func (r *Reroller) Invoke(b window.Bounds) bool {
	// Re-locate to force focus back onto the game; bounds may have moved.
	if r.Locator != nil {
		fresh, err := r.Locator.Locate()
		if err != nil {
			if r.Logger != nil {
				r.Logger.Warn("reroll: window re-focus failed", "error", err)
			}
			return false
		}
		b = fresh
	}

	x := b.Left + r.ClickX
	y := b.Top + r.ClickY
	if r.Calls.MoveCursor != nil {
		r.Calls.MoveCursor(x, y)
	}
	r.sleep(50 * time.Millisecond)
	if r.Calls.ClickLeft != nil {
		r.Calls.ClickLeft()
	}
	r.sleep(50 * time.Millisecond)
	if r.Calls.PressEnter != nil {
		r.Calls.PressEnter()
		r.sleep(50 * time.Millisecond)
		r.Calls.PressEnter()
	}
	// Let the click register before the next capture.
	r.sleep(500 * time.Millisecond)
	if r.Logger != nil {
		r.Logger.Debug("reroll executed", "x", x, "y", y)
	}
	return true
}

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/soocke/flame-bot-go/config"
	appdebug "github.com/soocke/flame-bot-go/debug"
	"github.com/soocke/flame-bot-go/domain/roll"
	"github.com/soocke/flame-bot-go/domain/window"
)

// Run executes one full session for the given mode. No panic escapes: a
// panic inside the loop is logged with its stack, recorded in the session
// log, and converted into an error for a non-zero exit.
func Run(cfg *config.Config, logger *slog.Logger, mode Mode) (err error) {
	c, err := BuildContainer(cfg, logger, mode)
	if err != nil {
		return err
	}
	defer c.Close()

	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			logger.Error("run panicked", "error", r, "stack", stack)
			_ = c.Log.Terminal("aborted: internal error", fmt.Sprint(r))
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if cfg.Debug {
		appdebug.StartMemLogger(2*time.Second, logger)
		appdebug.StartGoroutineLogger(2*time.Second, logger)
	}

	fmt.Printf("Mode: %s\n", mode)
	fmt.Printf("Session log: %s\n", c.Log.Path())
	fmt.Println("Press Ctrl+Esc at any time to stop.")

	// Fail fast with a useful message when the game isn't up; once the loop
	// runs, a vanished window is a per-iteration failure, not fatal.
	if _, lerr := c.Locator.Locate(); lerr != nil {
		if errors.Is(lerr, window.ErrNotFound) {
			return fmt.Errorf("%q window not found; make sure the game is running and visible", cfg.WindowTitle)
		}
		return lerr
	}

	outcome := c.Loop.Run()
	last := c.Loop.LastCycle()

	switch outcome {
	case roll.OutcomeSuccess:
		fmt.Printf("\nGoal reached after %d attempt(s).\n", c.Loop.Attempts())
		if last.RawText != "" {
			fmt.Printf("\nDetected text:\n%s\n", last.RawText)
		}
		lines := []string{fmt.Sprintf("attempts: %d", c.Loop.Attempts())}
		for _, f := range last.Fields {
			lines = append(lines, fmt.Sprintf("%s: %s", f.Key, f.Value))
		}
		return c.Log.Terminal("success: desired stats found", lines...)
	case roll.OutcomeStuck:
		fmt.Println("\nOCR text unchanged across consecutive tries; the loop is not making progress.")
		fmt.Println("Check window focus and the capture region, then try again.")
		return c.Log.Terminal("stopped: no observable progress",
			fmt.Sprintf("attempts: %d", c.Loop.Attempts()),
			"last detected text:",
			last.RawText)
	case roll.OutcomeCancelled:
		fmt.Println("\nStop key detected. Exiting.")
		return c.Log.Terminal("cancelled by user", fmt.Sprintf("attempts: %d", c.Loop.Attempts()))
	default:
		return fmt.Errorf("unexpected loop outcome %v", outcome)
	}
}

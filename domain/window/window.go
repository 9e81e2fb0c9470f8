package window

import "errors"

// Bounds is a window rectangle in screen coordinates.
type Bounds struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

func (b Bounds) Width() int  { return b.Right - b.Left }
func (b Bounds) Height() int { return b.Bottom - b.Top }

// ErrNotFound is returned when no visible window matches the configured title.
var ErrNotFound = errors.New("window: target window not found")

// Locator finds and focuses the target application window.
type Locator interface {
	// Locate brings the target window to the foreground and returns its
	// bounds. Fails with ErrNotFound when the window is absent.
	Locate() (Bounds, error)
}

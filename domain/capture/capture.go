package capture

import (
	"fmt"
	"image"

	"github.com/soocke/flame-bot-go/domain/window"
)

// Region identifies a capture rectangle relative to the target window origin.
type Region struct {
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// Rect resolves the region against window bounds into screen coordinates.
func (r Region) Rect(b window.Bounds) (image.Rectangle, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return image.Rectangle{}, fmt.Errorf("capture: invalid region size w=%d h=%d", r.Width, r.Height)
	}
	x := b.Left + r.OffsetX
	y := b.Top + r.OffsetY
	return image.Rect(x, y, x+r.Width, y+r.Height), nil
}

// Grabber captures a window-relative region of the live screen.
type Grabber interface {
	Grab(b window.Bounds, r Region) (*image.RGBA, error)
}

// ScreenGrabber captures via the platform screen API (GDI on Windows).
type ScreenGrabber struct{}

func (ScreenGrabber) Grab(b window.Bounds, r Region) (*image.RGBA, error) {
	rect, err := r.Rect(b)
	if err != nil {
		return nil, err
	}
	return grabRect(rect)
}

var _ Grabber = ScreenGrabber{}

//go:build !windows

package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// grabRect captures the given screen rectangle via the portable screenshot
// backend (X11 on Linux).
func grabRect(r image.Rectangle) (*image.RGBA, error) {
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("capture: screen rect: %w", err)
	}
	r = r.Intersect(screen)
	if r.Empty() {
		return nil, fmt.Errorf("capture: region out of bounds screen=%v", screen)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return img, nil
}

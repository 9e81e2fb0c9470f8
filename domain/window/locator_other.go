//go:build !windows

package window

import "time"

// TitleLocator is only implemented on Windows; elsewhere Locate always
// reports the window as absent so the loop's failure handling applies.
type TitleLocator struct {
	Title       string
	SettleDelay time.Duration
}

func NewTitleLocator(title string) *TitleLocator {
	return &TitleLocator{Title: title, SettleDelay: 200 * time.Millisecond}
}

func (l *TitleLocator) Locate() (Bounds, error) { return Bounds{}, ErrNotFound }

var _ Locator = (*TitleLocator)(nil)

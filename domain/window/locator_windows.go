//go:build windows

package window

import (
	"strings"
	"syscall"
	"time"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

const swRestore = 9

// TitleLocator finds a visible top-level window whose title contains Title
// (case-insensitive), restores it and brings it to the foreground.
type TitleLocator struct {
	Title string
	// SettleDelay gives the window manager time to finish the foreground
	// switch before the caller captures. Defaults to 200ms.
	SettleDelay time.Duration
}

func NewTitleLocator(title string) *TitleLocator {
	return &TitleLocator{Title: title, SettleDelay: 200 * time.Millisecond}
}

// Locate implements Locator using EnumWindows + SetForegroundWindow.
func (l *TitleLocator) Locate() (Bounds, error) {
	user32 := windows.NewLazySystemDLL("user32.dll")
	enumWindows := user32.NewProc("EnumWindows")
	getWindowTextW := user32.NewProc("GetWindowTextW")
	isWindowVisible := user32.NewProc("IsWindowVisible")
	showWindow := user32.NewProc("ShowWindow")
	setForegroundWindow := user32.NewProc("SetForegroundWindow")
	getWindowRect := user32.NewProc("GetWindowRect")

	want := strings.ToLower(l.Title)
	var found uintptr
	cb := syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
		vis, _, _ := isWindowVisible.Call(hwnd)
		if vis == 0 {
			return 1 // continue
		}
		const maxChars = 256
		buf := make([]uint16, maxChars)
		r, _, _ := getWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if r == 0 {
			return 1
		}
		var end int
		for i, v := range buf {
			if v == 0 {
				end = i
				break
			}
		}
		if end == 0 {
			end = int(r)
		}
		title := strings.ToLower(strings.TrimSpace(string(utf16.Decode(buf[:end]))))
		if strings.Contains(title, want) {
			found = hwnd
			return 0 // stop enumeration
		}
		return 1
	})
	// EnumWindows returns 0 when the callback aborts enumeration; that is the
	// found case, not a failure.
	_, _, _ = enumWindows.Call(cb, 0)
	if found == 0 {
		return Bounds{}, ErrNotFound
	}

	_, _, _ = showWindow.Call(found, swRestore)
	_, _, _ = setForegroundWindow.Call(found)
	if l.SettleDelay > 0 {
		time.Sleep(l.SettleDelay)
	}

	var rect struct{ left, top, right, bottom int32 }
	ok, _, _ := getWindowRect.Call(found, uintptr(unsafe.Pointer(&rect)))
	if ok == 0 {
		return Bounds{}, ErrNotFound
	}
	return Bounds{
		Left:   int(rect.left),
		Top:    int(rect.top),
		Right:  int(rect.right),
		Bottom: int(rect.bottom),
	}, nil
}

var _ Locator = (*TitleLocator)(nil)

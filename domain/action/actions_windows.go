//go:build windows

package action

import (
	"time"

	"golang.org/x/sys/windows"
)

const (
	vkReturn  = 0x0D
	vkControl = 0x11
	vkEscape  = 0x1B
)

// ClickLeft sends a left mouse button click (down then up) at the current
// cursor position.
func ClickLeft() {
	user32 := windows.NewLazySystemDLL("user32.dll")
	mouseEvent := user32.NewProc("mouse_event")
	const MOUSEEVENTF_LEFTDOWN = 0x0002
	const MOUSEEVENTF_LEFTUP = 0x0004
	_, _, _ = mouseEvent.Call(MOUSEEVENTF_LEFTDOWN, 0, 0, 0, 0)
	time.Sleep(30 * time.Millisecond)
	_, _, _ = mouseEvent.Call(MOUSEEVENTF_LEFTUP, 0, 0, 0, 0)
}

// MoveCursor moves the OS mouse pointer to (x, y).
func MoveCursor(x, y int) {
	user32 := windows.NewLazySystemDLL("user32.dll")
	setCursorPos := user32.NewProc("SetCursorPos")
	_, _, _ = setCursorPos.Call(uintptr(x), uintptr(y))
}

// PressEnter sends an Enter key down/up pair via keybd_event.
func PressEnter() {
	user32 := windows.NewLazySystemDLL("user32.dll")
	keybdEvent := user32.NewProc("keybd_event")
	const KEYEVENTF_KEYUP = 0x0002
	_, _, _ = keybdEvent.Call(vkReturn, 0, 0, 0)
	// small sleep to emulate human press duration
	time.Sleep(40 * time.Millisecond)
	_, _, _ = keybdEvent.Call(vkReturn, 0, KEYEVENTF_KEYUP, 0)
}

// StopKeyPressed polls whether the Ctrl+Esc stop combination is currently
// held. Level-triggered; callers sample it, nothing is pushed.
func StopKeyPressed() bool {
	user32 := windows.NewLazySystemDLL("user32.dll")
	getAsyncKeyState := user32.NewProc("GetAsyncKeyState")
	ctrl, _, _ := getAsyncKeyState.Call(vkControl)
	esc, _, _ := getAsyncKeyState.Call(vkEscape)
	return ctrl&0x8000 != 0 && esc&0x8000 != 0
}

//go:build !windows

package action

// Input injection is only implemented on Windows. The stubs keep the package
// buildable elsewhere; the reroll sequence degrades to a no-op.

func ClickLeft() {}

func MoveCursor(x, y int) {}

func PressEnter() {}

func StopKeyPressed() bool { return false }

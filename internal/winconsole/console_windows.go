//go:build windows

// Package winconsole hides the process's console window, used when the
// entry point is started with --bg.
package winconsole

import (
	"golang.org/x/sys/windows"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")
	moduser32   = windows.NewLazySystemDLL("user32.dll")

	procGetConsoleWindow = modkernel32.NewProc("GetConsoleWindow")
	procShowWindow       = moduser32.NewProc("ShowWindow")
)

const swHide = 0

// Hide locates the current console window and hides it. It is a no-op when
// the process has no console (GetConsoleWindow returns a null handle, e.g.
// when already detached or run under a GUI subsystem).
func Hide() {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return
	}
	_, _, _ = procShowWindow.Call(hwnd, uintptr(swHide))
}

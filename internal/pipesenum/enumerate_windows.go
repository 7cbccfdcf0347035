//go:build windows

package pipesenum

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

// pipeDir is the special directory every named pipe on the local machine
// appears under.
const pipeDir = `\\.\pipe\*`

// Enumerate lists the names (not full paths) of active named pipes on the
// local machine by walking \\.\pipe\ with FindFirstFile/FindNextFile, the
// same mechanism Explorer and `net use` derive their pipe listings from.
func Enumerate() ([]string, error) {
	pattern, err := windows.UTF16PtrFromString(pipeDir)
	if err != nil {
		return nil, fmt.Errorf("pipesenum: encode pattern: %w", err)
	}

	var data windows.Win32finddata
	handle, err := windows.FindFirstFile(pattern, &data)
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND {
			return nil, nil
		}
		return nil, fmt.Errorf("pipesenum: FindFirstFile: %w", err)
	}
	defer windows.FindClose(handle)

	var names []string
	for {
		names = append(names, syscall.UTF16ToString(data.FileName[:]))

		if err := windows.FindNextFile(handle, &data); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, fmt.Errorf("pipesenum: FindNextFile: %w", err)
		}
	}

	return names, nil
}

//go:build windows

package util

import (
	"golang.org/x/sys/windows"
)

// OpenInViewer hands path to the shell's default handler for its extension.
func OpenInViewer(path string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL)
}

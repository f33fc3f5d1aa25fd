//go:build !windows

package util

import (
	"os/exec"
	"runtime"
)

// viewerCommand returns the command that opens path with the desktop's
// default application.
func viewerCommand(path string) *exec.Cmd {
	if runtime.GOOS == "darwin" {
		return exec.Command("open", path)
	}
	return exec.Command("xdg-open", path)
}

// OpenInViewer hands path to the desktop's default viewer without waiting
// for it to exit.
func OpenInViewer(path string) error {
	cmd := viewerCommand(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

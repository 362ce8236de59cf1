//go:build !windows

package log

import (
	"os"
	"path/filepath"
	"runtime"
)

// Logs go to ~/Library/Logs on macOS and the XDG state directory elsewhere.
func getDefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "dotdash"), nil
	}

	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "dotdash"), nil
}

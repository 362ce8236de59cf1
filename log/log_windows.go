//go:build windows

package log

import (
	"os"
	"path/filepath"
)

// UserCacheDir is %LocalAppData% on Windows.
func getDefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "dotdash", "logs"), nil
}

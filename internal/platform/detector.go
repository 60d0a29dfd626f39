// Package platform provides platform-specific default directories for renewd.
package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Paths contains the base directories renewd operates on.
type Paths struct {
	ConfigDir string // renewal configs, live symlinks, accounts
	WorkDir   string // version archive
	LogsDir   string // batch run logs
}

// DetectPaths returns platform-specific default directories.
func DetectPaths() (*Paths, error) {
	switch runtime.GOOS {
	case "darwin":
		return detectDarwinPaths()
	case "linux":
		return &Paths{
			ConfigDir: "/etc/renewd",
			WorkDir:   "/var/lib/renewd",
			LogsDir:   "/var/log/renewd",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectDarwinPaths detects directories for macOS (Homebrew installations).
func detectDarwinPaths() (*Paths, error) {
	// Apple Silicon Homebrew prefix first
	if pathExists("/opt/homebrew") {
		return &Paths{
			ConfigDir: "/opt/homebrew/etc/renewd",
			WorkDir:   "/opt/homebrew/var/lib/renewd",
			LogsDir:   "/opt/homebrew/var/log/renewd",
		}, nil
	}

	if pathExists("/usr/local") {
		return &Paths{
			ConfigDir: "/usr/local/etc/renewd",
			WorkDir:   "/usr/local/var/lib/renewd",
			LogsDir:   "/usr/local/var/log/renewd",
		}, nil
	}

	return nil, fmt.Errorf("homebrew installation not found (checked /opt/homebrew and /usr/local)")
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}

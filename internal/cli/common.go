package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ksyq12/renewd/internal/certutil"
	"github.com/ksyq12/renewd/internal/config"
	"github.com/ksyq12/renewd/internal/errors"
	"github.com/ksyq12/renewd/internal/lineage"
	"github.com/ksyq12/renewd/internal/output"
	"github.com/ksyq12/renewd/internal/renewer"
)

// loadConfig resolves the configuration directory (flag first, then
// platform defaults) and loads the application config from it.
func loadConfig() (*config.Config, error) {
	dir := configDir
	if dir == "" {
		paths, err := deps.PlatformDetector.DetectPaths()
		if err != nil {
			return nil, fmt.Errorf("failed to detect platform paths: %w", err)
		}
		dir = paths.ConfigDir
	}

	cfg, err := deps.ConfigLoader.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openLineage loads one named lineage store, or a not-found error.
func openLineage(cfg *config.Config, name string) (renewer.Store, error) {
	if err := validateLineageName(name); err != nil {
		return nil, err
	}
	return deps.StoreOpener.Open(cfg, name)
}

// validateLineageName rejects names that would escape the config
// directory.
func validateLineageName(name string) error {
	if name == "" {
		return fmt.Errorf("lineage name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("invalid lineage name: %s", name)
	}
	return nil
}

// errLineageMissing is the not-found error mocks and commands share.
func errLineageMissing(name string) error {
	return errors.NotFound(name)
}

// latestExpiry reads the expiry of a lineage's newest certificate.
// A zero time means it could not be determined.
func latestExpiry(store renewer.Store) string {
	latest := store.LatestVersion()
	if latest == 0 {
		return "-"
	}
	path, err := store.VersionPath(lineage.Cert, latest)
	if err != nil {
		return "-"
	}
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return "-"
	}
	expiry, err := certutil.NotAfter(pemBytes)
	if err != nil {
		return "-"
	}
	return expiry.Format("2006-01-02")
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success"`
	Lineage string `json:"lineage"`
	Action  string `json:"action,omitempty"`
	Version int    `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

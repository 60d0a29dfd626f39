package lineage

import (
	"os"
	"time"

	"github.com/ksyq12/renewd/internal/certutil"
	"github.com/ksyq12/renewd/internal/logger"
)

// ShouldAutorenew reports whether a renewal attempt is due: autorenewal
// is enabled for the lineage and the newest version's certificate
// expires inside the configured window. The newest version is the
// basis even when it has not been deployed yet.
func (l *Lineage) ShouldAutorenew() bool {
	if !l.conf.Enabled("renewer_enabled") || !l.conf.Enabled("autorenew") {
		return false
	}

	latest := l.LatestVersion()
	if latest == 0 {
		return false
	}

	path, err := l.VersionPath(Cert, latest)
	if err != nil {
		return false
	}
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("cannot read certificate for %s: %v", l.name, err)
		return false
	}
	expiry, err := certutil.NotAfter(pemBytes)
	if err != nil {
		logger.Warn("cannot parse certificate for %s: %v", l.name, err)
		return false
	}

	return expiry.Sub(l.now()) <= l.renewWindow()
}

// ShouldAutodeploy reports whether a version newer than the deployed
// one exists and autodeployment is enabled.
func (l *Lineage) ShouldAutodeploy() bool {
	if !l.conf.Enabled("renewer_enabled") || !l.conf.Enabled("autodeploy") {
		return false
	}

	latest := l.LatestVersion()
	return latest > 0 && latest > l.CurrentVersion(Cert)
}

// renewWindow parses renew_before_expiry, falling back to the default
// when unset or malformed.
func (l *Lineage) renewWindow() time.Duration {
	raw, ok := l.conf.Get("renew_before_expiry")
	if !ok {
		return defaultRenewWindow
	}
	window, err := time.ParseDuration(raw)
	if err != nil || window <= 0 {
		logger.Warn("invalid renew_before_expiry %q for %s, using default", raw, l.name)
		return defaultRenewWindow
	}
	return window
}

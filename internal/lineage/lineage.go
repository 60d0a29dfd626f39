package lineage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/ksyq12/renewd/internal/acme"
	"github.com/ksyq12/renewd/internal/config"
	"github.com/ksyq12/renewd/internal/errors"
	"github.com/ksyq12/renewd/internal/logger"
)

// Kind identifies one of the three artifacts a version owns.
type Kind string

// Artifact kinds.
const (
	Cert    Kind = "cert"
	Privkey Kind = "privkey"
	Chain   Kind = "chain"
)

// Kinds lists all artifact kinds in deployment order.
var Kinds = []Kind{Cert, Privkey, Chain}

// ConfSuffix is the renewal configuration file suffix.
const ConfSuffix = ".conf"

// defaultRenewWindow applies when renew_before_expiry is unset or
// unparseable.
const defaultRenewWindow = 720 * time.Hour

// Lineage is the versioned store for one certificate identity: the
// archive of numbered versions plus the live symlinks pointing at the
// deployed one.
type Lineage struct {
	name       string
	liveDir    string
	archiveDir string
	conf       config.Values

	// now is replaceable for policy tests
	now func() time.Time
}

var versionPattern = regexp.MustCompile(`^cert([0-9]+)\.pem$`)

// New constructs a Lineage from its merged renewal configuration.
// confPath names the per-lineage .conf file; its base name (without
// suffix) is the lineage name. Construction fails with a typed CONFIG
// error when a required artifact path is missing, which callers treat
// as a skip.
func New(confPath string, conf config.Values, workDir string) (*Lineage, error) {
	name := strings.TrimSuffix(filepath.Base(confPath), ConfSuffix)

	certPath, ok := conf.Get(string(Cert))
	if !ok {
		return nil, errors.WrapLineage(errors.ErrCodeConfig, name, "missing required field cert", nil)
	}
	for _, kind := range []Kind{Privkey, Chain} {
		if _, ok := conf.Get(string(kind)); !ok {
			return nil, errors.WrapLineage(errors.ErrCodeConfig, name,
				fmt.Sprintf("missing required field %s", kind), nil)
		}
	}

	return &Lineage{
		name:       name,
		liveDir:    filepath.Dir(certPath),
		archiveDir: filepath.Join(workDir, "archive", name),
		conf:       conf,
		now:        time.Now,
	}, nil
}

// Name returns the lineage name.
func (l *Lineage) Name() string {
	return l.name
}

// RenewalParams returns the text parameters recording how the original
// issuance was performed, or nil when the lineage is not renewable.
func (l *Lineage) RenewalParams() map[string]string {
	return l.conf.RenewalParams()
}

// LivePath returns the live symlink path for an artifact kind.
func (l *Lineage) LivePath(kind Kind) string {
	return filepath.Join(l.liveDir, string(kind)+".pem")
}

func (l *Lineage) archivePath(kind Kind, version int) string {
	return filepath.Join(l.archiveDir, fmt.Sprintf("%s%d.pem", kind, version))
}

// VersionPath returns a readable artifact path for kind at version.
// It fails when the version is absent from the archive.
func (l *Lineage) VersionPath(kind Kind, version int) (string, error) {
	path := l.archivePath(kind, version)
	if _, err := os.Stat(path); err != nil {
		return "", errors.WrapLineage(errors.ErrCodeNotFound, l.name,
			fmt.Sprintf("%s version %d not in archive", kind, version), err)
	}
	return path, nil
}

// LatestVersion returns the highest recorded version number, or 0 when
// the archive is empty.
func (l *Lineage) LatestVersion() int {
	entries, err := os.ReadDir(l.archiveDir)
	if err != nil {
		return 0
	}
	latest := 0
	for _, entry := range entries {
		m := versionPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > latest {
			latest = n
		}
	}
	return latest
}

// CurrentVersion returns the version the live pointer for kind
// references, or 0 when no pointer exists.
func (l *Lineage) CurrentVersion(kind Kind) int {
	target, err := os.Readlink(l.LivePath(kind))
	if err != nil {
		return 0
	}
	base := filepath.Base(target)
	numeric := strings.TrimSuffix(strings.TrimPrefix(base, string(kind)), ".pem")
	n, err := strconv.Atoi(numeric)
	if err != nil {
		return 0
	}
	return n
}

// SaveSuccessor persists newly issued material as the next version,
// anchored at base. The key result decides whether new key material is
// written or the base version's key is shared via a symlink. The
// archive is locked for the duration, so overlapping runs cannot both
// mutate one lineage.
func (l *Lineage) SaveSuccessor(base int, certPEM, chainPEM []byte, key acme.KeyResult) (int, error) {
	if err := os.MkdirAll(l.archiveDir, 0700); err != nil {
		return 0, errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to create archive", err)
	}

	lock := flock.New(filepath.Join(l.archiveDir, ".renewd.lock"))
	if err := lock.Lock(); err != nil {
		return 0, errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to lock archive", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to unlock archive for %s: %v", l.name, err)
		}
	}()

	if _, err := l.VersionPath(Cert, base); err != nil {
		return 0, err
	}

	next := l.LatestVersion() + 1

	if err := os.WriteFile(l.archivePath(Cert, next), certPEM, 0644); err != nil {
		return 0, errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to write certificate", err)
	}
	if err := os.WriteFile(l.archivePath(Chain, next), chainPEM, 0644); err != nil {
		return 0, errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to write chain", err)
	}

	if key.Rotated() {
		if err := os.WriteFile(l.archivePath(Privkey, next), key.PEM(), 0600); err != nil {
			return 0, errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to write private key", err)
		}
	} else {
		// Share the base version's key instead of copying it.
		target := fmt.Sprintf("%s%d.pem", Privkey, base)
		if err := os.Symlink(target, l.archivePath(Privkey, next)); err != nil {
			return 0, errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to link private key", err)
		}
	}

	logger.InfoFields("saved successor version", map[string]interface{}{
		"lineage": l.name,
		"base":    base,
		"version": next,
		"new_key": key.Rotated(),
	})
	return next, nil
}

// AdvanceCurrentTo atomically repoints all live artifacts to version.
// Each symlink is created aside and renamed into place, so a reader
// never observes a missing pointer.
func (l *Lineage) AdvanceCurrentTo(version int) error {
	// Verify every artifact first; a partial advance is worse than none.
	for _, kind := range Kinds {
		if _, err := l.VersionPath(kind, version); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(l.liveDir, 0755); err != nil {
		return errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to create live directory", err)
	}

	for _, kind := range Kinds {
		target := l.archivePath(kind, version)
		if rel, err := filepath.Rel(l.liveDir, target); err == nil {
			target = rel
		}

		tmp := l.LivePath(kind) + ".new"
		if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
			return errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to clear staging link", err)
		}
		if err := os.Symlink(target, tmp); err != nil {
			return errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to stage live link", err)
		}
		if err := os.Rename(tmp, l.LivePath(kind)); err != nil {
			return errors.WrapLineage(errors.ErrCodeStore, l.name, "failed to advance live link", err)
		}
	}

	logger.InfoFields("advanced live pointers", map[string]interface{}{
		"lineage": l.name,
		"version": version,
	})
	return nil
}

package renewer

import (
	"os"

	"github.com/ksyq12/renewd/internal/acme"
	"github.com/ksyq12/renewd/internal/authenticator"
	"github.com/ksyq12/renewd/internal/certutil"
	"github.com/ksyq12/renewd/internal/errors"
	"github.com/ksyq12/renewd/internal/lineage"
	"github.com/ksyq12/renewd/internal/logger"
)

// Store is the lineage-store surface the renewal core mutates.
// *lineage.Lineage implements it.
type Store interface {
	Name() string
	RenewalParams() map[string]string
	VersionPath(kind lineage.Kind, version int) (string, error)
	LatestVersion() int
	CurrentVersion(kind lineage.Kind) int
	ShouldAutorenew() bool
	ShouldAutodeploy() bool
	SaveSuccessor(base int, certPEM, chainPEM []byte, key acme.KeyResult) (int, error)
	AdvanceCurrentTo(version int) error
}

// Client is the issuance surface the renewal core consumes.
// *acme.Client implements it.
type Client interface {
	DetermineAccount(cfg *authenticator.Config) (*acme.Account, error)
	ObtainCertificate(names []string, account *acme.Account, cfg *authenticator.Config, auth authenticator.Authenticator) (*acme.Issuance, error)
}

// Executor performs one renewal attempt against a lineage store.
type Executor struct {
	client Client

	// registry resolves authenticator names; defaults to the package
	// registry. Replaceable for tests.
	registry func() map[string]authenticator.Factory

	// defaults are the parameters renewalparams overlay.
	defaults map[string]string

	// sans extracts the name set from certificate PEM bytes.
	sans func([]byte) ([]string, error)
}

// NewExecutor creates an Executor issuing through client.
func NewExecutor(client Client) *Executor {
	return &Executor{
		client:   client,
		registry: authenticator.FindAll,
		defaults: authenticator.DefaultParams(),
		sans:     certutil.SubjectAltNames,
	}
}

// Renew attempts to create a successor version anchored at baseVersion.
//
// It returns (newVersion, true, nil) on success. A lineage that is not
// renewable — no renewalparams, no authenticator name, or an
// authenticator absent from the registry — yields (0, false, nil) with
// no side effects. Any other failure yields (0, false, err); no
// partial state is created.
//
// The renewal's name set is always the base version certificate's
// subject alternative names. Renewal preserves scope; changing the
// name set is not this path's job.
func (e *Executor) Renew(store Store, baseVersion int) (int, bool, error) {
	params := store.RenewalParams()
	if params == nil {
		logger.Debug("lineage %s has no renewalparams, skipping", store.Name())
		return 0, false, nil
	}
	name := params[authenticator.ParamAuthenticator]
	if name == "" {
		logger.Debug("lineage %s names no authenticator, skipping", store.Name())
		return 0, false, nil
	}
	factory, ok := e.registry()[name]
	if !ok {
		logger.Warn("lineage %s wants unknown authenticator %q, skipping", store.Name(), name)
		return 0, false, nil
	}

	cfg, err := authenticator.ConfigFromParams(e.defaults, params)
	if err != nil {
		return 0, false, err
	}

	auth, err := factory(cfg)
	if err != nil {
		return 0, false, errors.WrapLineage(errors.ErrCodeAuthenticator, store.Name(),
			"failed to initialize authenticator", err)
	}
	if err := auth.Prepare(); err != nil {
		return 0, false, errors.WrapLineage(errors.ErrCodeAuthenticator, store.Name(),
			"authenticator not ready", err)
	}

	account, err := e.client.DetermineAccount(cfg)
	if err != nil {
		return 0, false, err
	}

	certPath, err := store.VersionPath(lineage.Cert, baseVersion)
	if err != nil {
		return 0, false, err
	}
	pemBytes, err := os.ReadFile(certPath)
	if err != nil {
		return 0, false, errors.WrapLineage(errors.ErrCodeStore, store.Name(),
			"failed to read base certificate", err)
	}
	names, err := e.sans(pemBytes)
	if err != nil {
		return 0, false, errors.WrapLineage(errors.ErrCodeStore, store.Name(),
			"failed to extract names from base certificate", err)
	}

	issuance, err := e.client.ObtainCertificate(names, account, cfg, auth)
	if err != nil {
		return 0, false, err
	}
	if issuance == nil || len(issuance.ChainPEM) == 0 {
		logger.Warn("issuance for %s returned no chain", store.Name())
		return 0, false, nil
	}

	newVersion, err := store.SaveSuccessor(baseVersion, issuance.CertPEM, issuance.ChainPEM, issuance.Key)
	if err != nil {
		return 0, false, err
	}
	return newVersion, true, nil
}

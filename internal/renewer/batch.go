package renewer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ksyq12/renewd/internal/certutil"
	"github.com/ksyq12/renewd/internal/config"
	"github.com/ksyq12/renewd/internal/errors"
	"github.com/ksyq12/renewd/internal/executor"
	"github.com/ksyq12/renewd/internal/lineage"
	"github.com/ksyq12/renewd/internal/logger"
	"github.com/ksyq12/renewd/internal/notify"
	"github.com/ksyq12/renewd/internal/template"
)

// Opener turns a per-lineage config file and its merged values into a
// Store. Replaceable for tests.
type Opener func(confPath string, merged config.Values) (Store, error)

// Batch drives one scheduled pass over all renewal configurations.
type Batch struct {
	cfg      *config.Config
	executor *Executor
	notifier notify.Notifier
	cmdExec  executor.CommandExecutor
	open     Opener
}

// Summary reports what one batch run did.
type Summary struct {
	Processed int `json:"processed"`
	Renewed   int `json:"renewed"`
	Deployed  int `json:"deployed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// NewBatch creates a batch driver. notifier may be nil to disable
// notifications; cmdExec may be nil for the system default.
func NewBatch(cfg *config.Config, exec *Executor, notifier notify.Notifier, cmdExec executor.CommandExecutor) *Batch {
	if cmdExec == nil {
		cmdExec = executor.NewSystemExecutor()
	}
	b := &Batch{
		cfg:      cfg,
		executor: exec,
		notifier: notifier,
		cmdExec:  cmdExec,
	}
	b.open = func(confPath string, merged config.Values) (Store, error) {
		return lineage.New(confPath, merged, cfg.WorkDir)
	}
	return b
}

// SetOpener replaces the lineage constructor (for testing).
func (b *Batch) SetOpener(open Opener) {
	b.open = open
}

// renewerWideValues reads the renewer-wide defaults file. A missing or
// unreadable file contributes nothing to the merge.
func renewerWideValues(cfg *config.Config) config.Values {
	path := cfg.RenewerConfigPath()
	if _, err := os.Stat(path); err != nil {
		return config.Values{}
	}
	values, err := config.ParseConfFile(path)
	if err != nil {
		logger.Warn("ignoring renewer config %s: %v", path, err)
		return config.Values{}
	}
	return values
}

// Run processes every .conf file in the renewal configs directory.
// Each lineage gets at most one renewal action and at most one
// deployment action; faults are contained per lineage and never abort
// the batch. The returned error covers setup problems only.
func (b *Batch) Run() (*Summary, error) {
	renewerWide := renewerWideValues(b.cfg)

	dir := b.cfg.RenewalConfigsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "cannot read renewal configs directory", err)
	}

	summary := &Summary{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), lineage.ConfSuffix) {
			continue
		}
		summary.Processed++
		b.processOne(filepath.Join(dir, entry.Name()), renewerWide, summary)
	}
	return summary, nil
}

// processOne handles a single lineage end to end.
func (b *Batch) processOne(confPath string, renewerWide config.Values, summary *Summary) {
	logger.Info("Processing %s", confPath)

	perLineage, err := config.ParseConfFile(confPath)
	if err != nil {
		logger.Warn("skipping %s: %v", confPath, err)
		summary.Skipped++
		return
	}
	merged := config.MergeLayers(config.Defaults(), renewerWide, perLineage)

	store, err := b.open(confPath, merged)
	if err != nil {
		logger.Warn("skipping %s: %v", confPath, err)
		summary.Skipped++
		return
	}

	if store.ShouldAutorenew() {
		// The basis for renewal is the latest version, even if it has
		// not been deployed yet.
		base := store.LatestVersion()
		newVersion, renewed, err := b.executor.Renew(store, base)
		switch {
		case err != nil:
			logger.LogError(err, "renewal failed for "+store.Name())
			summary.Failed++
		case renewed:
			summary.Renewed++
			b.notifyRenewed(store, newVersion)
		}
	}

	if store.ShouldAutodeploy() {
		target := store.LatestVersion()
		if err := store.AdvanceCurrentTo(target); err != nil {
			logger.LogError(err, "deployment failed for "+store.Name())
			summary.Failed++
			return
		}
		summary.Deployed++
		b.notifyDeployed(store, target)
		b.runDeployHook(store.Name())
	}
}

// notifyRenewed sends the renewal notification, best-effort.
func (b *Batch) notifyRenewed(store Store, version int) {
	if b.notifier == nil {
		return
	}
	data := template.Data{Lineage: store.Name(), Version: version}
	if path, err := store.VersionPath(lineage.Cert, version); err == nil {
		if pemBytes, err := os.ReadFile(path); err == nil {
			data.Names, _ = certutil.SubjectAltNames(pemBytes)
			data.Expiry, _ = certutil.NotAfter(pemBytes)
		}
	}
	body, err := template.Render("renewed", data)
	if err != nil {
		logger.LogError(err, "cannot render renewal notification")
		return
	}
	subject := "renewd: renewed certificate " + store.Name()
	if err := b.notifier.Notify(body, b.cfg.Notify.Recipient, subject); err != nil {
		logger.LogError(err, "renewal notification failed")
	}
}

// notifyDeployed sends the deployment notification, best-effort.
func (b *Batch) notifyDeployed(store Store, version int) {
	if b.notifier == nil {
		return
	}
	host, _ := os.Hostname()
	body, err := template.Render("deployed", template.Data{
		Lineage: store.Name(),
		Version: version,
		Host:    host,
	})
	if err != nil {
		logger.LogError(err, "cannot render deployment notification")
		return
	}
	subject := "renewd: deployed certificate " + store.Name()
	if err := b.notifier.Notify(body, b.cfg.Notify.Recipient, subject); err != nil {
		logger.LogError(err, "deployment notification failed")
	}
}

// runDeployHook executes the configured post-deploy command so serving
// processes pick up the advanced certificate.
func (b *Batch) runDeployHook(name string) {
	hook := strings.Fields(b.cfg.DeployHook)
	if len(hook) == 0 {
		return
	}
	out, err := b.cmdExec.Execute(hook[0], hook[1:]...)
	if err != nil {
		logger.Error("deploy hook failed after %s: %v: %s", name, err, string(out))
		return
	}
	logger.Info("deploy hook ran after %s", name)
}

package cli

import (
	"github.com/ksyq12/renewd/internal/acme"
	"github.com/ksyq12/renewd/internal/config"
	"github.com/ksyq12/renewd/internal/executor"
	"github.com/ksyq12/renewd/internal/input"
	"github.com/ksyq12/renewd/internal/notify"
	"github.com/ksyq12/renewd/internal/platform"
	"github.com/ksyq12/renewd/internal/renewer"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader     ConfigLoader
	PlatformDetector PlatformDetector
	StoreOpener      StoreOpener
	Renewer          Renewer
	BatchRunner      BatchRunner
	StdinReader      input.Reader
}

// ConfigLoader handles configuration loading and saving
type ConfigLoader interface {
	Load(dir string) (*config.Config, error)
	Save(cfg *config.Config) error
}

// PlatformDetector handles platform path detection
type PlatformDetector interface {
	DetectPaths() (*platform.Paths, error)
}

// StoreOpener opens one named lineage store
type StoreOpener interface {
	Open(cfg *config.Config, name string) (renewer.Store, error)
}

// Renewer performs a single renewal attempt
type Renewer interface {
	Renew(cfg *config.Config, store renewer.Store, base int) (int, bool, error)
}

// BatchRunner runs one full pass over all renewal configurations
type BatchRunner interface {
	Run(cfg *config.Config) (*renewer.Summary, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:     &realConfigLoader{},
	PlatformDetector: &realPlatformDetector{},
	StoreOpener:      &realStoreOpener{},
	Renewer:          &realRenewer{},
	BatchRunner:      &realBatchRunner{},
	StdinReader:      input.NewStdinReader(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to the underlying packages

type realConfigLoader struct{}

func (r *realConfigLoader) Load(dir string) (*config.Config, error) {
	return config.Load(dir)
}

func (r *realConfigLoader) Save(cfg *config.Config) error {
	return cfg.Save()
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) DetectPaths() (*platform.Paths, error) {
	return platform.DetectPaths()
}

type realStoreOpener struct{}

func (r *realStoreOpener) Open(cfg *config.Config, name string) (renewer.Store, error) {
	return renewer.OpenLineage(cfg, name)
}

type realRenewer struct{}

func (r *realRenewer) Renew(cfg *config.Config, store renewer.Store, base int) (int, bool, error) {
	exec := renewer.NewExecutor(acme.NewClient(cfg.AccountsDir()))
	return exec.Renew(store, base)
}

type realBatchRunner struct{}

func (r *realBatchRunner) Run(cfg *config.Config) (*renewer.Summary, error) {
	client := acme.NewClient(cfg.AccountsDir())
	notifier := notify.NewSendmail(cfg.Notify.Sendmail, nil)
	batch := renewer.NewBatch(cfg, renewer.NewExecutor(client), notifier, executor.NewSystemExecutor())
	return batch.Run()
}

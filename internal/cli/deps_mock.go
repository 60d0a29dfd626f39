package cli

import (
	"github.com/ksyq12/renewd/internal/config"
	"github.com/ksyq12/renewd/internal/input"
	"github.com/ksyq12/renewd/internal/platform"
	"github.com/ksyq12/renewd/internal/renewer"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockConfigLoader) Load(dir string) (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockPlatformDetector is a test double for PlatformDetector
type MockPlatformDetector struct {
	Paths *platform.Paths
	Err   error
}

func (m *MockPlatformDetector) DetectPaths() (*platform.Paths, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Paths != nil {
		return m.Paths, nil
	}
	return &platform.Paths{
		ConfigDir: "/etc/renewd",
		WorkDir:   "/var/lib/renewd",
		LogsDir:   "/var/log/renewd",
	}, nil
}

// MockStoreOpener is a test double for StoreOpener
type MockStoreOpener struct {
	Stores map[string]renewer.Store
	Err    error
	Opened []string
}

func (m *MockStoreOpener) Open(cfg *config.Config, name string) (renewer.Store, error) {
	m.Opened = append(m.Opened, name)
	if m.Err != nil {
		return nil, m.Err
	}
	store, ok := m.Stores[name]
	if !ok {
		return nil, errLineageMissing(name)
	}
	return store, nil
}

// MockRenewer is a test double for Renewer
type MockRenewer struct {
	Version int
	Renewed bool
	Err     error
	Calls   []int
}

func (m *MockRenewer) Renew(cfg *config.Config, store renewer.Store, base int) (int, bool, error) {
	m.Calls = append(m.Calls, base)
	if m.Err != nil {
		return 0, false, m.Err
	}
	return m.Version, m.Renewed, nil
}

// MockBatchRunner is a test double for BatchRunner
type MockBatchRunner struct {
	Summary *renewer.Summary
	Err     error
	Calls   int
}

func (m *MockBatchRunner) Run(cfg *config.Config) (*renewer.Summary, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Summary != nil {
		return m.Summary, nil
	}
	return &renewer.Summary{}, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:     &MockConfigLoader{Cfg: config.New()},
			PlatformDetector: &MockPlatformDetector{},
			StoreOpener:      &MockStoreOpener{Stores: map[string]renewer.Store{}},
			Renewer:          &MockRenewer{},
			BatchRunner:      &MockBatchRunner{},
			StdinReader:      input.NewStringReader("y\n"),
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithStore registers a lineage store under its name
func (b *MockDependenciesBuilder) WithStore(name string, store renewer.Store) *MockDependenciesBuilder {
	opener, ok := b.deps.StoreOpener.(*MockStoreOpener)
	if !ok {
		opener = &MockStoreOpener{Stores: map[string]renewer.Store{}}
		b.deps.StoreOpener = opener
	}
	opener.Stores[name] = store
	return b
}

// WithRenewer sets a custom renewer
func (b *MockDependenciesBuilder) WithRenewer(r Renewer) *MockDependenciesBuilder {
	b.deps.Renewer = r
	return b
}

// WithBatchRunner sets a custom batch runner
func (b *MockDependenciesBuilder) WithBatchRunner(r BatchRunner) *MockDependenciesBuilder {
	b.deps.BatchRunner = r
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(lines ...string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewStringReader(lines...)
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

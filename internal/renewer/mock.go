package renewer

import (
	"fmt"

	"github.com/ksyq12/renewd/internal/acme"
	"github.com/ksyq12/renewd/internal/authenticator"
	"github.com/ksyq12/renewd/internal/lineage"
)

// SaveCall records one SaveSuccessor invocation.
type SaveCall struct {
	Base  int
	Cert  []byte
	Chain []byte
	Key   acme.KeyResult
}

// MockStore is a test double for the Store interface
type MockStore struct {
	NameValue string
	Params    map[string]string
	Latest    int
	Current   int

	Autorenew  bool
	Autodeploy bool

	// Call tracking - check these to verify interactions
	AutorenewEvals  int
	AutodeployEvals int
	SaveCalls       []SaveCall
	AdvanceCalls    []int

	// Function mocks - set these to customize behavior
	VersionPathFunc func(kind lineage.Kind, version int) (string, error)

	// CertPath is returned by the default VersionPath for any version
	CertPath string

	SaveErr    error
	AdvanceErr error
}

// NewMockStore creates a MockStore with one archived version.
func NewMockStore(name string) *MockStore {
	return &MockStore{NameValue: name, Latest: 1}
}

// Name returns the configured name
func (m *MockStore) Name() string {
	return m.NameValue
}

// RenewalParams returns the configured parameter map
func (m *MockStore) RenewalParams() map[string]string {
	return m.Params
}

// VersionPath returns CertPath or invokes the mock function if set
func (m *MockStore) VersionPath(kind lineage.Kind, version int) (string, error) {
	if m.VersionPathFunc != nil {
		return m.VersionPathFunc(kind, version)
	}
	if m.CertPath == "" {
		return "", fmt.Errorf("mock store %s: no path for %s%d", m.NameValue, kind, version)
	}
	return m.CertPath, nil
}

// LatestVersion returns the configured latest version
func (m *MockStore) LatestVersion() int {
	return m.Latest
}

// CurrentVersion returns the configured current version
func (m *MockStore) CurrentVersion(kind lineage.Kind) int {
	return m.Current
}

// ShouldAutorenew records the evaluation and returns the configured value
func (m *MockStore) ShouldAutorenew() bool {
	m.AutorenewEvals++
	return m.Autorenew
}

// ShouldAutodeploy records the evaluation and returns the configured value
func (m *MockStore) ShouldAutodeploy() bool {
	m.AutodeployEvals++
	return m.Autodeploy
}

// SaveSuccessor records the call and advances Latest unless SaveErr is set
func (m *MockStore) SaveSuccessor(base int, certPEM, chainPEM []byte, key acme.KeyResult) (int, error) {
	m.SaveCalls = append(m.SaveCalls, SaveCall{Base: base, Cert: certPEM, Chain: chainPEM, Key: key})
	if m.SaveErr != nil {
		return 0, m.SaveErr
	}
	m.Latest++
	return m.Latest, nil
}

// AdvanceCurrentTo records the call and moves Current unless AdvanceErr is set
func (m *MockStore) AdvanceCurrentTo(version int) error {
	m.AdvanceCalls = append(m.AdvanceCalls, version)
	if m.AdvanceErr != nil {
		return m.AdvanceErr
	}
	m.Current = version
	return nil
}

// ObtainCall records one ObtainCertificate invocation.
type ObtainCall struct {
	Names []string
	Auth  authenticator.Authenticator
}

// MockClient is a test double for the Client interface
type MockClient struct {
	Account  *acme.Account
	Issuance *acme.Issuance

	DetermineErr error
	ObtainErr    error

	// Call tracking - check these to verify interactions
	DetermineCalls int
	ObtainCalls    []ObtainCall
}

// DetermineAccount records the call and returns the configured account
func (m *MockClient) DetermineAccount(cfg *authenticator.Config) (*acme.Account, error) {
	m.DetermineCalls++
	if m.DetermineErr != nil {
		return nil, m.DetermineErr
	}
	return m.Account, nil
}

// ObtainCertificate records the call and returns the configured issuance
func (m *MockClient) ObtainCertificate(names []string, account *acme.Account, cfg *authenticator.Config, auth authenticator.Authenticator) (*acme.Issuance, error) {
	m.ObtainCalls = append(m.ObtainCalls, ObtainCall{Names: names, Auth: auth})
	if m.ObtainErr != nil {
		return nil, m.ObtainErr
	}
	return m.Issuance, nil
}

package authenticator

import (
	"github.com/go-acme/lego/v4/lego"
)

// MockAuthenticator is a test double for the Authenticator interface
type MockAuthenticator struct {
	NameValue string

	// Function mocks - set these to customize behavior
	PrepareFunc  func() error
	RegisterFunc func(client *lego.Client) error

	// Call tracking - check these to verify interactions
	PrepareCalls  int
	RegisterCalls int
}

// NewMockAuthenticator creates a MockAuthenticator with default no-op behavior
func NewMockAuthenticator(name string) *MockAuthenticator {
	return &MockAuthenticator{NameValue: name}
}

// Name returns the configured name
func (m *MockAuthenticator) Name() string {
	return m.NameValue
}

// Prepare records the call and invokes the mock function if set
func (m *MockAuthenticator) Prepare() error {
	m.PrepareCalls++
	if m.PrepareFunc != nil {
		return m.PrepareFunc()
	}
	return nil
}

// Register records the call and invokes the mock function if set
func (m *MockAuthenticator) Register(client *lego.Client) error {
	m.RegisterCalls++
	if m.RegisterFunc != nil {
		return m.RegisterFunc(client)
	}
	return nil
}

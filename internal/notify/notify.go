// Package notify delivers admin notifications about renewal and
// deployment actions. Delivery is best-effort: the batch driver logs
// failures and continues.
package notify

import (
	"fmt"

	"github.com/ksyq12/renewd/internal/executor"
)

// Notifier sends one message to one recipient.
type Notifier interface {
	Notify(message, recipient, subject string) error
}

// Sendmail delivers mail through the local sendmail binary.
type Sendmail struct {
	path string
	exec executor.CommandExecutor
}

// NewSendmail creates a Sendmail notifier using the binary at path.
func NewSendmail(path string, exec executor.CommandExecutor) *Sendmail {
	if path == "" {
		path = "/usr/sbin/sendmail"
	}
	if exec == nil {
		exec = executor.NewSystemExecutor()
	}
	return &Sendmail{path: path, exec: exec}
}

// Notify pipes a minimal message through sendmail.
func (s *Sendmail) Notify(message, recipient, subject string) error {
	if recipient == "" {
		return fmt.Errorf("notify: empty recipient")
	}

	payload := fmt.Sprintf("To: %s\nSubject: %s\n\n%s\n", recipient, subject, message)
	out, err := s.exec.ExecuteInput([]byte(payload), s.path, recipient)
	if err != nil {
		return fmt.Errorf("sendmail failed: %s: %w", string(out), err)
	}
	return nil
}

// Call records one delivered notification for test verification.
type Call struct {
	Message   string
	Recipient string
	Subject   string
}

// Mock is a test double for Notifier
type Mock struct {
	Err   error
	Calls []Call
}

// Notify records the call and returns the configured error
func (m *Mock) Notify(message, recipient, subject string) error {
	m.Calls = append(m.Calls, Call{Message: message, Recipient: recipient, Subject: subject})
	return m.Err
}

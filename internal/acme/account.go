package acme

import (
	"crypto"

	"github.com/go-acme/lego/v4/registration"
)

// Account is the CA account identity used for issuance. It implements
// lego's registration.User interface.
type Account struct {
	Email        string
	Registration *registration.Resource
	key          crypto.PrivateKey
}

// GetEmail returns the account email
func (a *Account) GetEmail() string { return a.Email }

// GetRegistration returns the CA registration resource
func (a *Account) GetRegistration() *registration.Resource { return a.Registration }

// GetPrivateKey returns the account private key
func (a *Account) GetPrivateKey() crypto.PrivateKey { return a.key }

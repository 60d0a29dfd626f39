// Package acme drives the CA exchange that turns a set of names into a
// new certificate, chain, and key. It wraps go-acme/lego; the renewal
// executor consumes it through a narrow interface and never sees ACME
// protocol details.
package acme

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-acme/lego/v4/certcrypto"
	"github.com/go-acme/lego/v4/certificate"
	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/registration"

	"github.com/ksyq12/renewd/internal/authenticator"
	"github.com/ksyq12/renewd/internal/errors"
	"github.com/ksyq12/renewd/internal/logger"
)

// Client obtains certificates from an ACME CA.
type Client struct {
	accountsDir string
}

// NewClient creates a Client persisting account keys under accountsDir.
func NewClient(accountsDir string) *Client {
	return &Client{accountsDir: accountsDir}
}

// DetermineAccount resolves the account to use for the configured CA
// and email, creating and persisting a new account key when none
// exists yet.
func (c *Client) DetermineAccount(cfg *authenticator.Config) (*Account, error) {
	path := c.accountKeyPath(cfg.Server, cfg.Email)

	data, err := os.ReadFile(path)
	if err == nil {
		key, perr := certcrypto.ParsePEMPrivateKey(data)
		if perr != nil {
			return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to parse account key", perr)
		}
		return &Account{Email: cfg.Email, key: key}, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to read account key", err)
	}

	logger.Info("Generating new account key for %s", cfg.Server)
	key, err := certcrypto.GeneratePrivateKey(certcrypto.EC256)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to generate account key", err)
	}
	if err := os.MkdirAll(c.accountsDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to create accounts directory", err)
	}
	if err := os.WriteFile(path, certcrypto.PEMEncode(key), 0600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to save account key", err)
	}
	return &Account{Email: cfg.Email, key: key}, nil
}

// ObtainCertificate runs the ACME flow for names using the prepared
// authenticator. A fresh certificate key is generated for every
// issuance, so the result always carries NewKey material.
func (c *Client) ObtainCertificate(names []string, account *Account, cfg *authenticator.Config, auth authenticator.Authenticator) (*Issuance, error) {
	legoCfg := lego.NewConfig(account)
	if cfg.Server != "" {
		legoCfg.CADirURL = cfg.Server
	}
	legoCfg.Certificate.KeyType = keyTypeForSize(cfg.RSAKeySize)

	client, err := lego.NewClient(legoCfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to create ACME client", err)
	}

	if err := auth.Register(client); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to install challenge provider", err)
	}

	if account.Registration == nil {
		reg, err := client.Registration.Register(registration.RegisterOptions{TermsOfServiceAgreed: true})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIssuance, "account registration failed", err)
		}
		account.Registration = reg
	}

	resource, err := client.Certificate.Obtain(certificate.ObtainRequest{
		Domains: names,
		Bundle:  false,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance,
			fmt.Sprintf("failed to obtain certificate for %v", names), err)
	}
	if resource == nil || len(resource.IssuerCertificate) == 0 {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "issuance returned no chain", nil)
	}

	logger.InfoFields("obtained certificate", map[string]interface{}{
		"domains": names,
		"url":     resource.CertURL,
	})

	return &Issuance{
		CertPEM:  resource.Certificate,
		ChainPEM: resource.IssuerCertificate,
		Key:      NewKey(resource.PrivateKey),
	}, nil
}

// keyTypeForSize maps the text-configured RSA key size onto a lego key
// type. Unknown sizes fall back to 2048.
func keyTypeForSize(size int) certcrypto.KeyType {
	switch size {
	case 4096:
		return certcrypto.RSA4096
	case 8192:
		return certcrypto.RSA8192
	default:
		return certcrypto.RSA2048
	}
}

// accountKeyPath derives a stable file name from the CA URL and email.
func (c *Client) accountKeyPath(server, email string) string {
	sum := sha256.Sum256([]byte(server + "|" + email))
	return filepath.Join(c.accountsDir, hex.EncodeToString(sum[:8])+".pem")
}

// Package authenticator provides the pluggable domain-validation
// mechanisms used during certificate renewal.
//
// An authenticator proves control over a domain to satisfy CA
// validation. Each mechanism registers a Factory under its name in an
// init function; the renewal executor resolves the authenticator named
// in a lineage's renewalparams through Get and drives it through the
// Authenticator interface.
//
// # Supported Authenticators
//
//   - standalone: binds its own listener to answer http-01 challenges
//   - webroot: writes http-01 tokens under an existing document root
//   - cloudflare: answers dns-01 challenges through the Cloudflare API
//
// # Configuration
//
// Authenticators are configured through Config, built by
// ConfigFromParams from the text renewalparams of a lineage overlaid
// onto DefaultParams. Numeric fields (rsa_key_size, http01_port) are
// coerced from text there; non-numeric text is a typed configuration
// error that fails the renewal attempt.
//
// # Lifecycle
//
//	factory, ok := authenticator.Get(cfg.Authenticator)
//	auth, err := factory(cfg)   // construct
//	err = auth.Prepare()        // environment checks
//	err = auth.Register(client) // install challenge provider
//
// # Testing
//
// MockAuthenticator provides call tracking and injectable behavior for
// tests that exercise the renewal executor without solving challenges.
package authenticator

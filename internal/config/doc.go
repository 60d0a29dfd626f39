// Package config manages the two configuration surfaces of renewd.
//
// The application config (renewd.yaml in the config directory) holds
// tool-level settings: base directories, notification delivery, and the
// optional post-deploy hook. It is loaded with Load and has sensible
// defaults when absent.
//
// Renewal configuration is layered. Each certificate lineage has one
// .conf file (TOML, flat key-value text) under <config_dir>/renewal/,
// written by the issuance workflow and read-only to renewd. The
// effective configuration for a lineage is the last-wins merge of three
// layers:
//
//	Defaults() < <config_dir>/renewer.conf < <config_dir>/renewal/<name>.conf
//
// Example lineage .conf:
//
//	cert = "/etc/renewd/live/example.com/cert.pem"
//	privkey = "/etc/renewd/live/example.com/privkey.pem"
//	chain = "/etc/renewd/live/example.com/chain.pem"
//	renew_before_expiry = "720h"
//
//	[renewalparams]
//	authenticator = "standalone"
//	rsa_key_size = "2048"
//	http01_port = "5002"
//	server = "https://acme-v02.api.letsencrypt.org/directory"
//	email = "admin@example.com"
//
// All renewal values are text, including numbers; coercion to integers
// happens in the authenticator config builder, where a non-numeric
// value in a numeric field is a typed configuration error.
package config

// Package certutil extracts the fields renewd needs from PEM-encoded
// certificates: the subject alternative name set and the expiry time.
package certutil

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"
)

// parseLeaf decodes the first CERTIFICATE block in pemBytes.
func parseLeaf(pemBytes []byte) (*x509.Certificate, error) {
	rest := pemBytes
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, fmt.Errorf("no certificate PEM block found")
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate: %w", err)
		}
		return cert, nil
	}
}

// SubjectAltNames returns the DNS subject alternative names of the
// first certificate in pemBytes. The common name is included when the
// certificate predates SANs and carries none.
func SubjectAltNames(pemBytes []byte) ([]string, error) {
	cert, err := parseLeaf(pemBytes)
	if err != nil {
		return nil, err
	}
	if len(cert.DNSNames) > 0 {
		names := make([]string, len(cert.DNSNames))
		copy(names, cert.DNSNames)
		return names, nil
	}
	if cert.Subject.CommonName != "" {
		return []string{cert.Subject.CommonName}, nil
	}
	return nil, fmt.Errorf("certificate has no DNS names")
}

// NotAfter returns the expiry of the first certificate in pemBytes.
func NotAfter(pemBytes []byte) (time.Time, error) {
	cert, err := parseLeaf(pemBytes)
	if err != nil {
		return time.Time{}, err
	}
	return cert.NotAfter, nil
}

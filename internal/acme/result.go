package acme

// KeyResult is the tagged outcome for the private key of an issuance:
// either new key material was produced, or the base version's key is to
// be reused. The zero value means reuse.
type KeyResult struct {
	rotated bool
	pem     []byte
}

// NewKey returns a KeyResult carrying freshly generated key material.
func NewKey(pemBytes []byte) KeyResult {
	return KeyResult{rotated: true, pem: pemBytes}
}

// ReuseKey returns a KeyResult signaling that the prior version's key
// is kept.
func ReuseKey() KeyResult {
	return KeyResult{}
}

// Rotated reports whether the result carries new key material.
func (k KeyResult) Rotated() bool {
	return k.rotated
}

// PEM returns the new key material. It is nil for a reuse result.
func (k KeyResult) PEM() []byte {
	return k.pem
}

// Issuance is the successful result of obtaining a certificate: the
// leaf certificate, the issuer chain, and the key outcome. A nil
// Issuance (with an error) means the attempt produced nothing.
type Issuance struct {
	CertPEM  []byte
	ChainPEM []byte
	Key      KeyResult
}

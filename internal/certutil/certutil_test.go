package certutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"reflect"
	"sort"
	"testing"
	"time"
)

// selfSigned generates a throwaway certificate for the given names.
func selfSigned(t *testing.T, commonName string, dnsNames []string, notAfter time.Time) []byte {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: commonName},
		DNSNames:     dnsNames,
		NotBefore:    notAfter.Add(-90 * 24 * time.Hour),
		NotAfter:     notAfter,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

func TestSubjectAltNames(t *testing.T) {
	expiry := time.Now().Add(60 * 24 * time.Hour)

	t.Run("dns names", func(t *testing.T) {
		want := []string{"example.com", "www.example.com"}
		pemBytes := selfSigned(t, "example.com", want, expiry)

		got, err := SubjectAltNames(pemBytes)
		if err != nil {
			t.Fatalf("SubjectAltNames failed: %v", err)
		}
		sort.Strings(got)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SANs = %v, want %v", got, want)
		}
	})

	t.Run("common name fallback", func(t *testing.T) {
		pemBytes := selfSigned(t, "legacy.example.com", nil, expiry)

		got, err := SubjectAltNames(pemBytes)
		if err != nil {
			t.Fatalf("SubjectAltNames failed: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"legacy.example.com"}) {
			t.Errorf("SANs = %v, want common name fallback", got)
		}
	})

	t.Run("no names at all", func(t *testing.T) {
		pemBytes := selfSigned(t, "", nil, expiry)
		if _, err := SubjectAltNames(pemBytes); err == nil {
			t.Error("expected error for certificate without names")
		}
	})

	t.Run("not pem", func(t *testing.T) {
		if _, err := SubjectAltNames([]byte("garbage")); err == nil {
			t.Error("expected error for non-PEM input")
		}
	})
}

func TestSubjectAltNamesSkipsOtherBlocks(t *testing.T) {
	expiry := time.Now().Add(30 * 24 * time.Hour)
	cert := selfSigned(t, "example.com", []string{"example.com"}, expiry)

	// Prepend a non-certificate block, as chain files sometimes carry.
	other := pem.EncodeToMemory(&pem.Block{Type: "X509 CRL", Bytes: []byte{1, 2, 3}})
	combined := append(other, cert...)

	got, err := SubjectAltNames(combined)
	if err != nil {
		t.Fatalf("SubjectAltNames failed: %v", err)
	}
	if len(got) != 1 || got[0] != "example.com" {
		t.Errorf("SANs = %v, want [example.com]", got)
	}
}

func TestNotAfter(t *testing.T) {
	expiry := time.Now().Add(42 * 24 * time.Hour).Truncate(time.Second).UTC()
	pemBytes := selfSigned(t, "example.com", []string{"example.com"}, expiry)

	got, err := NotAfter(pemBytes)
	if err != nil {
		t.Fatalf("NotAfter failed: %v", err)
	}
	if !got.Equal(expiry) {
		t.Errorf("NotAfter = %v, want %v", got, expiry)
	}

	if _, err := NotAfter([]byte("not a cert")); err == nil {
		t.Error("expected error for invalid input")
	}
}

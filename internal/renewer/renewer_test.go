package renewer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	stderrors "errors"
	"math/big"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/ksyq12/renewd/internal/acme"
	"github.com/ksyq12/renewd/internal/authenticator"
	"github.com/ksyq12/renewd/internal/errors"
)

// selfSigned generates a throwaway certificate for the given names.
func selfSigned(t *testing.T, dnsNames []string) []byte {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: dnsNames[0]},
		DNSNames:     dnsNames,
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(60 * 24 * time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

// writeCert writes a self-signed certificate to a temp file and returns
// its path.
func writeCert(t *testing.T, dnsNames []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cert1.pem")
	if err := os.WriteFile(path, selfSigned(t, dnsNames), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// renewableParams returns parameters naming the mock authenticator.
func renewableParams() map[string]string {
	return map[string]string{
		authenticator.ParamAuthenticator: "mock",
		authenticator.ParamEmail:         "admin@example.com",
	}
}

// testExecutor builds an Executor whose registry resolves "mock" to the
// given authenticator.
func testExecutor(client Client, auth *authenticator.MockAuthenticator) *Executor {
	e := NewExecutor(client)
	e.registry = func() map[string]authenticator.Factory {
		return map[string]authenticator.Factory{
			"mock": func(cfg *authenticator.Config) (authenticator.Authenticator, error) {
				return auth, nil
			},
		}
	}
	return e
}

func TestRenewSkipsNonRenewableLineages(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"no renewalparams", nil},
		{"no authenticator named", map[string]string{authenticator.ParamEmail: "a@b.c"}},
		{"unknown authenticator", map[string]string{authenticator.ParamAuthenticator: "dns-route53"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockClient{}
			e := testExecutor(client, authenticator.NewMockAuthenticator("mock"))
			store := NewMockStore("example.com")
			store.Params = tt.params

			version, renewed, err := e.Renew(store, 1)
			if err != nil {
				t.Fatalf("Renew failed: %v", err)
			}
			if renewed || version != 0 {
				t.Errorf("got (%d, %v), want silent skip", version, renewed)
			}
			if client.DetermineCalls != 0 || len(client.ObtainCalls) != 0 {
				t.Error("no issuance should be attempted")
			}
			if len(store.SaveCalls) != 0 {
				t.Error("no version should be recorded")
			}
		})
	}
}

func TestRenewRejectsNonNumericParam(t *testing.T) {
	client := &MockClient{}
	e := testExecutor(client, authenticator.NewMockAuthenticator("mock"))
	store := NewMockStore("example.com")
	store.Params = renewableParams()
	store.Params[authenticator.ParamRSAKeySize] = "big"

	_, renewed, err := e.Renew(store, 1)
	if err == nil {
		t.Fatal("expected error for non-numeric rsa_key_size")
	}
	if renewed {
		t.Error("lineage must not be marked renewed")
	}
	if !errors.Is(err, errors.ErrConfigInvalid) {
		t.Errorf("error should carry CONFIG code: %v", err)
	}
	if len(client.ObtainCalls) != 0 || len(store.SaveCalls) != 0 {
		t.Error("failure must leave no side effects")
	}
}

func TestRenewAuthenticatorFailures(t *testing.T) {
	t.Run("factory error", func(t *testing.T) {
		e := NewExecutor(&MockClient{})
		e.registry = func() map[string]authenticator.Factory {
			return map[string]authenticator.Factory{
				"mock": func(cfg *authenticator.Config) (authenticator.Authenticator, error) {
					return nil, stderrors.New("webroot path required")
				},
			}
		}
		store := NewMockStore("example.com")
		store.Params = renewableParams()

		_, renewed, err := e.Renew(store, 1)
		if err == nil || renewed {
			t.Fatalf("got (%v, %v), want error", renewed, err)
		}
		var rerr *errors.RenewalError
		if !errors.As(err, &rerr) || rerr.Code != errors.ErrCodeAuthenticator {
			t.Errorf("error should carry AUTHENTICATOR code: %v", err)
		}
	})

	t.Run("prepare error", func(t *testing.T) {
		auth := authenticator.NewMockAuthenticator("mock")
		auth.PrepareFunc = func() error { return stderrors.New("port 80 in use") }
		client := &MockClient{}
		e := testExecutor(client, auth)
		store := NewMockStore("example.com")
		store.Params = renewableParams()

		_, renewed, err := e.Renew(store, 1)
		if err == nil || renewed {
			t.Fatalf("got (%v, %v), want error", renewed, err)
		}
		var rerr *errors.RenewalError
		if !errors.As(err, &rerr) || rerr.Code != errors.ErrCodeAuthenticator {
			t.Errorf("error should carry AUTHENTICATOR code: %v", err)
		}
		if len(client.ObtainCalls) != 0 {
			t.Error("no issuance should be attempted after prepare failure")
		}
	})
}

func TestRenewUsesBaseCertificateNames(t *testing.T) {
	names := []string{"example.com", "www.example.com"}
	auth := authenticator.NewMockAuthenticator("mock")
	client := &MockClient{
		Account: &acme.Account{Email: "admin@example.com"},
		Issuance: &acme.Issuance{
			CertPEM:  []byte("cert"),
			ChainPEM: []byte("chain"),
			Key:      acme.NewKey([]byte("key")),
		},
	}
	e := testExecutor(client, auth)
	store := NewMockStore("example.com")
	store.Params = renewableParams()
	store.CertPath = writeCert(t, names)

	version, renewed, err := e.Renew(store, 1)
	if err != nil {
		t.Fatalf("Renew failed: %v", err)
	}
	if !renewed || version != 2 {
		t.Errorf("got (%d, %v), want version 2", version, renewed)
	}

	if len(client.ObtainCalls) != 1 {
		t.Fatalf("expected 1 issuance, got %d", len(client.ObtainCalls))
	}
	got := append([]string(nil), client.ObtainCalls[0].Names...)
	sort.Strings(got)
	if !reflect.DeepEqual(got, names) {
		t.Errorf("requested names = %v, want exactly the base SANs %v", got, names)
	}
	if client.ObtainCalls[0].Auth != auth {
		t.Error("prepared authenticator should be handed to issuance")
	}
	if auth.PrepareCalls != 1 {
		t.Errorf("Prepare called %d times, want 1", auth.PrepareCalls)
	}

	if len(store.SaveCalls) != 1 {
		t.Fatalf("expected 1 save, got %d", len(store.SaveCalls))
	}
	call := store.SaveCalls[0]
	if call.Base != 1 {
		t.Errorf("save anchored at %d, want base 1", call.Base)
	}
	if string(call.Cert) != "cert" || string(call.Chain) != "chain" {
		t.Error("issued material should flow to the store unchanged")
	}
	if !call.Key.Rotated() {
		t.Error("new key material should be marked rotated")
	}
}

func TestRenewIssuanceFailureLeavesNoState(t *testing.T) {
	client := &MockClient{ObtainErr: stderrors.New("rate limited")}
	e := testExecutor(client, authenticator.NewMockAuthenticator("mock"))
	store := NewMockStore("example.com")
	store.Params = renewableParams()
	store.CertPath = writeCert(t, []string{"example.com"})

	_, renewed, err := e.Renew(store, 1)
	if err == nil || renewed {
		t.Fatalf("got (%v, %v), want error", renewed, err)
	}
	if len(store.SaveCalls) != 0 {
		t.Error("failed issuance must not record a version")
	}
	if store.Latest != 1 {
		t.Errorf("latest version = %d, want unchanged 1", store.Latest)
	}
}

func TestRenewSkipsIssuanceWithoutChain(t *testing.T) {
	client := &MockClient{
		Issuance: &acme.Issuance{CertPEM: []byte("cert")},
	}
	e := testExecutor(client, authenticator.NewMockAuthenticator("mock"))
	store := NewMockStore("example.com")
	store.Params = renewableParams()
	store.CertPath = writeCert(t, []string{"example.com"})

	version, renewed, err := e.Renew(store, 1)
	if err != nil {
		t.Fatalf("Renew failed: %v", err)
	}
	if renewed || version != 0 {
		t.Errorf("got (%d, %v), want not renewed", version, renewed)
	}
	if len(store.SaveCalls) != 0 {
		t.Error("chainless issuance must not be recorded")
	}
}

func TestRenewMissingBaseVersion(t *testing.T) {
	client := &MockClient{}
	e := testExecutor(client, authenticator.NewMockAuthenticator("mock"))
	store := NewMockStore("example.com")
	store.Params = renewableParams()
	// CertPath unset: VersionPath fails for any version.

	_, renewed, err := e.Renew(store, 7)
	if err == nil || renewed {
		t.Fatalf("got (%v, %v), want error for missing base", renewed, err)
	}
	if len(client.ObtainCalls) != 0 {
		t.Error("no issuance should be attempted without a base certificate")
	}
}

func TestRenewSaveFailurePropagates(t *testing.T) {
	client := &MockClient{
		Issuance: &acme.Issuance{
			CertPEM:  []byte("cert"),
			ChainPEM: []byte("chain"),
			Key:      acme.ReuseKey(),
		},
	}
	e := testExecutor(client, authenticator.NewMockAuthenticator("mock"))
	store := NewMockStore("example.com")
	store.Params = renewableParams()
	store.CertPath = writeCert(t, []string{"example.com"})
	store.SaveErr = stderrors.New("disk full")

	_, renewed, err := e.Renew(store, 1)
	if err == nil || renewed {
		t.Fatalf("got (%v, %v), want store error", renewed, err)
	}
}

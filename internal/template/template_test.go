package template

import (
	"strings"
	"testing"
	"time"
)

func TestRenderRenewed(t *testing.T) {
	expiry := time.Date(2026, 11, 20, 12, 0, 0, 0, time.UTC)
	body, err := Render("renewed", Data{
		Lineage: "example.com",
		Version: 4,
		Names:   []string{"example.com", "www.example.com"},
		Expiry:  expiry,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"example.com was renewed",
		"New version: 4",
		"- www.example.com",
		"2026-11-20",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestRenderRenewedWithoutOptionalFields(t *testing.T) {
	body, err := Render("renewed", Data{Lineage: "example.com", Version: 2})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(body, "Covered names") {
		t.Errorf("names section should be omitted:\n%s", body)
	}
	if strings.Contains(body, "New expiry") {
		t.Errorf("expiry line should be omitted:\n%s", body)
	}
}

func TestRenderDeployed(t *testing.T) {
	body, err := Render("deployed", Data{
		Lineage: "example.com",
		Version: 4,
		Host:    "web-1",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(body, "deployed automatically") {
		t.Errorf("body missing deployment message:\n%s", body)
	}
	if !strings.Contains(body, "Host: web-1") {
		t.Errorf("body missing host:\n%s", body)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render("revoked", Data{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

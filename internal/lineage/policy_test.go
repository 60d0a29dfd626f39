package lineage

import (
	"testing"
	"time"

	"github.com/ksyq12/renewd/internal/config"
)

func TestShouldAutorenew(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		versions int
		notAfter time.Time
		extra    config.Values
		want     bool
	}{
		{
			name:     "expiring inside default window",
			versions: 1,
			notAfter: now.Add(10 * 24 * time.Hour),
			want:     true,
		},
		{
			name:     "expiry far out",
			versions: 1,
			notAfter: now.Add(300 * 24 * time.Hour),
			want:     false,
		},
		{
			name:     "autorenew disabled",
			versions: 1,
			notAfter: now.Add(10 * 24 * time.Hour),
			extra:    config.Values{"autorenew": "no"},
			want:     false,
		},
		{
			name:     "renewer disabled globally",
			versions: 1,
			notAfter: now.Add(10 * 24 * time.Hour),
			extra:    config.Values{"renewer_enabled": "no"},
			want:     false,
		},
		{
			name:     "empty archive",
			versions: 0,
			want:     false,
		},
		{
			name:     "custom window excludes",
			versions: 1,
			notAfter: now.Add(10 * 24 * time.Hour),
			extra:    config.Values{"renew_before_expiry": "24h"},
			want:     false,
		},
		{
			name:     "custom window includes",
			versions: 1,
			notAfter: now.Add(10 * 24 * time.Hour),
			extra:    config.Values{"renew_before_expiry": "2160h"},
			want:     true,
		},
		{
			name:     "malformed window falls back to default",
			versions: 1,
			notAfter: now.Add(10 * 24 * time.Hour),
			extra:    config.Values{"renew_before_expiry": "30 days"},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.versions, tt.notAfter, tt.extra)
			f.lin.now = func() time.Time { return now }

			if got := f.lin.ShouldAutorenew(); got != tt.want {
				t.Errorf("ShouldAutorenew = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldAutodeploy(t *testing.T) {
	notAfter := time.Now().Add(60 * 24 * time.Hour)

	t.Run("newer version pending", func(t *testing.T) {
		f := newFixture(t, 2, notAfter, nil)
		f.deploy(t, 1)
		if !f.lin.ShouldAutodeploy() {
			t.Error("pending version 2 should trigger deployment")
		}
	})

	t.Run("already at latest", func(t *testing.T) {
		f := newFixture(t, 2, notAfter, nil)
		f.deploy(t, 2)
		if f.lin.ShouldAutodeploy() {
			t.Error("deployed latest should not trigger deployment")
		}
	})

	t.Run("never deployed", func(t *testing.T) {
		f := newFixture(t, 1, notAfter, nil)
		if !f.lin.ShouldAutodeploy() {
			t.Error("undeployed lineage with a version should trigger deployment")
		}
	})

	t.Run("autodeploy disabled", func(t *testing.T) {
		f := newFixture(t, 2, notAfter, config.Values{"autodeploy": "0"})
		f.deploy(t, 1)
		if f.lin.ShouldAutodeploy() {
			t.Error("disabled autodeploy must not trigger")
		}
	})

	t.Run("empty archive", func(t *testing.T) {
		f := newFixture(t, 0, notAfter, nil)
		if f.lin.ShouldAutodeploy() {
			t.Error("empty lineage must not trigger deployment")
		}
	})
}

package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ksyq12/renewd/internal/renewer"
)

func TestRunList(t *testing.T) {
	t.Run("lists configured lineages", func(t *testing.T) {
		resetFlags(t)
		buf := captureOutput(t)

		cfg := testConfig(t)
		writeRenewalConf(t, cfg, "api.example.com")
		writeRenewalConf(t, cfg, "example.com")

		api := renewer.NewMockStore("api.example.com")
		api.Latest = 3
		api.Current = 2
		api.Params = map[string]string{"authenticator": "standalone"}

		www := renewer.NewMockStore("example.com")
		www.Latest = 1
		www.Current = 1

		installDeps(t, NewMockDeps().
			WithConfig(cfg).
			WithStore("api.example.com", api).
			WithStore("example.com", www).
			Build())

		if err := runList(nil, nil); err != nil {
			t.Fatalf("runList failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{"LINEAGE", "api.example.com", "example.com"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		// Header, separator, one row per lineage.
		if len(lines) != 4 {
			t.Errorf("got %d lines, want 4:\n%s", len(lines), out)
		}
	})

	t.Run("json output", func(t *testing.T) {
		resetFlags(t)
		buf := captureOutput(t)
		jsonOutput = true

		cfg := testConfig(t)
		writeRenewalConf(t, cfg, "example.com")

		store := renewer.NewMockStore("example.com")
		store.Latest = 2
		store.Current = 1
		store.Params = map[string]string{"authenticator": "webroot"}

		installDeps(t, NewMockDeps().
			WithConfig(cfg).
			WithStore("example.com", store).
			Build())

		if err := runList(nil, nil); err != nil {
			t.Fatalf("runList failed: %v", err)
		}

		var items []lineageListItem
		if err := json.Unmarshal(buf.Bytes(), &items); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}
		if len(items) != 1 {
			t.Fatalf("got %d items, want 1", len(items))
		}
		if items[0].Latest != 2 || items[0].Current != 1 || !items[0].Renewable {
			t.Errorf("item = %+v", items[0])
		}
	})

	t.Run("empty", func(t *testing.T) {
		resetFlags(t)
		buf := captureOutput(t)

		installDeps(t, NewMockDeps().WithConfig(testConfig(t)).Build())

		if err := runList(nil, nil); err != nil {
			t.Fatalf("runList failed: %v", err)
		}
		if !strings.Contains(buf.String(), "No certificate lineages configured") {
			t.Errorf("output = %s", buf.String())
		}
	})

	t.Run("skips unopenable lineages", func(t *testing.T) {
		resetFlags(t)
		buf := captureOutput(t)

		cfg := testConfig(t)
		writeRenewalConf(t, cfg, "broken.example")
		writeRenewalConf(t, cfg, "ok.example")

		store := renewer.NewMockStore("ok.example")
		installDeps(t, NewMockDeps().
			WithConfig(cfg).
			WithStore("ok.example", store).
			Build())

		if err := runList(nil, nil); err != nil {
			t.Fatalf("runList failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "Could not open lineage broken.example") {
			t.Errorf("missing warning:\n%s", out)
		}
		if !strings.Contains(out, "ok.example") {
			t.Errorf("healthy lineage should still be listed:\n%s", out)
		}
	})
}

package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/ksyq12/renewd/internal/renewer"
)

func TestRunRenew(t *testing.T) {
	tests := []struct {
		name       string
		store      *renewer.MockStore
		renewer    *MockRenewer
		arg        string
		wantErr    bool
		wantBase   int
		wantOutput string
	}{
		{
			name: "renews from latest version",
			store: func() *renewer.MockStore {
				s := renewer.NewMockStore("example.com")
				s.Latest = 3
				return s
			}(),
			renewer:    &MockRenewer{Version: 4, Renewed: true},
			arg:        "example.com",
			wantBase:   3,
			wantOutput: "Renewed example.com as version 4",
		},
		{
			name:       "not renewable",
			store:      renewer.NewMockStore("example.com"),
			renewer:    &MockRenewer{},
			arg:        "example.com",
			wantBase:   1,
			wantOutput: "not renewable",
		},
		{
			name:    "renewal failure propagates",
			store:   renewer.NewMockStore("example.com"),
			renewer: &MockRenewer{Err: errors.New("rate limited")},
			arg:     "example.com",
			wantErr: true,
		},
		{
			name: "no versions",
			store: func() *renewer.MockStore {
				s := renewer.NewMockStore("example.com")
				s.Latest = 0
				return s
			}(),
			renewer: &MockRenewer{},
			arg:     "example.com",
			wantErr: true,
		},
		{
			name:    "unknown lineage",
			store:   renewer.NewMockStore("example.com"),
			renewer: &MockRenewer{},
			arg:     "missing.example",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			buf := captureOutput(t)

			installDeps(t, NewMockDeps().
				WithConfig(testConfig(t)).
				WithStore("example.com", tt.store).
				WithRenewer(tt.renewer).
				Build())

			err := runRenew(nil, []string{tt.arg})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runRenew error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantBase > 0 {
				if len(tt.renewer.Calls) != 1 || tt.renewer.Calls[0] != tt.wantBase {
					t.Errorf("renew calls = %v, want [%d]", tt.renewer.Calls, tt.wantBase)
				}
			} else if len(tt.renewer.Calls) != 0 {
				t.Errorf("renew calls = %v, want none", tt.renewer.Calls)
			}

			if tt.wantOutput != "" && !strings.Contains(buf.String(), tt.wantOutput) {
				t.Errorf("output missing %q:\n%s", tt.wantOutput, buf.String())
			}
		})
	}
}

func TestRunRenewJSON(t *testing.T) {
	resetFlags(t)
	buf := captureOutput(t)
	jsonOutput = true

	store := renewer.NewMockStore("example.com")
	store.Latest = 1
	installDeps(t, NewMockDeps().
		WithConfig(testConfig(t)).
		WithStore("example.com", store).
		WithRenewer(&MockRenewer{Version: 2, Renewed: true}).
		Build())

	if err := runRenew(nil, []string{"example.com"}); err != nil {
		t.Fatalf("runRenew failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"action": "renew"`) || !strings.Contains(out, `"version": 2`) {
		t.Errorf("JSON output = %s", out)
	}
}

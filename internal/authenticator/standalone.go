package authenticator

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-acme/lego/v4/challenge/http01"
	"github.com/go-acme/lego/v4/lego"
)

// Standalone answers http-01 challenges by binding its own listener on
// the configured port.
type Standalone struct {
	port int
}

func init() {
	Register("standalone", func(cfg *Config) (Authenticator, error) {
		port := cfg.HTTP01Port
		if port == 0 {
			port = 80
		}
		return &Standalone{port: port}, nil
	})
}

// Name returns the authenticator name
func (s *Standalone) Name() string {
	return "standalone"
}

// Prepare verifies the challenge port can be bound.
func (s *Standalone) Prepare() error {
	addr := net.JoinHostPort("", strconv.Itoa(s.port))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("challenge port %d not available: %w", s.port, err)
	}
	return l.Close()
}

// Register installs the http-01 provider server on the client.
func (s *Standalone) Register(client *lego.Client) error {
	provider := http01.NewProviderServer("", strconv.Itoa(s.port))
	return client.Challenge.SetHTTP01Provider(provider)
}

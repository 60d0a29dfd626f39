package authenticator

import (
	"fmt"
	"os"

	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/providers/http/webroot"
)

// Webroot answers http-01 challenges by writing token files under an
// existing web server's document root.
type Webroot struct {
	path string
}

func init() {
	Register("webroot", func(cfg *Config) (Authenticator, error) {
		if cfg.Webroot == "" {
			return nil, fmt.Errorf("webroot authenticator requires the webroot parameter")
		}
		return &Webroot{path: cfg.Webroot}, nil
	})
}

// Name returns the authenticator name
func (w *Webroot) Name() string {
	return "webroot"
}

// Prepare verifies the webroot directory exists.
func (w *Webroot) Prepare() error {
	info, err := os.Stat(w.path)
	if err != nil {
		return fmt.Errorf("webroot %s not accessible: %w", w.path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("webroot %s is not a directory", w.path)
	}
	return nil
}

// Register installs the webroot http-01 provider on the client.
func (w *Webroot) Register(client *lego.Client) error {
	provider, err := webroot.NewHTTPProvider(w.path)
	if err != nil {
		return fmt.Errorf("failed to create webroot provider: %w", err)
	}
	return client.Challenge.SetHTTP01Provider(provider)
}

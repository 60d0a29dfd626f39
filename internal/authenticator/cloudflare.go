package authenticator

import (
	"fmt"
	"time"

	"github.com/go-acme/lego/v4/challenge/dns01"
	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/providers/dns/cloudflare"
)

// Cloudflare answers dns-01 challenges through the Cloudflare API.
type Cloudflare struct {
	apiToken string
}

func init() {
	Register("cloudflare", func(cfg *Config) (Authenticator, error) {
		return &Cloudflare{apiToken: cfg.CloudflareAPIToken}, nil
	})
}

// Name returns the authenticator name
func (c *Cloudflare) Name() string {
	return "cloudflare"
}

// Prepare verifies credentials are present.
func (c *Cloudflare) Prepare() error {
	if c.apiToken == "" {
		return fmt.Errorf("cloudflare authenticator requires the cloudflare_api_token parameter")
	}
	return nil
}

// Register installs the dns-01 provider on the client. DNS propagation
// can be slow, so the provider gets a generous timeout.
func (c *Cloudflare) Register(client *lego.Client) error {
	cfg := cloudflare.NewDefaultConfig()
	cfg.AuthToken = c.apiToken

	provider, err := cloudflare.NewDNSProviderConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to create cloudflare provider: %w", err)
	}
	return client.Challenge.SetDNS01Provider(provider, dns01.AddDNSTimeout(10*time.Minute))
}

package authenticator

import (
	"strconv"

	"github.com/ksyq12/renewd/internal/errors"
)

// Config is the typed authenticator configuration built from the text
// renewalparams of a lineage overlaid onto defaults. Known numeric
// fields are coerced here; everything else stays text.
type Config struct {
	Authenticator      string
	RSAKeySize         int
	HTTP01Port         int
	Server             string
	Email              string
	Webroot            string
	CloudflareAPIToken string
	AccountKeyPath     string
}

// Parameter keys recognized in renewalparams.
const (
	ParamAuthenticator = "authenticator"
	ParamRSAKeySize    = "rsa_key_size"
	ParamHTTP01Port    = "http01_port"
	ParamServer        = "server"
	ParamEmail         = "email"
	ParamWebroot       = "webroot"
	ParamCFAPIToken    = "cloudflare_api_token"
)

// DefaultParams returns the built-in parameter defaults that
// renewalparams overlay.
func DefaultParams() map[string]string {
	return map[string]string{
		ParamRSAKeySize: "2048",
		ParamHTTP01Port: "80",
		ParamServer:     "https://acme-v02.api.letsencrypt.org/directory",
	}
}

// ConfigFromParams overlays params onto defaults and coerces the known
// numeric fields. A numeric field holding non-numeric text is a typed
// configuration error.
func ConfigFromParams(defaults, params map[string]string) (*Config, error) {
	merged := make(map[string]string, len(defaults)+len(params))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}

	keySize, err := intParam(merged, ParamRSAKeySize)
	if err != nil {
		return nil, err
	}
	port, err := intParam(merged, ParamHTTP01Port)
	if err != nil {
		return nil, err
	}

	return &Config{
		Authenticator:      merged[ParamAuthenticator],
		RSAKeySize:         keySize,
		HTTP01Port:         port,
		Server:             merged[ParamServer],
		Email:              merged[ParamEmail],
		Webroot:            merged[ParamWebroot],
		CloudflareAPIToken: merged[ParamCFAPIToken],
	}, nil
}

// intParam coerces a text parameter to an integer. Absent keys are 0.
func intParam(params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Configf("field %s is not numeric: %q", key, raw)
	}
	return n, nil
}

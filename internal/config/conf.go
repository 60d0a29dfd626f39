package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Values is one layer of renewal configuration: the parsed contents of
// a .conf file, or the built-in defaults. All leaf values are text; any
// numeric interpretation happens at the point of use.
type Values map[string]interface{}

// renewalParamsKey is the subsection recording how the original
// issuance was performed. A lineage without it is not renewable.
const renewalParamsKey = "renewalparams"

// Defaults returns the process-wide renewal defaults, the lowest layer
// of the merge. Both the renewer-wide config file and the per-lineage
// .conf file override these key by key.
func Defaults() Values {
	return Values{
		"renewer_enabled":     "yes",
		"autorenew":           "yes",
		"autodeploy":          "yes",
		"renew_before_expiry": "720h", // 30 days
	}
}

// ParseConfFile parses one .conf file into a Values layer.
func ParseConfFile(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	v := Values{}
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return v, nil
}

// Merge overlays other onto v. Later layers win per key; maps are
// merged recursively so a per-lineage file can override single keys
// inside renewalparams without replacing the whole section.
func (v Values) Merge(other Values) {
	for key, val := range other {
		sub, ok := val.(map[string]interface{})
		if !ok {
			v[key] = val
			continue
		}
		existing, ok := v[key].(map[string]interface{})
		if !ok {
			existing = map[string]interface{}{}
			v[key] = existing
		}
		Values(existing).Merge(sub)
	}
}

// MergeLayers builds a merged Values from ordered layers, first to last.
func MergeLayers(layers ...Values) Values {
	merged := Values{}
	for _, layer := range layers {
		merged.Merge(layer)
	}
	return merged
}

// Get returns the string form of a top-level value.
func (v Values) Get(key string) (string, bool) {
	val, ok := v[key]
	if !ok {
		return "", false
	}
	if _, isMap := val.(map[string]interface{}); isMap {
		return "", false
	}
	return fmt.Sprint(val), true
}

// GetDefault returns the string form of a value, or def when unset.
func (v Values) GetDefault(key, def string) string {
	if s, ok := v.Get(key); ok {
		return s
	}
	return def
}

// Enabled interprets a value as a boolean switch. Unset keys default to
// enabled; only an explicit negative disables.
func (v Values) Enabled(key string) bool {
	s, ok := v.Get(key)
	if !ok {
		return true
	}
	switch s {
	case "no", "false", "0", "off":
		return false
	}
	return true
}

// RenewalParams returns the renewalparams section flattened to text
// values, or nil when the section is absent. Nested values inside the
// section are ignored; the format is flat key-value text.
func (v Values) RenewalParams() map[string]string {
	raw, ok := v[renewalParamsKey].(map[string]interface{})
	if !ok {
		return nil
	}
	params := make(map[string]string, len(raw))
	for key, val := range raw {
		if _, isMap := val.(map[string]interface{}); isMap {
			continue
		}
		params[key] = fmt.Sprint(val)
	}
	return params
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	ConfigDir  string       `yaml:"config_dir"`
	WorkDir    string       `yaml:"work_dir"`
	LogsDir    string       `yaml:"logs_dir"`
	Notify     NotifyConfig `yaml:"notify"`
	DeployHook string       `yaml:"deploy_hook,omitempty"`
}

// NotifyConfig holds notification delivery settings
type NotifyConfig struct {
	Recipient string `yaml:"recipient"`
	Sendmail  string `yaml:"sendmail"`
}

// configFile is the application config file name inside ConfigDir
const configFile = "renewd.yaml"

// renewerConfFile is the renewer-wide renewal defaults file inside ConfigDir
const renewerConfFile = "renewer.conf"

// renewalConfigsDirName holds the per-lineage .conf files inside ConfigDir
const renewalConfigsDirName = "renewal"

// New creates a new Config with default values
func New() *Config {
	return &Config{
		ConfigDir: "/etc/renewd",
		WorkDir:   "/var/lib/renewd",
		LogsDir:   "/var/log/renewd",
		Notify: NotifyConfig{
			Recipient: "root",
			Sendmail:  "/usr/sbin/sendmail",
		},
	}
}

// Load reads the application config from dir. A missing file yields the
// default configuration with ConfigDir set to dir.
func Load(dir string) (*Config, error) {
	cfg := New()
	cfg.ConfigDir = dir

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = dir
	}
	return cfg, nil
}

// Save writes the config to its ConfigDir
func (c *Config) Save() error {
	if err := os.MkdirAll(c.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(c.ConfigDir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// RenewalConfigsDir returns the directory holding per-lineage .conf files
func (c *Config) RenewalConfigsDir() string {
	return filepath.Join(c.ConfigDir, renewalConfigsDirName)
}

// RenewerConfigPath returns the renewer-wide defaults file path
func (c *Config) RenewerConfigPath() string {
	return filepath.Join(c.ConfigDir, renewerConfFile)
}

// LiveDir returns the live symlink directory for a lineage
func (c *Config) LiveDir(lineage string) string {
	return filepath.Join(c.ConfigDir, "live", lineage)
}

// ArchiveDir returns the version archive directory for a lineage
func (c *Config) ArchiveDir(lineage string) string {
	return filepath.Join(c.WorkDir, "archive", lineage)
}

// AccountsDir returns the directory holding CA account keys
func (c *Config) AccountsDir() string {
	return filepath.Join(c.ConfigDir, "accounts")
}

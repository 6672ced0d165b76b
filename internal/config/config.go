package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration, loaded from a YAML
// file with env-var overrides for secrets.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`

	// Environment is "development" or "production".
	Environment string `yaml:"environment"`

	// EmailDomain is the institutional domain suffix required of every
	// authenticated identity (e.g. "flame.edu.in").
	EmailDomain string `yaml:"email_domain"`

	// AdminEmails is the static allow-list of reviewer identities.
	AdminEmails []string `yaml:"admin_emails"`

	// ResendKey enables real email delivery when set. Overridden by
	// SAAC_RESEND_KEY.
	ResendKey string `yaml:"resend_key"`

	// EmailFrom is the sender address for decision notifications.
	EmailFrom string `yaml:"email_from"`

	// EmailReplyTo is the reply-to address for decision notifications.
	EmailReplyTo string `yaml:"email_reply_to"`

	// CSRFKey is the hex-encoded 32-byte CSRF secret. Overridden by
	// SAAC_CSRF_KEY. Required in production.
	CSRFKey string `yaml:"csrf_key"`

	// RatePerSecond is the per-IP request rate limit.
	RatePerSecond int `yaml:"rate_per_second"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:        ":8080",
		DBPath:        "saac.db",
		Environment:   "development",
		EmailDomain:   "flame.edu.in",
		AdminEmails:   []string{},
		EmailFrom:     "SAAC <noreply@flame.edu.in>",
		EmailReplyTo:  "saac@flame.edu.in",
		RatePerSecond: 10,
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.Environment == "" {
		c.Environment = def.Environment
	}
	if c.EmailDomain == "" {
		c.EmailDomain = def.EmailDomain
	}
	if c.AdminEmails == nil {
		c.AdminEmails = []string{}
	}
	if c.EmailFrom == "" {
		c.EmailFrom = def.EmailFrom
	}
	if c.EmailReplyTo == "" {
		c.EmailReplyTo = def.EmailReplyTo
	}
	if c.RatePerSecond <= 0 {
		c.RatePerSecond = def.RatePerSecond
	}
}

// applyEnv overrides secret-bearing fields from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("SAAC_RESEND_KEY"); v != "" {
		c.ResendKey = v
	}
	if v := os.Getenv("SAAC_CSRF_KEY"); v != "" {
		c.CSRFKey = v
	}
	if v := os.Getenv("SAAC_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("SAAC_ADDR"); v != "" {
		c.Listen = v
	}
}

// IsProduction reports whether the config is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (0600) and
// returned. Env overrides are applied after loading either way.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.applyEnv()

	return &cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename)
// with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".saac-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

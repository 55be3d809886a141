package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration. Values load from a YAML
// file and individual ZONEHUB_* environment variables override them, so a
// deployment can keep a checked-in base file and inject secrets from the
// environment.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Env selects the runtime environment: "development" or "production".
	Env string `yaml:"env"`

	// DBPath is the sqlite database file path.
	DBPath string `yaml:"db_path"`

	// StaticDir is the directory served at the site root.
	StaticDir string `yaml:"static_dir"`

	// AdminEmail and AdminPassword seed the first admin account when the
	// accounts table is empty.
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`

	// ResendKey enables real email delivery when set. Empty means the noop
	// sender, which logs instead of sending.
	ResendKey    string `yaml:"resend_key"`
	EmailFrom    string `yaml:"email_from"`
	EmailReplyTo string `yaml:"email_reply_to"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       ":8080",
		Env:          "development",
		DBPath:       "zonehub.db",
		StaticDir:    "static",
		AdminEmail:   "admin@zonehub.local",
		EmailFrom:    "Zone Calendar <noreply@zonehub.local>",
		EmailReplyTo: "admin@zonehub.local",
	}
}

// Normalize fills missing values with defaults so a partial file still
// yields a runnable configuration.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.Env == "" {
		c.Env = d.Env
	}
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.StaticDir == "" {
		c.StaticDir = d.StaticDir
	}
	if c.AdminEmail == "" {
		c.AdminEmail = d.AdminEmail
	}
	if c.EmailFrom == "" {
		c.EmailFrom = d.EmailFrom
	}
	if c.EmailReplyTo == "" {
		c.EmailReplyTo = d.EmailReplyTo
	}
}

// envOverrides maps environment variables onto config fields.
func (c *Config) applyEnv(getenv func(string) string) {
	set := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set("ZONEHUB_ADDR", &c.Listen)
	set("ZONEHUB_ENV", &c.Env)
	set("ZONEHUB_DB", &c.DBPath)
	set("ZONEHUB_STATIC", &c.StaticDir)
	set("ZONEHUB_ADMIN_EMAIL", &c.AdminEmail)
	set("ZONEHUB_ADMIN_PASSWORD", &c.AdminPassword)
	set("ZONEHUB_RESEND_KEY", &c.ResendKey)
	set("ZONEHUB_EMAIL_FROM", &c.EmailFrom)
	set("ZONEHUB_REPLY_TO", &c.EmailReplyTo)
}

// Load reads configuration from the given YAML path, then applies
// environment overrides. A missing file is not an error: the defaults are
// written there for next time, with 0600 permissions since the file may
// carry secrets.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case errors.Is(err, fs.ErrNotExist):
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	cfg.Normalize()
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

// Save writes the configuration to the given path atomically with 0600
// permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".zonehub-config-*.tmp")
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

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Package config builds the run configuration for statcard.
//
// Settings come from a TOML file plus the process environment. The token is
// environment-only so it never ends up committed next to the templates it
// patches. Everything is resolved and validated once at startup; components
// receive the resulting Config by reference and never read the environment
// themselves.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/statcardhq/statcard/pkg/errors"
	"github.com/statcardhq/statcard/pkg/layout"
)

// DefaultPath is the config file looked up when no --config flag is given.
const DefaultPath = "statcard.toml"

// Environment variables consulted during Load. GITHUB_TOKEN wins over
// ACCESS_TOKEN; the latter is kept for setups migrating from the original
// actions workflow.
const (
	EnvToken       = "GITHUB_TOKEN"
	EnvLegacyToken = "ACCESS_TOKEN"
	EnvLogin       = "USER_NAME"
)

const defaultCommitWindowDays = 365

// Config is the fully resolved run configuration.
type Config struct {
	Login        string        // GitHub login to query
	Token        string        // API token, from the environment only
	Birthday     time.Time     // account owner's birth date, for the age line
	Templates    []string      // SVG template paths to patch
	CommitWindow time.Duration // how far back the commit count reaches
	Layout       layout.Layout // label text of the card's stat lines
}

type fileConfig struct {
	Login            string       `toml:"login"`
	Birthday         string       `toml:"birthday"`
	Templates        []string     `toml:"templates"`
	CommitWindowDays int          `toml:"commit_window_days"`
	Layout           layoutConfig `toml:"layout"`
}

type layoutConfig struct {
	Line1Label   string `toml:"line1_label"`
	ContribOpen  string `toml:"contrib_open"`
	ContribClose string `toml:"contrib_close"`
	Line2Label   string `toml:"line2_label"`
	Line1Trailer string `toml:"line1_trailer"`
	Line2Trailer string `toml:"line2_trailer"`
}

// Load reads the config file at path, merges the environment, and validates
// the result. When path is empty, DefaultPath is used if it exists;
// otherwise the configuration is environment-only. A path given explicitly
// must exist.
func Load(path string) (*Config, error) {
	var fc fileConfig

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case explicit || !os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg := &Config{
		Login:        fc.Login,
		Templates:    fc.Templates,
		CommitWindow: time.Duration(defaultCommitWindowDays) * 24 * time.Hour,
		Layout:       layout.Default(),
	}
	if fc.CommitWindowDays > 0 {
		cfg.CommitWindow = time.Duration(fc.CommitWindowDays) * 24 * time.Hour
	}
	applyLayout(&cfg.Layout, fc.Layout)

	if cfg.Login == "" {
		cfg.Login = os.Getenv(EnvLogin)
	}
	cfg.Token = os.Getenv(EnvToken)
	if cfg.Token == "" {
		cfg.Token = os.Getenv(EnvLegacyToken)
	}
	if len(cfg.Templates) == 0 {
		cfg.Templates = []string{"dark_mode.svg", "light_mode.svg"}
	}

	if fc.Birthday != "" {
		bd, err := time.Parse("2006-01-02", fc.Birthday)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "birthday %q (want YYYY-MM-DD)", fc.Birthday)
		}
		cfg.Birthday = bd
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyLayout(l *layout.Layout, over layoutConfig) {
	if over.Line1Label != "" {
		l.Line1Label = over.Line1Label
	}
	if over.ContribOpen != "" {
		l.ContribOpen = over.ContribOpen
	}
	if over.ContribClose != "" {
		l.ContribClose = over.ContribClose
	}
	if over.Line2Label != "" {
		l.Line2Label = over.Line2Label
	}
	if over.Line1Trailer != "" {
		l.Line1Trailer = over.Line1Trailer
	}
	if over.Line2Trailer != "" {
		l.Line2Trailer = over.Line2Trailer
	}
}

// Validate checks that the configuration can drive a full run.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New(errors.ErrCodeMissingToken,
			"no API token: set %s (or %s)", EnvToken, EnvLegacyToken)
	}
	if c.Login == "" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"no login: set login in the config file or %s in the environment", EnvLogin)
	}
	if c.Birthday.IsZero() {
		return errors.New(errors.ErrCodeInvalidConfig,
			"no birthday: set birthday = \"YYYY-MM-DD\" in the config file")
	}
	for _, tpl := range c.Templates {
		if tpl == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "empty template path")
		}
	}
	if err := c.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout")
	}
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file for [Load].
const EnvironmentVariable = "PASETO_CONFIG"

// Environment is the deployment type.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the CLI configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	// Home is the base directory other paths default under.
	Home string `yaml:"home"`

	Keyring KeyringConfig `yaml:"keyring"`
	Tokens  TokensConfig  `yaml:"tokens"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`

	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides holds per-environment replacements. Only non-empty
// fields apply.
type Overrides struct {
	Keyring *KeyringConfig `yaml:"keyring,omitempty"`
	Tokens  *TokensConfig  `yaml:"tokens,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
}

// KeyringConfig locates the keyring.
type KeyringConfig struct {
	// Dir is the keyring directory.
	Dir string `yaml:"dir"`

	// Identity is the age identity file for sealed keys. "-" reads
	// stdin. Empty means no sealed keys can be opened.
	Identity string `yaml:"identity"`

	// SealTo lists age recipients new secret keys are sealed to.
	SealTo []string `yaml:"seal_to"`

	// RequireSealed makes keygen refuse to write plain secret files.
	RequireSealed bool `yaml:"require_sealed"`
}

// TokensConfig sets token service defaults.
type TokensConfig struct {
	// Version is v1 or v2. Default: v2.
	Version string `yaml:"version"`

	// Encoding is json or cbor. Default: json.
	Encoding string `yaml:"encoding"`

	// Validity is the default lifetime. Default: 1h.
	Validity string `yaml:"validity"`

	// ClockSkew tolerated on time claims. Default: 30s.
	ClockSkew string `yaml:"clock_skew"`

	// Issuer is written to new tokens and required on decode when set.
	Issuer string `yaml:"issuer"`

	// Audience is required on decode when set.
	Audience string `yaml:"audience"`

	// RequireExpiry rejects tokens without exp.
	RequireExpiry bool `yaml:"require_expiry"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is debug, info, warn, or error. Default: info.
	Level string `yaml:"level"`

	// Format is auto, text, or json. auto picks text on a terminal.
	Format string `yaml:"format"`
}

// MetricsConfig configures metrics export.
type MetricsConfig struct {
	// Textfile, when set, receives the Prometheus text exposition of
	// the token counters when a command exits (node_exporter textfile
	// collector format).
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration every file is layered over.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	home := filepath.Join(homeDir, ".config", "paseto")
	return &Config{
		Environment: Development,
		Home:        home,
		Keyring: KeyringConfig{
			Dir: filepath.Join(home, "keyring"),
		},
		Tokens: TokensConfig{
			Version:   "v2",
			Encoding:  "json",
			Validity:  "1h",
			ClockSkew: "30s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads the file named by PASETO_CONFIG. It fails if the
// variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your paseto.yaml config file, or use --config", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile loads the configuration at path over [Default], applies
// the matching environment section, and expands path variables.
func LoadFile(path string) (*Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	config.applyEnvironmentOverrides()
	config.expandVariables()
	return config, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production without a section still seals and expires.
		if overrides == nil {
			overrides = &Overrides{
				Keyring: &KeyringConfig{RequireSealed: true},
				Tokens:  &TokensConfig{RequireExpiry: true},
			}
		}
	}
	if overrides == nil {
		return
	}

	if keyring := overrides.Keyring; keyring != nil {
		setString(&c.Keyring.Dir, keyring.Dir)
		setString(&c.Keyring.Identity, keyring.Identity)
		if len(keyring.SealTo) > 0 {
			c.Keyring.SealTo = keyring.SealTo
		}
		c.Keyring.RequireSealed = c.Keyring.RequireSealed || keyring.RequireSealed
	}
	if tokens := overrides.Tokens; tokens != nil {
		setString(&c.Tokens.Version, tokens.Version)
		setString(&c.Tokens.Encoding, tokens.Encoding)
		setString(&c.Tokens.Validity, tokens.Validity)
		setString(&c.Tokens.ClockSkew, tokens.ClockSkew)
		setString(&c.Tokens.Issuer, tokens.Issuer)
		setString(&c.Tokens.Audience, tokens.Audience)
		c.Tokens.RequireExpiry = c.Tokens.RequireExpiry || tokens.RequireExpiry
	}
	if log := overrides.Log; log != nil {
		setString(&c.Log.Level, log.Level)
		setString(&c.Log.Format, log.Format)
	}
}

func setString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"PASETO_HOME": c.Home,
		"HOME":        os.Getenv("HOME"),
	}
	c.Home = expandVars(c.Home, vars)
	vars["PASETO_HOME"] = c.Home

	c.Keyring.Dir = expandVars(c.Keyring.Dir, vars)
	c.Keyring.Identity = expandVars(c.Keyring.Identity, vars)
	c.Metrics.Textfile = expandVars(c.Metrics.Textfile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}, preferring vars over
// the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// ValidityDuration returns Tokens.Validity parsed. Zero means tokens carry no
// default exp.
func (t TokensConfig) ValidityDuration() (time.Duration, error) {
	return parseDuration("tokens.validity", t.Validity)
}

// ClockSkewDuration returns Tokens.ClockSkew parsed.
func (t TokensConfig) ClockSkewDuration() (time.Duration, error) {
	return parseDuration("tokens.clock_skew", t.ClockSkew)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", field, value)
	}
	return duration, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains([]Environment{Development, Staging, Production}, c.Environment) {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if c.Keyring.Dir == "" {
		errs = append(errs, errors.New("keyring.dir is required"))
	}
	if c.Keyring.RequireSealed && len(c.Keyring.SealTo) == 0 {
		errs = append(errs, errors.New("keyring.require_sealed needs at least one keyring.seal_to recipient"))
	}
	if !slices.Contains([]string{"v1", "v2"}, c.Tokens.Version) {
		errs = append(errs, fmt.Errorf("tokens.version must be v1 or v2, got %q", c.Tokens.Version))
	}
	if !slices.Contains([]string{"json", "cbor"}, c.Tokens.Encoding) {
		errs = append(errs, fmt.Errorf("tokens.encoding must be json or cbor, got %q", c.Tokens.Encoding))
	}
	validity, err := c.Tokens.ValidityDuration()
	if err != nil {
		errs = append(errs, err)
	}
	if err == nil && validity == 0 && c.Tokens.RequireExpiry {
		errs = append(errs, errors.New("tokens.require_expiry needs a non-zero tokens.validity"))
	}
	if _, err := c.Tokens.ClockSkewDuration(); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !slices.Contains([]string{"auto", "text", "json"}, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of auto, text, json; got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

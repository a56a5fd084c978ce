// Package config loads the hdfsfile tool configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile/command"
)

// Config is the on-disk tool configuration.
type Config struct {
	HDFSCommand string   `toml:"hdfs_command"`
	Timeout     Duration `toml:"timeout"`
	LogLevel    string   `toml:"log_level"`
	TouchFlag   string   `toml:"touch_flag"`
	// LockDir holds per-path lock files. Empty disables locking unless
	// requested on the command line.
	LockDir string `toml:"lock_dir"`
}

// Duration is a time.Duration decoded from a TOML string such as "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		HDFSCommand: command.DefaultCommand,
		Timeout:     Duration{command.DefaultTimeout},
		LogLevel:    "warn",
		TouchFlag:   command.DefaultTouchFlag,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hdfsfile/config.toml, falling back
// to the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "hdfsfile", "config.toml"), nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing config: unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config file at path. A missing file yields the defaults
// when allowMissing is set.
func Load(path string, allowMissing bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting as a *hdfsfile.ConfigurationError.
func (c *Config) Validate() error {
	if c.HDFSCommand == "" {
		return &hdfsfile.ConfigurationError{Reason: "hdfs_command must not be empty"}
	}
	if c.Timeout.Duration <= 0 {
		return &hdfsfile.ConfigurationError{Reason: fmt.Sprintf("timeout must be positive, got %s", c.Timeout)}
	}
	if _, err := c.Level(); err != nil {
		return &hdfsfile.ConfigurationError{Reason: "invalid log_level", Cause: err}
	}
	switch c.TouchFlag {
	case "-touchz", "-touch":
	default:
		return &hdfsfile.ConfigurationError{Reason: fmt.Sprintf("touch_flag must be -touchz or -touch, got %q", c.TouchFlag)}
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (zerolog.Level, error) {
	return hdfsfile.LogLevelFromString(c.LogLevel)
}

// Ops builds the command backend described by the configuration.
func (c *Config) Ops(logger zerolog.Logger) *command.Ops {
	return command.New(c.HDFSCommand,
		command.WithTimeout(c.Timeout.Duration),
		command.WithTouchFlag(c.TouchFlag),
		command.WithLogger(logger),
	)
}

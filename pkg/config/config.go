package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/opendatahub-io/secscan/pkg/logging"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. SECSCAN_PLUGIN_DIR.
	EnvPrefix = "SECSCAN"

	// DefaultHostVersion is the version plugin requirements are checked against.
	DefaultHostVersion = "1.0.0"

	KeyConfigFile  = "config"
	KeyPluginDir   = "plugin-dir"
	KeyHostVersion = "host-version"
	KeyDisable     = "disable"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
)

// Config is the runtime configuration shared by all commands.
type Config struct {
	PluginDirs  []string
	HostVersion string
	Disable     []string
	LogLevel    string
	LogFormat   logging.Format
}

// AddFlags registers the global flags.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfigFile, "", "Path to a configuration file (yaml or json)")
	fs.StringSlice(KeyPluginDir, nil, "Directory containing scan plugin manifests (repeatable)")
	fs.String(KeyHostVersion, DefaultHostVersion, "Host version plugin requirements are checked against")
	fs.StringSlice(KeyDisable, nil, "Scan type to remove from the registry (repeatable)")
	fs.String(KeyLogLevel, "info", "Log level (debug|info|warn|error)")
	fs.String(KeyLogFormat, string(logging.FormatText), "Log format (text|json)")
}

// Load resolves the configuration from flags, SECSCAN_* environment variables
// and an optional configuration file, in that order of precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		PluginDirs:  splitList(v.GetStringSlice(KeyPluginDir)),
		HostVersion: v.GetString(KeyHostVersion),
		Disable:     splitList(v.GetStringSlice(KeyDisable)),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   logging.Format(v.GetString(KeyLogFormat)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList splits comma-separated elements, as pflag does for slice flags.
// Environment values reach viper as a single string.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))

	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}

	return out
}

// Validate checks that all options are valid.
func (c *Config) Validate() error {
	if _, err := c.ParsedHostVersion(); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if err := c.LogFormat.Validate(); err != nil {
		return err
	}

	for _, d := range c.PluginDirs {
		if d == "" {
			return errors.New("plugin directory cannot be empty")
		}
	}

	return nil
}

// ParsedHostVersion returns the host version as semver. A leading "v" is accepted.
func (c *Config) ParsedHostVersion() (semver.Version, error) {
	v, err := semver.ParseTolerant(c.HostVersion)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid host version %q: %w", c.HostVersion, err)
	}

	return v, nil
}

// Package config loads deepsort settings from defaults, an optional YAML
// file, DEEPSORT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/deepsort/internal/codec"
	"github.com/roach88/deepsort/internal/sorter"
)

// Keys understood in config files and the environment.
const (
	KeyAscending  = "ascending"
	KeySortArrays = "sort_arrays"
	KeyIndent     = "indent"
	KeyOutput     = "output"
)

// EnvPrefix prefixes environment overrides, e.g. DEEPSORT_SORT_ARRAYS=true.
const EnvPrefix = "DEEPSORT"

// FileName is the config file looked up in the working directory and then
// the home directory when no explicit file is given.
const FileName = ".deepsort"

// MaxIndent bounds the indent setting.
const MaxIndent = 8

// Config is the resolved configuration.
type Config struct {
	Ascending  bool   `mapstructure:"ascending"`
	SortArrays bool   `mapstructure:"sort_arrays"`
	Indent     int    `mapstructure:"indent"`
	Output     string `mapstructure:"output"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Ascending:  true,
		SortArrays: false,
		Indent:     2,
	}
}

// SortOptions converts the config into sorter options.
func (c *Config) SortOptions() sorter.Options {
	return sorter.Options{
		Descending:          !c.Ascending,
		SortPrimitiveArrays: c.SortArrays,
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Indent < 0 || c.Indent > MaxIndent {
		return &ConfigError{Field: KeyIndent, Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxIndent, c.Indent)}
	}
	if c.Output != "" {
		f, err := codec.ParseFormat(c.Output)
		if err != nil {
			return &ConfigError{Field: KeyOutput, Message: err.Error()}
		}
		if f == codec.FormatCUE {
			return &ConfigError{Field: KeyOutput, Message: "cue is an input-only format"}
		}
	}
	return nil
}

// ConfigError reports an invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s': %s", e.Field, e.Message)
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// FlagBindings maps config keys to the flag names that override them.
// A flag only takes effect when set on the command line.
var FlagBindings = map[string]string{
	KeySortArrays: "sort-arrays",
	KeyIndent:     "indent",
	KeyOutput:     "output",
}

// searchPaths lists directories searched for FileName, in order.
var searchPaths = func() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return paths
}

// Load resolves the configuration. file names an explicit config file,
// which must exist; when empty, FileName is searched for and may be
// absent. flags may be nil.
//
// The "descending" flag, when set, forces Ascending to false.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault(KeyAscending, def.Ascending)
	v.SetDefault(KeySortArrays, def.SortArrays)
	v.SetDefault(KeyIndent, def.Indent)
	v.SetDefault(KeyOutput, def.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		for _, p := range searchPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, &ConfigError{Field: "file", Message: err.Error()}
		}
	}

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	cfg.File = v.ConfigFileUsed()

	if flags != nil {
		if f := flags.Lookup("descending"); f != nil && f.Changed {
			descending, err := flags.GetBool("descending")
			if err != nil {
				return nil, fmt.Errorf("read flag descending: %w", err)
			}
			cfg.Ascending = !descending
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

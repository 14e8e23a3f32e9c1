// Package config loads the shatter configuration file.
//
// The file lives at $XDG_CONFIG_HOME/shatter/config.toml (falling back to
// ~/.config/shatter/config.toml) and holds the defaults the CLI uses when a
// flag is not given:
//
//	[shatter]
//	pieces = 80
//	gravity = 0.8
//	spread = 50.0
//	background = "#000000"
//	transparent = true
//
//	[animation]
//	frames = 60
//	fps = 30
//	size = 128
//
//	[output]
//	format = "apng"
//	workers = 2
//	quantizer = "mediancut"
//	resample = "bilinear"
//
//	[log]
//	level = "info"
//
// Keys left out of the file keep their default values. A missing file is
// not an error.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/shatter/pkg/effect/shatter"
	"github.com/matzehuels/shatter/pkg/errors"
	"github.com/matzehuels/shatter/pkg/export"
	"github.com/matzehuels/shatter/pkg/pipeline"
	"github.com/matzehuels/shatter/pkg/sink"
	"github.com/matzehuels/shatter/pkg/source"
)

const (
	appName  = "shatter"
	fileName = "config.toml"
)

// Config is the contents of the configuration file.
type Config struct {
	Shatter   shatter.Options `toml:"shatter"`
	Animation export.Config   `toml:"animation"`
	Output    Output          `toml:"output"`
	Log       Log             `toml:"log"`
}

// Output holds encoder settings.
type Output struct {
	Format    string `toml:"format"`
	Workers   int    `toml:"workers"`
	Quantizer string `toml:"quantizer"`
	Resample  string `toml:"resample"`
}

// Log holds logging settings.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Shatter:   shatter.DefaultOptions(),
		Animation: export.DefaultConfig(),
		Output: Output{
			Format:    string(pipeline.DefaultFormat),
			Workers:   pipeline.DefaultWorkers,
			Quantizer: string(sink.QuantizeMedianCut),
			Resample:  string(source.DefaultKernel),
		},
		Log: Log{Level: log.InfoLevel.String()},
	}
}

// Path returns the configuration file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the file at path over Default. Unknown keys and values that
// fail validation are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidOption, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Default(), errors.New(errors.ErrCodeInvalidOption, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks every value the way an export would.
func (c Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	opts := c.Options()
	return opts.ValidateAndSetDefaults()
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid log level %q", c.Log.Level)
	}
	return lvl, nil
}

// Options converts the configuration to export options. The seed is always
// zero; seeds are chosen per run.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Effect:    pipeline.DefaultEffect,
		Format:    export.Format(c.Output.Format),
		Shatter:   c.Shatter,
		Animation: c.Animation,
		Workers:   c.Output.Workers,
		Quantizer: sink.Quantizer(c.Output.Quantizer),
		Resample:  source.Kernel(c.Output.Resample),
	}
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes c to path, creating parent directories. It refuses to
// overwrite an existing file unless force is set.
func (c Config) Save(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Package config holds the settings of the gif2png tool. Values come from
// Defaults, then an optional TOML file, then command line flags.
package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Log configures the root logger.
type Log struct {
	Level  string // trace, debug, info, warn, error, crit
	Format string // terminal, json, logfmt
	File   string `toml:",omitempty"`
	// Rotation of File, in megabytes and number of kept files.
	MaxSizeMB  int
	MaxBackups int
	Color      bool
}

// Decode configures frame decoding.
type Decode struct {
	Deinterlace bool
	MaxPixels   int // 0 picks the decoder default, negative disables the limit
}

// Batch configures multi-file runs.
type Batch struct {
	Workers   int
	CacheSize int // decoded results kept by content hash; 0 disables
}

// Output configures what the commands write.
type Output struct {
	Format string // table, json, yaml
	Dir    string `toml:",omitempty"`
}

// Config is the complete tool configuration.
type Config struct {
	Log    Log
	Decode Decode
	Batch  Batch
	Output Output
}

var (
	logLevels     = []string{"trace", "debug", "info", "warn", "error", "crit"}
	logFormats    = []string{"terminal", "json", "logfmt"}
	outputFormats = []string{"table", "json", "yaml"}
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Log: Log{
			Level:      "info",
			Format:     "terminal",
			MaxSizeMB:  100,
			MaxBackups: 3,
			Color:      true,
		},
		Batch: Batch{
			Workers:   4,
			CacheSize: 128,
		},
		Output: Output{
			Format: "table",
		},
	}
}

// Load reads a TOML file on top of Defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config: read")
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse merges TOML data into cfg.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Newf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if !oneOf(c.Log.Level, logLevels) {
		return errors.Newf("config: unknown log level %q", c.Log.Level)
	}
	if !oneOf(c.Log.Format, logFormats) {
		return errors.Newf("config: unknown log format %q", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New("config: log rotation limits must not be negative")
	}
	if c.Batch.Workers < 1 {
		return errors.Newf("config: batch workers must be at least 1, got %d", c.Batch.Workers)
	}
	if c.Batch.CacheSize < 0 {
		return errors.Newf("config: batch cache size must not be negative, got %d", c.Batch.CacheSize)
	}
	if !oneOf(c.Output.Format, outputFormats) {
		return errors.Newf("config: unknown output format %q", c.Output.Format)
	}
	return nil
}

// Marshal renders the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(err, "config: encode")
	}
	return buf.Bytes(), nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}

// Package config loads kstructs configuration.
//
// Built-in defaults are embedded from default.toml. A config file, when
// present, is decoded over those defaults so that only the keys it sets
// change. A missing file is not an error; an unreadable or invalid one is.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/frobware/go-kstructs/kmalloc"
)

//go:embed default.toml
var defaultConfigTOML string

// DefaultConfigPath is where the config file is looked up when --config is
// not given.
const DefaultConfigPath = "/etc/kstructs/kstructs.toml"

// Config is the top-level configuration.
type Config struct {
	Extractor  ExtractorConfig  `toml:"extractor"`
	Classifier ClassifierConfig `toml:"classifier"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ExtractorConfig selects the layout dumper and how it is invoked.
type ExtractorConfig struct {
	Path       string   `toml:"path"`
	Args       []string `toml:"args"`
	VersionArg string   `toml:"version_arg"`
}

// ClassifierConfig holds the kmalloc cache sizes.
type ClassifierConfig struct {
	Buckets []int `toml:"buckets"`
}

// LoggingConfig controls logging.
type LoggingConfig struct {
	// Level is a log spec such as "info" or "warn,collector=debug".
	Level string `toml:"level"`
	// Format is "text" or "json".
	Format string `toml:"format"`
	// Components is an alternative to per-component entries in Level.
	Components map[string]string `toml:"components"`
}

// ToSpec returns the log spec described by c. Level wins over Components.
func (c LoggingConfig) ToSpec() string {
	if c.Level != "" {
		return c.Level
	}
	if len(c.Components) == 0 {
		return ""
	}

	names := make([]string, 0, len(c.Components))
	for name := range c.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := []string{"info"}
	for _, name := range names {
		parts = append(parts, name+"="+c.Components[name])
	}
	return strings.Join(parts, ",")
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() Config {
	var cfg Config
	if _, err := toml.Decode(defaultConfigTOML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default.toml is invalid: %v", err))
	}
	return cfg
}

// Load returns the defaults overlaid with the file at path. An empty path
// means DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Extractor.Path) == "" {
		return fmt.Errorf("extractor.path cannot be empty")
	}
	if _, err := c.Buckets(); err != nil {
		return err
	}
	return nil
}

// Buckets returns the classifier bucket list.
func (c Config) Buckets() (kmalloc.Buckets, error) {
	b, err := kmalloc.NewBuckets(c.Classifier.Buckets)
	if err != nil {
		return kmalloc.Buckets{}, fmt.Errorf("classifier.buckets: %w", err)
	}
	return b, nil
}

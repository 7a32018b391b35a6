// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/treenav/internal/tree"
)

// Config holds all treenav configuration.
type Config struct {
	Tree   Tree   `yaml:"tree"`
	Browse Browse `yaml:"browse"`
	Debug  Debug  `yaml:"debug"`
}

// Tree holds the default tree source.
type Tree struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "auto" | "yaml" | "json"
}

// Browse holds terminal browser settings.
type Browse struct {
	Mouse       bool          `yaml:"mouse"`
	VimKeys     bool          `yaml:"vim_keys"`
	DoubleClick time.Duration `yaml:"double_click"` // Max gap between clicks of a double-activate
	Watch       bool          `yaml:"watch"`        // Reload the tree file when it changes
	Indent      int           `yaml:"indent"`
	Remember    bool          `yaml:"remember"` // Restore expansion, focus and selection between runs
}

// Debug holds diagnostic settings.
type Debug struct {
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Tree: Tree{
			Format: string(tree.FormatAuto),
		},
		Browse: Browse{
			Mouse:       true,
			VimKeys:     true,
			DoubleClick: 400 * time.Millisecond,
			Indent:      2,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if _, err := tree.ParseFormat(c.Tree.Format); err != nil {
		return fmt.Errorf("config: tree.format: %w", err)
	}
	if c.Browse.DoubleClick <= 0 {
		return fmt.Errorf("config: browse.double_click must be positive, got %v", c.Browse.DoubleClick)
	}
	if c.Browse.Indent < 1 || c.Browse.Indent > 8 {
		return fmt.Errorf("config: browse.indent must be between 1 and 8, got %d", c.Browse.Indent)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: TREENAV_TREE, TREENAV_DOUBLE_CLICK, TREENAV_DEBUG_LOG.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("TREENAV_TREE"); v != "" {
		c.Tree.Path = v
	}
	if v := os.Getenv("TREENAV_DOUBLE_CLICK"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid TREENAV_DOUBLE_CLICK %q: %w", v, err)
		}
		c.Browse.DoubleClick = d
	}
	if v := os.Getenv("TREENAV_DEBUG_LOG"); v != "" {
		c.Debug.LogFile = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Tree   *rawTree   `yaml:"tree"`
	Browse *rawBrowse `yaml:"browse"`
	Debug  *rawDebug  `yaml:"debug"`
}

type rawTree struct {
	Path   *string `yaml:"path"`
	Format *string `yaml:"format"`
}

type rawBrowse struct {
	Mouse       *bool          `yaml:"mouse"`
	VimKeys     *bool          `yaml:"vim_keys"`
	DoubleClick *time.Duration `yaml:"double_click"`
	Watch       *bool          `yaml:"watch"`
	Indent      *int           `yaml:"indent"`
	Remember    *bool          `yaml:"remember"`
}

type rawDebug struct {
	LogFile *string `yaml:"log_file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if t := layer.Tree; t != nil {
		if t.Path != nil {
			c.Tree.Path = *t.Path
		}
		if t.Format != nil {
			c.Tree.Format = *t.Format
		}
	}
	if b := layer.Browse; b != nil {
		if b.Mouse != nil {
			c.Browse.Mouse = *b.Mouse
		}
		if b.VimKeys != nil {
			c.Browse.VimKeys = *b.VimKeys
		}
		if b.DoubleClick != nil {
			c.Browse.DoubleClick = *b.DoubleClick
		}
		if b.Watch != nil {
			c.Browse.Watch = *b.Watch
		}
		if b.Indent != nil {
			c.Browse.Indent = *b.Indent
		}
		if b.Remember != nil {
			c.Browse.Remember = *b.Remember
		}
	}
	if d := layer.Debug; d != nil {
		if d.LogFile != nil {
			c.Debug.LogFile = *d.LogFile
		}
	}
}

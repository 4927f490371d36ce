// Package config loads the folding engine settings from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Detector strategy names accepted in configuration.
const (
	DetectorIndent = "indent"
	DetectorLua    = "lua"
)

// Config holds the engine settings.
type Config struct {
	// TabWidth is the number of columns a tab occupies for the indent
	// detector. Default 4.
	TabWidth int `toml:"tab_width"`

	// FoldLimit caps accepted fold levels. Zero means unbounded.
	FoldLimit int `toml:"fold_limit"`

	// Detector selects the fold level strategy: "indent" or "lua".
	Detector string `toml:"detector"`

	// LuaScript is the path to the detector script when Detector is "lua".
	LuaScript string `toml:"lua_script"`

	// LogLevel is the minimum log level: debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		TabWidth:  4,
		FoldLimit: 0,
		Detector:  DetectorIndent,
		LogLevel:  "info",
	}
}

// Load reads configuration from path. A missing file is not an error, the
// defaults apply.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFromReader reads configuration from r.
func LoadFromReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Default(), fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

func parse(path string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize clamps out-of-range values back to their defaults.
func (c *Config) normalize() {
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if c.FoldLimit < 0 {
		c.FoldLimit = 0
	}
	switch c.Detector {
	case DetectorIndent, DetectorLua:
	default:
		c.Detector = DetectorIndent
	}
}

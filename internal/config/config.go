package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/horizon/internal/horizon"
)

// DefaultAddr is where the HTTP view API and the MCP server listen when no
// address is configured.
const DefaultAddr = "127.0.0.1:8765"

// ProjectConfig holds settings loaded from horizon.yml.
type ProjectConfig struct {
	Records            string `yaml:"records,omitempty"`
	MaxAncestorLevel   int    `yaml:"maxAncestorLevel,omitempty"`
	MaxDescendantLevel int    `yaml:"maxDescendantLevel,omitempty"`
	StrictParents      bool   `yaml:"strictParents,omitempty"`
	BuildWorkers       int    `yaml:"buildWorkers,omitempty"`
	Addr               string `yaml:"addr,omitempty"`
	LogLevel           string `yaml:"logLevel,omitempty"`
}

// Load attempts to read horizon.yml or horizon.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists. A relative records path is resolved against dir.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"horizon.yml", "horizon.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if cfg.Records != "" && cfg.Records != "-" && !filepath.IsAbs(cfg.Records) {
			cfg.Records = filepath.Join(dir, cfg.Records)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Validate rejects values no component can use.
func (c *ProjectConfig) Validate() error {
	if c.MaxAncestorLevel < 0 {
		return fmt.Errorf("maxAncestorLevel must not be negative")
	}
	if c.MaxDescendantLevel < 0 {
		return fmt.Errorf("maxDescendantLevel must not be negative")
	}
	if c.BuildWorkers < 0 {
		return fmt.Errorf("buildWorkers must not be negative")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// IndexOptions maps the config onto horizon build options.
func (c *ProjectConfig) IndexOptions() horizon.Options {
	return horizon.Options{
		StrictParents:      c.StrictParents,
		Workers:            c.BuildWorkers,
		MaxAncestorLevel:   c.MaxAncestorLevel,
		MaxDescendantLevel: c.MaxDescendantLevel,
	}
}

// ListenAddr returns Addr or DefaultAddr.
func (c *ProjectConfig) ListenAddr() string {
	if c.Addr == "" {
		return DefaultAddr
	}
	return c.Addr
}

// ParseLogLevel maps debug/info/warn/error (case-insensitive) to a slog
// level. An empty string is info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

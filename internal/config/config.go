// Package config loads the optional vlist.yaml / vlist.toml list description
// and resolves it into ready-to-use virtualizer settings.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/vlist/pkg/errors"
)

// File names probed by LoadOptional, in order.
const (
	YAMLFile = "vlist.yaml"
	TOMLFile = "vlist.toml"
)

// DefaultVersion is the schema version assumed when a file omits it.
const DefaultVersion = "v1.0.0"

// Config represents a list description file.
type Config struct {
	Version  string         `yaml:"version,omitempty" toml:"version"`
	Name     string         `yaml:"name,omitempty" toml:"name"`
	List     ListConfig     `yaml:"list" toml:"list"`
	Viewport ViewportConfig `yaml:"viewport" toml:"viewport"`
	Plugins  PluginsConfig  `yaml:"plugins" toml:"plugins"`
	Pages    PagesConfig    `yaml:"pages" toml:"pages"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-" toml:"-"`
}

// ListConfig describes the logical list.
type ListConfig struct {
	Count    int     `yaml:"count" toml:"count"`
	ItemSize float64 `yaml:"item_size" toml:"item_size"`
	Overscan *int    `yaml:"overscan,omitempty" toml:"overscan"`
}

// ViewportConfig seeds the scroll source.
type ViewportConfig struct {
	Size   float64 `yaml:"size" toml:"size"`
	Offset float64 `yaml:"offset" toml:"offset"`
}

// PluginsConfig selects built-in plugins.
type PluginsConfig struct {
	// Overscan registers an OverscanPlugin with this overscan when set.
	Overscan *int `yaml:"overscan,omitempty" toml:"overscan"`
	// Isolate wraps registered plugins with virtual.Isolate.
	Isolate bool `yaml:"isolate,omitempty" toml:"isolate"`
}

// PagesConfig configures page bookkeeping for paginated sources.
type PagesConfig struct {
	Size     int  `yaml:"size,omitempty" toml:"size"`
	Prefetch *int `yaml:"prefetch,omitempty" toml:"prefetch"`
}

// Load reads an explicit config file, choosing the decoder by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Parsing("config.Load", fmt.Errorf("failed to parse %s: %w", path, err))
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Parsing("config.Load", fmt.Errorf("failed to parse %s: %w", path, err))
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Parsing("config.Load", fmt.Errorf("unknown keys in %s: %v", path, undecoded))
		}
	default:
		return nil, errors.Parsing("config.Load", fmt.Errorf("unsupported config format %q", filepath.Ext(path)))
	}
	cfg.Source = path
	return &cfg, nil
}

// LoadOptional reads vlist.yaml, or vlist.toml, from dir if present.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		return Load(path)
	}
	return &Config{}, nil
}

// FindProjectRoot walks up from dir to find go.mod.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "list"
	}
	return base
}

func validateVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a valid semantic version", v)
	}
	if major := semver.Major(v); major != "v1" {
		return fmt.Errorf("unsupported config version %s (want v1)", major)
	}
	return nil
}

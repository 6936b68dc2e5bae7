package config

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/go-drift/vlist/pkg/errors"
	"github.com/go-drift/vlist/pkg/virtual"
)

// Defaults applied by ResolveConfig.
const (
	DefaultItemSize = 1.0
	DefaultPageSize = 50
	DefaultPrefetch = 1
)

// Resolved contains validated list settings.
type Resolved struct {
	Root       string
	ModulePath string
	Source     string

	Name    string
	Version string

	Count    int
	ItemSize float64
	Overscan int

	ViewportSize float64
	ScrollOffset float64

	// OverscanPlugin is the overscan of the registered OverscanPlugin, nil
	// when none is configured.
	OverscanPlugin *int
	Isolate        bool

	PageSize int
	Prefetch int
}

// Resolve loads the optional config file in dir and applies defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return ResolveConfig(cfg, dir)
}

// ResolveFile loads an explicit config file and applies defaults.
func ResolveFile(path string) (*Resolved, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ResolveConfig(cfg, filepath.Dir(path))
}

// ResolveConfig applies defaults to cfg and validates the result. dir is used
// to derive a default name from the enclosing Go module, if any.
func ResolveConfig(cfg *Config, dir string) (*Resolved, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	const op = "config.Resolve"

	r := &Resolved{
		Source:       cfg.Source,
		Name:         cfg.Name,
		Version:      cfg.Version,
		Count:        cfg.List.Count,
		ItemSize:     cfg.List.ItemSize,
		Overscan:     virtual.DefaultOverscan,
		ViewportSize: cfg.Viewport.Size,
		ScrollOffset: cfg.Viewport.Offset,
		Isolate:      cfg.Plugins.Isolate,
		PageSize:     cfg.Pages.Size,
		Prefetch:     DefaultPrefetch,
	}

	if root, err := FindProjectRoot(dir); err == nil {
		r.Root = root
		if path, err := modulePath(root); err == nil {
			r.ModulePath = path
		}
	}
	if r.Name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		r.Name = defaultName(r.ModulePath, abs)
	}

	if r.Version == "" {
		r.Version = DefaultVersion
	}
	if err := validateVersion(r.Version); err != nil {
		return nil, errors.Config(op, err)
	}

	if r.Count < 0 {
		return nil, errors.Config(op, errors.ErrNegativeCount)
	}
	if r.ItemSize == 0 {
		r.ItemSize = DefaultItemSize
	}
	if !(r.ItemSize > 0) || math.IsInf(r.ItemSize, 1) {
		return nil, errors.Config(op, fmt.Errorf("list.item_size %v: %w", r.ItemSize, errors.ErrInvalidItemSize))
	}
	if cfg.List.Overscan != nil {
		r.Overscan = *cfg.List.Overscan
	}
	if r.Overscan < 0 {
		return nil, errors.Config(op, fmt.Errorf("list.overscan: %w", errors.ErrNegativeOverscan))
	}
	if p := cfg.Plugins.Overscan; p != nil {
		if *p < 0 {
			return nil, errors.Config(op, fmt.Errorf("plugins.overscan: %w", errors.ErrNegativeOverscan))
		}
		r.OverscanPlugin = virtual.Overscan(*p)
	}
	if r.ViewportSize < 0 || math.IsNaN(r.ViewportSize) {
		return nil, errors.Config(op, fmt.Errorf("viewport.size must be non-negative, got %v", r.ViewportSize))
	}
	if math.IsNaN(r.ScrollOffset) {
		return nil, errors.Config(op, fmt.Errorf("viewport.offset must be a number"))
	}

	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize < 0 {
		return nil, errors.Config(op, fmt.Errorf("pages.size must be positive, got %d", r.PageSize))
	}
	if cfg.Pages.Prefetch != nil {
		r.Prefetch = *cfg.Pages.Prefetch
	}
	if r.Prefetch < 0 {
		return nil, errors.Config(op, fmt.Errorf("pages.prefetch must be non-negative, got %d", r.Prefetch))
	}

	return r, nil
}

// Plugins returns the plugins described by r, followed by extra, wrapped with
// virtual.Isolate when r.Isolate is set.
func (r *Resolved) Plugins(extra ...virtual.Plugin) []virtual.Plugin {
	var plugins []virtual.Plugin
	if r.OverscanPlugin != nil {
		plugins = append(plugins, virtual.OverscanPlugin(*r.OverscanPlugin))
	}
	plugins = append(plugins, extra...)
	if r.Isolate {
		for i, p := range plugins {
			plugins[i] = virtual.Isolate(p)
		}
	}
	return plugins
}

// Build creates a fixed layout, a scroll source seeded with the configured
// viewport, and a virtualizer with the configured plugins registered. The
// returned state already reflects every plugin; onChange sees that first
// update.
func (r *Resolved) Build(onChange func(virtual.State), extra ...virtual.Plugin) (*virtual.Virtualizer, *virtual.VirtualScrollSource, error) {
	layout, err := virtual.NewFixedLayout(r.ItemSize)
	if err != nil {
		return nil, nil, err
	}
	source := virtual.NewVirtualScrollSource()
	source.SetViewportSize(r.ViewportSize)
	source.SetScrollOffset(r.ScrollOffset)

	v, err := virtual.New(layout, source, virtual.Options{
		Count:    r.Count,
		Overscan: virtual.Overscan(r.Overscan),
		OnChange: onChange,
	})
	if err != nil {
		return nil, nil, err
	}
	for _, p := range r.Plugins(extra...) {
		if err := v.AddPlugin(p); err != nil {
			v.Destroy()
			return nil, nil, err
		}
	}
	if err := v.Update(); err != nil {
		return nil, nil, err
	}
	return v, source, nil
}

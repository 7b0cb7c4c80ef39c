package info

import (
	"log/slog"
	"runtime"

	"github.com/gobwas/glob"
	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
)

// Config controls how findings are collected from a file tree
type Config struct {
	Exclude            []string               `yaml:"exclude,omitempty"`            // glob patterns matched against directory names and relative paths
	IncludeInstallDirs bool                   `yaml:"includeInstallDirs,omitempty"` // collect manifests found inside install directories
	Jobs               int                    `yaml:"jobs,omitempty"`
	Mode               dependency.Mode        `yaml:"mode,omitempty"`
	Ecosystems         []dependency.Ecosystem `yaml:"ecosystems,omitempty"`
	Logger             *slog.Logger           `yaml:"-"`
}

// DefaultConfig returns collection defaults
func DefaultConfig() *Config {
	return &Config{
		Exclude: []string{".git", ".nx", "target", "__pycache__"},
		Jobs:    runtime.NumCPU(),
		Mode:    dependency.ModeFull,
		Logger:  slog.Default(),
	}
}

// Init fills unset values with defaults
func (c *Config) Init() {
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
	if c.Mode == "" {
		c.Mode = dependency.ModeFull
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Matcher returns compiled exclusion patterns
func (c *Config) Matcher() (*Exclusion, error) {
	ret := &Exclusion{}
	for _, pattern := range c.Exclude {
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, xerrors.Errorf("failed to compile exclude pattern %q: %w", pattern, err)
		}
		ret.patterns = append(ret.patterns, compiled)
	}
	return ret, nil
}

// Exclusion matches paths excluded from collection
type Exclusion struct {
	patterns []glob.Glob
}

// Excluded returns true if name or relative path matches any pattern
func (e *Exclusion) Excluded(name, relative string) bool {
	for _, pattern := range e.patterns {
		if pattern.Match(name) || (relative != "" && pattern.Match(relative)) {
			return true
		}
	}
	return false
}

package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/cargo"
	"github.com/viant/depscan/inspector/info"
	"github.com/viant/depscan/inspector/npm"
	"github.com/viant/depscan/inspector/python"
	"golang.org/x/xerrors"
)

// Inspector provides an interface for collecting dependency findings
type Inspector interface {
	// Inspect collects findings from a location
	Inspect(ctx context.Context, location string) (*dependency.Findings, error)
}

// Factory creates appropriate inspectors based on location
type Factory struct {
	config *info.Config
	fs     afs.Service
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *info.Config, fs afs.Service) *Factory {
	if config == nil {
		config = info.DefaultConfig()
	}
	config.Init()
	if fs == nil {
		fs = afs.New()
	}
	return &Factory{config: config, fs: fs}
}

// GetInspector returns findings document inspector for .yaml, .yml and .json files, a directory inspector
// running the collector of every configured ecosystem for directories
func (f *Factory) GetInspector(ctx context.Context, location string) (Inspector, error) {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml", ".json":
		return NewDocumentInspector(f.fs), nil
	}
	object, err := f.fs.Object(ctx, location)
	if err != nil {
		return nil, xerrors.Errorf("failed to locate %v: %w", location, err)
	}
	if !object.IsDir() {
		return nil, fmt.Errorf("unsupported location: %s", location)
	}
	return f.directoryInspector(), nil
}

func (f *Factory) directoryInspector() *DirectoryInspector {
	ret := &DirectoryInspector{}
	for _, ecosystem := range dependency.Ecosystems {
		if !f.enabled(ecosystem) {
			continue
		}
		var collector Inspector
		switch ecosystem {
		case dependency.Node:
			collector = npm.New(f.config, f.fs)
		case dependency.Python:
			collector = python.New(f.config, f.fs)
		case dependency.Rust:
			collector = cargo.New(f.config, f.fs)
		default:
			continue
		}
		ret.Ecosystems = append(ret.Ecosystems, ecosystem)
		ret.inspectors = append(ret.inspectors, collector)
	}
	return ret
}

func (f *Factory) enabled(ecosystem dependency.Ecosystem) bool {
	return len(f.config.Ecosystems) == 0 || slices.Contains(f.config.Ecosystems, ecosystem)
}

// DirectoryInspector collects findings of a directory tree with one collector per ecosystem
type DirectoryInspector struct {
	Ecosystems []dependency.Ecosystem
	inspectors []Inspector
}

// Inspect runs collectors in ecosystem order and merges their findings
func (d *DirectoryInspector) Inspect(ctx context.Context, location string) (*dependency.Findings, error) {
	ret := &dependency.Findings{}
	for _, inspector := range d.inspectors {
		findings, err := inspector.Inspect(ctx, location)
		if err != nil {
			return nil, err
		}
		ret.Merge(findings)
	}
	return ret, nil
}

// Inspect collects and merges findings of all locations, restricted to configured mode and ecosystems
func (f *Factory) Inspect(ctx context.Context, locations ...string) (*dependency.Findings, error) {
	ret := &dependency.Findings{}
	for _, location := range locations {
		inspector, err := f.GetInspector(ctx, location)
		if err != nil {
			return nil, err
		}
		findings, err := inspector.Inspect(ctx, location)
		if err != nil {
			return nil, err
		}
		ret.Merge(findings)
	}
	return ret.Filter(f.config.Mode, f.config.Ecosystems...), nil
}

package cargo

import (
	"context"

	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/collector"
	"github.com/viant/depscan/inspector/info"
)

const (
	manifestFile = "Cargo.toml"
	lockFile     = "Cargo.lock"
)

// Inspector collects Rust findings from Cargo.toml manifests and Cargo.lock lockfiles,
// crates have no project local install dir
type Inspector struct {
	config *info.Config
	fs     afs.Service
}

// New creates an inspector
func New(config *info.Config, fs afs.Service) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	config.Init()
	if fs == nil {
		fs = afs.New()
	}
	return &Inspector{config: config, fs: fs}
}

// Inspect walks root and parses every selected file, files failing to parse are logged and skipped
func (i *Inspector) Inspect(ctx context.Context, root string) (*dependency.Findings, error) {
	if !i.config.Mode.Declared() {
		return &dependency.Findings{}, nil
	}
	ret, err := collector.Collect(ctx, i.fs, i.config, root, i)
	if err != nil {
		return nil, err
	}
	i.config.Logger.Debug("collected rust findings", "root", root, "records", len(ret.Records))
	return ret, nil
}

// Descend walks every directory that is not excluded
func (i *Inspector) Descend(name, relative string) bool {
	return true
}

// Select returns parser for Cargo manifests and lockfiles
func (i *Inspector) Select(name, parent string) collector.Parser {
	switch name {
	case manifestFile:
		return parseManifestRecords
	case lockFile:
		return parseLockRecords
	}
	return nil
}

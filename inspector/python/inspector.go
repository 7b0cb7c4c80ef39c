package python

import (
	"context"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/collector"
	"github.com/viant/depscan/inspector/info"
)

const (
	sitePackages     = "site-packages"
	distPackages     = "dist-packages"
	requirementsFile = "requirements.txt"
	pyprojectFile    = "pyproject.toml"
	poetryLockFile   = "poetry.lock"
	uvLockFile       = "uv.lock"
	metadataFile     = "METADATA"
	pkgInfoFile      = "PKG-INFO"
	distInfoSuffix   = ".dist-info"
	eggInfoSuffix    = ".egg-info"
)

// Inspector collects Python findings: site-packages metadata, requirements.txt, pyproject.toml, poetry.lock and uv.lock
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
	ret, err := collector.Collect(ctx, i.fs, i.config, root, i)
	if err != nil {
		return nil, err
	}
	i.config.Logger.Debug("collected python findings", "root", root, "records", len(ret.Records), "installed", len(ret.Installed))
	return ret, nil
}

// Descend skips site-packages and dist-packages unless installed packages or install dir manifests are collected
func (i *Inspector) Descend(name, relative string) bool {
	if !isInstallDir(name) {
		return true
	}
	return i.config.Mode.Installed() || i.config.IncludeInstallDirs
}

// Select returns parser for package metadata, manifests and lockfiles
func (i *Inspector) Select(name, parent string) collector.Parser {
	mode := i.config.Mode
	if collector.HasSegment(parent, sitePackages) || collector.HasSegment(parent, distPackages) {
		if mode.Installed() {
			if parse := installedParser(name, parent); parse != nil {
				return parse
			}
		}
		if !i.config.IncludeInstallDirs {
			return nil
		}
	}
	if !mode.Declared() {
		return nil
	}
	switch name {
	case requirementsFile:
		return parseRequirementsRecords
	case pyprojectFile:
		return parsePyProjectRecords
	case poetryLockFile, uvLockFile:
		return parseLockRecords
	}
	return nil
}

// installedParser selects <name>.dist-info/METADATA, <name>.egg-info/PKG-INFO and <name>.egg-info files placed directly in an install dir
func installedParser(name, parent string) collector.Parser {
	dir := path.Base(parent)
	switch {
	case name == metadataFile && strings.HasSuffix(dir, distInfoSuffix) && isInstallDir(path.Base(path.Dir(parent))):
		return parseInstalled
	case name == pkgInfoFile && strings.HasSuffix(dir, eggInfoSuffix) && isInstallDir(path.Base(path.Dir(parent))):
		return parseInstalled
	case strings.HasSuffix(name, eggInfoSuffix) && isInstallDir(dir):
		return parseInstalled
	}
	return nil
}

func isInstallDir(name string) bool {
	return name == sitePackages || name == distPackages
}

package npm

import (
	"context"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/collector"
	"github.com/viant/depscan/inspector/info"
)

const (
	installDir   = "node_modules"
	manifestFile = "package.json"
	lockFile     = "package-lock.json"
	shrinkwrap   = "npm-shrinkwrap.json"
	yarnLockFile = "yarn.lock"
	pnpmLockFile = "pnpm-lock.yaml"
)

// Inspector collects Node findings: installed packages, package.json manifests and npm, yarn or pnpm lockfiles
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
	i.config.Logger.Debug("collected node findings", "root", root, "records", len(ret.Records), "installed", len(ret.Installed))
	return ret, nil
}

// Descend skips node_modules unless installed packages or install dir manifests are collected
func (i *Inspector) Descend(name, relative string) bool {
	return name != installDir || i.config.Mode.Installed() || i.config.IncludeInstallDirs
}

// Select returns parser for Node manifests and lockfiles
func (i *Inspector) Select(name, parent string) collector.Parser {
	mode := i.config.Mode
	inInstallDir := collector.HasSegment(parent, installDir)
	switch name {
	case manifestFile:
		switch {
		case inInstallDir && isPackageRoot(parent):
			return i.installedParser(mode)
		case !inInstallDir && mode.Declared():
			return parseManifestRecords
		}
	case lockFile, shrinkwrap, yarnLockFile, pnpmLockFile:
		if !mode.Declared() || (inInstallDir && !i.config.IncludeInstallDirs) {
			return nil
		}
		switch name {
		case yarnLockFile:
			return parseYarnLockRecords
		case pnpmLockFile:
			return parsePnpmLockRecords
		}
		return parseLockRecords
	}
	return nil
}

// installedParser parses an installed package.json, its declared ranges are kept only when install dirs are included
func (i *Inspector) installedParser(mode dependency.Mode) collector.Parser {
	withRecords := i.config.IncludeInstallDirs && mode.Declared()
	return func(location string, data []byte, findings *dependency.Findings) error {
		if mode.Installed() {
			if err := parseInstalled(location, data, findings); err != nil {
				return err
			}
		}
		if withRecords {
			return parseManifestRecords(location, data, findings)
		}
		return nil
	}
}

// isPackageRoot returns true for node_modules/<name> and node_modules/@scope/<name> directories
func isPackageRoot(parent string) bool {
	segments := strings.Split(strings.Trim(parent, "/"), "/")
	n := len(segments)
	if n >= 2 && segments[n-2] == installDir {
		return !strings.HasPrefix(segments[n-1], "@")
	}
	return n >= 3 && segments[n-3] == installDir && strings.HasPrefix(segments[n-2], "@")
}

// parentPackage returns the package whose node_modules holds location, empty for top level packages
func parentPackage(location string) string {
	segments := strings.Split(strings.Trim(location, "/"), "/")
	var installs []int
	for idx, segment := range segments {
		if segment == installDir {
			installs = append(installs, idx)
		}
	}
	if len(installs) < 2 {
		return ""
	}
	start := installs[len(installs)-2] + 1
	end := installs[len(installs)-1]
	if end-start == 2 && strings.HasPrefix(segments[start], "@") {
		return segments[start] + "/" + segments[start+1]
	}
	if end-start != 1 {
		return ""
	}
	return segments[start]
}
